package config

import "github.com/caarlos0/env/v11"

// ParserConfig points at the OpenAI-compatible text-understanding endpoint
// used for free-text hand import.
type ParserConfig struct {
	BaseURL        string `env:"PARSER_BASE_URL" envDefault:"https://api.openai.com/v1"`
	APIKey         string `env:"PARSER_API_KEY"`
	Model          string `env:"PARSER_MODEL" envDefault:"gpt-4o-mini"`
	TimeoutSeconds int    `env:"PARSER_TIMEOUT_SECONDS" envDefault:"45"`
}

func LoadParser() (ParserConfig, error) {
	var cfg ParserConfig
	err := env.Parse(&cfg)
	return cfg, err
}
