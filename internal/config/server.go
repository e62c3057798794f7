package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	SessionIdleMins   int `env:"SESSION_IDLE_MINUTES" envDefault:"120"`
	SessionSweepSecs  int `env:"SESSION_SWEEP_SECONDS" envDefault:"60"`
	HandListLimitMax  int `env:"HAND_LIST_LIMIT_MAX" envDefault:"200"`
	ShutdownGraceSecs int `env:"SHUTDOWN_GRACE_SECONDS" envDefault:"10"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
