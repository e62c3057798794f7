package config

type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
	Parser ParserConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	parserCfg, err := LoadParser()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server: serverCfg,
		Log:    logCfg,
		Parser: parserCfg,
	}, nil
}
