package config

type Config interface {
	EnvConfig
	APIConfig
	ListConfig
}

type EnvConfig interface {
	GetAppName() string
	GetTokenPath() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	API
	List
}

func New() Config {
	return mainConfig{}
}
