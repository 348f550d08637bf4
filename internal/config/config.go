package config

type Config interface {
	EnvConfig
	SecurityConfig
}

type EnvConfig interface {
	GetAppName() string
	GetBaseURL() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type SecurityConfig interface {
	GetCredentialsPassphrase() string
}

type mainConfig struct {
	EnvVars
	Security
}

func New() Config {
	return mainConfig{}
}
