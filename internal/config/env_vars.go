package config

import (
	"os"
)

const (
	appNameVar  = "APP_NAME"
	folderVar   = "FOLDER"
	baseURLVar  = "BASE_URL"
	logLevelVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "HostelHub")
}

// GetBaseURL returns the base URL of the booking backend
// (e.g., "https://api.hostelhub.example.com")
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8000")
}

func (EnvVars) GetDataFolder() string {
	if folder := GetEnv(folderVar, ""); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return home + "/.hostelhub"
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
