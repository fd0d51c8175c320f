package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar   = "APP_NAME"
	tokenPathVar = "TOKEN_PATH"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Loyalty Admin")
}

// GetTokenPath returns the file the bearer token is persisted to.
// The token is the only state this client keeps on disk.
func (EnvVars) GetTokenPath() string {
	if path := GetEnv(tokenPathVar, ""); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".loyalty-admin-token")
	}
	return filepath.Join(configDir, "loyalty-admin", "token")
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
