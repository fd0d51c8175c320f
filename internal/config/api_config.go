package config

import (
	"time"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the base URL of the loyalty backend
// (e.g. "https://api.example.com"). All endpoint paths are relative to it.
func (API) GetAPIBaseURL() string {
	return GetEnv("API_BASE_URL", "http://localhost:5000")
}

func (API) GetRequestTimeout() time.Duration {
	timeout := GetEnv("REQUEST_TIMEOUT", "")
	if timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
