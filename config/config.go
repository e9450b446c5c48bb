package config

import (
	"fmt"
	"os"
)

// Environment variables read once at startup.
const (
	EnvAppID       = "EDAMAM_APP_ID"
	EnvAppKey      = "EDAMAM_APP_KEY"
	EnvAccountUser = "EDAMAM_ACCOUNT_USER"
)

// Credentials identify this application to the Edamam API.
// Loaded once at process start, immutable afterwards.
type Credentials struct {
	AppID       string
	AppKey      string
	AccountUser string // optional, attached as a request header when set
}

// FromEnv reads credentials from the process environment.
func FromEnv() Credentials {
	return Credentials{
		AppID:       os.Getenv(EnvAppID),
		AppKey:      os.Getenv(EnvAppKey),
		AccountUser: os.Getenv(EnvAccountUser),
	}
}

// Validate reports the first missing required credential. The error names
// the environment variable so the user knows what to set.
func (c Credentials) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("missing configuration: set %s to your Edamam application ID", EnvAppID)
	}
	if c.AppKey == "" {
		return fmt.Errorf("missing configuration: set %s to your Edamam application key", EnvAppKey)
	}
	return nil
}
