package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	keyAppName    = "app.name"
	keyEnv        = "app.env"
	keyLogLevel   = "log.level"
	keyPort       = "server.port"
	keyDataFolder = "data.folder"
)

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetPort() string
	GetDataFolder() string
}

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(keyAppName)
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv("ENV", e.v.GetString(keyEnv)))
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(keyLogLevel)
}

// GetPort returns the listen address for the mock API, e.g. ":5555".
func (e EnvVars) GetPort() string {
	port := GetEnv("PORT", e.v.GetString(keyPort))
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetDataFolder() string {
	return e.v.GetString(keyDataFolder)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
