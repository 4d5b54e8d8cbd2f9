package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppConfigName = "pos-console"
	envPrefix     = "POS"
)

type Config interface {
	EnvConfig
	APIConfig
	StoreConfig
	TokenConfig
	CorsConfig
}

type mainConfig struct {
	EnvVars
	API
	Store
	Token
	Cors
}

// New wraps an already loaded viper instance. A nil viper uses defaults only.
func New(v *viper.Viper) Config {
	if v == nil {
		v = viper.New()
		SetDefaults(v)
	}
	return mainConfig{
		EnvVars: EnvVars{v: v},
		API:     API{v: v},
		Store:   Store{v: v},
		Token:   Token{v: v},
		Cors:    Cors{v: v},
	}
}

// Load reads the config file (explicit path, or pos-console.yaml from /etc/pos-console,
// $HOME/.pos-console and the working directory) and POS_* environment variables.
// A missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(fmt.Sprintf("/etc/%s", AppConfigName))
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+AppConfigName))
		}
		v.AddConfigPath(".")
		v.SetConfigName(AppConfigName)
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if cfgFile == "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config.Load ReadInConfig: %w", err)
	}
	return nil
}

// SetDefaults registers every known key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(keyAppName, "Capital POS")
	v.SetDefault(keyEnv, "DEV")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyPort, "5555")
	v.SetDefault(keyDataFolder, defaultDataFolder())

	v.SetDefault(keyBaseURL, "http://127.0.0.1:5555")
	v.SetDefault(keyRequestTimeout, "30s")
	v.SetDefault(keyLogoutTimeout, "3s")

	v.SetDefault(keyStoreType, StoreTypeFile)
	v.SetDefault(keyRedisAddr, "localhost:6379")
	v.SetDefault(keyRedisPassword, "")
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyRedisPrefix, "pos-console:")

	v.SetDefault(keySigningSecret, "")
	v.SetDefault(keyAccessTokenExpiry, "1h")

	v.SetDefault(keyAllowedOrigins, []string{"http://localhost:5173"})
}

func defaultDataFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppConfigName
	}
	return filepath.Join(home, "."+AppConfigName)
}
