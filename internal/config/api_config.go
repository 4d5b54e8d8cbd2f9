package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	keyBaseURL        = "api.base_url"
	keyRequestTimeout = "api.timeout"
	keyLogoutTimeout  = "api.logout_timeout"
)

type APIConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetLogoutTimeout() time.Duration
}

type API struct {
	v *viper.Viper
}

var _ APIConfig = API{}

// GetBaseURL returns the POS backend base URL (e.g. "http://127.0.0.1:5555")
func (a API) GetBaseURL() string {
	return a.v.GetString(keyBaseURL)
}

// GetRequestTimeout bounds every API call. Zero means no timeout.
func (a API) GetRequestTimeout() time.Duration {
	return a.v.GetDuration(keyRequestTimeout)
}

func (a API) GetLogoutTimeout() time.Duration {
	return a.v.GetDuration(keyLogoutTimeout)
}
