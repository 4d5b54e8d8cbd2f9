package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	keySigningSecret     = "mockapi.signing_secret"
	keyAccessTokenExpiry = "mockapi.access_token_expiry"
)

// TokenConfig holds the mock API's token issuing settings.
type TokenConfig interface {
	GetSigningSecret() string
	GetAccessTokenExpiry() time.Duration
}

type Token struct {
	v *viper.Viper
}

var _ TokenConfig = Token{}

func (t Token) GetSigningSecret() string {
	return t.v.GetString(keySigningSecret)
}

func (t Token) GetAccessTokenExpiry() time.Duration {
	return t.v.GetDuration(keyAccessTokenExpiry)
}
