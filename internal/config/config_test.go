package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/pos-console/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.New(nil)

	require.Equal(t, "http://127.0.0.1:5555", c.GetBaseURL())
	require.Equal(t, 30*time.Second, c.GetRequestTimeout())
	require.Equal(t, 3*time.Second, c.GetLogoutTimeout())
	require.Equal(t, config.StoreTypeFile, c.GetStoreType())
	require.Equal(t, "token", filepath.Base(c.GetTokenFile()))
	require.Equal(t, time.Hour, c.GetAccessTokenExpiry())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:5173"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "pos-console.yaml")
	err := os.WriteFile(cfgFile, []byte(`
api:
  base_url: https://pos.example.com
  timeout: 5s
store:
  type: redis
  redis:
    address: redis:6379
    prefix: "pos:"
data:
  folder: `+dir+`
`), 0o600)
	require.NoError(t, err)

	v := viper.New()
	require.NoError(t, config.Load(v, cfgFile))
	c := config.New(v)

	require.Equal(t, "https://pos.example.com", c.GetBaseURL())
	require.Equal(t, 5*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.StoreTypeRedis, c.GetStoreType())
	require.Equal(t, "redis:6379", c.GetRedisAddr())
	require.Equal(t, "pos:", c.GetRedisPrefix())
	require.Equal(t, filepath.Join(dir, "token"), c.GetTokenFile())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("POS_API_BASE_URL", "http://env.example.com")

	v := viper.New()
	require.NoError(t, config.Load(v, ""))
	require.Equal(t, "http://env.example.com", config.New(v).GetBaseURL())
}

func TestGetPort(t *testing.T) {
	t.Setenv("PORT", "")
	require.Equal(t, ":5555", config.New(nil).GetPort())

	t.Setenv("PORT", "9000")
	require.Equal(t, ":9000", config.New(nil).GetPort())
}
