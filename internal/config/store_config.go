package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	StoreTypeFile  = "file"
	StoreTypeRedis = "redis"

	tokenFileName = "token"
)

const (
	keyStoreType     = "store.type"
	keyRedisAddr     = "store.redis.address"
	keyRedisPassword = "store.redis.password"
	keyRedisDB       = "store.redis.db"
	keyRedisPrefix   = "store.redis.prefix"
)

type StoreConfig interface {
	GetStoreType() string
	GetTokenFile() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

type Store struct {
	v *viper.Viper
}

var _ StoreConfig = Store{}

func (s Store) GetStoreType() string {
	return s.v.GetString(keyStoreType)
}

// GetTokenFile is the fixed location of the persisted token for the file store.
func (s Store) GetTokenFile() string {
	return filepath.Join(s.v.GetString(keyDataFolder), tokenFileName)
}

func (s Store) GetRedisAddr() string {
	return s.v.GetString(keyRedisAddr)
}

func (s Store) GetRedisPassword() string {
	return s.v.GetString(keyRedisPassword)
}

func (s Store) GetRedisDB() int {
	return s.v.GetInt(keyRedisDB)
}

func (s Store) GetRedisPrefix() string {
	return s.v.GetString(keyRedisPrefix)
}
