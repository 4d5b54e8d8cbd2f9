package main

import (
	"fmt"

	"github.com/jrsteele09/pos-console/internal/config"
	"github.com/jrsteele09/pos-console/tokenstore"
	"github.com/redis/go-redis/v9"
)

func newStore(cfg config.Config) (tokenstore.Store, error) {
	switch cfg.GetStoreType() {
	case config.StoreTypeFile:
		return tokenstore.NewFileStore(cfg.GetTokenFile()), nil
	case config.StoreTypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
		})
		return tokenstore.NewRedisStore(client, cfg.GetRedisPrefix()), nil
	default:
		return nil, fmt.Errorf("unknown token store %q, expected %s or %s",
			cfg.GetStoreType(), config.StoreTypeFile, config.StoreTypeRedis)
	}
}
