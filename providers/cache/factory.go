package cache

import (
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
)

// NewFromConfig builds the cache backend selected by configuration.
func NewFromConfig(cfg *config.CacheConfig) (Interface, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryCache(), nil
	case "redis":
		redisCache, err := NewRedisCache(&RedisCacheConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		})
		if err != nil {
			return nil, errors.NewConfigurationError("failed to connect to redis cache", err)
		}
		return redisCache, nil
	default:
		return nil, errors.NewConfigurationError("unknown cache type: "+cfg.Type, nil)
	}
}
