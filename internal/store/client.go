package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmptyAddress is returned when the store address is not configured.
var ErrEmptyAddress = errors.New("store address is required")

// connectionTimeout bounds the startup connection check.
const connectionTimeout = 5 * time.Second

// ClientConfig holds connection settings for the key-value backend.
type ClientConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(cfg ClientConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("store ping failed: %w", err)
	}

	return client, nil
}
