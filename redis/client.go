package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const languageKeyPrefix = "user_language:"

// Client persists user language preferences. A zero ttl keeps keys forever.
type Client struct {
	rdb *redis.Client
	ctx context.Context
	ttl time.Duration
}

func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	client := &Client{
		rdb: rdb,
		ctx: context.Background(),
		ttl: ttl,
	}

	if err := client.Ping(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Info().
		Str("addr", addr).
		Int("db", db).
		Msg("Redis connected successfully")

	return client, nil
}

func (c *Client) Ping() error {
	return c.rdb.Ping(c.ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) SetUserLanguage(userID, lang string) error {
	return c.rdb.Set(c.ctx, languageKey(userID), lang, c.ttl).Err()
}

// GetUserLanguage reports found=false when no preference is stored.
func (c *Client) GetUserLanguage(userID string) (string, bool, error) {
	lang, err := c.rdb.Get(c.ctx, languageKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return lang, true, nil
}

func languageKey(userID string) string {
	return languageKeyPrefix + userID
}
