package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// Blacklist records revoked token ids until their natural expiry.
//
// IsRevoked errors are treated as "revoked" by the caller (fail-closed):
// a token whose revocation status cannot be confirmed is never accepted.
type Blacklist interface {
	MarkRevoked(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist is a Blacklist backed by a single shared Redis client.
// The client is created lazily on first use and reused for the process
// lifetime; entries auto-expire through per-key TTLs.
type RedisBlacklist struct {
	url string

	once    sync.Once
	client  *redis.Client
	initErr error
}

func NewRedisBlacklist(url string) *RedisBlacklist {
	return &RedisBlacklist{url: url}
}

func (b *RedisBlacklist) conn() (*redis.Client, error) {
	b.once.Do(func() {
		opts, err := redis.ParseURL(b.url)
		if err != nil {
			b.initErr = fmt.Errorf("parse redis url: %w", err)
			return
		}
		b.client = redis.NewClient(opts)
	})

	return b.client, b.initErr
}

// MarkRevoked is idempotent; re-revoking a jti just refreshes its entry.
func (b *RedisBlacklist) MarkRevoked(ctx context.Context, jti string, ttl time.Duration) error {
	client, err := b.conn()
	if err != nil {
		return err
	}

	if err := client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("mark token revoked: %w", err)
	}
	return nil
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	client, err := b.conn()
	if err != nil {
		return false, err
	}

	err = client.Get(ctx, blacklistKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return true, nil
}

func (b *RedisBlacklist) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}
