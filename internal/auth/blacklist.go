package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"

	"urlaubsverwaltung/internal/config"
)

// TokenBlacklist revokes access tokens by ID before they expire.
type TokenBlacklist interface {
	// Add revokes jti for ttl, which should be the remaining lifetime of the token.
	Add(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

const blacklistKeyPrefix = "urlaubsverwaltung:token:blacklist:"

// RedisTokenBlacklist keeps revoked token IDs as expiring redis keys.
type RedisTokenBlacklist struct {
	client redis.Cmdable
}

// NewRedisClient connects to redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func NewRedisTokenBlacklist(client redis.Cmdable) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}
	return n > 0, nil
}

const (
	inMemoryBlacklistMaxSize = 100_000
	inMemorySweepInterval    = time.Minute
)

// InMemoryTokenBlacklist is used when redis is disabled. It only works for a
// single instance. Entries are bounded by size and expired entries are swept
// on Add at most once per inMemorySweepInterval.
type InMemoryTokenBlacklist struct {
	cache *ccache.Cache[time.Time]
	now   func() time.Time

	mu        sync.Mutex
	lastSweep time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return newInMemoryTokenBlacklist(inMemoryBlacklistMaxSize)
}

func newInMemoryTokenBlacklist(maxSize int64) *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		cache: ccache.New(ccache.Configure[time.Time]().MaxSize(maxSize)),
		now:   time.Now,
	}
}

func (b *InMemoryTokenBlacklist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := b.now()
	b.cache.Set(jti, now.Add(ttl), ttl)
	b.sweep(now)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	item := b.cache.Get(jti)
	if item == nil {
		return false, nil
	}
	if b.now().After(item.Value()) {
		b.cache.Delete(jti)
		return false, nil
	}
	return true, nil
}

// sweep drops the entries of tokens that expired in the meantime.
func (b *InMemoryTokenBlacklist) sweep(now time.Time) {
	b.mu.Lock()
	if now.Sub(b.lastSweep) < inMemorySweepInterval {
		b.mu.Unlock()
		return
	}
	b.lastSweep = now
	b.mu.Unlock()

	b.cache.DeleteFunc(func(_ string, item *ccache.Item[time.Time]) bool {
		return now.After(item.Value())
	})
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
