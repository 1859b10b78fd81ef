package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// KeyPrefix namespaces run lock keys
const KeyPrefix = "thebench:import:"

// ErrLocked is returned when another import holds the lock
var ErrLocked = errors.New("another import is already running")

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out import run locks backed by Redis
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// Lock is a held run lock
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// NewLocker connects to Redis and verifies the connection
func NewLocker(ctx context.Context, redisURL string, ttl time.Duration) (*Locker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Dur("ttl", ttl).Msg("Redis run lock enabled")

	return &Locker{client: client, ttl: ttl}, nil
}

// Key returns the lock key for a store target
func Key(target string) string {
	return KeyPrefix + target
}

// Acquire takes the lock for target or returns ErrLocked
func (l *Locker) Acquire(ctx context.Context, target string) (*Lock, error) {
	key := Key(target)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	log.Debug().Str("key", key).Msg("Import lock acquired")
	return &Lock{client: l.client, key: key, token: token}, nil
}

// Close closes the Redis connection
func (l *Locker) Close() error {
	return l.client.Close()
}

// Release drops the lock if it is still ours. Releasing a nil lock is a no-op.
func (k *Lock) Release(ctx context.Context) error {
	if k == nil {
		return nil
	}

	n, err := releaseScript.Run(ctx, k.client, []string{k.key}, k.token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", k.key, err)
	}
	if n == 0 {
		log.Warn().Str("key", k.key).Msg("Import lock expired before release")
	}

	return nil
}

// Key returns the Redis key of the lock
func (k *Lock) Key() string {
	return k.key
}
