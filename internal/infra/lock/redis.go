// Package lock serializes reservation writes per employee.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// NewRedisClient connects to addr and pings it. It returns nil when the
// server is unreachable so callers can fall back to the local locker.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v", addr, err)
		client.Close()
		return nil
	}
	return client
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ErrLockTimeout means the employee lock stayed held for the whole wait. It
// is not a business error: the slot may well be free, so callers answer it
// as a retryable server error.
var ErrLockTimeout = errors.New("lock: timed out waiting for employee lock")

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   ttl,
		poll:   25 * time.Millisecond,
	}
}

func slotKey(employeeID uint) string {
	return fmt.Sprintf("lock:employee:%d", employeeID)
}

// Acquire waits for the employee's lock like LocalLocker does, until ctx is
// done or the wait (one TTL, after which a crashed holder's key has expired)
// runs out.
func (l *RedisLocker) Acquire(ctx context.Context, employeeID uint) (func(), error) {
	key := slotKey(employeeID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.poll):
		}
	}

	release := func() {
		// The request context may already be done.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			log.Printf("release %s: %v", key, err)
		}
	}
	return release, nil
}
