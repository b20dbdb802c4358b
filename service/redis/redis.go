package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/gomarket/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")
	// ErrNoPool is returned when the service has no pool to take connections from
	ErrNoPool = errors.New("redis pool not configured")
)

// Forever is the ttl of keys which never expire
const Forever time.Duration = -1

// Service wraps the redis commands the service relies on
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)

	// Publish returns the number of subscribers which received payload
	Publish(c ctx.Ctx, channel string, payload []byte) (int, error)

	RPush(c ctx.Ctx, key string, val []byte) (int, error)
	LTrim(c ctx.Ctx, key string, start, end int) error
	LRange(c ctx.Ctx, key string, offset, count int) ([][]byte, error)
}
