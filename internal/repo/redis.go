package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// LoginLimiter is a fixed-window per-IP counter for the login endpoint.
// Verification endpoints are intentionally not limited.
type LoginLimiter struct {
	rds    *Redis
	rate   int
	window time.Duration
}

func NewLoginLimiter(rds *Redis, ratePerMin int) *LoginLimiter {
	return &LoginLimiter{rds: rds, rate: ratePerMin, window: time.Minute}
}

// Allow fails open: if redis is unreachable the request proceeds.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) bool {
	if l == nil || l.rds == nil || l.rate <= 0 {
		return true
	}
	key := "rl:login:" + ip
	n, err := l.rds.C.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		l.rds.C.Expire(ctx, key, l.window)
	}
	return n <= int64(l.rate)
}
