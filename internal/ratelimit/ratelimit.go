// Package ratelimit throttles abuse-prone routes such as login and registration.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"golang.org/x/time/rate"
)

// Result mirrors the parts of a limiter decision the HTTP layer cares about.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisAllower is satisfied by *redis_rate.Limiter.
type RedisAllower interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RedisLimiter shares its budget across every server instance pointed at the same redis.
type RedisLimiter struct {
	allower   RedisAllower
	perMinute int
	prefix    string
}

func NewRedisLimiter(client *redis.Client, prefix string, perMinute int) *RedisLimiter {
	return NewRedisLimiterWith(redis_rate.NewLimiter(client), prefix, perMinute)
}

func NewRedisLimiterWith(allower RedisAllower, prefix string, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		allower:   allower,
		perMinute: perMinute,
		prefix:    prefix,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	res, err := l.allower.Allow(ctx, l.prefix+":"+key, redis_rate.PerMinute(l.perMinute))
	if err != nil {
		return Result{}, err
	}
	return Result{Allowed: res.Allowed > 0, RetryAfter: res.RetryAfter}, nil
}

// LocalLimiter keeps one token bucket per key in process memory.
// A bucket idle for a full minute has refilled completely, so it is dropped and recreated on demand.
type LocalLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(perMinute int) *LocalLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &LocalLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: perMinute,
		idleTTL:   time.Minute,
		now:       time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	l.sweep(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return Result{}, nil
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return Result{Allowed: true}, nil
	}
	r.CancelAt(now)
	return Result{Allowed: false, RetryAfter: delay}, nil
}

// Len reports how many buckets are held.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per idleTTL. Callers hold l.mu.
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
}
