package grpc

import (
	"context"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterEntryTTL        = 10 * time.Minute
)

// LoginLimiter throttles authentication attempts per key. It uses Redis when
// a client is given and falls back to an in-process token bucket when Redis
// is absent or failing.
type LoginLimiter struct {
	redis *redis_rate.Limiter
	local *localLimiter
	limit redis_rate.Limit
}

// NewLoginLimiter allows perMinute attempts per key with an equal burst.
// rdb may be nil.
func NewLoginLimiter(rdb *redis.Client, perMinute int) *LoginLimiter {
	l := &LoginLimiter{
		local: newLocalLimiter(),
		limit: redis_rate.PerMinute(perMinute),
	}
	if rdb != nil {
		l.redis = redis_rate.NewLimiter(rdb)
	}
	return l
}

// Allow reports whether one more attempt for key fits the budget, and if
// not, how long to wait.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.redis != nil {
		res, err := l.redis.Allow(ctx, "ratelimit:login:"+key, l.limit)
		if err == nil {
			return res.Allowed > 0, res.RetryAfter
		}
	}
	return l.local.allow(key, l.limit)
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{entries: make(map[string]*limiterEntry), now: time.Now}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterCleanupInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastAccess) > limiterEntryTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	perSecond := float64(limit.Rate) / limit.Period.Seconds()
	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(perSecond), limit.Burst)}
		l.entries[key] = e
	}
	e.lastAccess = now

	if e.limiter.AllowN(now, 1) {
		return true, 0
	}
	return false, time.Duration(float64(time.Second) / perSecond)
}
