// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type RateLimitConfig struct {
	Limit   redis_rate.Limit
	KeyFunc func(*http.Request) string
	// FailOpen lets a request through when no limiter could decide on it.
	FailOpen bool
}

// RateLimiter counts requests in Redis and falls back to an in-process
// token bucket per key while Redis is unreachable.
type RateLimiter struct {
	buckets *buckets
	config  RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	return &RateLimiter{
		buckets: newBuckets(rdb),
		config:  cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.buckets.serve(w, r, next, rl.config.KeyFunc(r), rl.config.Limit, rl.config.FailOpen)
	})
}

type RoleLimit struct {
	RequestsPerMinute int
	BurstSize         int
}

// RoleRateLimiter limits each authenticated user per endpoint, with the
// budget chosen by the caller's role ID. Roles missing from limits get
// fallbackLimit. It must run after Authenticator.
func RoleRateLimiter(
	rdb *redis.Client,
	limits map[int]RoleLimit,
	fallbackLimit RoleLimit,
) func(http.Handler) http.Handler {
	b := newBuckets(rdb)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID := GetRoleID(r.Context())

			budget, ok := limits[roleID]
			if !ok {
				budget = fallbackLimit
			}

			key := fmt.Sprintf("%s:role:%d:endpoint:%s",
				KeyByUser(r), roleID, normalizeEndpoint(r.URL.Path))

			w.Header().Set("X-RateLimit-Role", strconv.Itoa(roleID))
			b.serve(w, r, next, key,
				PerMinute(budget.RequestsPerMinute, budget.BurstSize), true)
		})
	}
}

func PerMinute(requests, burst int) redis_rate.Limit {
	return redis_rate.Limit{
		Rate:   requests,
		Burst:  burst,
		Period: time.Minute,
	}
}

func KeyByIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return "ratelimit:ip:" + strings.TrimSpace(hops[len(hops)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return "ratelimit:ip:" + xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ratelimit:ip:" + host
}

func KeyByUser(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != 0 {
		return "ratelimit:user:" + strconv.Itoa(userID)
	}
	return KeyByIP(r)
}

// normalizeEndpoint replaces numeric and UUID path segments with {id} so
// /admin/events/3/students and /admin/events/4/students share a budget.
func normalizeEndpoint(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if isID(seg) {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func isID(seg string) bool {
	if len(seg) == 36 && seg[8] == '-' && seg[13] == '-' && seg[18] == '-' && seg[23] == '-' {
		return true
	}
	if seg == "" {
		return false
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// buckets pairs the Redis limiter with the local fallback.
type buckets struct {
	redis *redis_rate.Limiter
	local *localLimiter
}

func newBuckets(rdb *redis.Client) *buckets {
	return &buckets{
		redis: redis_rate.NewLimiter(rdb),
		local: newLocalLimiter(),
	}
}

func (b *buckets) take(
	ctx context.Context,
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	res, err := b.redis.Allow(ctx, key, limit)
	if err == nil {
		return res, nil
	}

	zerolog.Ctx(ctx).Debug().
		Err(err).
		Str("key", key).
		Msg("redis rate limiter unavailable, using local limiter")
	return b.local.allow(key, limit)
}

func (b *buckets) serve(
	w http.ResponseWriter,
	r *http.Request,
	next http.Handler,
	key string,
	limit redis_rate.Limit,
	failOpen bool,
) {
	res, err := b.take(r.Context(), key, limit)
	if err != nil {
		if failOpen {
			zerolog.Ctx(r.Context()).Warn().
				Err(err).
				Str("key", key).
				Msg("rate limiter error, failing open")
			next.ServeHTTP(w, r)
			return
		}
		core.JSON(w, http.StatusServiceUnavailable, core.Envelope{
			Error: &core.ErrorDetail{
				Code:    "RATE_LIMITER_UNAVAILABLE",
				Message: "Service Unavailable",
			},
		})
		return
	}

	setRateLimitHeaders(w, res, limit)

	if res.Allowed == 0 {
		writeRateLimitExceeded(w, res)
		return
	}

	next.ServeHTTP(w, r)
}

func setRateLimitHeaders(
	w http.ResponseWriter,
	res *redis_rate.Result,
	limit redis_rate.Limit,
) {
	h := w.Header()
	resetSecs := int(res.ResetAfter.Seconds())

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf(`%d;w=%d`, limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf(`%d;t=%d`, res.Remaining, resetSecs))
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := max(int(res.RetryAfter.Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSON(w, http.StatusTooManyRequests, core.Envelope{
		Error: &core.ErrorDetail{
			Code:    "RATE_LIMITED",
			Message: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", retryAfter),
		},
	})
}

const idleBucketTTL = 10 * time.Minute

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiter keeps one token bucket per key and drops buckets idle for
// longer than idleBucketTTL on the next sweep.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	lastSweep time.Time
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		buckets:   make(map[string]*localBucket),
		lastSweep: time.Now(),
	}
}

func (l *localLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("local limiter: invalid limit %v", limit)
	}

	perSecond := float64(limit.Rate) / limit.Period.Seconds()
	interval := time.Duration(float64(time.Second) / perSecond)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > idleBucketTTL {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > idleBucketTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rate.Limit(perSecond), limit.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  max(int(b.limiter.TokensAt(now))-1, 0),
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if b.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.Remaining = 0
		res.RetryAfter = interval
	}
	return res, nil
}
