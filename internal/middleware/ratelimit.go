package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// defaultIdleTTL is how long a user's bucket may sit unused before it is
// dropped. A dropped bucket is recreated full on the next request.
const defaultIdleTTL = 10 * time.Minute

// UserRateLimiter keeps one token bucket per authenticated user. Buckets idle
// for longer than the idle TTL are swept so the map tracks active users only.
type UserRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*userBucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type userBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimitOption customises a UserRateLimiter.
type RateLimitOption func(*UserRateLimiter)

// WithIdleTTL sets how long an unused bucket is kept. It is never shorter
// than the time a bucket needs to refill completely.
func WithIdleTTL(d time.Duration) RateLimitOption {
	return func(l *UserRateLimiter) { l.idleTTL = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RateLimitOption {
	return func(l *UserRateLimiter) { l.now = now }
}

// NewUserRateLimiter allows perMinute requests per user with the given burst.
// perMinute <= 0 disables limiting.
func NewUserRateLimiter(perMinute, burst int, opts ...RateLimitOption) *UserRateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst < 1 {
		burst = 1
	}
	l := &UserRateLimiter{
		limiters: make(map[string]*userBucket),
		limit:    limit,
		burst:    burst,
		idleTTL:  defaultIdleTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if perMinute > 0 {
		refill := time.Duration(burst) * time.Minute / time.Duration(perMinute)
		if l.idleTTL < refill {
			l.idleTTL = refill
		}
	}
	l.lastSweep = l.now()
	return l
}

// Allow reports whether userID may make another request now.
func (l *UserRateLimiter) Allow(userID string) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweepLocked(now)
	}
	b, ok := l.limiters[userID]
	if !ok {
		b = &userBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.lim.AllowN(now, 1)
}

// Len returns the number of users currently tracked.
func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *UserRateLimiter) sweepLocked(now time.Time) {
	for id, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.limiters, id)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects requests with 429 once the user's bucket is empty.
// It must run after AuthMiddleware.
func RateLimit(l *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.Next()
			return
		}
		if !l.Allow(userID) {
			if l.limit != rate.Inf && l.limit > 0 {
				retry := time.Duration(float64(time.Second) / float64(l.limit))
				c.Header("Retry-After", strconv.Itoa(int(retry.Seconds()+0.5)))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   gin.H{"code": "RATE_LIMITED", "message": "too many requests; try again later"},
			})
			return
		}
		c.Next()
	}
}
