package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client IP. A non-positive
// rate disables it.
type RateLimitMiddleware struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitMiddleware{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.rps <= 0 {
			return c.Next()
		}
		if !m.allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, "1")
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}

func (m *RateLimitMiddleware) allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now

	for k, other := range m.visitors {
		if now.Sub(other.lastSeen) > limiterIdleTTL {
			delete(m.visitors, k)
		}
	}
	return v.limiter.AllowN(now, 1)
}
