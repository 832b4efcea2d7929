package middleware

import (
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
)

// The public intake surface is open to anyone, so heavy callers are slowed
// down per client IP. Buckets live in a fixed-size LRU: an abusive scan of
// spoofed addresses evicts idle buckets instead of growing memory.

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastFill time.Time
}

type Throttle struct {
	buckets *lru.Cache[string, *bucket]
	rate    float64 // tokens added per second
	burst   float64
	now     func() time.Time
}

// NewThrottle allows `burst` immediate requests per client and refills at
// `perMinute` requests per minute afterwards.
func NewThrottle(perMinute, burst, maxClients int) (*Throttle, error) {
	c, err := lru.New[string, *bucket](maxClients)
	if err != nil {
		return nil, err
	}
	return &Throttle{
		buckets: c,
		rate:    float64(perMinute) / 60.0,
		burst:   float64(burst),
		now:     time.Now,
	}, nil
}

func (t *Throttle) allow(clientID string) bool {
	b, ok := t.buckets.Get(clientID)
	if !ok {
		b = &bucket{tokens: t.burst, lastFill: t.now()}
		// racing adds both start full, losing one is harmless
		t.buckets.Add(clientID, b)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := t.now()
	b.tokens += now.Sub(b.lastFill).Seconds() * t.rate
	if b.tokens > t.burst {
		b.tokens = t.burst
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Middleware rejects over-limit clients with 429.
func (t *Throttle) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !t.allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
