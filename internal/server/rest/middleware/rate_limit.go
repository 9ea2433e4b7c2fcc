package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter is a per-client token bucket refilled at perMinute and
// allowing bursts of the same size.
type RateLimiter struct {
	perMinute int
	now       func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		now:       time.Now,
		clients:   make(map[string]*client),
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.clients[key]
	if !ok {
		every := rate.Every(time.Minute / time.Duration(rl.perMinute))
		cl = &client{limiter: rate.NewLimiter(every, rl.perMinute)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Middleware keys clients by IP. A zero or negative limit disables it.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.perMinute <= 0 {
			c.Next()
			return
		}

		lim := rl.limiter(c.ClientIP())
		now := rl.now()
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))

		if !lim.AllowN(now, 1) {
			wait := lim.ReserveN(now, 1)
			retry := int(math.Ceil(wait.DelayFrom(now).Seconds()))
			wait.CancelAt(now)
			c.Header("Retry-After", strconv.Itoa(retry))
			respond.Abort(c, http.StatusTooManyRequests, "too many requests")
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(lim.TokensAt(now))))
		c.Next()
	}
}
