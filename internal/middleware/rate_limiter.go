package middleware

import (
	"net/http"
	"sync"
	"time"

	"australprints/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window per-IP rate limiting. Two instances run in the app: a tight
// one on /auth/login and a generous one on the whole API.

type ipWindow struct {
	mu    sync.Mutex
	count int
	until time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	entries map[string]*ipWindow
	limit   int
	window  time.Duration
	msg     string
}

func newIPLimiter(limit int, window time.Duration, msg string) *ipLimiter {
	l := &ipLimiter{
		entries: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
		msg:     msg,
	}
	go l.purgeLoop()
	return l
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		l.mu.Lock()
		w, ok := l.entries[ip]
		if !ok {
			w = &ipWindow{}
			l.entries[ip] = w
		}
		l.mu.Unlock()

		w.mu.Lock()
		now := time.Now()
		if now.After(w.until) {
			w.count = 0
			w.until = now.Add(l.window)
		}
		w.count++
		over := w.count > l.limit
		retryAt := w.until
		w.mu.Unlock()

		if over {
			c.Header("Retry-After", retryAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.msg))
			return
		}
		c.Next()
	}
}

// purgeLoop drops expired windows so IPs that never come back don't
// accumulate forever.
func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		l.mu.Lock()
		for ip, w := range l.entries {
			w.mu.Lock()
			expired := now.After(w.until)
			w.mu.Unlock()
			if expired {
				delete(l.entries, ip)
				purged++
			}
		}
		remaining := len(l.entries)
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("rate limiter entries purged")
		}
	}
}

var loginLimiter = newIPLimiter(20, time.Minute,
	"Demasiados intentos de login. Intente en 1 minuto.")

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler()
}

// RateLimiter limits all API traffic to `limit` requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
	return l.handler()
}
