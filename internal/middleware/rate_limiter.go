package middleware

import (
	"net/http"
	"sync"
	"time"

	"screenstock/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window request counters keyed by client IP. One map guards the login
// endpoint, one the rest of the API; both share the same bookkeeping.

type window struct {
	count int
	until time.Time
	mu    sync.Mutex
}

type windowMap struct {
	mu      sync.Mutex
	entries map[string]*window
}

func newWindowMap() *windowMap {
	return &windowMap{entries: make(map[string]*window)}
}

// allow counts one request for ip and reports whether it stays within limit,
// along with the moment the current window resets.
func (m *windowMap) allow(ip string, limit int, d time.Duration) (bool, time.Time) {
	m.mu.Lock()
	w, ok := m.entries[ip]
	if !ok {
		w = &window{}
		m.entries[ip] = w
	}
	m.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.After(w.until) {
		w.count = 0
		w.until = now.Add(d)
	}
	w.count++
	return w.count <= limit, w.until
}

// purge drops expired windows so IPs that never return do not accumulate.
func (m *windowMap) purge(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for ip, w := range m.entries {
		w.mu.Lock()
		if now.After(w.until) {
			delete(m.entries, ip)
			n++
		}
		w.mu.Unlock()
	}
	return n
}

var (
	loginWindows = newWindowMap()
	apiWindows   = newWindowMap()
)

// LoginRateLimiter caps login attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginWindows.allow(c.ClientIP(), 20, time.Minute); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, retry in a minute"))
			return
		}
		c.Next()
	}
}

// RateLimiter caps requests at limit per windowLen per IP across the API.
func RateLimiter(limit int, windowLen time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, until := apiWindows.allow(c.ClientIP(), limit, windowLen)
		if !ok {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests, retry shortly"))
			return
		}
		c.Next()
	}
}

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if purged := loginWindows.purge(now) + apiWindows.purge(now); purged > 0 {
				log.Debug().Int("entries", purged).Msg("rate limiter windows purged")
			}
		}
	}()
}
