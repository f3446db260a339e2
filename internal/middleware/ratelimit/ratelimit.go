// Package ratelimit caps how many requests one client may make per window.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// staleAfter is how long an idle client is remembered.
const staleAfter = 10 * time.Minute

type Config struct {
	Requests int
	Window   time.Duration
}

// DefaultConfig allows 60 requests per minute.
func DefaultConfig() Config {
	return Config{Requests: 60, Window: time.Minute}
}

// Limiter is a fixed-window counter per client key. Idle entries are
// evicted lazily on Allow, so there is no background goroutine to stop.
type Limiter struct {
	mu        sync.Mutex
	cfg       Config
	clients   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	start    time.Time
	requests int
}

func NewLimiter(cfg Config) *Limiter {
	def := DefaultConfig()
	if cfg.Requests <= 0 {
		cfg.Requests = def.Requests
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	return &Limiter{
		cfg:     cfg,
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records a request from key and reports whether it is within limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.cfg.Window {
		l.clients[key] = &window{start: now, requests: 1}
		return true
	}
	w.requests++
	return w.requests <= l.cfg.Requests
}

// ActiveClients returns the number of tracked clients.
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < staleAfter {
		return
	}
	l.lastSweep = now
	for k, w := range l.clients {
		if now.Sub(w.start) > staleAfter {
			delete(l.clients, k)
		}
	}
}

// Middleware rejects requests over the limit with 429. keyFn picks the
// client key, usually its IP.
func (l *Limiter) Middleware(keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	retry := strconv.Itoa(int(l.cfg.Window.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(keyFn(r)) {
				w.Header().Set("Retry-After", retry)
				http.Error(w, "Too many requests. Please slow down.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
