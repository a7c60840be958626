package http

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"mapstats/internal/shared/svcerrors"
)

const rateLimitErrorCode = "HTTP_4290"

// rateLimiter enforces a per-IP sliding window: at most maxRequests within
// the trailing window. Request timestamps are kept per IP and pruned both on
// access and by a background sweep so idle IPs do not accumulate.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time

	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	if maxRequests <= 0 {
		maxRequests = 60
	}
	if window <= 0 {
		window = 15 * time.Second
	}
	return &rateLimiter{
		clients:     make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow records an attempt for ip and reports whether it is within the
// window budget, along with the remaining budget and when the window resets.
func (l *rateLimiter) Allow(ip string) (allowed bool, remaining int, reset time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	times := l.clients[ip]
	pruned := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			pruned = append(pruned, t)
		}
	}

	if len(pruned) >= l.maxRequests {
		l.clients[ip] = pruned
		return false, 0, pruned[0].Add(l.window)
	}

	pruned = append(pruned, now)
	l.clients[ip] = pruned
	return true, l.maxRequests - len(pruned), pruned[0].Add(l.window)
}

// sweep drops IPs whose every recorded request has aged out.
func (l *rateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for ip, times := range l.clients {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// startSweeper runs the idle-IP sweep until stopCh closes.
func (l *rateLimiter) startSweeper(stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(l.window)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

// mwRateLimit rejects over-budget requests with 429 and always reports the
// budget via X-RateLimit headers.
func mwRateLimit(limiter *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset := limiter.Allow(clientIP(r))

			w.Header().Set(headerRateLimitLimit, fmt.Sprintf("%d", limiter.maxRequests))
			w.Header().Set(headerRateLimitRemaining, fmt.Sprintf("%d", remaining))
			w.Header().Set(headerRateLimitReset, fmt.Sprintf("%d", reset.Unix()))

			if !allowed {
				retryAfter := int(time.Until(reset).Seconds()) + 1
				w.Header().Set(headerRetryAfter, fmt.Sprintf("%d", retryAfter))
				metricRateLimitedTotal.Inc()

				writeErrorResponse(w, r, svcerrors.NewRateLimitedError(rateLimitErrorCode, "too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
