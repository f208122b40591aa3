package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/pitlane/internal/netx"
	"github.com/dmitrijs2005/pitlane/internal/server/metrics"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTTL       = 30 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client address.
type ipLimiter struct {
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	limiters  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

// newIPLimiter returns nil when throttling is disabled.
func newIPLimiter(perSecond float64, burst int) *ipLimiter {
	if perSecond <= 0 || burst <= 0 {
		return nil
	}
	return &ipLimiter{
		rate:     rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

// allow takes one token for key. When the bucket is empty it reports how
// long the client should wait.
func (l *ipLimiter) allow(key string) (bool, time.Duration) {
	now := l.now()
	lim := l.get(now, key)

	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *ipLimiter) get(now time.Time, key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		for k, entry := range l.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// rateLimit throttles login attempts per client IP. channel labels the
// metric ("form" or "api").
func (s *Server) rateLimit(channel string, next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := s.limiter.allow(netx.ClientIP(r))
		if !ok {
			s.metrics.RecordLogin(channel, metrics.OutcomeRateLimited)
			s.log(r.Context()).Warn(r.Context(), "login rate limit exceeded", "remote", netx.ClientIP(r))
			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			if channel == channelAPI {
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			http.Error(w, "Muitas tentativas. Tente novamente em instantes.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
