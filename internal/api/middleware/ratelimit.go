package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const defaultBurst = 5

// RateLimiter ограничивает частоту запросов с одного адреса
type RateLimiter struct {
	limiters sync.Map // ip -> *rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimiter создает ограничитель rps запросов в секунду с запасом burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst}
}

// Handler middleware ограничения частоты
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			handlers.RespondTooManyRequests(w, "слишком много запросов")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return v.(*rate.Limiter)
}

// clientIP первый адрес из X-Forwarded-For, иначе адрес соединения
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
