package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lootledger/engine/internal/logger"
)

var securityHeaders = map[string]string{
	HeaderContentType:    "nosniff",
	HeaderFrameOptions:   "SAMEORIGIN",
	HeaderXSSProtection:  "1; mode=block",
	HeaderReferrerPolicy: "strict-origin-when-cross-origin",
}

// SecurityHeadersMiddleware sets standard hardening headers on every response.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for name, value := range securityHeaders {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware validates the X-API-Key header on every request outside
// PublicPaths. Comparison is constant time.
func AuthMiddleware(apiKey string, trustedProxies []string, monitor *AbuseMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				monitor.RecordAuthFailure(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ThrottleMiddleware records per-IP request volume and rejects clients that
// run past the window budget.
func ThrottleMiddleware(trustedProxies []string, monitor *AbuseMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)
			if !monitor.Allow(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AbuseMonitor keeps windowed per-IP counters for failed auth attempts and
// overall request volume. Counters reset together every monitorWindow.
type AbuseMonitor struct {
	mu          sync.Mutex
	authFails   map[string]int
	requests    map[string]int
	windowStart time.Time
}

const monitorWindow = 5 * time.Minute

func NewAbuseMonitor() *AbuseMonitor {
	return &AbuseMonitor{
		authFails:   make(map[string]int),
		requests:    make(map[string]int),
		windowStart: time.Now(),
	}
}

// RecordAuthFailure counts a failed authentication and logs an alert once
// the per-IP threshold is reached.
func (m *AbuseMonitor) RecordAuthFailure(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.authFails[ip]++

	if m.authFails[ip] >= authFailureAlertThreshold {
		logger.Warn(AlertMsgRepeatedAuthFailures,
			"ip", ip,
			"count", m.authFails[ip])
	}
}

// Allow counts a request and reports whether the client is still inside its
// window budget.
func (m *AbuseMonitor) Allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.requests[ip]++

	if m.requests[ip] > requestBudgetPerWindow {
		// Log every floodLogInterval-th rejection to avoid log spam.
		if m.requests[ip]%floodLogInterval == 0 {
			logger.Warn(AlertMsgRequestFlood,
				"ip", ip,
				"count_in_window", m.requests[ip])
		}
		return false
	}
	return true
}

// rollWindow discards counters once the window has elapsed. Caller holds mu.
func (m *AbuseMonitor) rollWindow() {
	if time.Since(m.windowStart) > monitorWindow {
		m.requests = make(map[string]int)
		m.authFails = make(map[string]int)
		m.windowStart = time.Now()
	}
}

// clientIP resolves the caller's address. X-Forwarded-For is honored only
// when the direct peer is a trusted proxy, and then the rightmost entry is
// used since that is the hop the proxy actually saw.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}

	if trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}

	return remoteIP
}
