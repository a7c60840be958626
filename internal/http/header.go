package http

import (
	"net"
	"net/http"
	"strings"
)

const (
	headerRequestID    = "x-request-id"
	headerForwardedFor = "x-forwarded-for"
	headerUserAgent    = "user-agent"

	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func userAgent(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerUserAgent))
}

// clientIP resolves the caller's address, honoring the first entry of
// X-Forwarded-For when a proxy fronts the service.
func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get(headerForwardedFor)); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
