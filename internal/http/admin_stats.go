package http

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/mileusna/useragent"
)

// clientStats is the tracked footprint of one caller IP.
type clientStats struct {
	IP        string    `json:"ip"`
	Requests  int       `json:"requests"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	LastPath  string    `json:"lastPath"`
	Client    string    `json:"client"` // normalized browser/bot name
}

// requestTracker keeps per-IP request statistics for the admin endpoint.
// User agents are normalized to a short client name so the stats stay
// readable; raw UA strings are never stored.
type requestTracker struct {
	mu      sync.Mutex
	clients map[string]*clientStats
	now     func() time.Time
}

func newRequestTracker() *requestTracker {
	return &requestTracker{
		clients: make(map[string]*clientStats),
		now:     time.Now,
	}
}

func (t *requestTracker) Track(ip, path, rawUserAgent string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	stats, ok := t.clients[ip]
	if !ok {
		stats = &clientStats{IP: ip, FirstSeen: now}
		t.clients[ip] = stats
	}
	stats.Requests++
	stats.LastSeen = now
	stats.LastPath = path
	stats.Client = normalizeClient(rawUserAgent)
}

// Snapshot returns tracked clients ordered by request count, busiest first.
func (t *requestTracker) Snapshot() []clientStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]clientStats, 0, len(t.clients))
	for _, stats := range t.clients {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requests != out[j].Requests {
			return out[i].Requests > out[j].Requests
		}
		return out[i].IP < out[j].IP
	})
	return out
}

func normalizeClient(rawUserAgent string) string {
	if rawUserAgent == "" {
		return "unknown"
	}
	ua := useragent.Parse(rawUserAgent)
	switch {
	case ua.Bot:
		if ua.Name != "" {
			return ua.Name + " (bot)"
		}
		return "bot"
	case ua.Name != "":
		return ua.Name
	default:
		return "unknown"
	}
}

// mwTrackRequests records every API request in the tracker.
func mwTrackRequests(tracker *requestTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker.Track(clientIP(r), r.URL.Path, userAgent(r))
			next.ServeHTTP(w, r)
		})
	}
}

// mwAdminOnly hides admin routes from non-allowlisted IPs. The reply is a
// plain 404, indistinguishable from a route that does not exist.
func mwAdminOnly(allowedIPs []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedIPs))
	for _, ip := range allowedIPs {
		allowed[ip] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[clientIP(r)]; !ok {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type adminStatsHandler struct {
	tracker *requestTracker
}

func NewAdminStatsHandler(tracker *requestTracker) AppHttpHandler {
	return &adminStatsHandler{tracker: tracker}
}

// Handle processes GET /api/admin/requests.
func (h *adminStatsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snapshot := h.tracker.Snapshot()
	return writeJSON(w, http.StatusOK, map[string]any{
		"clients": snapshot,
		"total":   len(snapshot),
	})
}
