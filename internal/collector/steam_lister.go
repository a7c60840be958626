package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mapstats/internal/shared/loggers"
)

const (
	steamServerListURL = "https://api.steampowered.com/IGameServersService/GetServerList/v1/"
	steamListLimit     = 20000
)

// steamRegions are the master-server region codes queried one by one. The
// list endpoint caps results per request, so partitioning by region is what
// keeps any single response under the cap.
var steamRegions = []int{0, 1, 2, 3, 4, 5, 6, 7, 255}

// gameAppIDs maps the short game names accepted in configuration to their
// Steam application IDs and server gamedir filters.
var gameAppIDs = map[string]struct {
	AppID   int
	GameDir string
}{
	"tf":         {440, "tf"},
	"cstrike":    {240, "cstrike"},
	"csgo":       {730, "csgo"},
	"dod":        {300, "dod"},
	"hl2mp":      {320, "hl2mp"},
	"garrysmod":  {4000, "garrysmod"},
	"left4dead2": {550, "left4dead2"},
}

// ServerAddress identifies one discovered game server.
type ServerAddress struct {
	ID   string // "ip:port"
	Name string // advertised name from the master list, may be empty
}

// ServerLister discovers the set of servers to probe in a scan cycle.
//
//go:generate mockgen -source=steam_lister.go -destination=./mocks/server_lister_mock.go -package=mocks
type ServerLister interface {
	List(ctx context.Context) ([]ServerAddress, error)
}

type steamLister struct {
	httpClient *http.Client
	apiKey     string
	appID      int
	gameDir    string
}

// NewSteamLister builds a lister against the Steam master server list for the
// given short game name. Returns an error for an unknown game.
func NewSteamLister(game string, apiKey string, timeout time.Duration) (ServerLister, error) {
	ids, ok := gameAppIDs[strings.ToLower(strings.TrimSpace(game))]
	if !ok {
		return nil, fmt.Errorf("unknown game %q", game)
	}
	return &steamLister{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		appID:      ids.AppID,
		gameDir:    ids.GameDir,
	}, nil
}

type steamListResponse struct {
	Response struct {
		Servers []struct {
			Addr string `json:"addr"`
			Name string `json:"name"`
		} `json:"servers"`
	} `json:"response"`
}

// List fetches every region partition and merges the results, deduplicating
// by address. Servers on non-public addresses are dropped: the master list
// occasionally advertises LAN addresses that would make the prober hammer
// the local network.
func (l *steamLister) List(ctx context.Context) ([]ServerAddress, error) {
	logger := loggers.Ctx(ctx)

	seen := make(map[string]struct{})
	var servers []ServerAddress
	for _, region := range steamRegions {
		regionServers, err := l.listRegion(ctx, region)
		if err != nil {
			return nil, fmt.Errorf("failed to list region %d: %w", region, err)
		}
		for _, server := range regionServers {
			if _, ok := seen[server.ID]; ok {
				continue
			}
			seen[server.ID] = struct{}{}
			servers = append(servers, server)
		}
	}

	logger.Debug().Int("servers", len(servers)).Msg("fetched master server list")
	return servers, nil
}

func (l *steamLister) listRegion(ctx context.Context, region int) ([]ServerAddress, error) {
	filter := fmt.Sprintf(`\appid\%d\gamedir\%s\region\%d`, l.appID, l.gameDir, region)

	query := url.Values{}
	query.Set("key", l.apiKey)
	query.Set("filter", filter)
	query.Set("limit", fmt.Sprintf("%d", steamListLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, steamServerListURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("master list returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed steamListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode master list response: %w", err)
	}

	servers := make([]ServerAddress, 0, len(parsed.Response.Servers))
	for _, server := range parsed.Response.Servers {
		addr := strings.TrimSpace(server.Addr)
		if !isPublicAddress(addr) {
			continue
		}
		servers = append(servers, ServerAddress{ID: addr, Name: server.Name})
	}
	return servers, nil
}

// isPublicAddress reports whether addr is a routable "ip:port" endpoint.
func isPublicAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "0" || port == "" {
		return false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() || ip.IsMulticast() {
		return false
	}
	return true
}
