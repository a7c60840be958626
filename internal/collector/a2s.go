package collector

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"
)

// ServerInfo is the slice of an A2S_INFO reply the collector cares about.
type ServerInfo struct {
	Name    string
	MapName string
	Players int
	Bots    int
}

// Prober queries a single game server for its live state. The timeout is
// per-attempt; implementations must respect ctx cancellation between
// attempts.
//
//go:generate mockgen -source=a2s.go -destination=./mocks/prober_mock.go -package=mocks
type Prober interface {
	Probe(ctx context.Context, serverID string, timeout time.Duration) (*ServerInfo, error)
}

var errShortReply = errors.New("reply too short")

// a2sInfoRequest is the A2S_INFO query packet. Servers either answer with an
// info reply (0x49) or a challenge (0x41) that must be echoed back appended
// to the same query.
var a2sInfoRequest = []byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0x54,
	'S', 'o', 'u', 'r', 'c', 'e', ' ', 'E', 'n', 'g', 'i', 'n', 'e', ' ', 'Q', 'u', 'e', 'r', 'y', 0x00,
}

const (
	a2sHeaderInfo      = 0x49
	a2sHeaderChallenge = 0x41
)

type udpProber struct{}

func NewUDPProber() Prober {
	return &udpProber{}
}

// Probe sends an A2S_INFO query over UDP and parses the reply. A challenge
// response is answered once; a second challenge counts as a failure.
func (p *udpProber) Probe(ctx context.Context, serverID string, timeout time.Duration) (*ServerInfo, error) {
	conn, err := net.Dial("udp", serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", serverID, err)
	}
	defer conn.Close()

	reply, err := p.exchange(ctx, conn, a2sInfoRequest, timeout)
	if err != nil {
		return nil, err
	}

	if len(reply) >= 9 && reply[4] == a2sHeaderChallenge {
		challenged := make([]byte, 0, len(a2sInfoRequest)+4)
		challenged = append(challenged, a2sInfoRequest...)
		challenged = append(challenged, reply[5:9]...)
		reply, err = p.exchange(ctx, conn, challenged, timeout)
		if err != nil {
			return nil, err
		}
	}

	return parseInfoReply(reply)
}

func (p *udpProber) exchange(ctx context.Context, conn net.Conn, request []byte, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if _, err := conn.Write(request); err != nil {
		return nil, fmt.Errorf("failed to send query: %w", err)
	}

	buf := make([]byte, 1400)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	if n < 5 {
		return nil, errShortReply
	}
	return buf[:n], nil
}

// parseInfoReply walks the A2S_INFO payload layout: protocol byte, four
// null-terminated strings (name, map, folder, game), appid uint16, then the
// player, max-player and bot count bytes.
func parseInfoReply(reply []byte) (*ServerInfo, error) {
	if binary.LittleEndian.Uint32(reply[:4]) != 0xFFFFFFFF || reply[4] != a2sHeaderInfo {
		return nil, fmt.Errorf("unexpected reply header 0x%02x", reply[4])
	}

	payload := reply[5:]
	if len(payload) < 1 {
		return nil, errShortReply
	}
	payload = payload[1:] // protocol version

	name, payload, err := readCString(payload)
	if err != nil {
		return nil, err
	}
	mapName, payload, err := readCString(payload)
	if err != nil {
		return nil, err
	}
	if _, payload, err = readCString(payload); err != nil { // folder
		return nil, err
	}
	if _, payload, err = readCString(payload); err != nil { // game description
		return nil, err
	}

	// appid(2) + players(1) + maxplayers(1) + bots(1)
	if len(payload) < 5 {
		return nil, errShortReply
	}
	players := int(payload[2])
	bots := int(payload[4])

	return &ServerInfo{
		Name:    name,
		MapName: mapName,
		Players: players,
		Bots:    bots,
	}, nil
}

func readCString(buf []byte) (string, []byte, error) {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), buf[i+1:], nil
		}
	}
	return "", nil, errShortReply
}
