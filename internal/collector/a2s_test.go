package collector

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infoReply(name, mapName, folder, game string, players, maxPlayers, bots byte) []byte {
	reply := []byte{0xFF, 0xFF, 0xFF, 0xFF, a2sHeaderInfo, 0x11} // header + protocol
	for _, s := range []string{name, mapName, folder, game} {
		reply = append(reply, []byte(s)...)
		reply = append(reply, 0x00)
	}
	reply = append(reply, 0xB8, 0x01) // appid 440 little-endian
	reply = append(reply, players, maxPlayers, bots)
	return reply
}

func TestParseInfoReply_Success(t *testing.T) {
	t.Parallel()

	reply := infoReply("Best Server EU", "ctf_2fort", "tf", "Team Fortress", 18, 24, 4)

	info, err := parseInfoReply(reply)
	require.NoError(t, err)

	assert.Equal(t, "Best Server EU", info.Name)
	assert.Equal(t, "ctf_2fort", info.MapName)
	assert.Equal(t, 18, info.Players)
	assert.Equal(t, 4, info.Bots)
}

func TestParseInfoReply_UnexpectedHeader(t *testing.T) {
	t.Parallel()

	reply := infoReply("srv", "map", "tf", "game", 1, 2, 0)
	reply[4] = 0x42

	_, err := parseInfoReply(reply)
	assert.Error(t, err)
}

func TestParseInfoReply_TruncatedPayload(t *testing.T) {
	t.Parallel()

	reply := infoReply("srv", "map", "tf", "game", 1, 2, 0)

	_, err := parseInfoReply(reply[:10])
	assert.ErrorIs(t, err, errShortReply)
}

func TestSanitizeText_StripsControlCharacters(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "clean name", sanitizeText("clean\x00 \x1bname\x7f", 64))
	assert.Equal(t, "trimmed", sanitizeText("  trimmed  ", 64))
	assert.Equal(t, "ab", sanitizeText("abcdef", 2))
	assert.Empty(t, sanitizeText("\x00\x01\x02", 64))
}

func TestSanitizeText_CapsOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// "日" is 3 bytes; a 4-byte cap must not split the second rune.
	out := sanitizeText("日日", 4)
	assert.Equal(t, "日", out)
	assert.True(t, utf8.ValidString(out))

	// Exact boundary keeps both runes.
	assert.Equal(t, "日日", sanitizeText("日日", 6))

	out = sanitizeText("Zürich server", 2)
	assert.Equal(t, "Z", out)
	assert.True(t, utf8.ValidString(out))
}

func TestIsPublicAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want bool
	}{
		{"203.0.113.7:27015", true},
		{"192.168.1.1:27015", false},
		{"10.0.0.1:27015", false},
		{"127.0.0.1:27015", false},
		{"0.0.0.0:27015", false},
		{"203.0.113.7:0", false},
		{"203.0.113.7", false},
		{"not-an-ip:27015", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isPublicAddress(tt.addr), tt.addr)
	}
}
