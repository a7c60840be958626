package configs

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
file_storage:
  root_dir: ./data
engine:
  bucket_width_hours: 2
  query_timeout: 30
  cache_ttl: 300
  cache_size: 128
collector:
  enabled: true
  game: tf
  steam_api_key: key
  interval: 60
  probe_workers: 64
  probe_timeout: 2
  lister_timeout: 30
  recent_days: 3
rate_limit:
  max_requests: 60
  window: 15
admin:
  ips:
    - 127.0.0.1
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./data", cfg.FileStorage.RootDir)
	assert.Equal(t, 2, cfg.Engine.BucketWidthHours)
	assert.Equal(t, 30, cfg.Engine.QueryTimeout)
	assert.True(t, cfg.Collector.Enabled)
	assert.Equal(t, "tf", cfg.Collector.Game)
	assert.Equal(t, 64, cfg.Collector.ProbeWorkers)
	assert.Equal(t, 60, cfg.RateLimit.MaxRequests)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Admin.IPs)
}

func TestLoadConfig_MissingRequiredFields(t *testing.T) {
	invalid := `server:
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
file_storage:
  root_dir: ./data
`
	_, err := LoadConfig(writeTempConfig(t, invalid))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_BucketWidthMustDivideDay(t *testing.T) {
	for _, hours := range []string{"5", "7", "9"} {
		invalid := strings.Replace(validConfig, "bucket_width_hours: 2", "bucket_width_hours: "+hours, 1)
		_, err := LoadConfig(writeTempConfig(t, invalid))
		require.Error(t, err, "bucket_width_hours=%s should be rejected", hours)
		assert.Contains(t, err.Error(), "engine.bucket_width_hours")
	}
}

func TestLoadConfig_CollectorIntervalFloor(t *testing.T) {
	invalid := strings.Replace(validConfig, "interval: 60", "interval: 5", 1)
	_, err := LoadConfig(writeTempConfig(t, invalid))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector.interval")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/configs.yml")
	assert.Error(t, err)
}
