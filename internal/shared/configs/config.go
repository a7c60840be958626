package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Engine      EngineConfig      `mapstructure:"engine" validate:"required"`
	Collector   CollectorConfig   `mapstructure:"collector" validate:"required"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit" validate:"required"`
	Admin       AdminConfig       `mapstructure:"admin"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// EngineConfig holds chart engine configuration.
//
// BucketWidthHours is the sub-day bucket width used to normalize uneven
// sampling frequency. It must evenly divide a day so buckets never straddle
// a day boundary; the oneof set enumerates exactly those widths.
type EngineConfig struct {
	BucketWidthHours int `mapstructure:"bucket_width_hours" validate:"required,oneof=1 2 3 4 6 8 12 24"`
	QueryTimeout     int `mapstructure:"query_timeout" validate:"required,min=1"` // seconds
	CacheTTL         int `mapstructure:"cache_ttl" validate:"required,min=1"`     // seconds
	CacheSize        int `mapstructure:"cache_size" validate:"required,min=1"`    // entries
}

// CollectorConfig holds scan loop configuration.
type CollectorConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Game          string `mapstructure:"game" validate:"required"`
	SteamAPIKey   string `mapstructure:"steam_api_key"`
	Interval      int    `mapstructure:"interval" validate:"required,min=30"`       // seconds between cycles
	ProbeWorkers  int    `mapstructure:"probe_workers" validate:"required,min=1"`   // concurrent server probes
	ProbeTimeout  int    `mapstructure:"probe_timeout" validate:"required,min=1"`   // seconds, initial per-server
	ListerTimeout int    `mapstructure:"lister_timeout" validate:"required,min=1"`  // seconds, master list fetch
	RecentDays    int    `mapstructure:"recent_days" validate:"required,min=1"`     // rescan servers seen this recently
}

// RateLimitConfig holds per-IP rate limiting configuration.
type RateLimitConfig struct {
	MaxRequests int `mapstructure:"max_requests" validate:"required,min=1"`
	Window      int `mapstructure:"window" validate:"required,min=1"` // seconds
}

// AdminConfig holds the admin endpoint IP allowlist. Empty disables the
// admin endpoints entirely.
type AdminConfig struct {
	IPs []string `mapstructure:"ips"`
}
