package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CurrentVersion is the config file schema version.
const CurrentVersion = 1

// Analytics modes
const (
	AnalyticsOff       = "off"
	AnalyticsLog       = "log"
	AnalyticsWebSocket = "websocket"
)

// Config is the whole configuration file.
type Config struct {
	Version   int             `yaml:"version"`
	API       APIConfig       `yaml:"api"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Log       LogConfig       `yaml:"log"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Server    ServerConfig    `yaml:"server"`
}

// APIConfig configures the HTTP client.
type APIConfig struct {
	// BaseURL of the service; empty means discover it over mDNS
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	ReadRetries int           `yaml:"read_retries"`
}

// AnalyticsConfig selects where analytics events go.
type AnalyticsConfig struct {
	Mode string `yaml:"mode"` // off, log or websocket
	// URL of the websocket collector; defaults to <base_url>/events
	URL    string `yaml:"url,omitempty"`
	Buffer int    `yaml:"buffer"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// DiscoveryConfig configures mDNS lookup of the service.
type DiscoveryConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures shoplist-server.
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Advertise bool   `yaml:"advertise"`
	Instance  string `yaml:"instance,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:     "http://localhost:8080",
			Timeout:     10 * time.Second,
			CacheTTL:    5 * time.Second,
			ReadRetries: 2,
		},
		Analytics: AnalyticsConfig{
			Mode:   AnalyticsLog,
			Buffer: 64,
		},
		Discovery: DiscoveryConfig{
			Enabled: true,
			Timeout: 3 * time.Second,
		},
		Server: ServerConfig{
			Port:      8080,
			Advertise: true,
		},
	}
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}

	if c.API.BaseURL != "" {
		if err := validateURL(c.API.BaseURL, "http", "https"); err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
	}
	if c.API.Timeout < 0 || c.API.CacheTTL < 0 {
		return fmt.Errorf("api.timeout and api.cache_ttl must not be negative")
	}
	if c.API.ReadRetries < 0 {
		return fmt.Errorf("api.read_retries must not be negative")
	}

	switch c.Analytics.Mode {
	case AnalyticsOff, AnalyticsLog:
	case AnalyticsWebSocket:
		if c.Analytics.URL != "" {
			if err := validateURL(c.Analytics.URL, "ws", "wss"); err != nil {
				return fmt.Errorf("analytics.url: %w", err)
			}
		}
	default:
		return fmt.Errorf("analytics.mode must be one of off, log, websocket (got %q)", c.Analytics.Mode)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// EventsURL returns the analytics collector URL, derived from baseURL when
// analytics.url is unset.
func (c *Config) EventsURL(baseURL string) string {
	if c.Analytics.URL != "" {
		return c.Analytics.URL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/events"
	return u.String()
}

// Overrides are command-line values layered over the file. Empty and zero
// fields leave the file value alone.
type Overrides struct {
	BaseURL       string
	AnalyticsMode string
	LogLevel      string
	LogFile       string
	Timeout       time.Duration
	NoDiscovery   bool
}

// Apply layers o over c.
func (c *Config) Apply(o Overrides) {
	if o.BaseURL != "" {
		c.API.BaseURL = o.BaseURL
	}
	if o.AnalyticsMode != "" {
		c.Analytics.Mode = o.AnalyticsMode
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
	if o.Timeout > 0 {
		c.API.Timeout = o.Timeout
	}
	if o.NoDiscovery {
		c.Discovery.Enabled = false
	}
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%q must be an absolute %s URL", raw, strings.Join(schemes, "/"))
}
