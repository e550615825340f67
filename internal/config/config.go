package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Preferences PreferencesConfig `toml:"preferences"`
	CORS        CORSConfig        `toml:"cors"`
	Logging     LoggingConfig     `toml:"logging"`
	Market      MarketConfig      `toml:"market"`
	Render      RenderConfig      `toml:"render"`
	Share       ShareConfig       `toml:"share"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `toml:"port"`
	Host string `toml:"host"`
	Addr string `toml:"-"` // Combined host:port for convenience

	// PublicBaseURL prefixes share links, e.g. https://portfolio.example.com
	PublicBaseURL string `toml:"public_base_url"`
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PreferencesConfig points at the key/value file holding user preferences.
type PreferencesConfig struct {
	Path string `toml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file"`
}

// MarketConfig holds settings for the external price providers.
type MarketConfig struct {
	HTTPTimeout    Duration `toml:"http_timeout"`
	CacheTTL       Duration `toml:"cache_ttl"`
	CachePurgeSpec string   `toml:"cache_purge"`
	MaxConcurrency int      `toml:"max_concurrency"`
	SearchBaseURL  string   `toml:"search_base_url"`
	HistoryBaseURL string   `toml:"history_base_url"`
}

// RenderConfig holds report rendering settings.
type RenderConfig struct {
	PDFEnabled bool     `toml:"pdf_enabled"`
	Timeout    Duration `toml:"timeout"`
	Currency   string   `toml:"currency"`
	// ChromePath overrides the browser binary used for PDF output; empty means look it up on PATH.
	ChromePath string   `toml:"chrome_path"`
}

// ShareConfig holds share-link settings.
type ShareConfig struct {
	// SecretKey is a base64 fernet key used to encrypt link passwords.
	SecretKey string `toml:"secret_key"`
}

// Duration lets TOML files carry values such as "10s" or "15m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// NewDefaultConfig returns the configuration used when nothing is overridden.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "5001",
			Host:          "localhost",
			PublicBaseURL: "http://localhost:5001",
		},
		Database: DatabaseConfig{
			Path: "./data/portfolio_share.db",
		},
		Preferences: PreferencesConfig{
			Path: "./data/preferences.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Market: MarketConfig{
			HTTPTimeout:    Duration{10 * time.Second},
			CacheTTL:       Duration{15 * time.Minute},
			CachePurgeSpec: "@every 10m",
			MaxConcurrency: 8,
			SearchBaseURL:  "https://query1.finance.yahoo.com",
			HistoryBaseURL: "https://stooq.com",
		},
		Render: RenderConfig{
			PDFEnabled: true,
			Timeout:    Duration{30 * time.Second},
			Currency:   "INR",
		},
	}
}

// Load reads configuration from the .env file, an optional TOML file named by
// CONFIG_FILE, and environment variables, in that order of precedence (lowest first).
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromFiles(os.Getenv("CONFIG_FILE"))
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Empty paths are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)
	config.Server.PublicBaseURL = strings.TrimRight(config.Server.PublicBaseURL, "/")

	return config, nil
}

func applyEnvOverrides(config *Config) error {
	config.Server.Port = getEnv("SERVER_PORT", config.Server.Port)
	config.Server.Host = getEnv("SERVER_HOST", config.Server.Host)
	config.Server.PublicBaseURL = getEnv("PUBLIC_BASE_URL", config.Server.PublicBaseURL)
	config.Database.Path = getEnv("DB_PATH", config.Database.Path)
	config.Preferences.Path = getEnv("PREFS_PATH", config.Preferences.Path)
	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.FilePath = getEnv("LOG_FILE", config.Logging.FilePath)
	config.Market.CachePurgeSpec = getEnv("MARKET_CACHE_PURGE", config.Market.CachePurgeSpec)
	config.Render.Currency = getEnv("REPORT_CURRENCY", config.Render.Currency)
	config.Render.ChromePath = getEnv("CHROME_PATH", config.Render.ChromePath)
	config.Share.SecretKey = getEnv("SHARE_SECRET_KEY", config.Share.SecretKey)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitList(origins)
	}

	durations := []struct {
		key    string
		target *Duration
	}{
		{"MARKET_HTTP_TIMEOUT", &config.Market.HTTPTimeout},
		{"MARKET_CACHE_TTL", &config.Market.CacheTTL},
		{"RENDER_TIMEOUT", &config.Render.Timeout},
	}
	for _, d := range durations {
		value := os.Getenv(d.key)
		if value == "" {
			continue
		}
		if err := d.target.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("failed to parse %s: %w", d.key, err)
		}
	}

	if value := os.Getenv("MARKET_MAX_CONCURRENCY"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("failed to parse MARKET_MAX_CONCURRENCY: %q is not a positive integer", value)
		}
		config.Market.MaxConcurrency = n
	}

	if value := os.Getenv("RENDER_PDF_ENABLED"); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse RENDER_PDF_ENABLED: %w", err)
		}
		config.Render.PDFEnabled = enabled
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
