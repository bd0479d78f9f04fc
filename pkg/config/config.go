package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// relay modes for matched posts
const (
	RelayModeCopy    = "copy"    // send the post text as a new message
	RelayModeForward = "forward" // native forward, keeps origin attribution
)

// Config holds the application configuration
type Config struct {
	Telegram struct {
		Token       string        `yaml:"token" json:"token" jsonschema:"required,description=Telegram bot token"`
		APIURL      string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.telegram.org,description=Telegram Bot API base URL"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=API request timeout"`
		PollTimeout time.Duration `yaml:"poll_timeout" json:"poll_timeout" jsonschema:"default=50s,description=getUpdates long-poll timeout"`
		SuperAdmins []string      `yaml:"super_admins" json:"super_admins" jsonschema:"description=Always-authorized handles, immutable at runtime"`
		RelayMode   string        `yaml:"relay_mode" json:"relay_mode" jsonschema:"default=copy,enum=copy,enum=forward,description=How matched posts are delivered"`
	} `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:tg-relay.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Retention struct {
		Days          int           `yaml:"days" json:"days" jsonschema:"default=3,description=Days of audit logs to keep"`
		CheckInterval time.Duration `yaml:"check_interval" json:"check_interval" jsonschema:"default=1m,description=How often the midnight check runs"`
		Timezone      string        `yaml:"timezone" json:"timezone" jsonschema:"default=UTC,description=Timezone for log day boundaries"`
	} `yaml:"retention" json:"retention" jsonschema:"description=Audit log retention configuration"`

	Server struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the HTTP status server"`
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// SUPER_ADMINS env overrides the file list, a JSON array literal.
	// A malformed value degrades to an empty set rather than failing startup.
	if env, ok := os.LookupEnv("SUPER_ADMINS"); ok {
		var admins []string
		if err := json.Unmarshal([]byte(env), &admins); err != nil {
			lgr.Printf("[WARN] malformed SUPER_ADMINS env %q, super-admin set is empty: %v", env, err)
			admins = []string{}
		}
		cfg.Telegram.SuperAdmins = admins
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// telegram defaults, token has no default on purpose
	if cfg.Telegram.APIURL == "" {
		cfg.Telegram.APIURL = "https://api.telegram.org"
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 30 * time.Second
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 50 * time.Second
	}
	if cfg.Telegram.RelayMode == "" {
		cfg.Telegram.RelayMode = RelayModeCopy
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:tg-relay.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for retention
	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = 3
	}
	if cfg.Retention.CheckInterval == 0 {
		cfg.Retention.CheckInterval = time.Minute
	}
	if cfg.Retention.Timezone == "" {
		cfg.Retention.Timezone = "UTC"
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Telegram.RelayMode != RelayModeCopy && cfg.Telegram.RelayMode != RelayModeForward {
		return fmt.Errorf("telegram.relay_mode must be %q or %q", RelayModeCopy, RelayModeForward)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Retention.Days < 1 {
		return fmt.Errorf("retention.days must be at least 1")
	}
	if cfg.Retention.CheckInterval < time.Second {
		return fmt.Errorf("retention.check_interval must be at least 1 second")
	}
	if _, err := time.LoadLocation(cfg.Retention.Timezone); err != nil {
		return fmt.Errorf("retention.timezone %q: %w", cfg.Retention.Timezone, err)
	}
	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	return nil
}

// Location returns the retention timezone, validated at load time
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Retention.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
