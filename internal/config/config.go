package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds bot transport settings.
type TelegramConfig struct {
	Token    string  `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminIDs []int64 `yaml:"admin_ids" envconfig:"ADMIN_CHAT_IDS"`
	RunMode  string  `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// ProxyURL routes outbound Telegram API calls through the given proxy.
	ProxyURL string `yaml:"proxy_url" envconfig:"PROXY_URL"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// ChannelConfig identifies the society channel users must join.
type ChannelConfig struct {
	ID       int64  `yaml:"id" envconfig:"CHANNEL_ID"`
	URL      string `yaml:"url" envconfig:"CHANNEL_URL"`
	Username string `yaml:"username" envconfig:"CHANNEL_USERNAME"`
}

// SocietyConfig carries display/contact details rendered in messages.
type SocietyConfig struct {
	Name         string `yaml:"name" envconfig:"SOCIETY_NAME"`
	University   string `yaml:"university" envconfig:"UNIVERSITY"`
	ContactEmail string `yaml:"contact_email" envconfig:"CONTACT_EMAIL"`
	ContactPhone string `yaml:"contact_phone" envconfig:"CONTACT_PHONE"`
}

// LimitsConfig bounds abuse-prone operations.
type LimitsConfig struct {
	// MessagesPerDay caps contact messages a user may send per calendar day.
	MessagesPerDay int `yaml:"messages_per_day" envconfig:"MAX_MESSAGES_PER_DAY"`
	// MembershipChecks caps membership lookups per user per window.
	MembershipChecks        int `yaml:"membership_checks" envconfig:"MEMBERSHIP_CHECKS"`
	MembershipWindowMinutes int `yaml:"membership_window_minutes" envconfig:"MEMBERSHIP_WINDOW_MINUTES"`
	// SessionTTLMinutes expires abandoned conversations; 0 disables expiry.
	SessionTTLMinutes int `yaml:"session_ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
	// StrictNationalID enables the checksum variant of national id validation.
	StrictNationalID bool `yaml:"strict_national_id" envconfig:"STRICT_NATIONAL_ID"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// HealthConfig controls the liveness probe endpoint.
type HealthConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"HEALTH_CHECK_ENABLED"`
	Port    int  `yaml:"port" envconfig:"HEALTH_CHECK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	File        string `yaml:"file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// RateLimitConfig holds settings for per-update rate limiting.
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// Config aggregates everything the bot needs to start.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Channel   ChannelConfig   `yaml:"channel"`
	Society   SocietyConfig   `yaml:"society"`
	Database  DatabaseConfig  `yaml:"database"`
	Limits    LimitsConfig    `yaml:"limits"`
	Health    HealthConfig    `yaml:"health"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required configuration fields and applies defaults.
// A missing required key aborts startup.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if len(cfg.Telegram.AdminIDs) == 0 {
		return fmt.Errorf("telegram.admin_ids is required")
	}
	if cfg.Channel.ID == 0 {
		return fmt.Errorf("channel.id is required")
	}
	if strings.TrimSpace(cfg.Channel.URL) == "" {
		return fmt.Errorf("channel.url is required")
	}
	if strings.TrimSpace(cfg.Channel.Username) == "" {
		return fmt.Errorf("channel.username is required")
	}
	if strings.TrimSpace(cfg.Society.Name) == "" {
		return fmt.Errorf("society.name is required")
	}
	if strings.TrimSpace(cfg.Society.University) == "" {
		return fmt.Errorf("society.university is required")
	}
	if strings.TrimSpace(cfg.Society.ContactEmail) == "" {
		return fmt.Errorf("society.contact_email is required")
	}
	if strings.TrimSpace(cfg.Society.ContactPhone) == "" {
		return fmt.Errorf("society.contact_phone is required")
	}
	if strings.TrimSpace(cfg.Database.Name) == "" {
		return fmt.Errorf("database.name is required")
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 10
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.Limits.MessagesPerDay <= 0 {
		cfg.Limits.MessagesPerDay = 1
	}
	if cfg.Limits.MembershipChecks <= 0 {
		cfg.Limits.MembershipChecks = 5
	}
	if cfg.Limits.MembershipWindowMinutes <= 0 {
		cfg.Limits.MembershipWindowMinutes = 10
	}
	if cfg.Limits.SessionTTLMinutes < 0 {
		return fmt.Errorf("limits.session_ttl_minutes must be >= 0")
	}
	if cfg.Health.Port <= 0 {
		cfg.Health.Port = 10000
	}

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}
