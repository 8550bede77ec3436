package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a boardscout run.
type Config struct {
	Roles     []string
	Locations []string
	Patterns  []string

	Platform     PlatformConfig
	Search       SearchConfig
	Ledger       LedgerConfig
	Freshness    FreshnessConfig
	Notification NotificationConfig
}

// PlatformConfig identifies the hosted job-board platform being discovered.
// A link counts as a posting only when it carries both the host and the
// path marker.
type PlatformConfig struct {
	Host        string `yaml:"host"`
	PathMarker  string `yaml:"path_marker"`
	DomainToken string `yaml:"domain_token"` // path segment preceding the company slug
}

// SearchConfig controls the search backend and its pacing.
type SearchConfig struct {
	Backend         string        // "duckduckgo" or "serpapi"
	Delay           time.Duration // minimum gap between consecutive queries
	Timeout         time.Duration // per-search HTTP timeout
	PageTimeout     time.Duration // per posting-page probe timeout
	UserAgent       string
	PatternLocation string // location recorded for pattern query hits
	InferFromPages  bool   // fetch posting pages when text alone can't name a role
	SerpAPI         SerpAPIConfig
}

// SerpAPIConfig holds credentials and endpoint overrides for the API backend.
type SerpAPIConfig struct {
	APIKey  string // expanded from env var by Load
	BaseURL string // defaults to the public endpoint
	Engine  string // defaults to "google"
}

// LedgerConfig selects the durable ledger implementation.
type LedgerConfig struct {
	Type string `yaml:"type"` // "csv" or "sqlite"
	Path string `yaml:"path"`
}

// FreshnessConfig controls the optional posting-recency heuristic.
type FreshnessConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type           string // "log", "slack" or "telegram"
	WebhookURL     string // required if type is "slack"
	TelegramToken  string // required if type is "telegram"
	TelegramChatID int64
}

// Default search targets used when the config file leaves them unset.
var (
	DefaultRoles = []string{
		"data scientist",
		"data analyst",
		"machine learning engineer",
		"ai engineer",
	}
	DefaultLocations = []string{
		"Atlanta",
		"New York",
		"San Francisco",
		"Boston",
	}
	DefaultPatterns = []string{
		`site:job-boards.greenhouse.io "data scientist" "posted" "US"`,
		`site:job-boards.greenhouse.io "machine learning" "new" "US"`,
		`site:job-boards.greenhouse.io "data analyst" "hiring" "US"`,
		`site:job-boards.greenhouse.io "ai engineer" "posted" "US"`,
	}
)

const (
	defaultHost        = "job-boards.greenhouse.io"
	defaultPathMarker  = "/jobs/"
	defaultDomainToken = "greenhouse.io"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultLedgerPath  = "latest_links.csv"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Roles     []string `yaml:"roles"`
	Locations []string `yaml:"locations"`
	Patterns  []string `yaml:"patterns"`

	Platform     PlatformConfig        `yaml:"platform"`
	Search       rawSearchConfig       `yaml:"search"`
	Ledger       LedgerConfig          `yaml:"ledger"`
	Freshness    FreshnessConfig       `yaml:"freshness"`
	Notification rawNotificationConfig `yaml:"notification"`
}

type rawSearchConfig struct {
	Backend         string           `yaml:"backend"`
	Delay           string           `yaml:"delay"`
	Timeout         string           `yaml:"timeout"`
	PageTimeout     string           `yaml:"page_timeout"`
	UserAgent       string           `yaml:"user_agent"`
	PatternLocation string           `yaml:"pattern_location"`
	InferFromPages  *bool            `yaml:"infer_from_pages"`
	SerpAPI         rawSerpAPIConfig `yaml:"serpapi"`
}

type rawSerpAPIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Engine  string `yaml:"engine"`
}

type rawNotificationConfig struct {
	Type           string `yaml:"type"`
	WebhookURL     string `yaml:"webhook_url"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID string `yaml:"telegram_chat_id"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	delay := 2 * time.Second // default: polite gap between searches
	if raw.Search.Delay != "" {
		delay, err = time.ParseDuration(raw.Search.Delay)
		if err != nil {
			return nil, fmt.Errorf("parse search.delay %q: %w", raw.Search.Delay, err)
		}
	}

	timeout := 10 * time.Second
	if raw.Search.Timeout != "" {
		timeout, err = time.ParseDuration(raw.Search.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse search.timeout %q: %w", raw.Search.Timeout, err)
		}
	}

	pageTimeout := 8 * time.Second
	if raw.Search.PageTimeout != "" {
		pageTimeout, err = time.ParseDuration(raw.Search.PageTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse search.page_timeout %q: %w", raw.Search.PageTimeout, err)
		}
	}

	inferFromPages := true
	if raw.Search.InferFromPages != nil {
		inferFromPages = *raw.Search.InferFromPages
	}

	var chatID int64
	if raw.Notification.TelegramChatID != "" {
		chatID, err = strconv.ParseInt(raw.Notification.TelegramChatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse notification.telegram_chat_id %q: %w", raw.Notification.TelegramChatID, err)
		}
	}

	cfg := &Config{
		Roles:     raw.Roles,
		Locations: raw.Locations,
		Patterns:  raw.Patterns,
		Platform:  raw.Platform,
		Search: SearchConfig{
			Backend:         raw.Search.Backend,
			Delay:           delay,
			Timeout:         timeout,
			PageTimeout:     pageTimeout,
			UserAgent:       raw.Search.UserAgent,
			PatternLocation: raw.Search.PatternLocation,
			InferFromPages:  inferFromPages,
			SerpAPI: SerpAPIConfig{
				APIKey:  raw.Search.SerpAPI.APIKey,
				BaseURL: raw.Search.SerpAPI.BaseURL,
				Engine:  raw.Search.SerpAPI.Engine,
			},
		},
		Ledger:    raw.Ledger,
		Freshness: raw.Freshness,
		Notification: NotificationConfig{
			Type:           raw.Notification.Type,
			WebhookURL:     raw.Notification.WebhookURL,
			TelegramToken:  raw.Notification.TelegramToken,
			TelegramChatID: chatID,
		},
	}
	applyDefaults(cfg, raw)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills unset fields. A key that is present but empty in the
// YAML (e.g. "patterns: []") stays empty; only absent keys get defaults.
func applyDefaults(cfg *Config, raw rawConfig) {
	if raw.Roles == nil {
		cfg.Roles = DefaultRoles
	}
	if raw.Locations == nil {
		cfg.Locations = DefaultLocations
	}
	if raw.Patterns == nil {
		cfg.Patterns = DefaultPatterns
	}
	if cfg.Platform.Host == "" {
		cfg.Platform.Host = defaultHost
	}
	if cfg.Platform.PathMarker == "" {
		cfg.Platform.PathMarker = defaultPathMarker
	}
	if cfg.Platform.DomainToken == "" {
		cfg.Platform.DomainToken = defaultDomainToken
	}
	if cfg.Search.Backend == "" {
		cfg.Search.Backend = "duckduckgo"
	}
	if cfg.Search.UserAgent == "" {
		cfg.Search.UserAgent = defaultUserAgent
	}
	if cfg.Search.PatternLocation == "" {
		cfg.Search.PatternLocation = "US"
	}
	if cfg.Search.SerpAPI.Engine == "" {
		cfg.Search.SerpAPI.Engine = "google"
	}
	if cfg.Ledger.Type == "" {
		cfg.Ledger.Type = "csv"
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = defaultLedgerPath
	}
	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "log"
	}
}

func validate(cfg *Config) error {
	if (len(cfg.Roles) == 0 || len(cfg.Locations) == 0) && len(cfg.Patterns) == 0 {
		return fmt.Errorf("no queries to plan: need roles and locations, or at least one pattern")
	}

	switch cfg.Search.Backend {
	case "duckduckgo":
	case "serpapi":
		if cfg.Search.SerpAPI.APIKey == "" {
			return fmt.Errorf("search.serpapi.api_key is required when backend is \"serpapi\"")
		}
	default:
		return fmt.Errorf("unknown search.backend %q (want \"duckduckgo\" or \"serpapi\")", cfg.Search.Backend)
	}

	if cfg.Search.Delay < 0 {
		return fmt.Errorf("search.delay must not be negative, got %v", cfg.Search.Delay)
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %v", cfg.Search.Timeout)
	}
	if cfg.Search.PageTimeout <= 0 {
		return fmt.Errorf("search.page_timeout must be positive, got %v", cfg.Search.PageTimeout)
	}

	switch cfg.Ledger.Type {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("unknown ledger.type %q (want \"csv\" or \"sqlite\")", cfg.Ledger.Type)
	}
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must not be empty")
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	case "telegram":
		if cfg.Notification.TelegramToken == "" {
			return fmt.Errorf("notification.telegram_token is required when type is \"telegram\"")
		}
		if cfg.Notification.TelegramChatID == 0 {
			return fmt.Errorf("notification.telegram_chat_id is required when type is \"telegram\"")
		}
	default:
		return fmt.Errorf("unknown notification.type %q (want \"log\", \"slack\" or \"telegram\")", cfg.Notification.Type)
	}

	return nil
}
