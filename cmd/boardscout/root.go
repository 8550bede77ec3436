package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/askohli/boardscout/internal/config"
	"github.com/askohli/boardscout/internal/discover"
	"github.com/askohli/boardscout/internal/extract"
	"github.com/askohli/boardscout/internal/ledger"
	"github.com/askohli/boardscout/internal/model"
	"github.com/askohli/boardscout/internal/notifier"
	"github.com/askohli/boardscout/internal/planner"
	"github.com/askohli/boardscout/internal/ratelimit"
	"github.com/askohli/boardscout/internal/search"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "boardscout",
	Short: "Job-board discovery — find Greenhouse postings via web search",
	Long:  "Boardscout searches the web for job postings hosted on the Greenhouse job-board platform, extracts structured records, and appends novel ones to a durable ledger.",
	// Default to `run` so that `boardscout` with no args does a discovery run.
	// This keeps cron entries that invoke the binary directly working.
	RunE: runRun,
	// Errors still print (cron logs must show why a run exited non-zero);
	// only the usage dump is suppressed for runtime failures.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: BOARDSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > BOARDSCOUT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("BOARDSCOUT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (model.Notifier, error) {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger), nil
	case "telegram":
		logger.Info("using telegram notifier")
		return notifier.NewTelegramNotifier(cfg.Notification.TelegramToken, cfg.Notification.TelegramChatID, logger)
	default:
		return notifier.NewLogNotifier(logger), nil
	}
}

// setupLedger opens the configured ledger. The returned closer is nil for
// implementations with nothing to close.
func setupLedger(cfg *config.Config) (model.Ledger, func() error, error) {
	switch cfg.Ledger.Type {
	case "sqlite":
		l, err := ledger.NewSQLiteLedger(cfg.Ledger.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening ledger: %w", err)
		}
		return l, l.Close, nil
	default:
		return ledger.NewCSVLedger(cfg.Ledger.Path), nil, nil
	}
}

func setupBackend(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.SearchBackend {
	var backend model.SearchBackend
	switch cfg.Search.Backend {
	case "serpapi":
		logger.Info("using serpapi backend")
		backend = search.NewSerpAPI(cfg.Search.SerpAPI.APIKey, cfg.Search.SerpAPI.Engine, cfg.Search.SerpAPI.BaseURL, httpClient)
	default:
		backend = search.NewDuckDuckGo(cfg.Search.UserAgent, httpClient)
	}

	// Polite inter-query pacing sits in front of whichever backend is active.
	pacer := ratelimit.NewQueryPacer(cfg.Search.Delay)
	return ratelimit.NewPacedBackend(backend, pacer, cfg.Search.Backend)
}

// buildEngine wires the full discovery pipeline from config.
func buildEngine(cfg *config.Config, led model.Ledger, logger *slog.Logger) (*discover.Engine, error) {
	httpClient := &http.Client{Timeout: cfg.Search.Timeout}
	pageHTTPClient := &http.Client{Timeout: cfg.Search.PageTimeout}

	n, err := setupNotifier(cfg, httpClient, logger)
	if err != nil {
		return nil, err
	}

	backend := setupBackend(cfg, httpClient, logger)
	boards := search.NewBoardClient(cfg.Search.UserAgent, httpClient)
	pages := search.NewPageClient(cfg.Search.UserAgent, pageHTTPClient)

	platform := extract.Platform{
		Host:        cfg.Platform.Host,
		PathMarker:  cfg.Platform.PathMarker,
		DomainToken: cfg.Platform.DomainToken,
	}
	roles := extract.NewRoleMatcher(cfg.Roles)

	var inferPages model.PageFetcher
	if cfg.Search.InferFromPages {
		inferPages = pages
	}
	normalizer := extract.NewNormalizer(platform, roles, inferPages)

	var recency *extract.RecencyCheck
	if cfg.Freshness.Enabled {
		recency = extract.NewRecencyCheck(pages)
	}

	p := planner.New(cfg.Platform.Host, cfg.Roles, cfg.Locations, cfg.Patterns, cfg.Search.PatternLocation)

	return discover.NewEngine(p, backend, boards, normalizer, recency, led, n, cfg.Search.PatternLocation, logger), nil
}
