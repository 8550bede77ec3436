package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askohli/boardscout/internal/discover"
	"github.com/askohli/boardscout/internal/ledger"
)

var (
	dryRun        bool
	roleOverrides []string
	locOverrides  []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one discovery pass",
	Long:  "Plans the search queries, runs them against the configured backend, and appends newly discovered postings to the ledger.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "dedupe against the ledger but do not append")
	runCmd.Flags().StringSliceVar(&roleOverrides, "roles", nil, "override configured target roles for this run")
	runCmd.Flags().StringSliceVar(&locOverrides, "locations", nil, "override configured target locations for this run")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(roleOverrides) > 0 {
		cfg.Roles = roleOverrides
	}
	if len(locOverrides) > 0 {
		cfg.Locations = locOverrides
	}

	logger.Info("config loaded",
		"backend", cfg.Search.Backend,
		"roles", len(cfg.Roles),
		"locations", len(cfg.Locations),
		"patterns", len(cfg.Patterns),
		"ledger", cfg.Ledger.Path,
	)

	led, closeLedger, err := setupLedger(cfg)
	if err != nil {
		return err
	}
	if closeLedger != nil {
		defer closeLedger()
	}
	if dryRun {
		// Dedupe against real history, discard the appends: the preview
		// shows exactly what a real run would add.
		logger.Info("dry-run mode enabled, no records will be appended")
		led = ledger.NewReadOnly(led)
	}

	engine, err := buildEngine(cfg, led, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s discover.Summary) {
	fmt.Printf("\n%d queries issued, %d candidates discovered, %d unique\n", s.Queries, s.Discovered, s.Unique)

	roles := make([]string, 0, len(s.ByRole))
	for role := range s.ByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Printf("  %-35s %d\n", role, s.ByRole[role])
	}

	fmt.Printf("%d new records appended\n", s.New)
}
