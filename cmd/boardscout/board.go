package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board <url>",
	Short: "Scrape one board page directly",
	Long:  "Direct-scrape mode: fetches a single board page, treats its hyperlinks as candidates, and appends novel postings to the ledger. No search backend involved.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	boardURL := args[0]

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	led, closeLedger, err := setupLedger(cfg)
	if err != nil {
		return err
	}
	if closeLedger != nil {
		defer closeLedger()
	}

	engine, err := buildEngine(cfg, led, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := engine.RunBoard(ctx, boardURL)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}
