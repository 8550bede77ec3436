package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askohli/boardscout/internal/planner"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Print the planned search queries",
	Long:  "Reads the config and prints the query plan a run would execute, in order.",
	RunE:  runQueries,
}

func init() {
	rootCmd.AddCommand(queriesCmd)
}

func runQueries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	p := planner.New(cfg.Platform.Host, cfg.Roles, cfg.Locations, cfg.Patterns, cfg.Search.PatternLocation)
	queries := p.Plan()

	fmt.Printf("%-3s %-14s %-28s %-15s %s\n", "#", "Kind", "Role", "Location", "Query")
	fmt.Println(strings.Repeat("─", 100))
	for i, q := range queries {
		role := q.Role
		if role == "" {
			role = "-"
		}
		fmt.Printf("%-3d %-14s %-28s %-15s %s\n", i+1, q.Kind, role, q.Location, q.Text)
	}
	fmt.Printf("\nTotal: %d queries (%d cross-product, %d pattern)\n",
		len(queries), len(cfg.Roles)*len(cfg.Locations), len(cfg.Patterns))
	return nil
}
