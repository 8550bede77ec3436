package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/askohli/boardscout/internal/model"
	"github.com/askohli/boardscout/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse the ledger interactively (TUI)",
	Long:  "Shows the role picker TUI, then launches the split-pane ledger browser.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
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

	records, err := led.Records()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("Ledger is empty — run a discovery pass first.")
		return nil
	}

	choices := roleChoices(records)
	for {
		choice, err := review.RunRolePicker(choices)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if choice < 0 {
			return nil
		}

		role := choices[choice].Role
		wantQuit, err := review.RunReviewTUI(role, filterByRole(records, role))
		if err != nil {
			return fmt.Errorf("review TUI: %w", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}

// roleChoices builds the picker entries: "all roles" first, then each role
// present in the ledger with its record count, alphabetically.
func roleChoices(records []model.JobRecord) []review.RoleChoice {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.RoleMatched]++
	}

	roles := make([]string, 0, len(counts))
	for role := range counts {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	choices := []review.RoleChoice{{Role: "", Count: len(records)}}
	for _, role := range roles {
		choices = append(choices, review.RoleChoice{Role: role, Count: counts[role]})
	}
	return choices
}

func filterByRole(records []model.JobRecord, role string) []model.JobRecord {
	if role == "" {
		return append([]model.JobRecord(nil), records...)
	}
	var out []model.JobRecord
	for _, rec := range records {
		if rec.RoleMatched == role {
			out = append(out, rec)
		}
	}
	return out
}
