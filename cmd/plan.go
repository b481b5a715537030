package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show your learning plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		plans := plan.NewService(st.PlanRepo())
		rec, err := plans.Get(cmd.Context(), cfg.User)
		if errors.Is(err, plan.ErrNoPlan) {
			fmt.Println("No learning plan yet. Run `mentora` to create one.")
			return nil
		}
		if err != nil {
			return err
		}

		done, total := plan.Progress(rec.Modules)
		fmt.Printf("%s (%s) — %d/%d modules completed\n", rec.Skill, rec.Level, done, total)
		fmt.Println(strings.Repeat("─", 70))

		for i, m := range rec.Modules {
			marker := "·"
			switch m.Status {
			case plan.StatusCompleted:
				marker = "✓"
			case plan.StatusActive:
				marker = "▸"
			}
			line := fmt.Sprintf("%s %d. %s", marker, i+1, m.Name)
			if m.QuizScore > 0 {
				line += fmt.Sprintf("  (best score %.0f%%)", m.QuizScore)
			}
			fmt.Println(line)
			if m.Description != "" {
				fmt.Printf("     %s\n", m.Description)
			}
		}

		if done == total {
			fmt.Println("\nAll modules completed. Start a new skill by resetting your plan in the TUI.")
		} else {
			idx := plan.ActiveIndex(rec.Modules)
			if idx >= 0 {
				fmt.Printf("\nNext quiz topic: %s (score %.0f%%+ to advance)\n",
					rec.Modules[idx].Topic, plan.CompletionThreshold)
			}
		}
		return nil
	},
}
