package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your knowledge profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

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

		ctx := cmd.Context()
		profiles := profile.NewService(st.ProfileRepo())

		if topic != "" {
			m, err := profiles.TopicMastery(ctx, cfg.User, topic)
			if err != nil {
				return err
			}
			fmt.Printf("Topic:     %s\n", m.Topic)
			fmt.Printf("Mastery:   %.0f%%\n", m.Score*100)
			fmt.Printf("Attempts:  %d\n", m.Attempts)
			if !m.UpdatedAt.IsZero() {
				fmt.Printf("Last quiz: %s\n", m.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}

		sum, err := profiles.Summary(ctx, cfg.User)
		if err != nil {
			return err
		}

		fmt.Printf("Learner: %s\n", sum.UserID)
		fmt.Printf("Topics studied: %d, quizzes taken: %d\n", sum.TopicsStudied, sum.TotalQuizzes)
		if sum.Strongest != "" {
			fmt.Printf("Strongest: %s, weakest: %s\n", sum.Strongest, sum.Weakest)
		}

		if len(sum.Topics) == 0 {
			fmt.Println("\nNo quizzes yet. Run `mentora quiz --topic <topic>` to get started.")
			return nil
		}

		fmt.Println()
		fmt.Printf("%-28s  %8s  %8s  %s\n", "Topic", "Mastery", "Quizzes", "Last quiz")
		fmt.Println(strings.Repeat("─", 70))
		for _, m := range sum.Topics {
			name := m.Topic
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			last := ""
			if !m.UpdatedAt.IsZero() {
				last = m.UpdatedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%-28s  %7.0f%%  %8d  %s\n", name, m.Score*100, m.Attempts, last)
		}
		return nil
	},
}

func init() {
	profileCmd.Flags().StringP("topic", "t", "", "Show a single topic's mastery")
}
