package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/resources"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for study resources",
	Long: `Search the web for study resources on a topic.

Uses Tavily when TAVILY_API_KEY is set, otherwise DuckDuckGo, and falls
back to a small curated list when neither returns anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		max, _ := cmd.Flags().GetInt("max")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		chain := resources.NewDefaultChain(cfg.TavilyAPIKey)

		results, err := chain.Search(cmd.Context(), query, max)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No resources found.")
			return nil
		}

		for i, r := range results {
			fmt.Printf("%d. %s\n", i+1, r.Title)
			fmt.Printf("   %s\n", r.URL)
			if r.Snippet != "" {
				fmt.Printf("   %s\n", r.Snippet)
			}
			fmt.Printf("   (source: %s)\n", r.Source)
			if i < len(results)-1 {
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("max", "m", 5, "Maximum number of results")
}
