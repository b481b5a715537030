package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/mcp"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/resources"
	"github.com/mentora/mentora/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Expose the learner tools over the Model Context Protocol.

External agents connected to this server can read mastery profiles,
generate quizzes, record results, and search resources against the
same store the interactive app uses. The protocol runs on stdin and
stdout, so diagnostics go to stderr only.`,
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

		gen, err := buildGenerator(cmd.Context(), cfg, st, false)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(mcp.Config{
			Profiles: profile.NewService(st.ProfileRepo()),
			Quizzes:  gen,
			Search:   resources.NewDefaultChain(cfg.TavilyAPIKey),
			Version:  version,
		})

		fmt.Fprintln(os.Stderr, "mentora MCP server listening on stdio")
		return srv.ServeStdio(cmd.Context())
	},
}
