package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/agent"
	"github.com/mentora/mentora/internal/app"
	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
	"github.com/mentora/mentora/internal/store"
	"github.com/mentora/mentora/internal/tools"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

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

	profiles := profile.NewService(st.ProfileRepo())
	plans := plan.NewService(st.PlanRepo())

	opts := app.Options{
		Profiles: profiles,
		Plans:    plans,
		UserID:   cfg.User,
		Version:  version,
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quizzes use the offline question bank; the tutor chat is disabled.")

		static, serr := quizgen.NewStatic()
		if serr != nil {
			return fmt.Errorf("load offline question bank: %w", serr)
		}
		opts.Quizzes = static
	} else {
		opts.Quizzes = quizgen.New(provider, quizgen.DefaultConfig())

		searcher := resources.NewDefaultChain(cfg.TavilyAPIKey)
		registry, rerr := tools.NewDefault(profiles, opts.Quizzes, searcher)
		if rerr != nil {
			return fmt.Errorf("build tool registry: %w", rerr)
		}
		opts.Tutor = agent.New(provider, registry, agent.WithEventLog(st.EventRepo()))
	}

	return app.Run(opts)
}
