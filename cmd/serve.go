package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/agent"
	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
	"github.com/mentora/mentora/internal/server"
	"github.com/mentora/mentora/internal/store"
	"github.com/mentora/mentora/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the learning store over HTTP.

Endpoints cover profiles, quiz attempts, quiz generation, tutor chat,
resource search, and plans, plus /healthz and Prometheus /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
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

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		profiles := profile.NewService(st.ProfileRepo())
		searcher := resources.NewDefaultChain(cfg.TavilyAPIKey)

		deps := server.Deps{
			Profiles: profiles,
			Plans:    plan.NewService(st.PlanRepo()),
			Search:   searcher,
			Logger:   logger,
		}

		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
		if err != nil {
			logger.Warn("llm provider not configured, /api/quiz uses the offline bank and /api/chat answers 503", "err", err)
			static, serr := quizgen.NewStatic()
			if serr != nil {
				return fmt.Errorf("load offline question bank: %w", serr)
			}
			deps.Quizzes = static
		} else {
			deps.Quizzes = quizgen.New(provider, quizgen.DefaultConfig())
			registry, rerr := tools.NewDefault(profiles, deps.Quizzes, searcher)
			if rerr != nil {
				return fmt.Errorf("build tool registry: %w", rerr)
			}
			deps.Tutor = agent.New(provider, registry, agent.WithEventLog(st.EventRepo()))
		}

		return server.New(cfg.ListenAddr, deps).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default \":8787\", or MENTORA_LISTEN_ADDR)")
}
