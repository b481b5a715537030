package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentora/mentora/internal/config"
	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quiz"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in the terminal (no TUI)",
	Long: `Generate a quiz for a topic and answer it interactively.

The result is recorded like a TUI quiz: topic mastery moves with the
score, and a passing score on the active plan module advances the plan.
With --json the quiz is printed as JSON instead, nothing is recorded.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("topic", "", "Quiz topic (required)")
	quizCmd.Flags().String("difficulty", "", "beginner, intermediate, or expert (default: from your mastery)")
	quizCmd.Flags().IntP("questions", "n", 5, "Number of questions")
	quizCmd.Flags().Bool("offline", false, "Use the built-in question bank instead of the LLM")
	quizCmd.Flags().Bool("json", false, "Print the quiz as JSON and exit")
	_ = quizCmd.MarkFlagRequired("topic")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	difficultyVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("questions")
	offline, _ := cmd.Flags().GetBool("offline")
	asJSON, _ := cmd.Flags().GetBool("json")

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

	gen, err := buildGenerator(ctx, cfg, st, offline)
	if err != nil {
		return err
	}

	difficulty, err := resolveDifficulty(ctx, profiles, cfg.User, topic, difficultyVal)
	if err != nil {
		return err
	}

	q, err := gen.Generate(ctx, quizgen.GenerateInput{
		Topic:        topic,
		Difficulty:   difficulty,
		NumQuestions: count,
	})
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}

	answers := askQuestions(q)

	result, err := quiz.Evaluate(q, answers)
	if err != nil {
		return fmt.Errorf("evaluate answers: %w", err)
	}

	fmt.Printf("── Result: %d/%d correct (%.0f%%) ──\n", result.NumCorrect, result.NumQuestions, result.Percent)
	fmt.Println(result.Feedback)

	mastery, err := profiles.RecordQuizAttempt(ctx, cfg.User, q.Topic, result.NumQuestions, result.NumCorrect)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	fmt.Printf("\nMastery for %q: %.0f%% after %d attempts\n", mastery.Topic, mastery.Score*100, mastery.Attempts)

	reportPlanProgress(ctx, plans, cfg.User, q.Topic, result.Percent)
	return nil
}

// buildGenerator picks the LLM generator, falling back to the offline
// bank when requested or when no provider is configured.
func buildGenerator(ctx context.Context, cfg *config.Config, st *store.Store, offline bool) (quizgen.Generator, error) {
	if !offline {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
		if err == nil {
			return quizgen.New(provider, quizgen.DefaultConfig()), nil
		}
		fmt.Fprintln(os.Stderr, "LLM provider not configured, using the offline question bank:", err)
	}

	static, err := quizgen.NewStatic()
	if err != nil {
		return nil, fmt.Errorf("load offline question bank: %w", err)
	}
	return static, nil
}

// resolveDifficulty parses the flag value, or derives the difficulty
// from the learner's current mastery when the flag is empty.
func resolveDifficulty(ctx context.Context, profiles *profile.Service, userID, topic, val string) (quizgen.Difficulty, error) {
	switch strings.ToLower(val) {
	case "":
	case string(quizgen.DifficultyBeginner):
		return quizgen.DifficultyBeginner, nil
	case string(quizgen.DifficultyIntermediate):
		return quizgen.DifficultyIntermediate, nil
	case string(quizgen.DifficultyExpert):
		return quizgen.DifficultyExpert, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q: must be beginner, intermediate, or expert", val)
	}

	mastery, err := profiles.TopicMastery(ctx, userID, topic)
	if err != nil {
		return quizgen.DifficultyBeginner, nil
	}
	return quizgen.DifficultyForScore(mastery.Score), nil
}

// askQuestions walks the quiz on stdin and returns the chosen option
// index per question, -1 for skipped ones.
func askQuestions(q *quizgen.Quiz) []int {
	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]int, len(q.Questions))

	fmt.Printf("Topic: %s (%s), %d questions\n\n", q.Topic, q.Difficulty, len(q.Questions))

	for i, question := range q.Questions {
		answers[i] = -1

		fmt.Printf("── Question %d/%d ──\n", i+1, len(q.Questions))
		fmt.Println(question.Prompt)
		for j, opt := range question.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer (1-4, empty to skip): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}

		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(question.Options) {
			fmt.Println("(not a valid option, counted as skipped)")
			fmt.Println()
			continue
		}
		answers[i] = choice - 1

		if answers[i] == question.Answer {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", question.Options[question.Answer])
		}
		if question.Explanation != "" {
			fmt.Printf("Explanation: %s\n", question.Explanation)
		}
		fmt.Println()
	}

	return answers
}

// reportPlanProgress applies the score to the active plan module when
// the quiz topic matches it. Off-plan topics are left alone.
func reportPlanProgress(ctx context.Context, plans *plan.Service, userID, topic string, percent float64) {
	rec, err := plans.Get(ctx, userID)
	if err != nil {
		return
	}
	idx := plan.ActiveIndex(rec.Modules)
	if idx < 0 || !strings.EqualFold(rec.Modules[idx].Topic, topic) {
		return
	}

	result, err := plans.CompleteModule(ctx, userID, percent)
	if err != nil {
		return
	}
	switch {
	case result.PlanDone:
		fmt.Printf("Module %q completed. Your plan is finished!\n", result.ModuleName)
	case result.Completed:
		fmt.Printf("Module %q completed. Next up: %s\n", result.ModuleName, result.Unlocked)
	default:
		fmt.Printf("Score %.0f%% on module %q (need %.0f%% to advance)\n",
			percent, result.ModuleName, plan.CompletionThreshold)
	}
}
