package quiz

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
)

const (
	// generateTimeout bounds quiz generation; LLM backends can be slow.
	generateTimeout = 90 * time.Second

	recordTimeout = 10 * time.Second

	spinnerInterval = 120 * time.Millisecond
)

// suggestedTopicMsg carries the active plan module's topic, used to
// prefill the topic prompt.
type suggestedTopicMsg struct {
	Topic string
}

// quizReadyMsg is sent when quiz generation finishes.
type quizReadyMsg struct {
	Quiz *quizgen.Quiz
	Err  error
}

// recordedMsg is sent when the finished attempt has been persisted.
type recordedMsg struct {
	Mastery   *profile.TopicMastery
	PlanEvent *plan.CompletionResult
	Err       error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time

func spinnerCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// loadSuggestedTopic looks up the learner's active module so the topic
// prompt starts with something sensible. Failures fall back to an
// empty suggestion.
func (q *QuizScreen) loadSuggestedTopic() tea.Cmd {
	plans := q.plans
	userID := q.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		rec, err := plans.Get(ctx, userID)
		if err != nil {
			return suggestedTopicMsg{}
		}
		idx := plan.ActiveIndex(rec.Modules)
		if idx < 0 {
			return suggestedTopicMsg{}
		}
		return suggestedTopicMsg{Topic: rec.Modules[idx].Topic}
	}
}

// generateQuiz builds a quiz for topic at a difficulty matched to the
// learner's current mastery.
func (q *QuizScreen) generateQuiz(topic string) tea.Cmd {
	profiles := q.profiles
	generator := q.generator
	userID := q.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		difficulty := quizgen.DifficultyBeginner
		if mastery, err := profiles.TopicMastery(ctx, userID, topic); err == nil && mastery != nil {
			difficulty = quizgen.DifficultyForScore(mastery.Score)
		}

		generated, err := generator.Generate(ctx, quizgen.GenerateInput{
			Topic:        topic,
			Difficulty:   difficulty,
			NumQuestions: defaultQuestions,
		})
		return quizReadyMsg{Quiz: generated, Err: err}
	}
}

// recordAttempt persists the finished quiz and, when the quiz covered
// the active plan module, applies the score to the ladder.
func (q *QuizScreen) recordAttempt() tea.Cmd {
	profiles := q.profiles
	plans := q.plans
	userID := q.userID
	topic := q.quiz.Topic
	moduleTopic := q.moduleTopic
	result := q.result
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		mastery, err := profiles.RecordQuizAttempt(ctx, userID, topic, result.NumQuestions, result.NumCorrect)
		if err != nil {
			return recordedMsg{Err: err}
		}

		var planEvent *plan.CompletionResult
		if moduleTopic != "" && strings.EqualFold(topic, moduleTopic) {
			planEvent, err = plans.CompleteModule(ctx, userID, result.Percent)
			if err != nil && !errors.Is(err, plan.ErrAllCompleted) && !errors.Is(err, plan.ErrNoPlan) {
				return recordedMsg{Mastery: mastery, Err: err}
			}
		}
		return recordedMsg{Mastery: mastery, PlanEvent: planEvent}
	}
}
