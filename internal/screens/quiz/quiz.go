// Package quiz is the interactive quiz screen: pick a topic, answer a
// generated quiz question by question, and see the mastery and plan
// effects at the end.
package quiz

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	quizeval "github.com/mentora/mentora/internal/quiz"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/router"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/ui/components"
	"github.com/mentora/mentora/internal/ui/layout"
)

// defaultQuestions is the quiz length the screen requests.
const defaultQuestions = 5

type phase int

const (
	phaseTopic phase = iota
	phaseLoading
	phaseQuestion
	phaseFeedback
	phaseResults
	phaseError
)

// QuizScreen drives one quiz from topic selection to recorded results.
type QuizScreen struct {
	profiles  *profile.Service
	plans     *plan.Service
	generator quizgen.Generator
	userID    string

	phase phase
	input components.TextInput

	// moduleTopic is the active plan module's topic; quizzes on it
	// advance the plan.
	moduleTopic string

	quiz        *quizgen.Quiz
	current     int
	answers     []int
	selected    int
	lastCorrect bool

	result    *quizeval.Result
	mastery   *profile.TopicMastery
	planEvent *plan.CompletionResult
	recordErr string

	errMsg      string
	spinnerTick int
	doneButton  bool
	quitConfirm bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscInterceptor = (*QuizScreen)(nil)

// New creates the quiz screen for one learner.
func New(profiles *profile.Service, plans *plan.Service, generator quizgen.Generator, userID string) *QuizScreen {
	return &QuizScreen{
		profiles:  profiles,
		plans:     plans,
		generator: generator,
		userID:    userID,
		input:     components.NewTextInput("e.g. foundations of go", false, 120),
	}
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) Init() tea.Cmd {
	return tea.Batch(q.loadSuggestedTopic(), q.input.Init())
}

// InterceptEsc claims Esc while a quiz is in flight so we can confirm
// before throwing the attempt away.
func (q *QuizScreen) InterceptEsc() bool {
	return q.quitConfirm || q.phase == phaseQuestion || q.phase == phaseFeedback
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestedTopicMsg:
		if msg.Topic != "" {
			q.moduleTopic = msg.Topic
			if strings.TrimSpace(q.input.Value()) == "" {
				q.input.Model.SetValue(msg.Topic)
			}
		}
		return q, nil

	case spinnerTickMsg:
		if q.phase != phaseLoading {
			return q, nil
		}
		q.spinnerTick++
		return q, spinnerCmd()

	case quizReadyMsg:
		if q.phase != phaseLoading {
			return q, nil
		}
		if msg.Err != nil {
			q.phase = phaseError
			q.errMsg = msg.Err.Error()
			return q, nil
		}
		q.quiz = msg.Quiz
		q.answers = make([]int, len(msg.Quiz.Questions))
		for i := range q.answers {
			q.answers[i] = -1
		}
		q.current = 0
		q.selected = 0
		q.phase = phaseQuestion
		return q, nil

	case recordedMsg:
		if msg.Err != nil {
			q.recordErr = msg.Err.Error()
		}
		q.mastery = msg.Mastery
		q.planEvent = msg.PlanEvent
		return q, nil

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}

	if q.phase == phaseTopic {
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if q.quitConfirm {
		switch msg.String() {
		case "y", "Y":
			q.quitConfirm = false
			return q, popCmd()
		case "n", "N", "esc":
			q.quitConfirm = false
		}
		return q, nil
	}

	switch q.phase {
	case phaseTopic:
		if msg.String() == "enter" {
			topic := strings.TrimSpace(q.input.Value())
			if topic == "" {
				return q, nil
			}
			return q.startGenerate(topic)
		}
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd

	case phaseQuestion:
		return q.handleQuestionKey(msg)

	case phaseFeedback:
		if msg.String() == "esc" {
			q.quitConfirm = true
			return q, nil
		}
		return q.advance()

	case phaseResults:
		switch msg.String() {
		case "left", "right", "tab", "h", "l":
			q.doneButton = !q.doneButton
		case "r":
			return q.startGenerate(q.quiz.Topic)
		case "enter":
			if q.doneButton {
				return q, popCmd()
			}
			return q.startGenerate(q.quiz.Topic)
		}
		return q, nil

	case phaseError:
		// Any key returns to the topic prompt.
		q.phase = phaseTopic
		q.errMsg = ""
		return q, q.input.Init()
	}

	return q, nil
}

func (q *QuizScreen) handleQuestionKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	question := q.quiz.Questions[q.current]

	switch msg.String() {
	case "esc":
		q.quitConfirm = true
	case "up", "k":
		if q.selected > 0 {
			q.selected--
		}
	case "down", "j":
		if q.selected < len(question.Options)-1 {
			q.selected++
		}
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(question.Options) {
			q.choose(idx)
		}
	case "enter":
		q.choose(q.selected)
	}
	return q, nil
}

// choose records the answer for the current question and shows feedback.
func (q *QuizScreen) choose(idx int) {
	q.answers[q.current] = idx
	q.lastCorrect = idx == q.quiz.Questions[q.current].Answer
	q.phase = phaseFeedback
}

// advance moves past the feedback overlay: next question, or results
// once every question is answered.
func (q *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	q.current++
	if q.current < len(q.quiz.Questions) {
		q.selected = 0
		q.phase = phaseQuestion
		return q, nil
	}

	result, err := quizeval.Evaluate(q.quiz, q.answers)
	if err != nil {
		q.phase = phaseError
		q.errMsg = err.Error()
		return q, nil
	}
	q.result = result
	q.mastery = nil
	q.planEvent = nil
	q.recordErr = ""
	q.doneButton = false
	q.phase = phaseResults
	return q, q.recordAttempt()
}

func (q *QuizScreen) startGenerate(topic string) (screen.Screen, tea.Cmd) {
	q.phase = phaseLoading
	q.spinnerTick = 0
	return q, tea.Batch(q.generateQuiz(topic), spinnerCmd())
}

func popCmd() tea.Cmd {
	return func() tea.Msg {
		return router.PopScreenMsg{}
	}
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.phase {
	case phaseTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start quiz"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑/↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
		}
	case phaseResults:
		return []layout.KeyHint{
			{Key: "←/→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "R", Description: "Retry topic"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}
