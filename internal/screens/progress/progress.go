// Package progress summarizes the learner's mastery per topic and the
// recent quiz history behind it.
package progress

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/ui/components"
	"github.com/mentora/mentora/internal/ui/layout"
	"github.com/mentora/mentora/internal/ui/theme"
)

// recentAttempts caps how much history the screen shows.
const recentAttempts = 8

type profileLoadedMsg struct {
	Profile *profile.LearnerProfile
	Err     error
}

// ProgressScreen shows per-topic mastery bars and recent quiz attempts.
type ProgressScreen struct {
	profiles *profile.Service
	userID   string

	prof   *profile.LearnerProfile
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates the progress screen for one learner.
func New(profiles *profile.Service, userID string) *ProgressScreen {
	return &ProgressScreen{
		profiles: profiles,
		userID:   userID,
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	profiles := s.profiles
	userID := s.userID
	return func() tea.Msg {
		p, err := profiles.Get(context.Background(), userID)
		return profileLoadedMsg{Profile: p, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "My Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if loaded, ok := msg.(profileLoadedMsg); ok {
		s.loaded = true
		if loaded.Err != nil {
			s.errMsg = loaded.Err.Error()
		} else {
			s.prof = loaded.Profile
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading your progress...")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not load progress: %s", s.errMsg))
	}
	if len(s.prof.Topics) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No quizzes yet. Take one to start tracking mastery.")
	}

	cw := min(width-8, 70)

	var b strings.Builder
	b.WriteString("\n")

	counts := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d topics studied · %d quizzes taken",
			len(s.prof.Topics), len(s.prof.QuizHistory)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, counts))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderMastery(cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderHistory(cw)))

	return b.String()
}

// renderMastery lists one progress bar per topic, strongest first.
func (s *ProgressScreen) renderMastery(cw int) string {
	topics := make([]profile.TopicMastery, 0, len(s.prof.Topics))
	for _, m := range s.prof.Topics {
		topics = append(topics, m)
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Score != topics[j].Score {
			return topics[i].Score > topics[j].Score
		}
		return topics[i].Topic < topics[j].Topic
	})

	labelWidth := 0
	for _, m := range topics {
		if len(m.Topic) > labelWidth {
			labelWidth = len(m.Topic)
		}
	}
	if labelWidth > 28 {
		labelWidth = 28
	}

	lines := make([]string, 0, len(topics)+1)
	lines = append(lines, lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("Mastery"))

	for _, m := range topics {
		label := m.Topic
		if len(label) > labelWidth {
			label = label[:labelWidth-3] + "..."
		}
		label = fmt.Sprintf("%-*s", labelWidth, label)

		bar := components.NewProgressBar(label, m.Score, true, cw-12)
		attempts := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf(" %dx", m.Attempts))
		lines = append(lines, bar.View()+attempts)
	}

	return strings.Join(lines, "\n")
}

// renderHistory lists the most recent attempts, newest first.
func (s *ProgressScreen) renderHistory(cw int) string {
	history := s.prof.QuizHistory
	n := len(history)
	if n == 0 {
		return ""
	}
	shown := n
	if shown > recentAttempts {
		shown = recentAttempts
	}

	lines := make([]string, 0, shown+1)
	lines = append(lines, lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("Recent quizzes"))

	for i := n - 1; i >= n-shown; i-- {
		a := history[i]
		pct := 100 * a.Accuracy()

		scoreStyle := lipgloss.NewStyle().Foreground(theme.Error)
		if pct >= 70 {
			scoreStyle = lipgloss.NewStyle().Foreground(theme.Success)
		}

		line := fmt.Sprintf("%s  %s  %s",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(a.Timestamp.Format("Jan 02 15:04")),
			lipgloss.NewStyle().Foreground(theme.Text).Render(a.Topic),
			scoreStyle.Render(fmt.Sprintf("%d/%d (%.0f%%)", a.NumCorrect, a.NumQuestions, pct)),
		)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
