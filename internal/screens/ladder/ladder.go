// Package ladder renders the learner's plan: an ordered set of modules
// that unlock as quiz scores cross the completion threshold.
package ladder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	entschema "github.com/mentora/mentora/ent/schema"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/store"
	"github.com/mentora/mentora/internal/ui/components"
	"github.com/mentora/mentora/internal/ui/layout"
	"github.com/mentora/mentora/internal/ui/theme"
)

type planLoadedMsg struct {
	Plan *store.PlanRecord
	Err  error
}

// LadderScreen shows the module ladder for the learner's current plan.
type LadderScreen struct {
	plans  *plan.Service
	userID string

	record *store.PlanRecord
	loaded bool
	noPlan bool
	errMsg string
}

var _ screen.Screen = (*LadderScreen)(nil)
var _ screen.KeyHintProvider = (*LadderScreen)(nil)

// New creates the plan screen for one learner.
func New(plans *plan.Service, userID string) *LadderScreen {
	return &LadderScreen{
		plans:  plans,
		userID: userID,
	}
}

func (s *LadderScreen) Init() tea.Cmd {
	plans := s.plans
	userID := s.userID
	return func() tea.Msg {
		rec, err := plans.Get(context.Background(), userID)
		return planLoadedMsg{Plan: rec, Err: err}
	}
}

func (s *LadderScreen) Title() string {
	return "Learning Plan"
}

func (s *LadderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LadderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if loaded, ok := msg.(planLoadedMsg); ok {
		s.loaded = true
		switch {
		case errors.Is(loaded.Err, plan.ErrNoPlan):
			s.noPlan = true
		case loaded.Err != nil:
			s.errMsg = loaded.Err.Error()
		default:
			s.record = loaded.Plan
		}
	}
	return s, nil
}

func (s *LadderScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading your plan...")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not load plan: %s", s.errMsg))
	}
	if s.noPlan {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No learning plan yet.")
	}

	cw := min(width-8, 70)
	rec := s.record
	completed, total := plan.Progress(rec.Modules)

	var b strings.Builder
	b.WriteString("\n")

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%s · %s", rec.Skill, rec.Level))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var pct float64
	if total > 0 {
		pct = float64(completed) / float64(total)
	}
	bar := components.NewProgressBar(fmt.Sprintf("%d/%d modules", completed, total), pct, true, cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	var rows []string
	for i, m := range rec.Modules {
		rows = append(rows, renderModule(i+1, m, cw))
	}
	block := strings.Join(rows, "\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))

	return b.String()
}

func renderModule(n int, m entschema.PlanModule, cw int) string {
	var marker, name string
	switch m.Status {
	case plan.StatusCompleted:
		marker = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓")
		name = lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true).Render(m.Name)
	case plan.StatusActive:
		marker = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("▸")
		name = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Name)
	default:
		marker = lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
		name = lipgloss.NewStyle().Foreground(theme.TextDim).Render(m.Name)
	}

	head := fmt.Sprintf("%s %d. %s", marker, n, name)

	desc := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw - 5).
		Render(m.Description)

	lines := []string{head, "     " + strings.ReplaceAll(desc, "\n", "\n     ")}

	if m.QuizScore > 0 {
		score := lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(fmt.Sprintf("best score %.0f%%", m.QuizScore))
		lines = append(lines, "     "+score)
	}

	return strings.Join(lines, "\n")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
