// Package welcome is the first-run onboarding screen. It asks the
// learner what they want to study and at what level, creates the
// learning plan, and hands over to the home screen.
package welcome

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/router"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/store"
	"github.com/mentora/mentora/internal/ui/components"
	"github.com/mentora/mentora/internal/ui/layout"
	"github.com/mentora/mentora/internal/ui/theme"
)

const createTimeout = 10 * time.Second

type step int

const (
	stepSkill step = iota
	stepLevel
	stepCreating
	stepError
)

// levelChoice pairs a plan level with the blurb shown under it.
type levelChoice struct {
	level plan.Level
	blurb string
}

var levelChoices = []levelChoice{
	{plan.LevelBeginner, "Starting from scratch or close to it"},
	{plan.LevelIntermediate, "Comfortable with the basics, want to go deeper"},
	{plan.LevelExpert, "Strong already, here to sharpen the edges"},
}

// planCreatedMsg reports the result of the async plan creation.
type planCreatedMsg struct {
	plan *store.PlanRecord
	err  error
}

// WelcomeScreen walks a new learner through skill and level selection,
// then replaces itself with the home screen.
type WelcomeScreen struct {
	plans  *plan.Service
	userID string

	homeFactory func() screen.Screen

	step     step
	input    components.TextInput
	skill    string
	selected int
	errMsg   string

	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)
var _ screen.EscInterceptor = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen
// produced by homeFactory once a plan exists.
func New(plans *plan.Service, userID string, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		plans:       plans,
		userID:      userID,
		homeFactory: homeFactory,
		input:       components.NewTextInput("e.g. Go, SQL, linear algebra", false, 60),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

// InterceptEsc claims the Esc key while a sub-step can step back.
func (w *WelcomeScreen) InterceptEsc() bool {
	return w.step == stepLevel || w.step == stepError
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if created, ok := msg.(planCreatedMsg); ok {
		if created.err != nil {
			w.step = stepError
			w.errMsg = created.err.Error()
			return w, nil
		}
		return w, w.transition()
	}

	kmsg, isKey := msg.(tea.KeyPressMsg)

	switch w.step {
	case stepSkill:
		if isKey && kmsg.String() == "enter" {
			skill := strings.TrimSpace(w.input.Value())
			if skill == "" {
				return w, nil
			}
			w.skill = skill
			w.step = stepLevel
			return w, nil
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd

	case stepLevel:
		if !isKey {
			return w, nil
		}
		switch kmsg.String() {
		case "up", "k":
			if w.selected > 0 {
				w.selected--
			}
		case "down", "j":
			if w.selected < len(levelChoices)-1 {
				w.selected++
			}
		case "1", "2", "3":
			w.selected = int(kmsg.String()[0] - '1')
			return w.startCreate()
		case "enter":
			return w.startCreate()
		case "esc":
			w.step = stepSkill
			return w, w.input.Init()
		}
		return w, nil

	case stepError:
		if !isKey {
			return w, nil
		}
		switch kmsg.String() {
		case "enter", "r":
			return w.startCreate()
		case "esc":
			w.step = stepLevel
			w.errMsg = ""
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) startCreate() (screen.Screen, tea.Cmd) {
	w.step = stepCreating
	plans := w.plans
	userID := w.userID
	skill := w.skill
	level := levelChoices[w.selected].level
	return w, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
		defer cancel()
		rec, err := plans.Create(ctx, userID, skill, level)
		return planCreatedMsg{plan: rec, err: err}
	}
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	switch w.step {
	case stepSkill:
		return []layout.KeyHint{{Key: "enter", Description: "Continue"}}
	case stepLevel:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "Choose"},
			{Key: "enter", Description: "Start learning"},
			{Key: "esc", Description: "Back"},
		}
	case stepError:
		return []layout.KeyHint{
			{Key: "enter", Description: "Retry"},
			{Key: "esc", Description: "Back"},
		}
	}
	return nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Your personal study mentor, one quiz at a time")
	sections = append(sections, tagline, "", "")

	switch w.step {
	case stepSkill:
		prompt := lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("What do you want to learn?")
		sections = append(sections, prompt, "", w.input.View())

	case stepLevel:
		prompt := lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render(fmt.Sprintf("How far along are you with %s?", w.skill))
		sections = append(sections, prompt, "")
		for i, c := range levelChoices {
			label := strings.ToUpper(string(c.level))
			if i == w.selected {
				sections = append(sections,
					theme.Selected.Render(fmt.Sprintf("▸ %d. %s", i+1, label)),
					theme.Hint.Render("     "+c.blurb))
			} else {
				sections = append(sections,
					theme.Unselected.Render(fmt.Sprintf("  %d. %s", i+1, label)),
					theme.Hint.Render("     "+c.blurb))
			}
		}

	case stepCreating:
		sections = append(sections, theme.Hint.Render("Building your learning plan..."))

	case stepError:
		sections = append(sections,
			theme.Incorrect.Render("Could not create your plan"),
			theme.Hint.Render(w.errMsg),
			"",
			theme.Hint.Render("press enter to retry"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
