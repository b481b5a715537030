// Package app wires the services into the Bubble Tea program behind the
// mentora command.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mentora/mentora/internal/agent"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/router"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/screens/home"
	"github.com/mentora/mentora/internal/screens/welcome"
	"github.com/mentora/mentora/internal/ui/layout"
)

// Options carries the services the TUI runs on. Tutor is nil when no
// LLM provider is configured; the chat entry is disabled then.
type Options struct {
	Profiles *profile.Service
	Plans    *plan.Service
	Quizzes  quizgen.Generator
	Tutor    *agent.Agent
	UserID   string
	Version  string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	userID string
	width  int
	height int
}

// newAppModel creates the root model. Learners without a plan land on
// the onboarding screen; everyone else goes straight home.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Profiles: opts.Profiles,
		Plans:    opts.Plans,
		Quizzes:  opts.Quizzes,
		UserID:   opts.UserID,
		Version:  opts.Version,
	}
	// A typed nil *agent.Agent must not become a non-nil Tutor interface.
	if opts.Tutor != nil {
		deps.Tutor = opts.Tutor
	}

	homeFactory := func() screen.Screen { return home.New(deps) }

	var first screen.Screen
	if _, err := opts.Plans.Get(context.Background(), opts.UserID); errors.Is(err, plan.ErrNoPlan) {
		first = welcome.New(opts.Plans, opts.UserID, homeFactory)
	} else {
		first = homeFactory()
	}

	return AppModel{
		router: router.New(first),
		userID: opts.UserID,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that claim Esc (quit confirms, multi-step forms)
			// get the key; otherwise it pops back one screen.
			active := m.router.Active()
			ei, ok := active.(screen.EscInterceptor)
			if !ok || !ei.InterceptEsc() {
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userID, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok && len(hp.KeyHints()) > 0 {
		footerHints = append(footerHints, hp.KeyHints()...)
		footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
