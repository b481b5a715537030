package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/router"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/screens/chat"
	"github.com/mentora/mentora/internal/screens/ladder"
	"github.com/mentora/mentora/internal/screens/progress"
	quizscreen "github.com/mentora/mentora/internal/screens/quiz"
	"github.com/mentora/mentora/internal/selfupdate"
	"github.com/mentora/mentora/internal/ui/components"
)

// updateCheckTimeout bounds the background release lookup.
const updateCheckTimeout = 3 * time.Second

// weakScore marks topics that need another study pass.
const weakScore = 0.4

// updateCheckMsg reports the result of the background version check.
// An empty latest means no update (or the check failed, which is fine).
type updateCheckMsg struct {
	latest string
}

// Deps carries the services the home screen and its child screens need.
// Tutor is nil when no LLM provider is configured; the chat entry is
// disabled in that case.
type Deps struct {
	Profiles *profile.Service
	Plans    *plan.Service
	Quizzes  quizgen.Generator
	Tutor    chat.Tutor
	UserID   string
	Version  string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps Deps

	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool

	skill        string
	level        string
	topicCount   int
	quizCount    int
	modulesDone  int
	modulesTotal int
	mascot       MascotVariant

	latestVersion string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen, loading the dashboard stats up front.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:   deps,
		mascot: MascotIdle,
	}

	ctx := context.Background()

	var weakTopic bool
	if deps.Profiles != nil {
		if sum, err := deps.Profiles.Summary(ctx, deps.UserID); err == nil {
			h.topicCount = sum.TopicsStudied
			h.quizCount = sum.TotalQuizzes
			for _, m := range sum.Topics {
				if m.Attempts > 0 && m.Score < weakScore {
					weakTopic = true
				}
			}
		}
	}

	if deps.Plans != nil {
		if rec, err := deps.Plans.Get(ctx, deps.UserID); err == nil {
			h.skill = rec.Skill
			h.level = rec.Level
			h.modulesTotal = len(rec.Modules)
			for _, m := range rec.Modules {
				if m.Status == plan.StatusCompleted {
					h.modulesDone++
				}
			}
		}
	}

	switch {
	case weakTopic:
		h.mascot = MascotAlert
	case h.modulesTotal > 0 && h.modulesDone == h.modulesTotal:
		h.mascot = MascotCelebrating
	}

	h.menuLabels = []string{"CHAT WITH TUTOR", "TAKE A QUIZ", "LEARNING PLAN", "MY PROGRESS", "EXIT"}
	h.disabled = map[int]bool{0: deps.Tutor == nil}

	skill, level := h.skill, h.level
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Disabled: deps.Tutor == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: chat.New(deps.Tutor, deps.UserID, skill, level),
				}
			}
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.New(deps.Profiles, deps.Plans, deps.Quizzes, deps.UserID),
				}
			}
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: ladder.New(deps.Plans, deps.UserID)}
			}
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(deps.Profiles, deps.UserID)}
			}
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

// Init kicks off a best-effort release check. Dev builds skip it.
func (h *HomeScreen) Init() tea.Cmd {
	version := h.deps.Version
	if version == "" || version == "(devel)" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateCheckTimeout))
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil || !res.UpdateAvailable {
			return updateCheckMsg{}
		}
		return updateCheckMsg{latest: res.LatestVersion}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if check, ok := msg.(updateCheckMsg); ok {
		h.latestVersion = check.latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := contentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if line := renderSkillLine(h.skill, h.level, cw); line != "" {
		sections = append(sections, line)
	}

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}

	sections = append(sections, renderStatsBar(
		h.topicCount, h.quizCount, h.modulesDone, h.modulesTotal, cw, compact))

	if compact {
		sections = append(sections, renderArcadeMenuCompact(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	if h.deps.Tutor == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.latestVersion != "" {
		sections = append(sections, renderUpdateNote(h.latestVersion, cw))
	}

	content := strings.Join(sections, "\n\n")

	// Wrap in cabinet frame, centered in the full area
	return renderCabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
