// Package chat is the conversational tutor screen. Replies stream
// through the agent's tool loop, so a single turn may consult the
// learner's profile, generate a quiz, or search for resources before
// answering.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/mentora/mentora/internal/agent"
	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/screen"
	"github.com/mentora/mentora/internal/ui/components"
	"github.com/mentora/mentora/internal/ui/layout"
	"github.com/mentora/mentora/internal/ui/theme"
)

// chatTimeout bounds one tutor turn including tool calls.
const chatTimeout = 2 * time.Minute

// Tutor produces one reply per conversation turn. *agent.Agent
// implements it; tests substitute a fake.
type Tutor interface {
	Chat(ctx context.Context, input agent.ChatInput) (*agent.ChatResult, error)
}

type entryRole int

const (
	roleUser entryRole = iota
	roleTutor
	roleNotice
)

type entry struct {
	role entryRole
	text string
}

// replyMsg delivers the tutor's async reply.
type replyMsg struct {
	result *agent.ChatResult
	err    error
}

// ChatScreen is a scrolling transcript with an input line at the bottom.
type ChatScreen struct {
	tutor  Tutor
	userID string
	skill  string
	level  string

	input     components.TextInput
	entries   []entry
	history   []llm.Message
	trace     []agent.TraceEvent
	waiting   bool
	showTrace bool

	renderer      *glamour.TermRenderer
	rendererWidth int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the tutor chat screen. skill and level come from the
// learner's plan and may be empty.
func New(tutor Tutor, userID, skill, level string) *ChatScreen {
	return &ChatScreen{
		tutor:  tutor,
		userID: userID,
		skill:  skill,
		level:  level,
		input:  components.NewTextInput("Ask your tutor anything...", false, 500),
	}
}

func (c *ChatScreen) Title() string {
	return "Tutor Chat"
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		if msg.err != nil {
			c.entries = append(c.entries, entry{role: roleNotice, text: msg.err.Error()})
			return c, nil
		}
		c.entries = append(c.entries, entry{role: roleTutor, text: msg.result.Reply})
		c.history = msg.result.History
		c.trace = msg.result.Trace
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return c, c.send()
		case "ctrl+t":
			c.showTrace = !c.showTrace
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send fires the user's message at the tutor. No-op while a reply is
// pending or when the input is empty.
func (c *ChatScreen) send() tea.Cmd {
	if c.waiting || c.tutor == nil {
		return nil
	}
	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return nil
	}

	c.entries = append(c.entries, entry{role: roleUser, text: text})
	c.input.Model.SetValue("")
	c.waiting = true

	tutor := c.tutor
	input := agent.ChatInput{
		UserID:  c.userID,
		Skill:   c.skill,
		Level:   c.level,
		Message: text,
		History: c.history,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		result, err := tutor.Chat(ctx, input)
		return replyMsg{result: result, err: err}
	}
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: "Tool trace"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) View(width, height int) string {
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 4).
		Padding(0, 1).
		Render(c.input.View())

	var panel string
	if c.showTrace && len(c.trace) > 0 {
		panel = c.renderTrace(width)
	}

	transcriptHeight := height - lipgloss.Height(inputBox) - 1
	if panel != "" {
		transcriptHeight -= lipgloss.Height(panel)
	}
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	transcript := c.renderTranscript(width, transcriptHeight)

	sections := []string{transcript}
	if panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, inputBox)

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(strings.Join(sections, "\n"))
}

// renderTranscript renders all entries and clips to the last lines
// that fit, so the newest exchange is always visible.
func (c *ChatScreen) renderTranscript(width, maxLines int) string {
	if len(c.entries) == 0 && !c.waiting {
		greeting := theme.Hint.Render("Say hello to your tutor. It knows your plan and your progress.")
		return lipgloss.NewStyle().Height(maxLines).Render(greeting)
	}

	userStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	noticeStyle := lipgloss.NewStyle().Foreground(theme.Error)

	var blocks []string
	for _, e := range c.entries {
		switch e.role {
		case roleUser:
			blocks = append(blocks, userStyle.Render("You ▸ ")+
				lipgloss.NewStyle().Foreground(theme.Text).Render(e.text))
		case roleTutor:
			blocks = append(blocks, c.renderMarkdown(e.text, width-6))
		case roleNotice:
			blocks = append(blocks, noticeStyle.Render("✗ "+e.text))
		}
	}
	if c.waiting {
		blocks = append(blocks, theme.Hint.Render("Tutor is thinking..."))
	}

	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	body := strings.Join(lines, "\n")

	return lipgloss.NewStyle().Height(maxLines).Render(body)
}

// renderMarkdown renders tutor replies as terminal markdown, falling
// back to the raw text if rendering fails.
func (c *ChatScreen) renderMarkdown(text string, wrapWidth int) string {
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	if c.renderer == nil || c.rendererWidth != wrapWidth {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return text
		}
		c.renderer = r
		c.rendererWidth = wrapWidth
	}
	out, err := c.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// renderTrace shows the tool calls behind the latest reply.
func (c *ChatScreen) renderTrace(width int) string {
	okStyle := lipgloss.NewStyle().Foreground(theme.Success)
	failStyle := lipgloss.NewStyle().Foreground(theme.Error)

	lines := make([]string, 0, len(c.trace)+1)
	lines = append(lines, theme.Hint.Render("Tool calls this turn:"))
	for _, ev := range c.trace {
		mark := okStyle.Render("✓")
		if ev.IsError {
			mark = failStyle.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %s (%dms)",
			mark, ev.Tool, ev.Duration.Milliseconds()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 4).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
