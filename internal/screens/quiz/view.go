package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/ui/components"
	"github.com/mentora/mentora/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (q *QuizScreen) View(width, height int) string {
	if q.quitConfirm {
		return renderQuitConfirm(width)
	}

	switch q.phase {
	case phaseTopic:
		return q.renderTopicPrompt(width)
	case phaseLoading:
		return q.renderLoading(width)
	case phaseQuestion:
		return q.renderQuestion(width)
	case phaseFeedback:
		return q.renderFeedback(width)
	case phaseResults:
		return q.renderResults(width)
	case phaseError:
		return renderError(width, q.errMsg)
	}
	return ""
}

func (q *QuizScreen) renderTopicPrompt(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("What topic should this quiz cover?"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q.input.View()))
	b.WriteString("\n\n")

	if q.moduleTopic != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Scoring 70%%+ on %q advances your plan.", q.moduleTopic)))
	}

	return b.String()
}

func (q *QuizScreen) renderLoading(width int) string {
	frame := spinnerFrames[q.spinnerTick%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n%s Writing your quiz...", frame))
}

func (q *QuizScreen) renderQuestion(width int) string {
	question := q.quiz.Questions[q.current]

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Topic: %s", q.quiz.Topic))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s", q.current+1, len(q.quiz.Questions), q.quiz.Difficulty))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(question.Prompt))
	b.WriteString("\n\n")

	var options strings.Builder
	for i, opt := range question.Options {
		prefix := "  "
		if i == q.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)
		if i == q.selected {
			options.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			options.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		options.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, options.String()))

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\nSelect (1-4) or use arrows + Enter"))

	return b.String()
}

func (q *QuizScreen) renderFeedback(width int) string {
	question := q.quiz.Questions[q.current]

	var b strings.Builder
	b.WriteString("\n\n")

	if q.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Correct answer: %s", question.Options[question.Answer])))
	}

	b.WriteString("\n\n")

	if question.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(question.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func (q *QuizScreen) renderResults(width int) string {
	r := q.result

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%d / %d correct (%.0f%%)", r.NumCorrect, r.NumQuestions, r.Percent)))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(r.Feedback))
	b.WriteString("\n\n")

	if q.mastery != nil {
		bar := components.NewProgressBar("Mastery", q.mastery.Score, true, min(width-20, 50))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if q.planEvent != nil {
		b.WriteString(q.renderPlanEvent(width))
	}

	if q.recordErr != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("⚠ " + q.recordErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(q.renderReviewList(width))
	b.WriteString("\n")

	retry := components.NewButton("TRY AGAIN", !q.doneButton, nil)
	done := components.NewButton("DONE", q.doneButton, nil)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, retry.View(), "  ", done.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))

	return b.String()
}

func (q *QuizScreen) renderPlanEvent(width int) string {
	var b strings.Builder
	ev := q.planEvent

	if ev.Completed {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Module completed: %s", ev.ModuleName)))
		b.WriteString("\n")
		if ev.PlanDone {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render("Plan finished. Every module is done!"))
			b.WriteString("\n")
		} else if ev.Unlocked != "" {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Text).
				Render(fmt.Sprintf("Unlocked: %s", ev.Unlocked)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Score %.0f%%+ to complete %s", plan.CompletionThreshold, ev.ModuleName)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderReviewList shows one line per question with the verdict.
func (q *QuizScreen) renderReviewList(width int) string {
	okStyle := lipgloss.NewStyle().Foreground(theme.Success)
	badStyle := lipgloss.NewStyle().Foreground(theme.Error)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	maxPrompt := min(width-12, 64)

	var lines []string
	for _, qr := range q.result.Questions {
		prompt := q.quiz.Questions[qr.Index].Prompt
		if len(prompt) > maxPrompt {
			prompt = prompt[:maxPrompt-3] + "..."
		}
		if qr.Correct {
			lines = append(lines, okStyle.Render("✓ ")+dimStyle.Render(prompt))
		} else {
			lines = append(lines, badStyle.Render("✗ ")+dimStyle.Render(prompt))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Unfinished quizzes are not recorded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Could not build the quiz: %s\n\n  Press any key to pick another topic.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
