package trainer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/render"
	"github.com/junwei/stepmath/internal/session"
	"github.com/junwei/stepmath/internal/ui/theme"
)

func (t *TrainerScreen) View(width, height int) string {
	v := t.sess.View()
	if v.Done || v.Step == nil {
		return renderDone(v, width)
	}

	var b strings.Builder

	// Position line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Problem %d/%d · Step %d/%d",
			v.ItemIndex+1, v.ItemCount, v.StepIndex+1, v.StepCount))

	mins := int(v.Elapsed.Minutes())
	secs := int(v.Elapsed.Seconds()) % 60
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  %d solved  %d:%02d",
			string(v.Item.Taxonomy.Difficulty), v.CompletedItems, mins, secs))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Problem stem.
	stemStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(stemStyle.Render(render.Render(v.Item.Stem.Text, v.Vars)))
	b.WriteString("\n\n")

	// Step prompt.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(render.Render(v.Step.Prompt, v.Vars)))
	b.WriteString("\n")

	if v.Step.MultipleSelect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Select every option that applies"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Options, with selection state pulled from the session.
	list := t.list
	list.Selected = v.Selected
	list.Locked = v.Locked
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list.View()))
	b.WriteString("\n")

	b.WriteString(renderFeedback(v, width))

	return b.String()
}

// renderFeedback renders the notice, hint, or verdict below the options.
func renderFeedback(v session.View, width int) string {
	var b strings.Builder

	if fb := v.Feedback; fb != nil {
		line := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
		switch fb.Kind {
		case session.FeedbackNotice:
			b.WriteString(line.Foreground(theme.TextDim).Italic(true).Render(fb.Message))
		case session.FeedbackHint:
			b.WriteString(line.Foreground(theme.Accent).Render("Hint: " + fb.Message))
		case session.FeedbackAnswer:
			if fb.Correct {
				b.WriteString(line.Foreground(theme.Success).Bold(true).Render("✓ " + fb.Message))
			} else {
				b.WriteString(line.Foreground(theme.Error).Bold(true).Render("✗ " + fb.Message))
			}
		}
		b.WriteString("\n")
	}

	hint := ""
	switch {
	case v.Countdown > 0:
		hint = fmt.Sprintf("Next step in %ds...", v.Countdown)
	case v.Locked && v.Feedback != nil && v.Feedback.Kind == session.FeedbackAnswer && !v.Feedback.Correct:
		hint = "Press Enter to try again"
	case v.Locked:
		hint = "Press Enter to continue"
	}
	if hint != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(hint))
		b.WriteString("\n")
	}

	return b.String()
}

func renderDone(v session.View, width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("All problems complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Final score: %.1f", v.Score)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to see the session summary."))

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
