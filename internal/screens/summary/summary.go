package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/router"
	"github.com/junwei/stepmath/internal/screen"
	"github.com/junwei/stepmath/internal/session"
	"github.com/junwei/stepmath/internal/ui/layout"
	"github.com/junwei/stepmath/internal/ui/theme"
)

// difficultyOrder fixes the display order of the per-difficulty rows.
var difficultyOrder = []problemset.Difficulty{
	problemset.DifficultyEasy,
	problemset.DifficultyMedium,
	problemset.DifficultyHard,
}

// SummaryScreen displays the results of a finished session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for the given session summary.
func New(sum session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	// Score line.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("Score: %.1f / %.1f", sum.Score, sum.MaxScore)))
	b.WriteString("\n\n")

	// Duration.
	mins := int(sum.TotalTime.Minutes())
	secs := int(sum.TotalTime.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Answers: %d        Correct: %d        Accuracy: %.0f%%        Retries: %d",
		sum.Confirmed, sum.Correct, sum.Accuracy*100, sum.Retries)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	if sum.Confirmed > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Average %.1fs per step", sum.AvgStepTime)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Per-difficulty breakdown.
	if len(sum.ByDifficulty) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("By difficulty")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, d := range difficultyOrder {
			ds, ok := sum.ByDifficulty[d]
			if !ok || ds.Confirmed == 0 {
				continue
			}
			line := fmt.Sprintf("  %-8s %d/%d correct", string(d), ds.Correct, ds.Confirmed)

			style := lipgloss.NewStyle().Foreground(theme.Text)
			if ds.Correct == ds.Confirmed {
				style = style.Foreground(theme.Success)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				style.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
