package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/progress"
	"github.com/junwei/stepmath/internal/router"
	"github.com/junwei/stepmath/internal/screen"
	"github.com/junwei/stepmath/internal/ui/components"
	"github.com/junwei/stepmath/internal/ui/layout"
	"github.com/junwei/stepmath/internal/ui/theme"
)

// recordsMsg delivers the stored learning records.
type recordsMsg struct {
	Records map[string]progress.Record
	Err     error
}

// StatsScreen shows learning progress across the loaded problem set.
type StatsScreen struct {
	set     *problemset.ProblemSet
	repo    progress.Repo
	records map[string]progress.Record
	errMsg  string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a stats screen for the given set.
func New(set *problemset.ProblemSet, repo progress.Repo) *StatsScreen {
	return &StatsScreen{set: set, repo: repo}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.repo == nil {
			return recordsMsg{Records: map[string]progress.Record{}}
		}
		records, err := s.repo.All(context.Background())
		return recordsMsg{Records: records, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Learning Progress"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.records = msg.Records
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nCould not load progress: " + s.errMsg)
	}
	if s.records == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nLoading...")
	}

	itemIDs := make([]string, 0, len(s.set.Items))
	for i := range s.set.Items {
		itemIDs = append(itemIDs, s.set.Items[i].ID)
	}
	st := progress.Summarize(s.records, itemIDs)

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar("  Completion", st.CompletionRate/100, true, min(width-8, 60))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	mins := int(st.TotalStudyTime.Minutes())
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(
		"  Problems: %d    Study time: %d min    Avg retries: %.1f",
		st.TotalItems, mins, st.AverageRetries)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"  %s %d    %s %d    %s %d    %s %d",
		progress.StatusUnlearned.DisplayName(), st.Unlearned,
		progress.StatusLearned.DisplayName(), st.Learned,
		progress.StatusFamiliar.DisplayName(), st.Familiar,
		progress.StatusUnfamiliar.DisplayName(), st.Unfamiliar)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(
		"  " + strings.Repeat("─", max(width-8, 0))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Suggested practice order"))
	b.WriteString("\n\n")

	for rank, idx := range progress.Prioritize(s.records, itemIDs) {
		it := &s.set.Items[idx]
		rec, ok := s.records[it.ID]
		if !ok {
			rec = progress.NewRecord(it.ID)
		}

		line := fmt.Sprintf("  %d. %-10s retries %d    %s",
			rank+1, rec.Status.DisplayName(), rec.RetryCount, stemPreview(it))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch rec.Priority() {
		case progress.PriorityHigh:
			style = lipgloss.NewStyle().Foreground(theme.Error)
		case progress.PriorityMedium:
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func stemPreview(it *problemset.Item) string {
	r := []rune(it.Stem.Text)
	if len(r) > 36 {
		return string(r[:36]) + "…"
	}
	return string(r)
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
