package picker

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/progress"
	"github.com/junwei/stepmath/internal/render"
	"github.com/junwei/stepmath/internal/router"
	"github.com/junwei/stepmath/internal/screen"
	"github.com/junwei/stepmath/internal/session"
	"github.com/junwei/stepmath/internal/ui/components"
	"github.com/junwei/stepmath/internal/ui/layout"
	"github.com/junwei/stepmath/internal/ui/theme"
)

// stemPreviewLen caps the stem text shown per row.
const stemPreviewLen = 44

// recordsMsg delivers the stored learning records.
type recordsMsg struct {
	Records map[string]progress.Record
	Err     error
}

// PickerScreen lets the learner jump to any problem in the loaded set.
type PickerScreen struct {
	sess    *session.Session
	repo    progress.Repo
	records map[string]progress.Record

	cursor    int
	filter    components.TextInput
	filtering bool
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker over the session's problem set.
func New(sess *session.Session, repo progress.Repo) *PickerScreen {
	return &PickerScreen{
		sess:   sess,
		repo:   repo,
		filter: components.NewTextInput("Filter problems...", false, 40),
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return p.loadRecords()
}

func (p *PickerScreen) Title() string {
	return "Choose a Problem"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	if p.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply filter"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) loadRecords() tea.Cmd {
	return func() tea.Msg {
		if p.repo == nil {
			return recordsMsg{Records: map[string]progress.Record{}}
		}
		records, err := p.repo.All(context.Background())
		return recordsMsg{Records: records, Err: err}
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsMsg:
		if msg.Err == nil {
			p.records = msg.Records
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.filtering {
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PickerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if p.filtering {
		if msg.String() == "enter" {
			p.filtering = false
			p.cursor = 0
			return p, nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		p.cursor = 0
		return p, cmd
	}

	visible := p.visible()

	switch msg.String() {
	case "/":
		p.filtering = true
		return p, p.filter.Init()

	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(visible)-1 {
			p.cursor++
		}

	case "enter":
		if p.cursor < len(visible) {
			if err := p.sess.SelectItem(visible[p.cursor]); err == nil {
				return p, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	return p, nil
}

// visible returns the item indices matching the current filter text.
func (p *PickerScreen) visible() []int {
	set := p.sess.Set()
	needle := strings.ToLower(strings.TrimSpace(p.filter.Value()))

	var out []int
	for i := range set.Items {
		it := &set.Items[i]
		if needle == "" {
			out = append(out, i)
			continue
		}
		hay := strings.ToLower(it.ID + " " + it.Stem.Text + " " + strings.Join(it.Taxonomy.Concepts, " "))
		if strings.Contains(hay, needle) {
			out = append(out, i)
		}
	}
	return out
}

func (p *PickerScreen) View(width, height int) string {
	set := p.sess.Set()
	visible := p.visible()

	var b strings.Builder
	b.WriteString("\n")

	if p.filtering || p.filter.Value() != "" {
		b.WriteString("  " + p.filter.View())
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No problems match the filter."))
		return b.String()
	}

	for row, idx := range visible {
		it := &set.Items[idx]
		b.WriteString(p.renderRow(row, idx, it, width))
		b.WriteString("\n")
	}

	return b.String()
}

func (p *PickerScreen) renderRow(row, idx int, it *problemset.Item, width int) string {
	prefix := "  "
	if row == p.cursor && !p.filtering {
		prefix = "▸ "
	}

	preview := []rune(render.Render(it.Stem.Text, nil))
	if len(preview) > stemPreviewLen {
		preview = append(preview[:stemPreviewLen], '…')
	}

	var types []string
	for _, t := range problemset.Classify(it) {
		types = append(types, t.DisplayName())
	}

	rec, tracked := p.records[it.ID]
	status := progress.StatusUnlearned.DisplayName()
	if tracked {
		status = rec.Status.DisplayName()
	}

	line := fmt.Sprintf("%s%2d. [%s] %-10s %s  %s",
		prefix, idx+1, string(it.Taxonomy.Difficulty), status, string(preview),
		strings.Join(types, " "))

	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case row == p.cursor && !p.filtering:
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	case tracked && rec.Priority() == progress.PriorityHigh:
		style = lipgloss.NewStyle().Foreground(theme.Error)
	case tracked && rec.Status == progress.StatusFamiliar:
		style = lipgloss.NewStyle().Foreground(theme.Success)
	}
	return style.Render(line)
}
