package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/progress"
	"github.com/junwei/stepmath/internal/router"
	"github.com/junwei/stepmath/internal/screen"
	"github.com/junwei/stepmath/internal/screens/picker"
	"github.com/junwei/stepmath/internal/screens/stats"
	"github.com/junwei/stepmath/internal/screens/trainer"
	"github.com/junwei/stepmath/internal/session"
	"github.com/junwei/stepmath/internal/ui/components"
	"github.com/junwei/stepmath/internal/ui/layout"
	"github.com/junwei/stepmath/internal/ui/theme"
)

// HomeScreen is the entry menu.
type HomeScreen struct {
	sess *session.Session
	repo progress.Repo
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen over a running session.
func New(sess *session.Session, repo progress.Repo) *HomeScreen {
	h := &HomeScreen{sess: sess, repo: repo}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start practice", Action: func() tea.Cmd {
			return push(trainer.New(sess))
		}},
		{Label: "Choose a problem", Action: func() tea.Cmd {
			return push(picker.New(sess, repo))
		}},
		{Label: "Learning progress", Action: func() tea.Cmd {
			return push(stats.New(sess.Set(), repo))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	set := h.sess.Set()

	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("StepMath"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Step-by-step word problem trainer"))
	b.WriteString("\n\n")

	subject := set.Metadata.Subject
	if subject == "" {
		subject = set.ID
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%s · %d problems · grade %s",
			subject, len(set.Items), set.Metadata.GradeBand)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}
