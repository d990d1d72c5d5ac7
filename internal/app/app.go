package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/progress"
	"github.com/junwei/stepmath/internal/router"
	"github.com/junwei/stepmath/internal/screen"
	"github.com/junwei/stepmath/internal/screens/home"
	"github.com/junwei/stepmath/internal/session"
	"github.com/junwei/stepmath/internal/ui/layout"
)

// Options carries the dependencies for a trainer run.
type Options struct {
	Set  *problemset.ProblemSet
	Repo progress.Repo // nil disables persistence
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel builds the session and the home screen.
func newAppModel(opts Options) (AppModel, error) {
	var sessOpts []session.Option
	if opts.Repo != nil {
		rec := progress.NewRecorder(opts.Repo, func(err error) {
			fmt.Fprintln(os.Stderr, "progress update failed:", err)
		})
		sessOpts = append(sessOpts, session.WithRecorder(rec))
	}

	sess, err := session.New(opts.Set, sessOpts...)
	if err != nil {
		return AppModel{}, err
	}

	return AppModel{
		router: router.New(home.New(sess, opts.Repo)),
		sess:   sess,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
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
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
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

	sv := m.sess.View()
	mins := int(sv.Elapsed.Minutes())
	secs := int(sv.Elapsed.Seconds()) % 60
	status := fmt.Sprintf("✦ %.1f   %d:%02d", sv.Score, mins, secs)

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
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
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
