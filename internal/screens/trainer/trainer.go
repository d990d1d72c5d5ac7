package trainer

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/junwei/stepmath/internal/render"
	"github.com/junwei/stepmath/internal/router"
	"github.com/junwei/stepmath/internal/screen"
	"github.com/junwei/stepmath/internal/screens/summary"
	"github.com/junwei/stepmath/internal/session"
	"github.com/junwei/stepmath/internal/ui/components"
	"github.com/junwei/stepmath/internal/ui/layout"
)

// TrainerScreen runs the step-by-step practice loop for one session.
type TrainerScreen struct {
	sess *session.Session
	list components.OptionList
}

var _ screen.Screen = (*TrainerScreen)(nil)
var _ screen.KeyHintProvider = (*TrainerScreen)(nil)

// New creates a trainer screen for an existing session.
func New(s *session.Session) *TrainerScreen {
	t := &TrainerScreen{sess: s}
	t.reloadStep()
	return t
}

func (t *TrainerScreen) Init() tea.Cmd {
	return tickCmd()
}

func (t *TrainerScreen) Title() string {
	return "Practice"
}

func (t *TrainerScreen) KeyHints() []layout.KeyHint {
	v := t.sess.View()
	if v.Done {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
			{Key: "Esc", Description: "Home"},
		}
	}
	if v.Locked {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "R", Description: "Restart item"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Select"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "H", Description: "Hint"},
		{Key: "P", Description: "Back"},
		{Key: "R", Description: "Restart"},
	}
}

func (t *TrainerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return t.handleTick()

	case tea.KeyMsg:
		return t.handleKey(msg)
	}
	return t, nil
}

func (t *TrainerScreen) handleTick() (screen.Screen, tea.Cmd) {
	v := t.sess.View()
	if v.Done {
		return t, nil
	}

	var cmd tea.Cmd
	if v.Countdown > 0 {
		cmd = t.applyAdvance(t.sess.Tick(v.AdvanceToken))
	}
	return t, tea.Batch(cmd, tickCmd())
}

func (t *TrainerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	v := t.sess.View()

	if v.Done {
		if msg.String() == "enter" {
			return t, t.pushSummary()
		}
		return t, nil
	}

	switch key := msg.String(); key {
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		t.list, cmd = t.list.Update(msg)
		return t, cmd

	case "space", "x":
		t.sess.Toggle(t.list.CursorID())
		return t, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx, _ := strconv.Atoi(key)
		idx--
		if v.Step != nil && idx < len(v.Step.Options) {
			t.list.Cursor = idx
			t.sess.Toggle(v.Step.Options[idx].ID)
		}
		return t, nil

	case "enter", "n":
		if v.Locked {
			return t, t.applyAdvance(t.sess.Advance())
		}
		if key == "enter" {
			_, _ = t.sess.Confirm()
		}
		return t, nil

	case "h":
		t.sess.RequestHint()
		return t, nil

	case "p":
		if t.sess.Previous() {
			t.reloadStep()
		}
		return t, nil

	case "r":
		t.sess.ResetItem()
		t.reloadStep()
		return t, nil
	}

	return t, nil
}

// applyAdvance reacts to a session advance event, rebuilding the option
// list or pushing the summary when the session finished.
func (t *TrainerScreen) applyAdvance(ev session.AdvanceEvent) tea.Cmd {
	switch ev {
	case session.AdvanceStep, session.AdvanceItem:
		t.reloadStep()
	case session.AdvanceSessionDone:
		return t.pushSummary()
	}
	return nil
}

func (t *TrainerScreen) pushSummary() tea.Cmd {
	sum := t.sess.Summarize()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// reloadStep rebuilds the option list from the current step.
func (t *TrainerScreen) reloadStep() {
	v := t.sess.View()
	if v.Step == nil {
		t.list = components.OptionList{}
		return
	}

	choices := make([]components.Choice, 0, len(v.Step.Options))
	for _, o := range v.Step.Options {
		choices = append(choices, components.Choice{
			ID:      o.ID,
			Text:    render.Render(o.Text, v.Vars),
			Correct: o.Correct,
		})
	}
	t.list = components.NewOptionList(choices, v.Step.MultipleSelect)
}
