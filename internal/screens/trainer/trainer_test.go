package trainer

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/session"
)

func newTestScreen(t *testing.T) (*TrainerScreen, *session.Session) {
	t.Helper()
	sess, err := session.New(problemset.SampleSet())
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return New(sess), sess
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestTrainerScreen_Title(t *testing.T) {
	tr, _ := newTestScreen(t)
	if tr.Title() != "Practice" {
		t.Errorf("Title = %q", tr.Title())
	}
}

func TestTrainerScreen_ShowsStemAndOptions(t *testing.T) {
	tr, sess := newTestScreen(t)
	view := tr.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	v := sess.View()
	if !strings.Contains(view, "Problem 1/") {
		t.Errorf("view is missing the position line:\n%s", view)
	}
	if v.Step.MultipleSelect && !strings.Contains(view, "[ ]") {
		t.Errorf("multi-select step should render checkboxes:\n%s", view)
	}
}

func TestTrainerScreen_NumberKeyTogglesOption(t *testing.T) {
	tr, sess := newTestScreen(t)

	tr.Update(key('1'))
	v := sess.View()
	first := v.Step.Options[0].ID
	if !v.Selected[first] {
		t.Fatalf("option %s should be selected", first)
	}

	tr.Update(key('1'))
	if sess.View().Selected[first] {
		t.Error("second press should deselect on a multi-select step")
	}
}

func TestTrainerScreen_ConfirmWithoutSelectionShowsNotice(t *testing.T) {
	tr, sess := newTestScreen(t)

	tr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	v := sess.View()
	if v.Feedback == nil || v.Feedback.Kind != session.FeedbackNotice {
		t.Fatalf("feedback = %+v, want a notice", v.Feedback)
	}
	if v.Locked {
		t.Error("empty confirm must not lock the step")
	}
}

func TestTrainerScreen_CorrectConfirmLocksAndArmsCountdown(t *testing.T) {
	tr, sess := newTestScreen(t)

	for _, id := range sess.View().Step.CorrectOptionIDs() {
		sess.Toggle(id)
	}
	tr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	v := sess.View()
	if !v.Locked {
		t.Fatal("correct confirm should lock the step")
	}
	if v.Countdown == 0 {
		t.Error("correct confirm should arm the auto-advance countdown")
	}
	if !strings.Contains(tr.View(80, 24), "Next step in") {
		t.Error("view should show the countdown")
	}
}

func TestTrainerScreen_EnterAdvancesAfterLock(t *testing.T) {
	tr, sess := newTestScreen(t)

	for _, id := range sess.View().Step.CorrectOptionIDs() {
		sess.Toggle(id)
	}
	tr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	before := sess.View().StepIndex
	tr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	after := sess.View().StepIndex

	if after == before {
		t.Errorf("step index stayed at %d after Enter on a locked step", before)
	}
}

func TestTrainerScreen_HintKeyShowsHint(t *testing.T) {
	tr, sess := newTestScreen(t)

	tr.Update(key('h'))

	v := sess.View()
	if v.Feedback == nil || v.Feedback.Kind != session.FeedbackHint {
		t.Fatalf("feedback = %+v, want a hint", v.Feedback)
	}
	if !strings.Contains(tr.View(80, 24), "Hint:") {
		t.Error("view should render the hint")
	}
}

func TestTrainerScreen_TickDrivesAutoAdvance(t *testing.T) {
	tr, sess := newTestScreen(t)

	for _, id := range sess.View().Step.CorrectOptionIDs() {
		sess.Toggle(id)
	}
	tr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	before := sess.View().StepIndex
	for i := 0; i < session.AutoAdvanceSeconds; i++ {
		tr.handleTick()
	}

	if sess.View().StepIndex == before {
		t.Error("countdown ticks should advance to the next step")
	}
}
