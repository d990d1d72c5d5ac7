package session

import (
	"time"

	"github.com/junwei/stepmath/internal/problemset"
)

// View is a read-only snapshot of everything the UI needs to draw one
// frame. Item and Step point into the session's problem set and must not
// be mutated.
type View struct {
	SessionID string

	ItemIndex int
	ItemCount int
	StepIndex int
	StepCount int

	Item *problemset.Item
	Step *problemset.Step
	Vars map[string]float64

	Score    float64
	MaxScore float64 // current item's total

	Elapsed     time.Duration // since the item started
	StepElapsed time.Duration

	Selected   map[string]bool
	Locked     bool // confirm disabled until the learner advances
	CanAdvance bool
	CanRetreat bool
	HasHints   bool
	Feedback   *Feedback

	Countdown    int // seconds left on the auto-advance timer, 0 when idle
	AdvanceToken int

	Done           bool
	CompletedItems int
}

// View snapshots the current state.
func (s *Session) View() View {
	it := s.item()
	st := s.step()
	now := s.now()

	vars := make(map[string]float64, len(s.vars))
	for k, v := range s.vars {
		vars[k] = v
	}
	selected := make(map[string]bool, len(s.selection))
	for _, id := range s.selection {
		selected[id] = true
	}
	var fb *Feedback
	if s.feedback != nil {
		cp := *s.feedback
		fb = &cp
	}

	return View{
		SessionID:      s.id,
		ItemIndex:      s.itemIdx,
		ItemCount:      len(s.set.Items),
		StepIndex:      s.stepIdx,
		StepCount:      len(it.Steps),
		Item:           it,
		Step:           st,
		Vars:           vars,
		Score:          s.score,
		MaxScore:       it.Scoring.Total,
		Elapsed:        now.Sub(s.startTime),
		StepElapsed:    now.Sub(s.stepStart),
		Selected:       selected,
		Locked:         s.locked,
		CanAdvance:     s.hasPending || s.stepIdx < len(it.Steps)-1,
		CanRetreat:     s.stepIdx > 0,
		HasHints:       st != nil && len(st.Hints) > 0,
		Feedback:       fb,
		Countdown:      s.countdown,
		AdvanceToken:   s.advanceToken,
		Done:           s.done,
		CompletedItems: len(s.completed),
	}
}
