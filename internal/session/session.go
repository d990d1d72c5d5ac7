// Package session drives one guided practice run through a problem set. A
// Session is a pure state machine: it owns the item/step cursor, the
// per-attempt variable bindings, retry counts, the score, and the telemetry
// trail. It does no I/O and no rendering; the terminal UI layers on top and
// drives the auto-advance countdown through Tick.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/render"
)

// AutoAdvanceSeconds is the countdown started after a correct confirmation.
const AutoAdvanceSeconds = 2

const (
	defaultMaxRetries = 2

	noticeSelectFirst      = "请先选择一个选项再确认"
	feedbackCorrectDefault = "做得好！"
	feedbackWrongDefault   = "再想想"
	overRetryTip           = "\n\n小贴士：仔细检查题目中的关键信息。"
)

var (
	// ErrNothingSelected is returned by Confirm when no option is selected.
	// The session surfaces the notice as feedback; no other state changes.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrAlreadyConfirmed is returned by Confirm after the current step has
	// been confirmed and is waiting for an advance.
	ErrAlreadyConfirmed = errors.New("step already confirmed")

	// ErrSessionDone is returned by Confirm once every item is complete.
	ErrSessionDone = errors.New("session complete")
)

// FeedbackKind distinguishes how a feedback message should be styled.
type FeedbackKind int

const (
	FeedbackAnswer FeedbackKind = iota // verdict on a confirmed answer
	FeedbackHint                       // requested hint
	FeedbackNotice                     // neutral usage notice
)

// Feedback is the message shown under the options after a confirm, hint
// request, or notice.
type Feedback struct {
	Kind    FeedbackKind
	Correct bool // meaningful only for FeedbackAnswer
	Message string
}

// Outcome reports the result of one confirmation.
type Outcome struct {
	Correct  bool
	Awarded  float64
	Feedback string
	ItemDone bool // the resolved next transition finishes the item
}

// AdvanceEvent tells the caller what an Advance actually did.
type AdvanceEvent int

const (
	AdvanceNone        AdvanceEvent = iota
	AdvanceStep                     // moved to another step of the same item
	AdvanceItem                     // finished the item, moved to the next one
	AdvanceSessionDone              // finished the last remaining item
)

// ProgressRecorder receives per-item practice events. Implementations must
// tolerate being called often; the session never blocks on them.
type ProgressRecorder interface {
	RecordAccess(itemID string)
	RecordAnswer(itemID string, correct bool)
	RecordRetry(itemID string)
}

// Session is one practice run. Not safe for concurrent use; the UI event
// loop is its single caller.
type Session struct {
	id       string
	set      *problemset.ProblemSet
	now      func() time.Time
	recorder ProgressRecorder

	itemIdx   int
	stepIdx   int
	vars      map[string]float64
	retries   map[string]int
	score     float64
	startTime time.Time
	stepStart time.Time
	trail     Trail

	selection []string
	locked    bool
	feedback  *Feedback

	hasPending  bool
	pendingIdx  int
	pendingDone bool

	completed map[int]bool
	done      bool

	// auto-advance countdown, guarded by a token so a stale tick scheduled
	// before a navigation event is a no-op
	countdown    int
	advanceToken int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRecorder attaches a progress recorder.
func WithRecorder(r ProgressRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// New starts a session on the first item of the set.
func New(set *problemset.ProblemSet, opts ...Option) (*Session, error) {
	if set == nil || len(set.Items) == 0 {
		return nil, errors.New("problem set has no items")
	}
	s := &Session{
		id:        uuid.NewString(),
		set:       set,
		now:       time.Now,
		retries:   make(map[string]int),
		completed: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startTime = s.now()
	s.vars = render.Instantiate(set.Items[0].Stem.Variables)
	s.enterStep()
	s.recordAccess()
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Set returns the problem set the session runs on.
func (s *Session) Set() *problemset.ProblemSet { return s.set }

// Done reports whether the session is in the finished state. ResetItem and
// SelectItem leave this state so a completed set can be replayed.
func (s *Session) Done() bool { return s.done }

// Score returns the accumulated score.
func (s *Session) Score() float64 { return s.score }

// Trail returns a copy of the telemetry entries recorded so far.
func (s *Session) Trail() []Entry { return s.trail.Entries() }

func (s *Session) item() *problemset.Item { return &s.set.Items[s.itemIdx] }

func (s *Session) step() *problemset.Step {
	it := s.item()
	if s.stepIdx < 0 || s.stepIdx >= len(it.Steps) {
		return nil
	}
	return &it.Steps[s.stepIdx]
}

// enterStep resets the per-step interaction state. Score, retries, and the
// trail are untouched.
func (s *Session) enterStep() {
	s.selection = nil
	s.locked = false
	s.feedback = nil
	s.hasPending = false
	s.stepStart = s.now()
}

func (s *Session) cancelAutoAdvance() {
	s.advanceToken++
	s.countdown = 0
}

// Toggle flips the selection state of one option. On a single-select step
// it replaces the selection. Ignored while the step is locked after a
// confirm.
func (s *Session) Toggle(optionID string) {
	st := s.step()
	if st == nil || s.locked || st.OptionByID(optionID) == nil {
		return
	}
	if !st.MultipleSelect {
		if len(s.selection) == 1 && s.selection[0] == optionID {
			s.selection = nil
		} else {
			s.selection = []string{optionID}
		}
		return
	}
	for i, id := range s.selection {
		if id == optionID {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			return
		}
	}
	s.selection = append(s.selection, optionID)
}

// SetSelection replaces the current selection wholesale.
func (s *Session) SetSelection(ids []string) {
	if s.step() == nil || s.locked {
		return
	}
	s.selection = append([]string(nil), ids...)
}

// Confirm grades the current selection. A correct answer awards points,
// locks the step, and arms the auto-advance countdown; a wrong answer
// counts a retry and locks the step until the learner advances (back to
// the step named by the wrong-answer transition).
func (s *Session) Confirm() (Outcome, error) {
	if s.done {
		return Outcome{}, ErrSessionDone
	}
	st := s.step()
	if st == nil {
		return Outcome{}, ErrSessionDone
	}
	if s.locked {
		return Outcome{}, ErrAlreadyConfirmed
	}
	if len(s.selection) == 0 {
		s.feedback = &Feedback{Kind: FeedbackNotice, Message: noticeSelectFirst}
		return Outcome{}, ErrNothingSelected
	}
	s.cancelAutoAdvance()

	it := s.item()
	correct := s.graded(st)
	retriesBefore := s.retries[st.ID]
	if !correct {
		s.retries[st.ID] = retriesBefore + 1
	}

	var awarded float64
	if rule, ok := it.RuleFor(st.ID); ok && correct {
		awarded = Award(rule, retriesBefore)
		s.score += awarded
	}

	msg := s.feedbackMessage(st, correct)
	if !correct && s.retries[st.ID] > retryLimit(it, st.ID) {
		msg += overRetryTip
	}
	s.feedback = &Feedback{Kind: FeedbackAnswer, Correct: correct, Message: msg}

	s.trail.Append(Entry{
		Timestamp: s.now(),
		ItemID:    it.ID,
		StepID:    st.ID,
		Correct:   &correct,
		Selection: append([]string(nil), s.selection...),
		Retries:   retriesBefore,
		Elapsed:   s.now().Sub(s.stepStart).Round(time.Second).Seconds(),
	})

	s.locked = true
	s.pendingIdx, s.pendingDone = NextStep(it, st.ID, correct)
	s.hasPending = true
	if correct {
		s.advanceToken++
		s.countdown = AutoAdvanceSeconds
	}

	if s.recorder != nil {
		s.recorder.RecordAnswer(it.ID, correct)
		if !correct {
			s.recorder.RecordRetry(it.ID)
		}
	}
	return Outcome{Correct: correct, Awarded: awarded, Feedback: msg, ItemDone: s.pendingDone}, nil
}

// graded applies the correctness rule: a multi-select answer must equal the
// correct set exactly, a single-select answer must be the one correct
// option. A step with no correct option can never be answered correctly.
func (s *Session) graded(st *problemset.Step) bool {
	correctIDs := st.CorrectOptionIDs()
	if st.MultipleSelect {
		return sameSet(s.selection, correctIDs)
	}
	return len(correctIDs) == 1 && len(s.selection) == 1 && s.selection[0] == correctIDs[0]
}

func (s *Session) feedbackMessage(st *problemset.Step, correct bool) string {
	if correct {
		for _, id := range s.selection {
			if o := st.OptionByID(id); o != nil && o.Correct && o.Feedback != "" {
				return o.Feedback
			}
		}
		return feedbackCorrectDefault
	}
	var msgs []string
	for _, id := range s.selection {
		if o := st.OptionByID(id); o != nil && o.Feedback != "" {
			msgs = append(msgs, o.Feedback)
		}
	}
	if len(msgs) == 0 {
		return feedbackWrongDefault
	}
	return strings.Join(msgs, "；")
}

// RequestHint shows the hint matching the current retry count, clamped to
// the last hint. It reports false when the step has no hints. Hints never
// change the score or the retry count.
func (s *Session) RequestHint() bool {
	st := s.step()
	if st == nil || len(st.Hints) == 0 {
		return false
	}
	retry := s.retries[st.ID]
	idx := retry
	if idx > len(st.Hints)-1 {
		idx = len(st.Hints) - 1
	}
	s.feedback = &Feedback{Kind: FeedbackHint, Message: st.Hints[idx]}

	s.trail.Append(Entry{
		Timestamp: s.now(),
		ItemID:    s.item().ID,
		StepID:    st.ID,
		Selection: append([]string(nil), s.selection...),
		Retries:   retry,
		Elapsed:   s.now().Sub(s.stepStart).Round(time.Second).Seconds(),
	})
	return true
}

// Advance moves forward: to the step resolved by the last confirmation, or
// to the next unfinished item when that step was terminal, or raises
// session completion when the last item finishes. Without a confirmed
// outcome it steps through the item sequentially. Any pending auto-advance
// is cancelled first.
func (s *Session) Advance() AdvanceEvent {
	s.cancelAutoAdvance()
	if s.done {
		return AdvanceNone
	}
	if s.hasPending {
		if s.pendingDone {
			return s.completeItem()
		}
		s.stepIdx = s.pendingIdx
		s.enterStep()
		return AdvanceStep
	}
	if s.stepIdx < len(s.item().Steps)-1 {
		s.stepIdx++
		s.enterStep()
		return AdvanceStep
	}
	return AdvanceNone
}

// completeItem marks the current item finished and moves on. The score and
// the trail survive the move; retries and variables are per item. The
// completed map outlives replays, so AdvanceSessionDone is raised at most
// once per session even when finished items are practiced again.
func (s *Session) completeItem() AdvanceEvent {
	it := s.item()
	first := !s.completed[s.itemIdx]
	s.completed[s.itemIdx] = true
	s.trail.Append(Entry{Timestamp: s.now(), ItemID: it.ID, Done: true})

	if len(s.completed) == len(s.set.Items) {
		if !s.done && first {
			s.done = true
			return AdvanceSessionDone
		}
		s.done = true
		return AdvanceNone
	}

	n := len(s.set.Items)
	for off := 1; off <= n; off++ {
		j := (s.itemIdx + off) % n
		if !s.completed[j] {
			s.itemIdx = j
			break
		}
	}
	s.stepIdx = 0
	s.vars = render.Instantiate(s.item().Stem.Variables)
	s.retries = make(map[string]int)
	s.enterStep()
	s.recordAccess()
	return AdvanceItem
}

// Previous steps back within the item. Score, retries, and telemetry are
// untouched; a pending auto-advance is cancelled.
func (s *Session) Previous() bool {
	s.cancelAutoAdvance()
	if s.stepIdx == 0 {
		return false
	}
	s.stepIdx--
	s.enterStep()
	return true
}

// ResetItem restarts the current item from scratch: fresh variable
// bindings, step one, zero retries, zero score, empty trail. On a finished
// session this reopens play; completion will not be announced again.
func (s *Session) ResetItem() {
	s.cancelAutoAdvance()
	s.done = false
	s.vars = render.Instantiate(s.item().Stem.Variables)
	s.stepIdx = 0
	s.retries = make(map[string]int)
	s.score = 0
	s.startTime = s.now()
	s.trail.Clear()
	s.enterStep()
}

// SelectItem jumps to another item and resets the per-item state the same
// way ResetItem does. Like ResetItem it reopens a finished session.
func (s *Session) SelectItem(idx int) error {
	if idx < 0 || idx >= len(s.set.Items) {
		return fmt.Errorf("item index %d out of range", idx)
	}
	s.cancelAutoAdvance()
	s.done = false
	s.itemIdx = idx
	s.vars = render.Instantiate(s.item().Stem.Variables)
	s.stepIdx = 0
	s.retries = make(map[string]int)
	s.score = 0
	s.startTime = s.now()
	s.trail.Clear()
	s.enterStep()
	s.recordAccess()
	return nil
}

// Tick advances the auto-advance countdown by one second. The token must be
// the one observed when the countdown was armed; a stale token means the
// learner navigated in the meantime and the tick is ignored. When the
// countdown reaches zero the session advances.
func (s *Session) Tick(token int) AdvanceEvent {
	if token != s.advanceToken || s.countdown == 0 {
		return AdvanceNone
	}
	s.countdown--
	if s.countdown > 0 {
		return AdvanceNone
	}
	return s.Advance()
}

func (s *Session) recordAccess() {
	if s.recorder != nil {
		s.recorder.RecordAccess(s.item().ID)
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	if len(seen) != len(b) {
		return false
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
	}
	return true
}
