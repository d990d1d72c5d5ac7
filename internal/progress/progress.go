// Package progress tracks per-item learning state across sessions: how
// often an item was answered, retried, and visited, and the familiarity
// status derived from that history.
package progress

import (
	"sort"
	"time"
)

// Status is the familiarity tier of one item.
type Status string

const (
	StatusUnlearned  Status = "unlearned"
	StatusLearned    Status = "learned"
	StatusFamiliar   Status = "familiar"
	StatusUnfamiliar Status = "unfamiliar"
)

// DisplayName returns the Chinese label for a status.
func (s Status) DisplayName() string {
	switch s {
	case StatusUnlearned:
		return "未学习"
	case StatusLearned:
		return "已学习"
	case StatusFamiliar:
		return "熟悉"
	case StatusUnfamiliar:
		return "不熟悉"
	default:
		return string(s)
	}
}

// Priority ranks how urgently an item should be practiced again.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// Idle gaps longer than this are not counted as study time.
const maxAccessGap = 5 * time.Minute

// Record is the persistent learning state for one item.
type Record struct {
	ItemID         string
	Status         Status
	RetryCount     int
	CorrectCount   int
	IncorrectCount int
	TimeSpent      time.Duration
	FirstAccessed  time.Time
	LastAccessed   time.Time
}

// NewRecord returns the zero state for an item.
func NewRecord(itemID string) Record {
	return Record{ItemID: itemID, Status: StatusUnlearned}
}

// applyAccess stamps a visit. The gap since the previous visit counts as
// study time, capped so an overnight gap does not inflate it.
func (r *Record) applyAccess(now time.Time) {
	if r.FirstAccessed.IsZero() {
		r.FirstAccessed = now
	}
	if !r.LastAccessed.IsZero() {
		gap := now.Sub(r.LastAccessed)
		if gap > maxAccessGap {
			gap = maxAccessGap
		}
		if gap > 0 {
			r.TimeSpent += gap
		}
	}
	r.LastAccessed = now
}

// applyAnswer folds one confirmed answer into the status. Two correct
// answers promote to familiar; a wrong answer demotes familiar back to
// learned.
func (r *Record) applyAnswer(correct bool) {
	if correct {
		r.CorrectCount++
		if r.Status == StatusUnlearned {
			r.Status = StatusLearned
		}
		if r.CorrectCount >= 2 && r.Status != StatusFamiliar {
			r.Status = StatusFamiliar
		}
		return
	}
	r.IncorrectCount++
	if r.Status == StatusFamiliar {
		r.Status = StatusLearned
	}
}

// applyRetry counts one retry; two or more mark the item unfamiliar.
func (r *Record) applyRetry() {
	r.RetryCount++
	if r.RetryCount >= 2 {
		r.Status = StatusUnfamiliar
	}
}

// Priority derives the practice priority: unfamiliar items first, untouched
// items next, and learned items bumped when their error rate is high.
func (r *Record) Priority() Priority {
	switch r.Status {
	case StatusUnfamiliar:
		return PriorityHigh
	case StatusUnlearned:
		return PriorityMedium
	}
	attempts := r.CorrectCount + r.IncorrectCount
	if attempts > 0 {
		if errorRate := float64(r.IncorrectCount) / float64(attempts); errorRate > 0.3 {
			return PriorityMedium
		}
	}
	return PriorityLow
}

// Stats aggregates records over a set of items.
type Stats struct {
	TotalItems     int
	Unlearned      int
	Learned        int
	Familiar       int
	Unfamiliar     int
	CompletionRate float64 // percent of items no longer unlearned
	AverageRetries float64
	TotalStudyTime time.Duration
}

// Summarize computes stats for the given items, treating missing records as
// unlearned.
func Summarize(records map[string]Record, itemIDs []string) Stats {
	st := Stats{TotalItems: len(itemIDs)}
	var retries int
	for _, id := range itemIDs {
		r, ok := records[id]
		if !ok {
			r = NewRecord(id)
		}
		switch r.Status {
		case StatusLearned:
			st.Learned++
		case StatusFamiliar:
			st.Familiar++
		case StatusUnfamiliar:
			st.Unfamiliar++
		default:
			st.Unlearned++
		}
		retries += r.RetryCount
		st.TotalStudyTime += r.TimeSpent
	}
	if st.TotalItems > 0 {
		st.CompletionRate = float64(st.TotalItems-st.Unlearned) / float64(st.TotalItems) * 100
		st.AverageRetries = float64(retries) / float64(st.TotalItems)
	}
	return st
}

// Prioritize orders item indices for practice: higher priority first, ties
// broken by more retries. The sort is stable so equally urgent items keep
// their bank order.
func Prioritize(records map[string]Record, itemIDs []string) []int {
	idx := make([]int, len(itemIDs))
	for i := range idx {
		idx[i] = i
	}
	rec := func(i int) Record {
		r, ok := records[itemIDs[i]]
		if !ok {
			r = NewRecord(itemIDs[i])
		}
		return r
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := rec(idx[a]), rec(idx[b])
		if ra.Priority() != rb.Priority() {
			return ra.Priority() > rb.Priority()
		}
		return ra.RetryCount > rb.RetryCount
	})
	return idx
}
