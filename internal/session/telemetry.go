package session

import "time"

// Entry is one telemetry record. Confirmations carry a Correct verdict and
// the confirmed selection; hint requests omit Correct; item completions set
// Done. Retries is the retry count for the step at the moment the entry was
// recorded, before any increment caused by the event itself.
type Entry struct {
	Timestamp time.Time `json:"t"`
	ItemID    string    `json:"itemId,omitempty"`
	StepID    string    `json:"stepId,omitempty"`
	Correct   *bool     `json:"correct,omitempty"`
	Selection []string  `json:"selection,omitempty"`
	Retries   int       `json:"retries"`
	Elapsed   float64   `json:"elapsed,omitempty"` // seconds on the step
	Done      bool      `json:"done,omitempty"`
}

// Trail is the append-only event log of a session. It survives natural
// advancement between items so the end-of-session summary can cover the
// whole run, and is cleared only by an explicit item reset or item switch.
type Trail struct {
	entries []Entry
}

// Append records one entry.
func (t *Trail) Append(e Entry) {
	t.entries = append(t.entries, e)
}

// Entries returns a copy of the recorded entries.
func (t *Trail) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded entries.
func (t *Trail) Len() int { return len(t.entries) }

// Clear discards all entries.
func (t *Trail) Clear() { t.entries = nil }
