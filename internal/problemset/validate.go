package problemset

import "fmt"

// Issue is one structural problem found in a set. Severity separates
// content that cannot be played (errors) from content the trainer degrades
// around at run time (warnings, per the defensive policies in the session
// package).
type Issue struct {
	Severity string // "error" or "warning"
	ItemID   string
	Message  string
}

func (i Issue) String() string {
	if i.ItemID == "" {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("[%s] item %s: %s", i.Severity, i.ItemID, i.Message)
}

// Validate runs structural checks over a problem set and returns all
// issues found. An empty result means the set is clean.
func Validate(ps *ProblemSet) []Issue {
	var issues []Issue

	errf := func(itemID, format string, args ...any) {
		issues = append(issues, Issue{Severity: "error", ItemID: itemID, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(itemID, format string, args ...any) {
		issues = append(issues, Issue{Severity: "warning", ItemID: itemID, Message: fmt.Sprintf(format, args...)})
	}

	if ps.ID == "" {
		errf("", "problem set has no id")
	}
	if len(ps.Items) == 0 {
		errf("", "problem set has no items")
	}

	seenItems := make(map[string]bool)
	for i := range ps.Items {
		it := &ps.Items[i]
		if it.ID == "" {
			errf("", "item at index %d has no id", i)
			continue
		}
		if seenItems[it.ID] {
			errf(it.ID, "duplicate item id")
		}
		seenItems[it.ID] = true

		validateItem(it, errf, warnf)
	}

	return issues
}

func validateItem(it *Item, errf, warnf func(string, string, ...any)) {
	if len(it.Steps) == 0 {
		errf(it.ID, "item has no steps")
		return
	}

	stepIDs := make(map[string]bool, len(it.Steps))
	for si := range it.Steps {
		st := &it.Steps[si]
		if st.ID == "" {
			errf(it.ID, "step at index %d has no id", si)
			continue
		}
		if stepIDs[st.ID] {
			errf(it.ID, "duplicate step id %q", st.ID)
		}
		stepIDs[st.ID] = true

		optIDs := make(map[string]bool, len(st.Options))
		for _, o := range st.Options {
			if optIDs[o.ID] {
				errf(it.ID, "step %s: duplicate option id %q", st.ID, o.ID)
			}
			optIDs[o.ID] = true
		}

		// A step with no correct option is playable but never passable; the
		// trainer treats every confirmation on it as incorrect.
		if len(st.Options) > 0 && len(st.CorrectOptionIDs()) == 0 {
			warnf(it.ID, "step %s has no correct option", st.ID)
		}
	}

	seenFrom := make(map[string]bool, len(it.Transitions))
	for _, tr := range it.Transitions {
		if !stepIDs[tr.FromStep] {
			errf(it.ID, "transition from unknown step %q", tr.FromStep)
		}
		if seenFrom[tr.FromStep] {
			errf(it.ID, "multiple transitions from step %q", tr.FromStep)
		}
		seenFrom[tr.FromStep] = true

		// Empty targets mean "item complete" and are always valid.
		if tr.OnCorrect != "" && !stepIDs[tr.OnCorrect] {
			errf(it.ID, "transition from %q: onCorrect target %q does not exist", tr.FromStep, tr.OnCorrect)
		}
		if tr.OnWrong != "" && !stepIDs[tr.OnWrong] {
			errf(it.ID, "transition from %q: onWrong target %q does not exist", tr.FromStep, tr.OnWrong)
		}
		if tr.MaxRetries < 0 {
			errf(it.ID, "transition from %q: maxRetries must be >= 0, got %d", tr.FromStep, tr.MaxRetries)
		}
	}

	for stepID := range it.Scoring.PerStep {
		if !stepIDs[stepID] {
			warnf(it.ID, "scoring rule for unknown step %q", stepID)
		}
	}
	for stepID, rule := range it.Scoring.PerStep {
		if rule.MinScore > rule.Score {
			warnf(it.ID, "step %s: minScore %.1f exceeds score %.1f", stepID, rule.MinScore, rule.Score)
		}
	}
}

// HasErrors reports whether any issue is a hard error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == "error" {
			return true
		}
	}
	return false
}
