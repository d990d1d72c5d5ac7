package session

import "github.com/junwei/stepmath/internal/problemset"

// NextStep resolves where the learner goes after confirming the given step.
// It returns the index of the next step, or done=true when the item is
// finished. The item is finished when the step has no outgoing transition,
// when the resolved target is empty, or when the target names a step that
// does not exist in the item.
func NextStep(it *problemset.Item, stepID string, correct bool) (next int, done bool) {
	tr := it.TransitionFrom(stepID)
	if tr == nil {
		return 0, true
	}
	target := tr.OnCorrect
	if !correct {
		target = tr.OnWrong
	}
	if target == "" {
		return 0, true
	}
	idx := it.StepIndex(target)
	if idx < 0 {
		return 0, true
	}
	return idx, false
}

// retryLimit returns the retry budget for a step. Transitions that omit the
// field fall back to the default of 2.
func retryLimit(it *problemset.Item, stepID string) int {
	if tr := it.TransitionFrom(stepID); tr != nil && tr.MaxRetries > 0 {
		return tr.MaxRetries
	}
	return defaultMaxRetries
}
