package session

import "github.com/junwei/stepmath/internal/problemset"

// Award computes the points gained for answering a step correctly after
// the given number of failed retries. The penalty is capped at 100% and
// the gain never drops below the rule's floor:
//
//	gain = max(score * (1 - min(retries*penaltyPerRetry/100, 1)), minScore)
//
// A clean first-attempt answer (retries == 0) always earns the full score.
func Award(rule problemset.ScoringRule, retries int) float64 {
	penalty := float64(retries) * rule.PenaltyPerRetry / 100
	if penalty > 1 {
		penalty = 1
	}
	gain := rule.Score * (1 - penalty)
	if gain < rule.MinScore {
		gain = rule.MinScore
	}
	return gain
}
