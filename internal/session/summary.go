package session

import (
	"time"

	"github.com/junwei/stepmath/internal/problemset"
)

// DifficultyStats aggregates confirmed answers for one difficulty tier.
type DifficultyStats struct {
	Confirmed int
	Correct   int
}

// Summary is the end-of-run report derived from the telemetry trail. Only
// confirmation entries count; hint requests and completion markers do not.
type Summary struct {
	Score        float64
	MaxScore     float64
	TotalTime    time.Duration
	Confirmed    int
	Correct      int
	Retries      int
	Accuracy     float64 // correct / confirmed, 0 when nothing was confirmed
	AvgStepTime  float64 // mean seconds per confirmed step
	ByDifficulty map[problemset.Difficulty]DifficultyStats
}

// Summarize builds the report for the session so far.
func (s *Session) Summarize() Summary {
	byItem := make(map[string]problemset.Difficulty, len(s.set.Items))
	for i := range s.set.Items {
		it := &s.set.Items[i]
		byItem[it.ID] = it.Taxonomy.Difficulty
	}

	sum := Summary{
		Score:        s.score,
		MaxScore:     s.set.MaxScore(),
		TotalTime:    s.now().Sub(s.startTime),
		ByDifficulty: make(map[problemset.Difficulty]DifficultyStats),
	}

	var elapsed float64
	for _, e := range s.trail.Entries() {
		if e.Correct == nil {
			continue
		}
		sum.Confirmed++
		elapsed += e.Elapsed
		if *e.Correct {
			sum.Correct++
		} else {
			sum.Retries++
		}
		d := byItem[e.ItemID]
		st := sum.ByDifficulty[d]
		st.Confirmed++
		if *e.Correct {
			st.Correct++
		}
		sum.ByDifficulty[d] = st
	}
	if sum.Confirmed > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Confirmed)
		sum.AvgStepTime = elapsed / float64(sum.Confirmed)
	}
	return sum
}
