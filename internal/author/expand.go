package author

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/junwei/stepmath/internal/llm"
	"github.com/junwei/stepmath/internal/problemset"
)

// targetOptionCount is the standard option count for single-select steps.
const targetOptionCount = 4

// Report summarizes one expansion run.
type Report struct {
	StepsExamined int
	StepsExpanded int
	OptionsAdded  int
	LLMFailures   int // LLM calls that fell back to the heuristic
}

// Expander pads under-filled single-select steps to four options. With a
// provider attached it asks the LLM for distractors first and falls back to
// the heuristic strategies when the call fails.
type Expander struct {
	provider  llm.Provider
	rng       *rand.Rand
	maxTokens int
}

// Option configures an Expander.
type Option func(*Expander)

// WithProvider attaches an LLM provider for distractor generation.
func WithProvider(p llm.Provider) Option {
	return func(e *Expander) { e.provider = p }
}

// WithRand replaces the random source, for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Expander) { e.rng = r }
}

// NewExpander builds an Expander. Without options it runs heuristics only.
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		maxTokens: 1024,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpandSet returns a copy of the set with every eligible step padded to
// four options. The input set is not modified. Multi-select steps, steps
// without a correct option, and steps that already have four options are
// left alone.
func (e *Expander) ExpandSet(ctx context.Context, ps *problemset.ProblemSet) (*problemset.ProblemSet, Report) {
	var rep Report

	out := *ps
	out.Items = append([]problemset.Item(nil), ps.Items...)
	for i := range out.Items {
		it := &out.Items[i]
		it.Steps = append([]problemset.Step(nil), it.Steps...)
		for j := range it.Steps {
			st := &it.Steps[j]
			rep.StepsExamined++
			if added, fellBack := e.expandStep(ctx, st, it); added > 0 {
				rep.StepsExpanded++
				rep.OptionsAdded += added
				if fellBack {
					rep.LLMFailures++
				}
			}
		}
	}

	if rep.StepsExpanded > 0 {
		out.Metadata.Tags = append(append([]string(nil), ps.Metadata.Tags...),
			"选项扩充", "四选项标准化")
		out.Metadata.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return &out, rep
}

// expandStep pads one step in place. It reports how many options were added
// and whether an LLM attempt fell back to the heuristic.
func (e *Expander) expandStep(ctx context.Context, st *problemset.Step, it *problemset.Item) (int, bool) {
	if st.MultipleSelect || len(st.Options) == 0 || len(st.Options) >= targetOptionCount {
		return 0, false
	}
	correct := correctOption(st)
	if correct == nil {
		return 0, false
	}

	needed := targetOptionCount - len(st.Options)

	var distractors []problemset.Option
	fellBack := false
	if e.provider != nil {
		var err error
		distractors, err = e.llmDistractors(ctx, st, it, needed)
		if err != nil {
			fellBack = true
		}
	}
	if len(distractors) == 0 {
		distractors = e.heuristicDistractors(st, it, needed)
	}
	if len(distractors) == 0 {
		return 0, false
	}

	options := append(append([]problemset.Option(nil), st.Options...), distractors...)
	st.Options = e.shuffle(options)
	return len(distractors), fellBack
}

// heuristicDistractors draws distractors from the strategy families,
// skipping texts already present on the step.
func (e *Expander) heuristicDistractors(st *problemset.Step, it *problemset.Item, needed int) []problemset.Option {
	correct := correctOption(st)
	strategy := selectStrategy(st.Prompt, correct.Text)
	pool := candidates(strategy, correct.Text, extractPeriodLength(it.Stem.Text))

	existing := make(map[string]bool, len(st.Options))
	for _, o := range st.Options {
		existing[o.Text] = true
	}
	var available []string
	for _, text := range pool {
		if !existing[text] {
			available = append(available, text)
		}
	}

	var out []problemset.Option
	for i := 0; i < needed && len(available) > 0; i++ {
		k := e.rng.IntN(len(available))
		text := available[k]
		available = append(available[:k], available[k+1:]...)

		out = append(out, problemset.Option{
			ID:             fmt.Sprintf("%so%d", st.ID, len(st.Options)+len(out)+1),
			Text:           text,
			Correct:        false,
			DistractorType: string(strategy),
			Feedback:       distractorFeedback(text, correct.Text, st.Prompt),
		})
	}
	return out
}

// shuffle randomizes the wrong options and plants the correct one at a
// random slot so it never sits in a fixed position.
func (e *Expander) shuffle(options []problemset.Option) []problemset.Option {
	var correct *problemset.Option
	var wrong []problemset.Option
	for i := range options {
		if options[i].Correct && correct == nil {
			correct = &options[i]
		} else {
			wrong = append(wrong, options[i])
		}
	}
	if correct == nil {
		return options
	}

	e.rng.Shuffle(len(wrong), func(i, j int) {
		wrong[i], wrong[j] = wrong[j], wrong[i]
	})

	pos := e.rng.IntN(len(wrong) + 1)
	out := make([]problemset.Option, 0, len(options))
	out = append(out, wrong[:pos]...)
	out = append(out, *correct)
	out = append(out, wrong[pos:]...)
	return out
}

func correctOption(st *problemset.Step) *problemset.Option {
	for i := range st.Options {
		if st.Options[i].Correct {
			return &st.Options[i]
		}
	}
	return nil
}
