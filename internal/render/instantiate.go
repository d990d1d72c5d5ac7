package render

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/junwei/stepmath/internal/problemset"
)

// Default ranges applied when a spec omits them.
const (
	defaultIntMin   = 10
	defaultIntMax   = 50
	defaultFloatMin = 0
	defaultFloatMax = 10
)

// Constraint nudges a drawn integer until it satisfies a predicate. The
// constraint vocabulary is an open string-keyed set so bank authors can
// rely on new predicates without a format change; unrecognized keys are
// ignored here; the validate command reports them.
type Constraint func(v int) int

// constraintRegistry maps constraint keys to their fixups. The legacy
// "a % 2 == 0" spelling from old bank files is kept as an alias for even.
var constraintRegistry = map[string]Constraint{
	"even":       func(v int) int { return nudgeUntil(v, func(x int) bool { return x%2 == 0 }) },
	"odd":        func(v int) int { return nudgeUntil(v, func(x int) bool { return x%2 != 0 }) },
	"nonzero":    func(v int) int { return nudgeUntil(v, func(x int) bool { return x != 0 }) },
	"positive":   func(v int) int { return nudgeUntil(v, func(x int) bool { return x > 0 }) },
	"% 2 == 0":   func(v int) int { return nudgeUntil(v, func(x int) bool { return x%2 == 0 }) },
	"multiple-3": func(v int) int { return nudgeUntil(v, func(x int) bool { return x%3 == 0 }) },
	"multiple-5": func(v int) int { return nudgeUntil(v, func(x int) bool { return x%5 == 0 }) },
}

// nudgeUntil increments v by 1 until ok holds. Every registered predicate
// is satisfiable within a small number of steps, so this terminates.
func nudgeUntil(v int, ok func(int) bool) int {
	for !ok(v) {
		v++
	}
	return v
}

// lookupConstraint resolves a constraint key, tolerating the legacy
// expression spellings by substring match.
func lookupConstraint(key string) (Constraint, bool) {
	if c, ok := constraintRegistry[key]; ok {
		return c, true
	}
	for pattern, c := range constraintRegistry {
		if strings.Contains(key, pattern) {
			return c, true
		}
	}
	return nil, false
}

// KnownConstraint reports whether the key resolves to a registered
// constraint. Used by content validation to flag silent no-ops.
func KnownConstraint(key string) bool {
	_, ok := lookupConstraint(key)
	return ok
}

// Instantiate draws one concrete binding for each variable spec. Every call
// draws fresh values; only the key set is deterministic. The returned map
// is independent of any previous binding.
func Instantiate(specs map[string]problemset.VariableSpec) map[string]float64 {
	vars := make(map[string]float64, len(specs))

	for name, spec := range specs {
		switch spec.Type {
		case "int":
			lo, hi := intRange(spec.Range)
			v := lo + rand.IntN(hi-lo+1)
			for _, key := range spec.Constraints {
				if c, ok := lookupConstraint(key); ok {
					v = c(v)
				}
			}
			vars[name] = float64(v)

		case "float":
			lo, hi := floatRange(spec.Range)
			v := lo + rand.Float64()*(hi-lo)
			vars[name] = math.Round(v*100) / 100

		case "choice":
			if len(spec.Choices) > 0 {
				vars[name] = spec.Choices[rand.IntN(len(spec.Choices))]
			}
		}
	}

	return vars
}

func intRange(r *problemset.VariableRange) (int, int) {
	lo, hi := defaultIntMin, defaultIntMax
	if r != nil {
		lo, hi = int(r.Min), int(r.Max)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func floatRange(r *problemset.VariableRange) (float64, float64) {
	lo, hi := float64(defaultFloatMin), float64(defaultFloatMax)
	if r != nil {
		lo, hi = r.Min, r.Max
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
