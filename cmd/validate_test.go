package cmd

import (
	"strings"
	"testing"

	"github.com/junwei/stepmath/internal/problemset"
)

func TestUnknownConstraints(t *testing.T) {
	ps := &problemset.ProblemSet{
		Items: []problemset.Item{
			{
				ID: "it-1",
				Stem: problemset.Stem{
					Text: "${a} + ${b}",
					Variables: map[string]problemset.VariableSpec{
						"a": {Type: "int", Constraints: []string{"even", "prime"}},
						"b": {Type: "int", Constraints: []string{"nonzero"}},
					},
				},
			},
		},
	}

	warnings := unknownConstraints(ps)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], `"prime"`) || !strings.Contains(warnings[0], "variable a") {
		t.Errorf("warning = %q, want mention of variable a and constraint \"prime\"", warnings[0])
	}
}

func TestUnknownConstraints_CleanSet(t *testing.T) {
	if w := unknownConstraints(problemset.SampleSet()); len(w) != 0 {
		t.Fatalf("sample set should have no unrecognized constraints, got %v", w)
	}
}
