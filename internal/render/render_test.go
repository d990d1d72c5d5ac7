package render

import (
	"strings"
	"testing"

	"github.com/junwei/stepmath/internal/problemset"
)

func TestRender_Substitution(t *testing.T) {
	vars := map[string]float64{"a": 10, "b": 3}

	tests := []struct {
		template string
		want     string
	}{
		{"剩下 ${a - b} 个", "剩下 7 个"},
		{"${a} + ${b} = ${a + b}", "10 + 3 = 13"},
		{"no markers here", "no markers here"},
		{"", ""},
		{"${a * b}", "30"},
		{"${(a + b) * 2}", "26"},
	}

	for _, tc := range tests {
		if got := Render(tc.template, vars); got != tc.want {
			t.Errorf("Render(%q) = %q, want %q", tc.template, got, tc.want)
		}
	}
}

func TestRender_BadMarkerRendersQuestionMark(t *testing.T) {
	vars := map[string]float64{"a": 10}

	// Unknown variable: only the bad marker degrades.
	got := Render("剩下 ${a - b} 个", vars)
	if got != "剩下 ? 个" {
		t.Errorf("got %q, want %q", got, "剩下 ? 个")
	}

	// A bad marker must not abort rendering of later good markers.
	got = Render("${nope} and ${a}", vars)
	if got != "? and 10" {
		t.Errorf("got %q, want %q", got, "? and 10")
	}

	// Division by zero degrades the same way.
	got = Render("${a / 0}", vars)
	if got != "?" {
		t.Errorf("got %q, want %q", got, "?")
	}
}

func TestRender_DoesNotMutateVars(t *testing.T) {
	vars := map[string]float64{"a": 1, "b": 2}
	Render("${a + b}", vars)
	if len(vars) != 2 || vars["a"] != 1 || vars["b"] != 2 {
		t.Errorf("vars mutated: %v", vars)
	}
}

func TestRender_FloatFormatting(t *testing.T) {
	vars := map[string]float64{"x": 2.5}
	if got := Render("${x * 2}", vars); got != "5" {
		t.Errorf("integral result should drop decimals: got %q", got)
	}
	if got := Render("${x}", vars); got != "2.5" {
		t.Errorf("fractional result should stay compact: got %q", got)
	}
}

func TestInstantiate_IntRangeAndDefaults(t *testing.T) {
	specs := map[string]problemset.VariableSpec{
		"a": {Type: "int", Range: &problemset.VariableRange{Min: 5, Max: 8}},
		"d": {Type: "int"}, // defaults 10-50
	}

	for i := 0; i < 50; i++ {
		vars := Instantiate(specs)
		if len(vars) != 2 {
			t.Fatalf("want 2 vars, got %d", len(vars))
		}
		if a := vars["a"]; a < 5 || a > 8 {
			t.Fatalf("a = %v out of [5,8]", a)
		}
		if d := vars["d"]; d < 10 || d > 50 {
			t.Fatalf("d = %v out of default [10,50]", d)
		}
	}
}

func TestInstantiate_EvenConstraintNudges(t *testing.T) {
	specs := map[string]problemset.VariableSpec{
		"a": {Type: "int", Range: &problemset.VariableRange{Min: 1, Max: 9}, Constraints: []string{"even"}},
	}

	for i := 0; i < 50; i++ {
		vars := Instantiate(specs)
		if int(vars["a"])%2 != 0 {
			t.Fatalf("a = %v not even", vars["a"])
		}
	}
}

func TestInstantiate_LegacyConstraintSpelling(t *testing.T) {
	specs := map[string]problemset.VariableSpec{
		"a": {Type: "int", Range: &problemset.VariableRange{Min: 1, Max: 9}, Constraints: []string{"a % 2 == 0"}},
	}
	for i := 0; i < 50; i++ {
		vars := Instantiate(specs)
		if int(vars["a"])%2 != 0 {
			t.Fatalf("a = %v not even under legacy spelling", vars["a"])
		}
	}
}

func TestInstantiate_UnknownConstraintIgnored(t *testing.T) {
	specs := map[string]problemset.VariableSpec{
		"a": {Type: "int", Range: &problemset.VariableRange{Min: 3, Max: 3}, Constraints: []string{"divisible-by-seventeen"}},
	}
	vars := Instantiate(specs)
	if vars["a"] != 3 {
		t.Errorf("unknown constraint should leave value alone, got %v", vars["a"])
	}
}

func TestInstantiate_FloatRounding(t *testing.T) {
	specs := map[string]problemset.VariableSpec{
		"x": {Type: "float", Range: &problemset.VariableRange{Min: 0, Max: 1}},
	}
	for i := 0; i < 50; i++ {
		vars := Instantiate(specs)
		s := Render("${x}", vars)
		if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > 2 {
			t.Fatalf("x = %v has more than 2 decimal places", vars["x"])
		}
		if vars["x"] < 0 || vars["x"] > 1 {
			t.Fatalf("x = %v out of [0,1]", vars["x"])
		}
	}
}

func TestInstantiate_Choice(t *testing.T) {
	specs := map[string]problemset.VariableSpec{
		"c": {Type: "choice", Choices: []float64{2, 4, 8}},
	}
	allowed := map[float64]bool{2: true, 4: true, 8: true}
	for i := 0; i < 50; i++ {
		vars := Instantiate(specs)
		if !allowed[vars["c"]] {
			t.Fatalf("c = %v not in choices", vars["c"])
		}
	}
}

func TestKnownConstraint(t *testing.T) {
	if !KnownConstraint("even") {
		t.Error("even should be known")
	}
	if KnownConstraint("no-such-rule") {
		t.Error("bogus constraint should be unknown")
	}
}
