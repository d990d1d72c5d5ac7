package expr

import "testing"

func TestEval_Arithmetic(t *testing.T) {
	vars := map[string]float64{"a": 10, "b": 3, "n": 4}

	tests := []struct {
		input string
		want  float64
	}{
		{"a - b", 7},
		{"a + b", 13},
		{"a * b", 30},
		{"a / 2", 5},
		{"n + 1", 5},
		{"(a + b) * 2", 26},
		{"a - b - 1", 6},
		{"a - (b - 1)", 8},
		{"2 * a + 3 * b", 29},
		{"-b + a", 7},
		{"--b", 3},
		{"3.5 + 0.5", 4},
		{"42", 42},
		{"  a  ", 10},
	}

	for _, tc := range tests {
		got, err := Eval(tc.input, vars)
		if err != nil {
			t.Errorf("Eval(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Eval(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	vars := map[string]float64{"a": 10}

	tests := []string{
		"",
		"a +",
		"+ * a",
		"(a",
		"a)",
		"b",       // unknown variable
		"a / 0",   // division by zero
		"a ^ 2",   // unsupported operator
		"f(a)",    // no function calls
		"1..2",    // bad number
		"a 2",     // trailing token
	}

	for _, input := range tests {
		if _, err := Eval(input, vars); err == nil {
			t.Errorf("Eval(%q) expected error, got nil", input)
		}
	}
}

func TestEval_Precedence(t *testing.T) {
	got, err := Eval("2 + 3 * 4", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 14 {
		t.Errorf("Eval(2 + 3 * 4) = %v, want 14", got)
	}
}

func TestEval_DoesNotMutateVars(t *testing.T) {
	vars := map[string]float64{"a": 1}
	if _, err := Eval("a + 1", vars); err != nil {
		t.Fatal(err)
	}
	if len(vars) != 1 || vars["a"] != 1 {
		t.Errorf("vars mutated: %v", vars)
	}
}
