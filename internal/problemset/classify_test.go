package problemset

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		concepts []string
		want     ProblemType
	}{
		{"tree planting by id", "tree-planting-001", nil, TypeTreePlanting},
		{"sequence by id", "arithmetic-seq-003", nil, TypeSequence},
		{"competition by id", "hualuogeng-01", nil, TypeCompetition},
		{"geometry by concept", "x1", []string{"图形面积"}, TypeGeometry},
		{"number theory by concept", "x2", []string{"整除特征"}, TypeNumberTheory},
		{"arithmetic by concept", "x3", []string{"四则运算"}, TypeArithmetic},
		{"default word problem", "x4", []string{"未知领域"}, TypeWordProblem},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := &Item{ID: tc.id, Taxonomy: Taxonomy{Concepts: tc.concepts}}
			got := Classify(it)
			found := false
			for _, g := range got {
				if g == tc.want {
					found = true
				}
			}
			if !found {
				t.Errorf("Classify(%s) = %v, want to include %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestHasType(t *testing.T) {
	it := &Item{ID: "tree-planting-001"}
	if !HasType(it, []ProblemType{TypeTreePlanting, TypeLogic}) {
		t.Error("expected a match on tree-planting")
	}
	if HasType(it, []ProblemType{TypeGeometry}) {
		t.Error("unexpected match on geometry")
	}
	if !HasType(it, nil) {
		t.Error("empty filter must match everything")
	}
}
