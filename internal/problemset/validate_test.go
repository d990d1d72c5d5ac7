package problemset

import (
	"strings"
	"testing"
)

func minimalItem(id string) Item {
	return Item{
		ID:   id,
		Stem: Stem{Text: "题目"},
		Steps: []Step{
			{
				ID:     "s1",
				Prompt: "问题",
				Options: []Option{
					{ID: "o1", Text: "对", Correct: true},
					{ID: "o2", Text: "错"},
				},
			},
		},
		Transitions: []Transition{{FromStep: "s1", OnWrong: "s1", MaxRetries: 2}},
		Scoring: Scoring{
			Total:   10,
			PerStep: map[string]ScoringRule{"s1": {Score: 10, PenaltyPerRetry: 50, MinScore: 1}},
		},
	}
}

func TestValidate_CleanSet(t *testing.T) {
	ps := &ProblemSet{ID: "ok", Items: []Item{minimalItem("it-1")}}
	if issues := Validate(ps); len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
}

func TestValidate_SampleSetIsClean(t *testing.T) {
	if issues := Validate(SampleSet()); HasErrors(issues) {
		t.Errorf("built-in sample has errors: %v", issues)
	}
}

func TestValidate_DuplicateItemID(t *testing.T) {
	ps := &ProblemSet{ID: "dup", Items: []Item{minimalItem("it-1"), minimalItem("it-1")}}
	issues := Validate(ps)
	if !HasErrors(issues) {
		t.Fatal("expected an error for duplicate item ids")
	}
	if !containsIssue(issues, "duplicate item id") {
		t.Errorf("issues = %v", issues)
	}
}

func TestValidate_DanglingTransitionTarget(t *testing.T) {
	it := minimalItem("it-1")
	it.Transitions = []Transition{{FromStep: "s1", OnCorrect: "missing"}}
	issues := Validate(&ProblemSet{ID: "x", Items: []Item{it}})
	if !containsIssue(issues, `onCorrect target "missing"`) {
		t.Errorf("issues = %v", issues)
	}
}

func TestValidate_TransitionFromUnknownStep(t *testing.T) {
	it := minimalItem("it-1")
	it.Transitions = append(it.Transitions, Transition{FromStep: "ghost"})
	issues := Validate(&ProblemSet{ID: "x", Items: []Item{it}})
	if !containsIssue(issues, `transition from unknown step "ghost"`) {
		t.Errorf("issues = %v", issues)
	}
}

func TestValidate_StepWithoutCorrectOptionIsWarning(t *testing.T) {
	it := minimalItem("it-1")
	it.Steps[0].Options[0].Correct = false
	issues := Validate(&ProblemSet{ID: "x", Items: []Item{it}})
	if HasErrors(issues) {
		t.Errorf("no-correct-option should be a warning, got %v", issues)
	}
	if !containsIssue(issues, "no correct option") {
		t.Errorf("issues = %v", issues)
	}
}

func TestValidate_MinScoreAboveScoreIsWarning(t *testing.T) {
	it := minimalItem("it-1")
	it.Scoring.PerStep["s1"] = ScoringRule{Score: 5, MinScore: 8}
	issues := Validate(&ProblemSet{ID: "x", Items: []Item{it}})
	if HasErrors(issues) {
		t.Errorf("minScore above score should be a warning, got %v", issues)
	}
	if !containsIssue(issues, "minScore") {
		t.Errorf("issues = %v", issues)
	}
}

func containsIssue(issues []Issue, substr string) bool {
	for _, i := range issues {
		if strings.Contains(i.String(), substr) {
			return true
		}
	}
	return false
}
