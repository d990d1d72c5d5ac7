package llm

import (
	"math"
	"testing"
)

func TestLookupCost_KnownModel(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("cost for 1M/1M tokens = %v, want 0.75", got)
	}
}

func TestLookupCost_UnknownModel(t *testing.T) {
	if c := LookupCost("no-such-model"); c != nil {
		t.Fatalf("expected nil for unknown model, got %+v", c)
	}
}

func TestModelCost_ZeroTokens(t *testing.T) {
	c := ModelCost{InputPerMTok: 3, OutputPerMTok: 15}
	if got := c.Cost(0, 0); got != 0 {
		t.Fatalf("cost for zero tokens = %v, want 0", got)
	}
}
