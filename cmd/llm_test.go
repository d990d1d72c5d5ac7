package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadRequestLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.jsonl")
	lines := `{"t":"2026-08-01T10:00:00Z","provider":"openai","model":"gpt-4o-mini","purpose":"distractor-gen","inputTokens":1200,"outputTokens":300,"latencyMs":850,"success":true}

not json
{"t":"2026-08-01T10:00:05Z","provider":"anthropic","model":"claude-haiku-4-5","purpose":"distractor-gen","inputTokens":900,"outputTokens":250,"latencyMs":700,"success":false,"error":"timeout"}
`
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := readRequestLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (blank and malformed lines skipped)", len(records))
	}
	if records[0].Model != "gpt-4o-mini" || records[0].InputTokens != 1200 {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Success {
		t.Error("second record should be a failure")
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0.0042, "$0.0042"},
		{0.25, "$0.25"},
		{12.5, "$12.50"},
	}
	for _, tt := range tests {
		if got := formatCost(tt.usd); got != tt.want {
			t.Errorf("formatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}
