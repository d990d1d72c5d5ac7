package author

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/junwei/stepmath/internal/llm"
	"github.com/junwei/stepmath/internal/problemset"
)

// distractorOutput is the raw LLM response before conversion.
type distractorOutput struct {
	Distractors []struct {
		Text     string `json:"text"`
		Feedback string `json:"feedback"`
	} `json:"distractors"`
}

// llmDistractors asks the provider for distractors for one step.
func (e *Expander) llmDistractors(ctx context.Context, st *problemset.Step, it *problemset.Item, needed int) ([]problemset.Option, error) {
	ctx = llm.WithPurpose(ctx, "option-expand")

	req := llm.Request{
		System: distractorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDistractorMessage(st, it, needed)},
		},
		Schema:    DistractorSchema,
		MaxTokens: e.maxTokens,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM distractor generation failed: %w", err)
	}

	var raw distractorOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	existing := make(map[string]bool, len(st.Options))
	for _, o := range st.Options {
		existing[o.Text] = true
	}

	var out []problemset.Option
	for _, d := range raw.Distractors {
		if len(out) == needed {
			break
		}
		if d.Text == "" || existing[d.Text] {
			continue
		}
		existing[d.Text] = true
		out = append(out, problemset.Option{
			ID:             fmt.Sprintf("%so%d", st.ID, len(st.Options)+len(out)+1),
			Text:           d.Text,
			Correct:        false,
			DistractorType: "llm",
			Feedback:       d.Feedback,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("LLM returned no usable distractors")
	}
	return out, nil
}
