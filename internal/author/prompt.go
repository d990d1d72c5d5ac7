package author

import (
	"fmt"
	"strings"

	"github.com/junwei/stepmath/internal/problemset"
)

const distractorSystemPrompt = `You are a math teacher authoring guided practice problems for primary school students.

Rules:
- You are given one step of a word problem and its existing answer options.
- Generate the requested number of additional WRONG options (distractors).
- Each distractor must reflect a distinct, realistic student mistake: an off-by-one slip, a wrong operation, a misread condition. Never random values.
- Match the language, tone, and formatting of the existing options exactly. If the options are Chinese, answer in Chinese.
- Keep any ${...} template markers intact if the existing options use them.
- Never duplicate an existing option and never produce a correct answer.
- Each feedback sentence should nudge the student toward the right reasoning without giving the answer away.`

// buildDistractorMessage describes the step to the LLM.
func buildDistractorMessage(st *problemset.Step, it *problemset.Item, needed int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problem stem: %s\n", it.Stem.Text)
	fmt.Fprintf(&b, "Concepts: %s\n", strings.Join(it.Taxonomy.Concepts, ", "))
	fmt.Fprintf(&b, "Step prompt: %s\n", st.Prompt)

	b.WriteString("\nExisting options:\n")
	for _, o := range st.Options {
		mark := "wrong"
		if o.Correct {
			mark = "correct"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, o.Text)
	}

	fmt.Fprintf(&b, "\nGenerate exactly %d new distractors.\n", needed)
	return b.String()
}
