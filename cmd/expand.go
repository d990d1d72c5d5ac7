package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/author"
	"github.com/junwei/stepmath/internal/llm"
	"github.com/junwei/stepmath/internal/problemset"
)

var expandCmd = &cobra.Command{
	Use:   "expand <file>",
	Short: "Pad single-select steps to four options",
	Long: `Rewrite a bank file so every single-select step offers four options.

With an LLM provider configured (STEPMATH_PROVIDER etc.) distractors are
generated by the model; otherwise heuristic mistake patterns are used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = args[0]
		}

		ps, err := problemset.Load(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		var opts []author.Option
		if cfg, ok := llm.DiscoverConfig(); ok {
			logPath, err := requestLogPath(cmd)
			if err != nil {
				return err
			}
			provider, err := llm.NewProvider(cmd.Context(), cfg, llm.NewFileLog(logPath))
			if err != nil {
				fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
				fmt.Fprintln(os.Stderr, "Falling back to heuristic distractors.")
			} else {
				opts = append(opts, author.WithProvider(provider))
			}
		}

		expanded, rep := author.NewExpander(opts...).ExpandSet(cmd.Context(), ps)
		if err := problemset.Save(out, expanded); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}

		fmt.Printf("examined %d steps, expanded %d, added %d options",
			rep.StepsExamined, rep.StepsExpanded, rep.OptionsAdded)
		if rep.LLMFailures > 0 {
			fmt.Printf(" (%d heuristic fallbacks)", rep.LLMFailures)
		}
		fmt.Printf("\nwrote %s\n", out)
		return nil
	},
}

func init() {
	expandCmd.Flags().StringP("output", "o", "", "Output file (default: overwrite the input)")
}

// requestLogPath puts the LLM request log next to the progress database.
func requestLogPath(cmd *cobra.Command) (string, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dbPath), "llm.jsonl"), nil
}
