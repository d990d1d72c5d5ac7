package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "stepmath",
	Short: "Step-guided math word problem trainer",
	Long:  "StepMath — terminal trainer that walks primary-school math word problems step by step, with scoring, hints, and learning progress tracking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STEPMATH_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Problem bank: a JSON file or a directory of JSON files (default: built-in sample)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STEPMATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, progress.EnsureDir(p)
	}
	return progress.DefaultDBPath()
}

// loadBank loads the problem set named by --bank, or the built-in sample
// set when the flag is empty.
func loadBank(cmd *cobra.Command) (*problemset.ProblemSet, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		return problemset.SampleSet(), nil
	}
	return loadBankPath(path)
}

func loadBankPath(path string) (*problemset.ProblemSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat bank: %w", err)
	}

	if info.IsDir() {
		ps, errs := problemset.LoadDir(path)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, "warning:", e)
		}
		if ps == nil {
			return nil, fmt.Errorf("no loadable problem sets in %s", path)
		}
		return ps, nil
	}

	return problemset.Load(path)
}
