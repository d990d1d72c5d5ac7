package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/problemset"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge problem bank files into one",
	Long:  "Merge bank files by item ID. Later files win on conflicts; the highest version number is kept.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		sets := make([]*problemset.ProblemSet, 0, len(args))
		for _, path := range args {
			ps, err := problemset.Load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			sets = append(sets, ps)
		}

		merged := problemset.MergeAll(sets)
		if err := problemset.Save(out, merged); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}

		fmt.Printf("merged %d files into %s (%d items)\n", len(args), out, len(merged.Items))
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "merged.json", "Output file")
}
