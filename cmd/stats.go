package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics for the loaded bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadBank(cmd)
		if err != nil {
			return fmt.Errorf("load problem bank: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		repo, err := progress.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open progress store: %w", err)
		}
		defer repo.Close()

		ctx := context.Background()
		records, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("load records: %w", err)
		}

		itemIDs := make([]string, 0, len(set.Items))
		for i := range set.Items {
			itemIDs = append(itemIDs, set.Items[i].ID)
		}
		st := progress.Summarize(records, itemIDs)

		fmt.Printf("Problems:    %d\n", st.TotalItems)
		fmt.Printf("Completion:  %.0f%%\n", st.CompletionRate)
		fmt.Printf("Study time:  %d min\n", int(st.TotalStudyTime.Minutes()))
		fmt.Printf("Avg retries: %.1f\n\n", st.AverageRetries)

		fmt.Printf("%-6s  %-10s  %-7s  %-7s  %s\n", "No.", "Status", "Correct", "Retries", "Problem")
		fmt.Println(strings.Repeat("─", 72))
		for i := range set.Items {
			it := &set.Items[i]
			rec, ok := records[it.ID]
			if !ok {
				rec = progress.NewRecord(it.ID)
			}
			stem := []rune(it.Stem.Text)
			if len(stem) > 24 {
				stem = stem[:24]
			}
			fmt.Printf("%-6d  %-10s  %-7d  %-7d  %s\n",
				i+1, rec.Status.DisplayName(), rec.CorrectCount, rec.RetryCount, string(stem))
		}
		return nil
	},
}
