package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset [item-id]",
	Short: "Reset learning progress for one item, or all with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("pass an item ID or --all")
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
		if all {
			if err := repo.ResetAll(ctx); err != nil {
				return err
			}
			fmt.Println("All learning progress cleared.")
			return nil
		}

		if err := repo.Reset(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Progress for %s cleared.\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset every item")
}
