package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/app"
	"github.com/junwei/stepmath/internal/progress"
)

// runApp loads the bank, opens the progress store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	set, err := loadBank(cmd)
	if err != nil {
		return fmt.Errorf("load problem bank: %w", err)
	}

	opts := app.Options{Set: set}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	repo, err := progress.Open(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "progress store unavailable:", err)
		fmt.Fprintln(os.Stderr, "Learning progress will not be saved.")
	} else {
		defer repo.Close()
		opts.Repo = repo
	}

	return app.Run(opts)
}
