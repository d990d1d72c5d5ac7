package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/problemset"
	"github.com/junwei/stepmath/internal/render"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate problem bank files",
	Long:  "Check bank files against the JSON schema and the semantic rules (step references, transitions, scoring).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		for _, path := range args {
			if err := validateFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func validateFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := problemset.ValidateSchema(raw); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	ps, err := problemset.Load(path)
	if err != nil {
		return err
	}

	issues := problemset.Validate(ps)
	for _, issue := range issues {
		fmt.Printf("%s: %s\n", path, issue)
	}
	for _, w := range unknownConstraints(ps) {
		fmt.Printf("%s: warning: %s\n", path, w)
	}
	if problemset.HasErrors(issues) {
		return fmt.Errorf("%d issue(s)", len(issues))
	}

	fmt.Printf("%s: ok (%d items)\n", path, len(ps.Items))
	return nil
}

// unknownConstraints lists variable constraint keys the instantiator does
// not recognize. Such keys are silently skipped at render time, so the
// bank author only finds out here.
func unknownConstraints(ps *problemset.ProblemSet) []string {
	var warnings []string
	for i := range ps.Items {
		it := &ps.Items[i]
		for name, spec := range it.Stem.Variables {
			for _, key := range spec.Constraints {
				if !render.KnownConstraint(key) {
					warnings = append(warnings, fmt.Sprintf(
						"item %s: variable %s: unrecognized constraint %q will be ignored",
						it.ID, name, key))
				}
			}
		}
	}
	return warnings
}
