package main

import (
	"fmt"
	"io"

	"github.com/forcegrade/forcegrade/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var drawings bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate task files or drawing snapshots",
		Long: `Validate task files against the task schema and the grading rules.
With --drawings the files are checked as drawing snapshots instead.

Every file is checked; the command fails if any of them is invalid.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if drawings {
				return runValidate(cmd.OutOrStdout(), args, "drawing snapshots", validation.ValidateDrawingFile)
			}
			return runValidate(cmd.OutOrStdout(), args, "task files", validation.ValidateTaskFile)
		},
	}
	cmd.Flags().BoolVar(&drawings, "drawings", false, "Validate drawing snapshots instead of task files")
	return cmd
}

func runValidate(w io.Writer, paths []string, kind string, validate func(string) ([]string, error)) error {
	invalid := 0
	for _, p := range paths {
		errs, err := validate(p)
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			fmt.Fprintf(w, "✓ %s\n", p) //nolint:errcheck
			continue
		}
		invalid++
		fmt.Fprintf(w, "✗ %s\n", p) //nolint:errcheck
		for _, e := range errs {
			fmt.Fprintf(w, "    %s\n", e) //nolint:errcheck
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d %s are invalid", invalid, len(paths), kind)
	}
	return nil
}
