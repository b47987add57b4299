package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"record-mapper/internal/diagnostic"
	"record-mapper/internal/layout"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [layout-file]",
		Short: "Validate a layout file and compile its records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.layoutPath(args)

			lf, err := a.loadLayout(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			streams, err := layout.CompileAll(lf)
			if err != nil {
				var ce *diagnostic.CompileError
				if !errors.As(err, &ce) {
					return err
				}

				for _, d := range ce.Diagnostics.Errors {
					fmt.Fprintf(out, "error: %s\n", d)
				}

				for _, d := range ce.Diagnostics.Warnings {
					fmt.Fprintf(out, "warning: %s\n", d)
				}

				return fmt.Errorf("%s: %d errors", path, len(ce.Diagnostics.Errors))
			}

			for _, s := range streams {
				for _, d := range s.Warnings {
					fmt.Fprintf(out, "warning: %s\n", d)
				}

				fmt.Fprintf(out, "stream %s (%s): %d records\n", s.Name, s.Format, len(s.Records))
			}

			return nil
		},
	}
}
