package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elementkit/internal/cleanup"
	"github.com/alexisbeaulieu97/elementkit/internal/tui"
)

func newCleanCmd(root *rootFlags) *cobra.Command {
	var dryRun bool
	var targets []string

	cmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Remove build artifacts from an element project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			res, err := cleanup.Run(cmd.Context(), dir, cleanup.Options{
				Targets: targets,
				DryRun:  dryRun,
				Logger:  root.log,
			})
			if err != nil {
				return err
			}

			status := tui.StatusDone
			if res.DryRun {
				status = tui.StatusPlanned
			}
			out := cmd.OutOrStdout()
			for _, path := range res.Removed {
				fmt.Fprintf(out, " %s %s\n", tui.StatusIcon(status), path)
			}
			for _, path := range res.Missing {
				fmt.Fprintf(out, " %s %s (not found)\n", tui.StatusIcon(tui.StatusSkipped), path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be removed without removing it")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "Paths to remove instead of the defaults")

	return cmd
}
