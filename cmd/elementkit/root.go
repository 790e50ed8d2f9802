package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/elementkit/internal/logger"
)

type rootFlags struct {
	verbose  bool
	logLevel string
	logJSON  bool
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "elementkit",
		Short:         "elementkit packages components as custom elements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := flags.logLevel
			if flags.verbose {
				level = "debug"
			}
			stderr := cmd.ErrOrStderr()
			log, err := logger.New(logger.Options{
				Level:         level,
				HumanReadable: !flags.logJSON,
				NoColor:       !isTerminal(stderr),
				Writer:        stderr,
			})
			if err != nil {
				return err
			}
			flags.log = log
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging (same as --log-level debug)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error or quiet")
	cmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "Write logs as JSON lines")

	cmd.AddCommand(newNewCmd(flags))
	cmd.AddCommand(newCleanCmd(flags))
	cmd.AddCommand(newStylesCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
