package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	"github.com/alexisbeaulieu97/elementkit/internal/style"
	"github.com/alexisbeaulieu97/elementkit/internal/style/watch"
	"github.com/alexisbeaulieu97/elementkit/pkg/diff"
)

type stylesOptions struct {
	Out   string
	Scope string
	Watch bool
	Diff  bool
}

func newStylesCmd(root *rootFlags) *cobra.Command {
	opts := stylesOptions{}

	cmd := &cobra.Command{
		Use:   "styles <file>",
		Short: "Preprocess a stylesheet the way elements inject it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transform := stylesTransform(opts.Scope, root.log)

			if !opts.Watch {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				processed := transform(string(data))
				if opts.Diff {
					processed = diff.Unified(string(data), processed, args[0], args[0]+" (processed)")
				}
				return writeStyles(cmd.OutOrStdout(), opts.Out, processed)
			}

			w, err := watch.New(args[0], watch.WithTransform(transform), watch.WithLogger(root.log))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for res := range w.Run(ctx) {
				if res.Err != nil {
					root.log.Error(res.Err, "stylesheet unavailable")
					continue
				}
				if err := writeStyles(cmd.OutOrStdout(), opts.Out, res.Stylesheet); err != nil {
					return err
				}
				root.log.With("path", res.Path).Info("stylesheet processed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Scope selectors to the wrapper with this scope id")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run whenever the file changes")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print a diff of the changes instead of the result")
	cmd.MarkFlagsMutuallyExclusive("watch", "diff")

	return cmd
}

func stylesTransform(scope string, log *logger.Logger) watch.Transform {
	return func(styles string) string {
		processed := style.Preprocess(styles)
		if scope == "" {
			return processed
		}
		scoped, err := style.Scope(processed, style.AttributeSelector(scope))
		if err != nil {
			log.Error(err, "styles left unscoped")
			return processed
		}
		return scoped
	}
}

func writeStyles(stdout io.Writer, out, stylesheet string) error {
	if out == "" {
		_, err := fmt.Fprintln(stdout, stylesheet)
		return err
	}
	return os.WriteFile(out, []byte(stylesheet+"\n"), 0o644)
}
