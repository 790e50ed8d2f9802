package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/elementkit/internal/scaffold"
	"github.com/alexisbeaulieu97/elementkit/internal/tui"
)

type newOptions struct {
	Directory   string
	Name        string
	Description string
	Language    string
	Git         bool
}

// stdinIsTerminal decides whether missing answers are asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newNewCmd(root *rootFlags) *cobra.Command {
	opts := newOptions{}

	cmd := &cobra.Command{
		Use:   "new [directory]",
		Short: "Create a new element project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Directory = args[0]
			}

			if opts.Directory == "" || opts.Name == "" {
				if stdinIsTerminal() {
					answers, err := tui.RunWizard(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), tui.Answers{
						Directory:   opts.Directory,
						Name:        opts.Name,
						Description: opts.Description,
						Language:    opts.Language,
					})
					if err != nil {
						return err
					}
					opts.Directory = answers.Directory
					opts.Name = answers.Name
					opts.Description = answers.Description
					opts.Language = answers.Language
				} else if opts.Directory == "" {
					return fmt.Errorf("a directory is required when not running in a terminal")
				}
			}
			if opts.Name == "" {
				opts.Name = scaffold.DefaultName(opts.Directory)
			}

			res, err := scaffold.Create(cmd.Context(), scaffold.Options{
				Directory:   opts.Directory,
				Name:        opts.Name,
				Description: opts.Description,
				Language:    opts.Language,
				Git:         opts.Git,
				Logger:      root.log,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, file := range res.Files {
				fmt.Fprintf(out, " %s %s\n", tui.StatusIcon(tui.StatusDone), filepath.ToSlash(filepath.Join(opts.Directory, file)))
			}
			if res.Commit != "" {
				fmt.Fprintf(out, " %s initial commit %s\n", tui.StatusIcon(tui.StatusDone), res.Commit[:7])
			}
			manifest := "element." + opts.Language
			card := tui.Card{
				Title:       fmt.Sprintf("Your element <%s> is ready!", res.Names.Snake),
				Description: opts.Description,
				Metadata: map[string]string{
					"directory": res.Path,
					"manifest":  manifest,
					"tag":       res.Names.Snake,
				},
				Actions: []string{
					"cd " + opts.Directory,
					"elementkit render --manifest " + manifest + " --page public/index.html",
				},
			}
			fmt.Fprintf(out, "\n%s\n", card.View())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Component name, hyphenated with at least two words")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Component description")
	cmd.Flags().StringVar(&opts.Language, "language", scaffold.LanguageYAML, "Manifest format: yaml or toml")
	cmd.Flags().BoolVar(&opts.Git, "git", false, "Initialise a git repository with an initial commit")

	return cmd
}
