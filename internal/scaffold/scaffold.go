// Package scaffold creates new element projects from the embedded templates.
package scaffold

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	elementkiterrors "github.com/alexisbeaulieu97/elementkit/pkg/errors"
)

//go:embed all:templates
var templates embed.FS

// Placeholders substituted literally in the templated files.
const (
	PlaceholderTitle       = "%component-name-title%"
	PlaceholderSnake       = "%component-name-snake%"
	PlaceholderPascal      = "%component-name-pascal%"
	PlaceholderDescription = "%component-description%"
)

// Steps reported by ScaffoldError.
const (
	StepValidate = "validate"
	StepMkdir    = "mkdir"
	StepCopy     = "copy"
	StepReplace  = "replace"
	StepGit      = "git"
)

// Language variants, named after the manifest format they generate.
const (
	LanguageYAML = "yaml"
	LanguageTOML = "toml"
)

// templatedFiles lists, per language, the files whose placeholders are
// replaced. Every other template file is copied verbatim.
var templatedFiles = map[string][]string{
	LanguageYAML: {"public/index.html", "README.md", "element.yaml", "styles.css"},
	LanguageTOML: {"public/index.html", "README.md", "element.toml", "styles.css"},
}

// Languages returns the supported language variants.
func Languages() []string {
	langs := make([]string, 0, len(templatedFiles))
	for lang := range templatedFiles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Options describes the project to create.
type Options struct {
	// Parent is the directory the project directory is created in. Empty
	// means the working directory.
	Parent      string
	Directory   string
	Name        string
	Description string
	Language    string
	// Git initialises a repository and records an initial commit.
	Git    bool
	Author *object.Signature
	Logger *logger.Logger
}

// Result describes a created project.
type Result struct {
	Path   string
	Files  []string
	Names  Names
	Commit string
}

// Create validates opts, copies the template tree for the chosen language
// and substitutes the placeholders. Failed steps are not rolled back.
func Create(ctx context.Context, opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	log := opts.Logger.WithFields(map[string]any{"directory": opts.Directory, "language": opts.Language})

	parent := opts.Parent
	if parent == "" {
		parent = "."
	}
	projectDir, err := filepath.Abs(filepath.Join(parent, opts.Directory))
	if err != nil {
		return nil, elementkiterrors.NewScaffoldError(StepMkdir, "Could not create directory: "+opts.Directory, err)
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, elementkiterrors.NewScaffoldError(StepMkdir, "Could not create directory: "+projectDir, err)
	}
	log.Debug("project directory created")

	files, err := copyTemplate(ctx, opts.Language, projectDir)
	if err != nil {
		return nil, elementkiterrors.NewScaffoldError(StepCopy, "Could not copy template files", err)
	}

	names := NewNames(opts.Name)
	replacer := strings.NewReplacer(
		PlaceholderTitle, names.Title,
		PlaceholderSnake, names.Snake,
		PlaceholderPascal, names.Pascal,
		PlaceholderDescription, opts.Description,
	)
	for _, rel := range templatedFiles[opts.Language] {
		if err := replaceInFile(filepath.Join(projectDir, filepath.FromSlash(rel)), replacer); err != nil {
			return nil, elementkiterrors.NewScaffoldError(StepReplace, "Could not write component name in "+rel, err)
		}
	}

	res := &Result{Path: projectDir, Files: files, Names: names}
	if opts.Git {
		commit, err := initRepository(projectDir, opts.Author)
		if err != nil {
			return nil, elementkiterrors.NewScaffoldError(StepGit, "Could not initialise git repository", err)
		}
		res.Commit = commit
		log.WithFields(map[string]any{"commit": commit}).Debug("git repository initialised")
	}

	log.Info("project created")
	return res, nil
}

func validate(opts Options) error {
	if !ValidDirectory(opts.Directory) {
		return elementkiterrors.NewScaffoldError(StepValidate, "Please enter a valid directory name", fmt.Errorf("invalid directory %q", opts.Directory))
	}
	if !ValidName(opts.Name) {
		return elementkiterrors.NewScaffoldError(StepValidate, "Name must be snake-case and must contain at least two words", fmt.Errorf("invalid name %q", opts.Name))
	}
	if _, ok := templatedFiles[opts.Language]; !ok {
		return elementkiterrors.NewScaffoldError(StepValidate, "Unknown language", fmt.Errorf("language %q is not one of %s", opts.Language, strings.Join(Languages(), ", ")))
	}
	return nil
}

// copyTemplate writes the embedded tree for lang below dst and returns the
// copied files as slash-separated relative paths.
func copyTemplate(ctx context.Context, lang, dst string) ([]string, error) {
	root := path.Join("templates", lang)
	var files []string

	err := fs.WalkDir(templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := templates.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func replaceInFile(path string, replacer *strings.Replacer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(replacer.Replace(string(data))), info.Mode())
}

func initRepository(dir string, author *object.Signature) (string, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", err
	}

	if author == nil {
		author = &object.Signature{Name: "elementkit", Email: "elementkit@localhost"}
	}
	sig := *author
	if sig.When.IsZero() {
		sig.When = time.Now()
	}

	hash, err := wt.Commit("Initial commit", &git.CommitOptions{Author: &sig})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}
