// Package cleanup removes build artifacts from an element project.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/elementkit/internal/logger"
)

// DefaultTargets are the paths removed when Options.Targets is empty.
var DefaultTargets = []string{
	"node_modules",
	"dist",
	"bin",
	"yarn.lock",
	"package-lock.json",
	"coverage.out",
}

// Options controls a cleanup run.
type Options struct {
	// Targets are paths relative to the project directory.
	Targets []string
	// DryRun reports what would be removed without touching the disk.
	DryRun bool
	Logger *logger.Logger
}

// Result lists the paths that were removed (or would be, in a dry run) and
// the targets that did not exist.
type Result struct {
	Removed []string
	Missing []string
	DryRun  bool
}

// Run removes the targets below dir. Missing targets are skipped. Targets
// resolving outside dir are rejected.
func Run(ctx context.Context, dir string, opts Options) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cleanup %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cleanup %s: not a directory", dir)
	}

	targets := opts.Targets
	if len(targets) == 0 {
		targets = DefaultTargets
	}

	res := &Result{DryRun: opts.DryRun}
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		path, err := resolve(dir, target)
		if err != nil {
			return res, err
		}

		log := opts.Logger.WithFields(map[string]any{"path": path, "dry_run": opts.DryRun})
		if _, err := os.Lstat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				res.Missing = append(res.Missing, target)
				continue
			}
			return res, fmt.Errorf("cleanup %s: %w", target, err)
		}

		if !opts.DryRun {
			if err := os.RemoveAll(path); err != nil {
				return res, fmt.Errorf("cleanup %s: %w", target, err)
			}
		}
		res.Removed = append(res.Removed, target)
		log.Info("removed")
	}
	return res, nil
}

func resolve(dir, target string) (string, error) {
	if filepath.IsAbs(target) {
		return "", fmt.Errorf("cleanup target %q must be relative", target)
	}
	path := filepath.Join(dir, target)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("cleanup target %q escapes %s", target, dir)
	}
	return path, nil
}
