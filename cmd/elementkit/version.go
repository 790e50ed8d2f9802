package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elementkit/internal/scaffold"
)

// Set with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildInfo prefers linker-provided values and falls back to the
// module and VCS data embedded by `go install`.
func resolveBuildInfo() buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: date}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && len(s.Value) >= 7 {
				info.Commit = s.Value[:7]
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := resolveBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "elementkit %s\ncommit: %s\nbuilt: %s\nmanifest formats: %s\n",
				info.Version, info.Commit, info.Date, strings.Join(scaffold.Languages(), ", "))
			return nil
		},
	}

	return cmd
}
