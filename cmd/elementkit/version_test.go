package main

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubBuild(t *testing.T, v, c, d string, bi *debug.BuildInfo) {
	t.Helper()

	originalVersion, originalCommit, originalDate := version, commit, date
	originalRead := readBuildInfo
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
		readBuildInfo = originalRead
	})

	version, commit, date = v, c, d
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	stubBuild(t, "1.2.3", "abcdef1", "2025-10-03", nil)

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())

	output := buf.String()
	require.Contains(t, output, "elementkit 1.2.3")
	require.Contains(t, output, "abcdef1")
	require.Contains(t, output, "2025-10-03")
	require.Contains(t, output, "manifest formats: toml, yaml")
}

func TestResolveBuildInfoFallsBackToModuleData(t *testing.T) {
	stubBuild(t, "dev", "none", "unknown", &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	require.Equal(t, buildInfo{Version: "v0.4.0", Commit: "0123456", Date: "2026-01-02T03:04:05Z"}, resolveBuildInfo())
}

func TestResolveBuildInfoKeepsLinkerValues(t *testing.T) {
	stubBuild(t, "1.0.0", "fffffff", "today", &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	})

	require.Equal(t, buildInfo{Version: "1.0.0", Commit: "fffffff", Date: "today"}, resolveBuildInfo())
}
