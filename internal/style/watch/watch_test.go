package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func next(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case res, ok := <-results:
		require.True(t, ok, "results channel closed")
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
		return Result{}
	}
}

func TestWatcherEmitsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.css")
	require.NoError(t, os.WriteFile(path, []byte("--c: red;\np { color: var(--c); }"), 0o644))

	w, err := New(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := w.Run(ctx)

	first := next(t, results)
	require.NoError(t, first.Err)
	require.Equal(t, w.Path(), first.Path)
	require.Contains(t, first.Stylesheet, "p { color: red; }")

	require.NoError(t, os.WriteFile(path, []byte("--c: blue;\np { color: var(--c); }"), 0o644))
	for {
		res := next(t, results)
		require.NoError(t, res.Err)
		if strings.Contains(res.Stylesheet, "p { color: blue; }") {
			break
		}
	}

	cancel()
	for range results {
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.css")
	require.NoError(t, os.WriteFile(path, []byte("p { color: red; }"), 0o644))

	calls := 0
	w, err := New(path, WithTransform(func(s string) string {
		calls++
		return strings.ToUpper(s)
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	results := w.Run(ctx)
	require.Equal(t, "P { COLOR: RED; }", next(t, results).Stylesheet)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.css"), []byte("x"), 0o644))
	select {
	case res := <-results:
		t.Fatalf("unexpected result %+v", res)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	_, open := <-results
	require.False(t, open)
	require.Equal(t, 1, calls)
}

func TestNewRejectsMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.css"))
	require.Error(t, err)
}
