package format_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gqlfmt/cache"
	"gqlfmt/format"
	"gqlfmt/gqlerror"
	"gqlfmt/printer"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type testConfig struct {
	name     string
	input    string
	expected string
}

func TestPrettify(t *testing.T) {
	tests := []testConfig{
		{
			name:     "shorthand query",
			input:    "{ a }",
			expected: "{\n  a\n}\n",
		},
		{
			name:     "named query",
			input:    "query Q { a b }",
			expected: "query Q {\n  a\n  b\n}\n",
		},
		{
			name:     "comments are kept",
			input:    "{\n  # note\n  a\n}",
			expected: "{\n  # note\n  a\n}\n",
		},
		{
			name:     "empty block string",
			input:    `{ a(s: """""") }`,
			expected: "{\n  a(s: \"\"\"\"\"\")\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted, err := format.Prettify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatted)
		})
	}
}

func TestPrettifyError(t *testing.T) {
	_, err := format.Prettify("{ $ }")
	require.Error(t, err)
	assert.ErrorIs(t, err, gqlerror.ErrUnexpected)
	assert.Contains(t, err.Error(), "$")

	_, err = format.Prettify("input I { f: Int = $v }")
	assert.ErrorIs(t, err, gqlerror.ErrUnexpected)
}

func TestSource(t *testing.T) {
	formatted, err := format.Source("{ a }", printer.Options{})
	require.NoError(t, err)
	assert.Equal(t, "{a}", formatted)
}

func TestDiff(t *testing.T) {
	diff, err := format.Diff("a.graphql", "{a}", "{\n  a\n}\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a.graphql.orig")
	assert.Contains(t, diff, "+++ a.graphql")
	assert.Contains(t, diff, "\n-{a}\n")
	assert.Contains(t, diff, "\n+  a\n")

	diff, err = format.Diff("a.graphql", "{a}", "{a}")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

const formatted = "{\n  a\n}\n"

func workspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"good.graphql":         formatted,
		"ugly.graphql":         "{ b }",
		"bad.graphql":          "{ $ }",
		"skip/ignored.graphql": "{ c }",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestProcessPaths(t *testing.T) {
	root := workspace(t)
	opts := format.Options{Printer: format.PrettifyOptions, Exclude: []string{"skip/**"}}

	var seen []string
	results, err := format.ProcessPaths(context.Background(), nil, []string{root}, opts, func(r format.Result) error {
		seen = append(seen, filepath.Base(r.Path))
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bad.graphql", "good.graphql", "ugly.graphql"}, seen)
	require.Len(t, results, 3)

	bad, good, ugly := results[0], results[1], results[2]
	assert.Equal(t, filepath.Join(root, "bad.graphql"), bad.Path)
	assert.ErrorIs(t, bad.Err, gqlerror.ErrUnexpected)

	assert.NoError(t, good.Err)
	assert.False(t, good.Changed)

	assert.NoError(t, ugly.Err)
	assert.True(t, ugly.Changed)
	assert.Equal(t, "{\n  b\n}\n", ugly.Formatted)

	content, err := os.ReadFile(ugly.Path)
	require.NoError(t, err)
	assert.Equal(t, "{ b }", string(content), "files are only written with Write")
}

func TestProcessPathsWrite(t *testing.T) {
	root := workspace(t)
	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	var progress bytes.Buffer
	opts := format.Options{
		Printer:  format.PrettifyOptions,
		Exclude:  []string{"skip"},
		Write:    true,
		Cache:    c,
		Progress: &progress,
		Workers:  2,
	}

	results, err := format.ProcessPaths(context.Background(), nil, []string{root}, opts, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotZero(t, progress.Len())

	content, err := os.ReadFile(filepath.Join(root, "ugly.graphql"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  b\n}\n", string(content))
	assert.Equal(t, 2, c.Len())

	results, err = format.ProcessPaths(context.Background(), nil, []string{root}, opts, nil)
	require.NoError(t, err)
	assert.False(t, results[0].Cached, "files with errors are not cached")
	assert.True(t, results[1].Cached)
	assert.True(t, results[2].Cached)
}

func TestProcessPathsStops(t *testing.T) {
	root := workspace(t)
	stop := errors.New("stop")

	_, err := format.ProcessPaths(context.Background(), nil, []string{root}, format.Options{Workers: 1}, func(format.Result) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = format.ProcessPaths(ctx, nil, []string{root}, format.Options{}, nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = format.ProcessPaths(context.Background(), nil, []string{filepath.Join(root, "missing")}, format.Options{}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher(t *testing.T) {
	root := workspace(t)
	opts := format.Options{Printer: format.PrettifyOptions, Write: true}

	w, err := format.NewWatcher(nil, []string{root}, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mutex sync.Mutex
	var seen []format.Result
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(r format.Result) error {
			mutex.Lock()
			defer mutex.Unlock()
			seen = append(seen, r)
			return nil
		})
	}()

	path := filepath.Join(root, "skip", "ignored.graphql")
	require.NoError(t, os.WriteFile(path, []byte("query { x }"), 0o644))

	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(path)
		return err == nil && string(content) == "{\n  x\n}\n"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mutex.Lock()
	defer mutex.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, path, seen[0].Path)
	assert.True(t, seen[0].Changed)
}

func TestWatcherForgetsRemovedFiles(t *testing.T) {
	root := workspace(t)
	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(root, "good.graphql")
	c.Remember(path, []byte(formatted), cache.Fingerprint(format.PrettifyOptions))
	require.Equal(t, 1, c.Len())

	w, err := format.NewWatcher(nil, []string{root}, format.Options{Printer: format.PrettifyOptions, Write: true, Cache: c})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, nil) }()

	require.NoError(t, os.Remove(path))
	assert.Eventually(t, func() bool { return c.Len() == 0 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
