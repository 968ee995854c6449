package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gqlfmt/cache"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// workdir switches to an empty directory holding files and returns its path.
func workdir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFormat(t *testing.T) {
	dir := workdir(t, map[string]string{
		"good.graphql": "{\n  a\n}\n",
		"ugly.graphql": "{ b }",
	})

	_, _, err := execute(t, "format", "--no-cache", dir)
	require.NoError(t, err)
	assert.Equal(t, "{\n  b\n}\n", read(t, filepath.Join(dir, "ugly.graphql")))
	assert.Equal(t, "{\n  a\n}\n", read(t, filepath.Join(dir, "good.graphql")))
}

func TestFormatWithoutSubcommand(t *testing.T) {
	dir := workdir(t, map[string]string{"ugly.graphql": "{ b }"})
	path := filepath.Join(dir, "ugly.graphql")

	out, _, err := execute(t, "--no-cache", "--stdout", path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  b\n}\n", out)
	assert.Equal(t, "{ b }", read(t, path), "--stdout leaves files alone")

	// the configured paths default to the working directory
	_, _, err = execute(t, "--no-cache")
	require.NoError(t, err)
	assert.Equal(t, "{\n  b\n}\n", read(t, path))
}

func TestFormatDiff(t *testing.T) {
	dir := workdir(t, map[string]string{"ugly.graphql": "{ b }"})
	path := filepath.Join(dir, "ugly.graphql")

	out, _, err := execute(t, "format", "--no-cache", "--diff", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- "+path+".orig")
	assert.Contains(t, out, "\n-{ b }")
	assert.Contains(t, out, "\n+  b\n")
	assert.Equal(t, "{ b }", read(t, path))
}

func TestFormatSyntaxError(t *testing.T) {
	dir := workdir(t, map[string]string{
		"bad.graphql":  "{ $ }",
		"ugly.graphql": "{ b }",
	})

	_, errOut, err := execute(t, "format", "--no-cache", dir)
	assert.EqualError(t, err, "1 file(s) could not be formatted")
	assert.Contains(t, errOut, "bad.graphql: Unexpected token: $ (line 1, column 3)")
	assert.Equal(t, "{\n  b\n}\n", read(t, filepath.Join(dir, "ugly.graphql")), "other files are still formatted")
}

func TestCheck(t *testing.T) {
	dir := workdir(t, map[string]string{
		"good.graphql": "{\n  a\n}\n",
		"ugly.graphql": "{ b }",
	})

	out, _, err := execute(t, "check", "--no-cache", dir)
	assert.EqualError(t, err, "1 file(s) are not formatted")
	assert.Equal(t, filepath.Join(dir, "ugly.graphql")+"\n", out)
	assert.Equal(t, "{ b }", read(t, filepath.Join(dir, "ugly.graphql")))

	out, _, err = execute(t, "check", "--no-cache", filepath.Join(dir, "good.graphql"))
	assert.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = execute(t, "check", "--no-cache", filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigFlag(t *testing.T) {
	dir := workdir(t, map[string]string{
		"ugly.graphql": "{ a b }",
		"custom.yaml":  "format:\n  pretty: false\n",
		"broken.yaml":  "format:\n  maxLineLength: 0\n",
	})

	out, _, err := execute(t, "--config", filepath.Join(dir, "custom.yaml"), "--no-cache", "--stdout", "ugly.graphql")
	require.NoError(t, err)
	assert.Equal(t, "{a,b}", out)

	_, _, err = execute(t, "--config", filepath.Join(dir, "broken.yaml"), "--no-cache", "ugly.graphql")
	assert.ErrorContains(t, err, "failed to load config")
}

func TestTokens(t *testing.T) {
	workdir(t, map[string]string{
		"q.graphql":   "{ a } # c",
		"bad.graphql": "{ ? }",
	})

	out, _, err := execute(t, "tokens", "q.graphql")
	require.NoError(t, err)
	assert.Equal(t, "PUNCTUATOR({)@1:1\nNAME(\"a\")@1:3\nPUNCTUATOR(})@1:5\nINLINE_COMMENT(\"c\")@1:7\n", out)

	_, _, err = execute(t, "tokens", "bad.graphql")
	assert.ErrorContains(t, err, "bad.graphql:")

	_, _, err = execute(t, "tokens")
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	dir := workdir(t, nil)

	out, _, err := execute(t, "init", "toml")
	require.NoError(t, err)
	assert.Equal(t, "Configuration file created: gqlfmt.toml\n", out)
	assert.FileExists(t, filepath.Join(dir, "gqlfmt.toml"))

	_, _, err = execute(t, "init", "toml")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "init", "toml", "--force")
	assert.NoError(t, err)

	_, _, err = execute(t, "init", "ini")
	assert.ErrorContains(t, err, "unsupported extension ini")

	_, _, err = execute(t, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gqlfmt.yaml"))
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `^gqlfmt \S+\n$`, out)
}

func TestFormatUsesCache(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CACHE_HOME is not consulted on windows")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := workdir(t, map[string]string{
		"good.graphql": "{\n  a\n}\n",
		"ugly.graphql": "{ b }",
	})

	_, _, err := execute(t, "format", dir)
	require.NoError(t, err)

	c, err := cache.OpenDefault()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestSaveCachePrunes(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()

	c, err := cache.Open(dir)
	require.NoError(t, err)
	c.Remember("a.graphql", []byte("{a}"), "f")

	saveCache(c, 0)
	reopened, err := cache.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len(), "a zero age keeps every entry")

	time.Sleep(5 * time.Millisecond)
	saveCache(c, time.Millisecond)
	reopened, err = cache.Open(dir)
	require.NoError(t, err)
	assert.Zero(t, reopened.Len())

	saveCache(nil, time.Hour)
}
