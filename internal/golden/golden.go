// Package golden runs table-driven tests whose table lives in the file
// system: every input file under a root directory is one test case, and
// every expected output sits next to it with an extra extension.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a directory of test cases.
type Corpus struct {
	// Root is the test data directory, relative to the file that calls Run.
	Root string
	// Refresh names an environment variable holding a glob. Cases matching
	// it get their outputs rewritten instead of compared.
	Refresh string
	// Extension of the input files, without the dot.
	Extension string
	// Outputs expected for every case. A missing output file is expected
	// to be empty.
	Outputs []string

	// Test runs one case and returns one result per entry of Outputs.
	Test func(t *testing.T, path, text string) []string
}

func (c Corpus) Run(t *testing.T) {
	t.Helper()
	dir := callerDir()
	root := filepath.Join(dir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: failed to walk %s: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no .%s files found in %s", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing outputs because %s=%s", c.Refresh, refresh)
	}

	for _, p := range cases {
		name, _ := filepath.Rel(dir, p)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(p)
			if err != nil {
				t.Fatalf("golden: failed to read %s: %v", p, err)
			}
			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: got %d results for %d outputs", len(results), len(c.Outputs))
			}

			update := refresh != "" && matches(refresh, name)
			for i, ext := range c.Outputs {
				out := p + "." + ext
				if update {
					if err := write(out, results[i]); err != nil {
						t.Errorf("golden: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(out)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: failed to read %s: %v", out, err)
					continue
				}
				if diff := Diff(string(want), results[i]); diff != "" {
					t.Errorf("output mismatch for %s:\n%s", out, diff)
				}
			}
		})
	}
}

func matches(glob, name string) bool {
	ok, _ := doublestar.Match(glob, name)
	return ok
}

func write(path, content string) error {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Diff returns a colored unified diff of want and got, or "" when they are
// equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	added := color.New(color.FgHiGreen, color.Bold)
	removed := color.New(color.FgHiRed, color.Bold)
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine the calling test's directory")
	}
	return filepath.Dir(file)
}
