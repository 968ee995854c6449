package format

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	diffHeader  = color.New(color.Bold)
	diffHunk    = color.New(color.FgCyan)
	diffAdded   = color.New(color.FgGreen)
	diffRemoved = color.New(color.FgRed)
)

// Diff returns a unified diff turning original into formatted, or "" when
// they are equal. Lines are colored unless color.NoColor is set.
func Diff(path, original, formatted string) (string, error) {
	if original == formatted {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: path + ".orig",
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return "", err
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			lines[i] = diffHeader.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = diffHunk.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = diffAdded.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = diffRemoved.Sprint(line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
