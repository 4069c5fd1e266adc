package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/IlliquidAsset/deepcoder/agent"
)

const contextLines = 3

var _ agent.Differ = &Differ{}

type Differ struct{}

func New() *Differ {
	return &Differ{}
}

func (d *Differ) CreateDiff(path, newContent, originalContent string) string {
	return Unified(path, originalContent, newContent)
}

// Unified renders a unified diff with a/ and b/ headers. Identical inputs
// give an empty string.
func Unified(path, original, updated string) string {
	ud := difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(updated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	}

	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return ""
	}
	return out
}

// splitLines keeps line endings so the diff reproduces the input exactly.
// A last line without a newline gets one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

// Stats counts added and removed lines between two versions.
func Stats(original, updated string) (added, removed int) {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(original, updated)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		}
	}
	return added, removed
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

var (
	addStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).TabWidth(lipgloss.NoTabConversion)
	delStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).TabWidth(lipgloss.NoTabConversion)
	hunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).TabWidth(lipgloss.NoTabConversion)
)

// Colorize paints additions green, deletions red and hunk headers cyan.
// Colours are dropped when the output is not a terminal.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = delStyle.Render(line)
		case strings.HasPrefix(line, "@"):
			lines[i] = hunkStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
