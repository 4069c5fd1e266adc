package agent

import (
	"strings"
)

// ParseChanges extracts full-file replacements from a model reply written in
// the FILE/fence convention requested by BuildChangesPrompt. Text before the
// first marker is ignored, as are sections missing either fence. Changes are
// returned in reply order; repeated paths are not merged.
func ParseChanges(reply string, originals *FileSet, differ Differ) []Change {
	changes := []Change{}

	sections := strings.Split(reply, FileMarker)
	for _, section := range sections[1:] {
		path, content, ok := parseSection(section)
		if !ok {
			continue
		}

		original, exists := "", false
		if originals != nil {
			original, exists = originals.Get(path)
		}

		changes = append(changes, Change{
			Path:            path,
			OriginalContent: original,
			NewContent:      content,
			Diff:            differ.CreateDiff(path, content, original),
			IsNewFile:       !exists,
		})
	}

	return changes
}

func parseSection(section string) (path, content string, ok bool) {
	nl := strings.IndexByte(section, '\n')
	if nl == -1 {
		return "", "", false
	}

	path = strings.TrimSpace(section[:nl])
	if path == "" {
		return "", "", false
	}

	rest := section[nl+1:]
	open := strings.Index(rest, Fence)
	if open == -1 {
		return "", "", false
	}
	body := rest[open+len(Fence):]

	end := strings.Index(body, Fence)
	if end == -1 {
		return "", "", false
	}
	body = body[:end]

	// An info string on the opening fence line ("```python") belongs to the
	// delimiter, not the content.
	if i := strings.IndexByte(body, '\n'); i != -1 {
		if info := strings.TrimSpace(body[:i]); info != "" && !strings.ContainsAny(info, " \t") {
			body = body[i+1:]
		}
	}

	return path, strings.TrimSpace(body), true
}
