package agent

import (
	"strings"
)

// fileExtensions is the closed set of suffixes that mark a token as a file name.
var fileExtensions = []string{
	".py", ".js", ".ts", ".java", ".c", ".cpp", ".h",
	".html", ".css", ".md", ".json", ".yml", ".yaml",
}

var functionMarkers = []string{"function", "method"}

type taskRule struct {
	task     TaskType
	keywords []string
}

// Evaluated in order; the first rule with a keyword contained in the
// lower-cased instruction wins.
var taskRules = []taskRule{
	{TaskRefactor, []string{"refactor", "restructure", "rewrite", "improve"}},
	{TaskAddFeature, []string{"add", "create", "implement", "new"}},
	{TaskFixBug, []string{"fix", "resolve", "debug", "issue", "bug"}},
	{TaskExplain, []string{"explain", "understand", "interpret"}},
	{TaskDocument, []string{"document", "documentation", "comment"}},
}

// Classify maps an instruction to a task type and the entities it mentions.
// Extraction is a token heuristic, not a parser: tokens keep their original
// case and punctuation.
func Classify(instruction string) (TaskType, Entities) {
	var entities Entities

	words := strings.Fields(instruction)
	for i, w := range words {
		if hasFileExtension(w) {
			entities.Files = append(entities.Files, w)
		}
		if i > 0 && isFunctionMarker(w) {
			entities.Functions = append(entities.Functions, words[i-1])
		}
	}

	lower := strings.ToLower(instruction)
	for _, r := range taskRules {
		if containsAny(lower, r.keywords) {
			return r.task, entities
		}
	}

	return TaskUnknown, entities
}

func hasFileExtension(word string) bool {
	w := strings.ToLower(word)
	for _, ext := range fileExtensions {
		if strings.HasSuffix(w, ext) {
			return true
		}
	}
	return false
}

func isFunctionMarker(word string) bool {
	w := strings.ToLower(word)
	for _, m := range functionMarkers {
		if w == m {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// IsSourceFile reports whether name ends in one of the recognised source
// extensions.
func IsSourceFile(name string) bool {
	return hasFileExtension(name)
}
