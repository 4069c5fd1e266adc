package agent

import (
	"strings"
)

const (
	// FileMarker opens a file section in a code-generation reply.
	FileMarker = "FILE: "
	// Fence delimits the full file content that follows a FileMarker line.
	Fence = "```"
)

const changesPreamble = `You are DeepCoder, an expert AI coding assistant that helps modify code based on user instructions.

TASK TYPE: `

const changesInstructions = `
Based on the instruction and the code provided, generate the necessary changes.
Your response should be structured as follows:

For each file that needs modifications:

FILE: <file_path>
` + "```" + `
<entire new file content>
` + "```" + `

Explain your changes briefly after each file.

Remember:
1. Only include files that need modifications
2. Always provide the ENTIRE new file content, not just the changes
3. Include sensible code comments where appropriate
4. Ensure the code is correct, idiomatic, and follows best practices
`

const explanationPreamble = `You are DeepCoder, an expert AI coding assistant that helps explain code.
`

const explanationInstructions = `
Based on the instruction and the code provided, provide a detailed explanation.
Focus on clarity, accuracy, and providing insights that would be helpful to the user.
`

// BuildChangesPrompt renders the code-generation prompt. The FILE/fence
// convention it requests is what ParseChanges reads back.
func BuildChangesPrompt(taskType TaskType, instruction string, files *FileSet) string {
	var b strings.Builder
	b.WriteString(changesPreamble)
	b.WriteString(string(taskType))
	b.WriteString("\n\nINSTRUCTION: ")
	b.WriteString(instruction)
	b.WriteString("\n\nRELEVANT FILES:\n")
	writeFileBlocks(&b, files)
	b.WriteString(changesInstructions)
	return b.String()
}

func BuildExplanationPrompt(instruction string, files *FileSet) string {
	var b strings.Builder
	b.WriteString(explanationPreamble)
	b.WriteString("\nINSTRUCTION: ")
	b.WriteString(instruction)
	b.WriteString("\n\nRELEVANT FILES:\n")
	writeFileBlocks(&b, files)
	b.WriteString(explanationInstructions)
	return b.String()
}

func writeFileBlocks(b *strings.Builder, files *FileSet) {
	if files == nil {
		return
	}
	for _, path := range files.Paths() {
		content, _ := files.Get(path)
		b.WriteString("\n--- ")
		b.WriteString(path)
		b.WriteString(" ---\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
}
