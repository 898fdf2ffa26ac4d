// Package blocks extracts fenced code blocks from model output.
package blocks

import "strings"

const fence = "```"

// CodeBlock is one fenced block. Language is empty for an untagged fence.
type CodeBlock struct {
	Language string
	Body     string
}

// Extract returns the fenced blocks in text, in order of appearance.
//
// An opening fence is a line holding three backticks optionally followed by
// a letters-only language tag. A closing fence is a line holding exactly
// three backticks. The body is every line in between, each with its newline.
// Fences do not nest, and an opening fence with no closing fence is ignored.
func Extract(text string) []CodeBlock {
	lines := strings.Split(text, "\n")
	var found []CodeBlock

	for i := 0; i < len(lines); i++ {
		lang, ok := openingFence(lines[i])
		if !ok {
			continue
		}
		end := closingFence(lines, i+1)
		if end < 0 {
			continue
		}

		var body strings.Builder
		for _, line := range lines[i+1 : end] {
			body.WriteString(line)
			body.WriteByte('\n')
		}
		found = append(found, CodeBlock{Language: lang, Body: body.String()})
		i = end
	}

	return found
}

func openingFence(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, fence) {
		return "", false
	}
	tag := line[len(fence):]
	for _, r := range tag {
		if !isLetter(r) {
			return "", false
		}
	}
	return tag, true
}

// closingFence returns the index of the first closing fence at or after
// from, or -1.
func closingFence(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSuffix(lines[j], "\r") == fence {
			return j
		}
	}
	return -1
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
