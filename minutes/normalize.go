package minutes

import (
	"regexp"
	"strings"
)

// MinMinutesLength is the minimum normalized length worth sending to the AI
// service; anything shorter is treated as effectively empty.
const MinMinutesLength = 20

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	spaceRun     = regexp.MustCompile(`[ \t]+`)
)

// Normalize converts text to canonical minutes markdown: \n line endings, at
// most one blank line between paragraphs, no outer whitespace. Normalize is
// idempotent.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	return multiNewline.ReplaceAllString(text, "\n\n")
}

// collapseSpaces collapses runs of spaces and tabs to a single space,
// preserving newlines.
func collapseSpaces(text string) string {
	return spaceRun.ReplaceAllString(text, " ")
}

// TooShort reports whether normalized minutes fall below MinMinutesLength.
func TooShort(text string) bool {
	return len(text) < MinMinutesLength
}
