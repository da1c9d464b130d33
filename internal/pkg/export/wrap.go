package export

import (
	"strings"
	"unicode/utf8"
)

// Wrap breaks text into lines of at most limit runes, splitting only at
// whitespace. A word longer than limit is placed on a line of its own, unbroken.
// Runs of whitespace collapse to single spaces.
func Wrap(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	lines := make([]string, 0, len(words))
	var current strings.Builder
	currentLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wordLen <= limit {
			current.WriteByte(' ')
			current.WriteString(word)
			currentLen += 1 + wordLen
			continue
		}
		if currentLen > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		current.WriteString(word)
		currentLen = wordLen
	}
	lines = append(lines, current.String())
	return lines
}

// WrapParagraphs wraps each newline-separated paragraph independently.
// Blank paragraphs between text are kept as empty lines.
func WrapParagraphs(text string, limit int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	paragraphs := strings.Split(strings.Trim(text, "\n"), "\n")

	var lines []string
	for _, para := range paragraphs {
		wrapped := Wrap(para, limit)
		if len(wrapped) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapped...)
	}
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
