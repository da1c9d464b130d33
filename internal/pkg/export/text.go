package export

import (
	"strings"
	"unicode/utf8"
)

const textRule = "---------------------------"

// TextRenderer emits a plain UTF-8 document. Body text is not wrapped.
type TextRenderer struct{}

func (TextRenderer) Render(doc Document) ([]byte, error) {
	var b strings.Builder

	b.WriteString(doc.Title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", 39))
	b.WriteByte('\n')
	for _, line := range doc.Subtitles {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, section := range doc.Sections {
		b.WriteString("\n\n")
		b.WriteString(section.Heading)
		b.WriteByte('\n')
		b.WriteString(underline(section.Heading, '-'))
		b.WriteByte('\n')

		for i, block := range section.Blocks {
			switch block.Kind {
			case KindLabel:
				if i > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(block.Text)
				b.WriteString(":\n")
			case KindTip:
				if block.Icon != "" {
					b.WriteString(block.Icon)
					b.WriteByte(' ')
				}
				b.WriteString(block.Text)
				b.WriteByte('\n')
			default:
				b.WriteString(block.Text)
				b.WriteByte('\n')
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(textRule)
	for _, line := range doc.Footer {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	b.WriteByte('\n')

	return []byte(b.String()), nil
}

func underline(s string, ch rune) string {
	return strings.Repeat(string(ch), utf8.RuneCountInString(s))
}
