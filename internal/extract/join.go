package extract

import "strings"

// JoinPages concatenates page texts in order with no separator.
func JoinPages(pages []string) string {
	return strings.Join(pages, "")
}

// JoinPagesBlankLine appends each non-empty page followed by a blank line.
// Empty pages contribute nothing, so they never add padding.
func JoinPagesBlankLine(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	return b.String()
}

// JoinParagraphs joins paragraph texts with newlines.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n")
}
