package extract

import (
	"strings"
	"unicode/utf8"
)

// decodePlain returns content as UTF-8 text; invalid sequences become U+FFFD.
func decodePlain(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "\uFFFD")
}
