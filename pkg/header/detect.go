package header

import (
	"regexp"
	"strings"
)

var yearRangeRe = regexp.MustCompile(`(\d{4})-\d{4}`)

// IsCompliant reports whether content already starts with the rendered
// header. The header must appear at the very start of the file, or
// immediately after an optional shebang line so executable scripts stay
// runnable. Line endings and trailing whitespace are normalized before
// comparison; a content shorter than the header is simply non-compliant,
// never an error.
func IsCompliant(content []byte, renderedHeader string) bool {
	contentLines := normalizeLines(string(content))
	headerLines := normalizeLines(renderedHeader)

	if len(headerLines) == 0 {
		return true
	}

	offset := 0
	if len(contentLines) > 0 && strings.HasPrefix(contentLines[0], "#!") {
		offset = 1
	}

	if len(contentLines)-offset < len(headerLines) {
		return false
	}
	for i, want := range headerLines {
		if !lineEqual(want, contentLines[offset+i]) {
			return false
		}
	}
	return true
}

// HasShebang reports whether content starts with a "#!" interpreter line.
func HasShebang(content []byte) bool {
	return strings.HasPrefix(string(content), "#!")
}

// normalizeLines splits content into lines with CRLF collapsed to LF and
// trailing whitespace trimmed per line. A trailing newline does not
// produce a final empty element.
func normalizeLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// lineEqual compares a header line against a content line, additionally
// accepting a YYYY-YYYY range in the content where the header carries a
// single inception year.
func lineEqual(want, got string) bool {
	if want == got {
		return true
	}
	collapsed := yearRangeRe.ReplaceAllString(got, "$1")
	return want == collapsed
}
