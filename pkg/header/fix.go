package header

import (
	"strings"

	"github.com/headerguard/headerguard/pkg/language"
)

// BuildFixed returns the repaired content for a non-compliant file: the
// rendered header inserted at the start, or after the shebang line when one
// is present. A stale header block in the same comment style is replaced
// rather than stacked under the new one.
//
// The result is deterministic, so running fix over already-fixed content
// yields byte-identical output.
func BuildFixed(content []byte, renderedHeader string, style language.Style) []byte {
	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	var out strings.Builder

	idx := 0
	if lines[0] != "" && strings.HasPrefix(lines[0], "#!") {
		out.WriteString(lines[0])
		out.WriteByte('\n')
		idx = 1
	}

	idx = skipStaleHeader(lines, idx, style)

	out.WriteString(renderedHeader)

	body := strings.Join(lines[idx:], "\n")
	if body != "" && !strings.HasPrefix(body, "\n") {
		// separator line between header and body
		out.WriteByte('\n')
	}
	out.WriteString(body)

	return []byte(out.String())
}

// skipStaleHeader returns the index of the first line past an existing
// license block at start, or start itself when none is recognized. A block
// is recognized by its comment delimiters and the word Copyright, matching
// what this tool itself writes.
func skipStaleHeader(lines []string, start int, style language.Style) int {
	if start >= len(lines) {
		return start
	}

	end := start
	switch {
	case style.BlockStart != "":
		if strings.TrimRight(lines[start], " \t") != style.BlockStart {
			return start
		}
		found := false
		for i := start + 1; i < len(lines); i++ {
			if strings.TrimRight(lines[i], " \t") == style.BlockEnd {
				end = i + 1
				found = true
				break
			}
		}
		if !found {
			// unterminated block, leave the file alone
			return start
		}
		if !strings.Contains(strings.Join(lines[start:end], "\n"), "Copyright") {
			// leading comment is not a license block
			return start
		}

	case style.LinePrefix != "":
		first := strings.ReplaceAll(lines[start], " ", "")
		if !strings.HasPrefix(first, style.LinePrefix+"Copyright") {
			return start
		}
		end = start
		for end < len(lines) && strings.HasPrefix(strings.TrimRight(lines[end], " \t"), style.LinePrefix) {
			end++
		}

	default:
		return start
	}

	// swallow a single separator line left behind by the old header
	if end < len(lines) && strings.TrimRight(lines[end], " \t") == "" {
		end++
	}
	return end
}
