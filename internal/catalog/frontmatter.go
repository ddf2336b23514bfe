package catalog

import "strings"

// ParseFrontmatter extracts simple key: value pairs from a leading
// metadata block delimited by --- markers. Blank lines, comment lines
// and lines without a colon are skipped. A missing or unterminated
// block yields an empty map; many documents have no metadata and that
// is not an error.
//
// This is a best-effort signal extractor, not a structured-data parser:
// nested structures, lists and multi-line scalars are deliberately not
// supported and simply yield a partial mapping.
func ParseFrontmatter(content string) map[string]string {
	out := make(map[string]string)

	s := strings.TrimPrefix(content, "\ufeff")
	first, rest, found := strings.Cut(s, "\n")
	if !found || strings.TrimRight(first, " \t\r") != "---" {
		return out
	}

	// Both markers must sit on their own lines; a --- embedded in a
	// value line does not close the block.
	var block []string
	closed := false
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimRight(line, " \t\r") == "---" {
			closed = true
			break
		}
		block = append(block, line)
	}
	if !closed {
		return out
	}

	for _, line := range block {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = unquote(strings.TrimSpace(val))
	}
	return out
}

// unquote strips one layer of surrounding quotes, all-double or
// all-single only.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
