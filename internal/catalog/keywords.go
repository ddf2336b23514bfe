package catalog

import (
	"regexp"
	"sort"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`(?m)^## (.+)$`)
	triggerRe = regexp.MustCompile(`(?i)(?:trigger|keyword|pattern)s?[:\s]+(.+)`)
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]`)
)

// ExtractKeywords derives a sorted, deduplicated set of lowercase
// keywords for a component from three sources: the words of its name,
// the text of level-2 headings, and comma-separated tokens following
// trigger/keyword/pattern labels.
//
// No stemming, no stopword removal, no I/O. The downstream Jaccard
// metric tolerates the noise.
func ExtractKeywords(text, name string) []string {
	seen := make(map[string]struct{})

	for _, part := range splitNameWords(name) {
		if len(part) > 2 {
			seen[strings.ToLower(part)] = struct{}{}
		}
	}

	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		for _, word := range strings.Fields(strings.ToLower(m[1])) {
			word = nonAlnum.ReplaceAllString(word, "")
			if len(word) > 3 {
				seen[word] = struct{}{}
			}
		}
	}

	for _, m := range triggerRe.FindAllStringSubmatch(text, -1) {
		for _, tok := range strings.Split(m[1], ",") {
			tok = strings.ToLower(strings.Trim(strings.TrimSpace(tok), `"'`))
			if len(tok) > 2 && len(tok) < 30 {
				seen[tok] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// splitNameWords splits a component name on hyphen, underscore and
// whitespace.
func splitNameWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '\t'
	})
}
