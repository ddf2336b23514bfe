// Package match scores component pairs and finds overlaps and gaps
// between an own catalog and external ones.
package match

import (
	"strings"

	"github.com/skillscan/skillscan/internal/catalog"
)

// Name overlap is a stronger signal of "this is the same component"
// than keyword overlap, which can arise from generic domain vocabulary.
const (
	nameWeight    = 0.6
	keywordWeight = 0.4
)

// NameSimilarity is the Jaccard index over the lowercase word sets of
// two names split on hyphen, underscore and whitespace. Either side
// empty scores 0.0.
func NameSimilarity(a, b string) float64 {
	return jaccard(nameWords(a), nameWords(b))
}

// KeywordSimilarity is the Jaccard index over two keyword sets. Either
// side empty scores 0.0; an empty keyword set must not be treated as a
// trivial match.
func KeywordSimilarity(a, b []string) float64 {
	return jaccard(toSet(a), toSet(b))
}

// CombinedSimilarity fuses name and keyword similarity with the fixed
// 0.6/0.4 weighting. Exactly equal name strings force the name
// sub-score to 1.0: identity must never score below a token-level
// coincidence.
func CombinedSimilarity(ours, theirs catalog.Component) float64 {
	ns := NameSimilarity(ours.Name, theirs.Name)
	if ours.Name == theirs.Name {
		ns = 1.0
	}
	ks := KeywordSimilarity(ours.Keywords, theirs.Keywords)
	return nameWeight*ns + keywordWeight*ks
}

func nameWords(name string) map[string]struct{} {
	out := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '\t'
	})
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
