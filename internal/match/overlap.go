package match

import (
	"sort"

	"github.com/skillscan/skillscan/internal/catalog"
)

// Match is one candidate overlap between an own component and an
// external component of the same kind. Both sides are references into
// the catalogs they were found in, never copies.
type Match struct {
	Ours       *catalog.Component
	Theirs     *catalog.Component
	Similarity float64
	// SizeRatio is theirs.LineCount / max(ours.LineCount, 1): a
	// magnitude signal only, never used in ranking.
	SizeRatio float64
}

// FindOverlaps computes combined similarity for every same-kind pair
// and keeps those at or above threshold, sorted by similarity
// descending. Ties retain discovery order. No deduplication happens
// here; collapsing repeats is a presentation concern.
func FindOverlaps(ours, externals []catalog.Component, threshold float64) []Match {
	var matches []Match
	for i := range ours {
		for j := range externals {
			o, t := &ours[i], &externals[j]
			if o.Kind != t.Kind {
				continue
			}
			sim := CombinedSimilarity(*o, *t)
			if sim < threshold {
				continue
			}
			denom := o.LineCount
			if denom < 1 {
				denom = 1
			}
			matches = append(matches, Match{
				Ours:       o,
				Theirs:     t,
				Similarity: sim,
				SizeRatio:  float64(t.LineCount) / float64(denom),
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// FindUnmatched returns the external components whose best same-kind
// similarity against the own catalog is strictly below threshold and
// whose name does not exactly equal any own component's name. The
// name-equality escape hatch keeps a component whose keyword extraction
// degenerated to near-empty sets from showing up as a gap when it is
// trivially identical by name.
func FindUnmatched(externals, ours []catalog.Component, threshold float64) []catalog.Component {
	ourNames := make(map[string]struct{}, len(ours))
	for _, c := range ours {
		ourNames[c.Name] = struct{}{}
	}

	var gaps []catalog.Component
	for _, ext := range externals {
		best := 0.0
		for _, own := range ours {
			if own.Kind != ext.Kind {
				continue
			}
			if sim := CombinedSimilarity(own, ext); sim > best {
				best = sim
			}
		}
		if _, exact := ourNames[ext.Name]; best < threshold && !exact {
			gaps = append(gaps, ext)
		}
	}
	return gaps
}
