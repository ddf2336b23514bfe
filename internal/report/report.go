// Package report renders catalogs, matches and gaps into a single
// markdown comparison document.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skillscan/skillscan/internal/catalog"
	"github.com/skillscan/skillscan/internal/match"
)

// HighSimilarity is the cutoff above which a match is flagged as
// likely the same component.
const HighSimilarity = 0.50

// Options control report rendering. An empty FilterKind renders
// everything; a set one is applied uniformly to every section.
type Options struct {
	FilterKind  catalog.Kind
	GeneratedAt time.Time
}

// Stats are the aggregate counts from one generated report. The
// console summary is printed from the same numbers that appear in the
// report's statistics section.
type Stats struct {
	OwnSkills      int
	OwnAgents      int
	ExternalSkills int
	ExternalAgents int
	Matches        int
	HighSimilarity int
	Gaps           int
}

var titleCase = cases.Title(language.English)

// Generate renders the full comparison document and returns it with the
// aggregate counts.
func Generate(own []catalog.Component, externalByRepo map[string][]catalog.Component, matches []match.Match, unmatched []catalog.Component, opts Options) (string, Stats) {
	var b strings.Builder
	var stats Stats

	ownFiltered := filterComponents(own, opts.FilterKind)
	stats.OwnSkills = countKind(ownFiltered, catalog.KindSkill)
	stats.OwnAgents = countKind(ownFiltered, catalog.KindAgent)

	fmt.Fprintf(&b, "# Repo Comparison Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", opts.GeneratedAt.Format("2006-01-02 15:04"))

	writeInventory(&b, ownFiltered)
	writeExternalSummary(&b, externalByRepo, opts.FilterKind, &stats)

	filteredMatches := filterMatches(matches, opts.FilterKind)
	stats.Matches = len(filteredMatches)
	writeMatchTable(&b, filteredMatches)

	highMatches := highOnly(filteredMatches)
	stats.HighSimilarity = len(highMatches)
	writeHighMatches(&b, highMatches)

	filteredUnmatched := filterComponents(unmatched, opts.FilterKind)
	stats.Gaps = len(filteredUnmatched)
	writeUnmatched(&b, filteredUnmatched)

	fmt.Fprintf(&b, "## Statistics\n\n")
	fmt.Fprintf(&b, "- Own components: %d\n", len(ownFiltered))
	fmt.Fprintf(&b, "- External components scanned: %d\n", stats.ExternalSkills+stats.ExternalAgents)
	fmt.Fprintf(&b, "- Overlapping matches: %d\n", stats.Matches)
	fmt.Fprintf(&b, "- High-similarity (>=%.2f): %d\n", HighSimilarity, stats.HighSimilarity)
	fmt.Fprintf(&b, "- Unmatched external: %d\n", stats.Gaps)

	return b.String(), stats
}

// GroupByRepo buckets components by their top-level repo label, so
// "superpowers/growth" counts toward "superpowers".
func GroupByRepo(components []catalog.Component) map[string][]catalog.Component {
	out := make(map[string][]catalog.Component)
	for _, c := range components {
		key := c.Repo
		if i := strings.IndexByte(key, '/'); i >= 0 {
			key = key[:i]
		}
		out[key] = append(out[key], c)
	}
	return out
}

func writeInventory(b *strings.Builder, own []catalog.Component) {
	fmt.Fprintf(b, "## Own Catalog\n\n")
	for _, kind := range []catalog.Kind{catalog.KindSkill, catalog.KindAgent} {
		items := filterComponents(own, kind)
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

		fmt.Fprintf(b, "### %ss (%d)\n\n", titleCase.String(string(kind)), len(items))
		fmt.Fprintf(b, "| Name | Lines | References | Keywords (sample) |\n")
		fmt.Fprintf(b, "|------|------:|:----------:|-------------------|\n")
		for _, c := range items {
			kw := c.Keywords
			if len(kw) > 5 {
				kw = kw[:5]
			}
			ref := "-"
			if c.HasReferences {
				ref = "yes"
			}
			fmt.Fprintf(b, "| %s | %d | %s | %s |\n", c.Name, c.LineCount, ref, strings.Join(kw, ", "))
		}
		fmt.Fprintf(b, "\n")
	}
}

func writeExternalSummary(b *strings.Builder, externalByRepo map[string][]catalog.Component, filter catalog.Kind, stats *Stats) {
	fmt.Fprintf(b, "## External Repos Scanned\n\n")
	repos := make([]string, 0, len(externalByRepo))
	for name := range externalByRepo {
		repos = append(repos, name)
	}
	sort.Strings(repos)
	for _, name := range repos {
		filtered := filterComponents(externalByRepo[name], filter)
		skills := countKind(filtered, catalog.KindSkill)
		agents := countKind(filtered, catalog.KindAgent)
		stats.ExternalSkills += skills
		stats.ExternalAgents += agents
		fmt.Fprintf(b, "- **%s**: %d skills, %d agents\n", name, skills, agents)
	}
	fmt.Fprintf(b, "\n")
}

func writeMatchTable(b *strings.Builder, matches []match.Match) {
	fmt.Fprintf(b, "## Overlapping Components (%d matches)\n\n", len(matches))
	if len(matches) == 0 {
		return
	}
	fmt.Fprintf(b, "| Ours | Theirs | Repo | Sim | Our Lines | Their Lines | Ratio |\n")
	fmt.Fprintf(b, "|------|--------|------|----:|----------:|------------:|------:|\n")
	seen := make(map[[3]string]struct{})
	for _, m := range matches {
		key := [3]string{m.Ours.Name, m.Theirs.Name, m.Theirs.Repo}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fmt.Fprintf(b, "| %s | %s | %s | %.2f | %d | %d | %.1fx |\n",
			m.Ours.Name, m.Theirs.Name, m.Theirs.Repo,
			m.Similarity, m.Ours.LineCount, m.Theirs.LineCount, m.SizeRatio)
	}
	fmt.Fprintf(b, "\n")
}

func writeHighMatches(b *strings.Builder, high []match.Match) {
	if len(high) == 0 {
		return
	}
	fmt.Fprintf(b, "### High-Similarity Matches (>=%.2f)\n\n", HighSimilarity)
	fmt.Fprintf(b, "These are likely the same or very similar components. Compare in detail.\n\n")
	for _, m := range high {
		fmt.Fprintf(b, "- **%s** vs **%s** (%s)\n", m.Ours.Name, m.Theirs.Name, m.Theirs.Repo)
		fmt.Fprintf(b, "  - Similarity: %.2f\n", m.Similarity)
		fmt.Fprintf(b, "  - Size: %d vs %d lines (%.1fx)\n", m.Ours.LineCount, m.Theirs.LineCount, m.SizeRatio)
		fmt.Fprintf(b, "  - Our path: `%s`\n", m.Ours.Path)
		fmt.Fprintf(b, "  - Their path: `%s`\n", m.Theirs.Path)
		if m.Ours.Description != "" && m.Theirs.Description != "" {
			fmt.Fprintf(b, "  - Our desc: %s\n", truncate(m.Ours.Description, 100))
			fmt.Fprintf(b, "  - Their desc: %s\n", truncate(m.Theirs.Description, 100))
		}
		fmt.Fprintf(b, "\n")
	}
}

func writeUnmatched(b *strings.Builder, unmatched []catalog.Component) {
	fmt.Fprintf(b, "## Unmatched External Components (%d items)\n\n", len(unmatched))
	fmt.Fprintf(b, "These exist in external repos but have no counterpart in the own catalog.\n\n")
	if len(unmatched) == 0 {
		return
	}

	byRepo := make(map[string][]catalog.Component)
	for _, c := range unmatched {
		byRepo[c.Repo] = append(byRepo[c.Repo], c)
	}
	repos := make([]string, 0, len(byRepo))
	for name := range byRepo {
		repos = append(repos, name)
	}
	sort.Strings(repos)

	for _, name := range repos {
		items := byRepo[name]
		sort.Slice(items, func(i, j int) bool {
			if items[i].Kind != items[j].Kind {
				return items[i].Kind < items[j].Kind
			}
			return items[i].Name < items[j].Name
		})

		fmt.Fprintf(b, "### %s\n\n", name)
		fmt.Fprintf(b, "| Kind | Name | Lines | Description |\n")
		fmt.Fprintf(b, "|------|------|------:|-------------|\n")
		for _, c := range items {
			fmt.Fprintf(b, "| %s | %s | %d | %s |\n", c.Kind, c.Name, c.LineCount, clip(c.Description, 80))
		}
		fmt.Fprintf(b, "\n")
	}
}

func filterComponents(components []catalog.Component, kind catalog.Kind) []catalog.Component {
	if kind == "" {
		return append([]catalog.Component(nil), components...)
	}
	var out []catalog.Component
	for _, c := range components {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func filterMatches(matches []match.Match, kind catalog.Kind) []match.Match {
	if kind == "" {
		return matches
	}
	var out []match.Match
	for _, m := range matches {
		if m.Ours.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

func highOnly(matches []match.Match) []match.Match {
	var out []match.Match
	for _, m := range matches {
		if m.Similarity >= HighSimilarity {
			out = append(out, m)
		}
	}
	return out
}

func countKind(components []catalog.Component, kind catalog.Kind) int {
	n := 0
	for _, c := range components {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// truncate cuts s to at most n runes, no ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// clip cuts s to at most n runes and marks the cut with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
