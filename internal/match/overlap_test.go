package match

import (
	"sort"
	"testing"

	"github.com/skillscan/skillscan/internal/catalog"
)

func skill(name, repo string, lines int, keywords ...string) catalog.Component {
	return catalog.Component{Kind: catalog.KindSkill, Name: name, Repo: repo, Path: name + "/SKILL.md", LineCount: lines, Keywords: keywords}
}

func agent(name, repo string, keywords ...string) catalog.Component {
	return catalog.Component{Kind: catalog.KindAgent, Name: name, Repo: repo, Path: name + ".md", Keywords: keywords}
}

func TestFindOverlaps_KindFilterIsAbsolute(t *testing.T) {
	ours := []catalog.Component{skill("deploy", "us", 10, "deploy")}
	externals := []catalog.Component{agent("deploy", "them", "deploy")}

	if got := FindOverlaps(ours, externals, 0.15); len(got) != 0 {
		t.Fatalf("skill and agent must never match, got %+v", got)
	}
}

func TestFindOverlaps_ThresholdAndOrdering(t *testing.T) {
	ours := []catalog.Component{
		skill("pdf-export", "us", 100, "pdf", "export"),
		skill("fix-bug", "us", 50, "fix"),
	}
	externals := []catalog.Component{
		skill("pdf-export", "them", 200, "pdf", "export"),
		skill("fix-bugs", "them", 25, "bugs"),
		skill("unrelated", "them", 10, "nothing"),
	}

	matches := FindOverlaps(ours, externals, 0.15)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches above threshold, got %d: %+v", len(matches), matches)
	}
	if !sort.SliceIsSorted(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	}) {
		t.Fatal("matches not sorted by similarity descending")
	}
	if matches[0].Ours.Name != "pdf-export" {
		t.Fatalf("strongest match first, got %q", matches[0].Ours.Name)
	}
	if matches[0].SizeRatio != 2.0 {
		t.Errorf("size ratio = %v, want 2.0", matches[0].SizeRatio)
	}
}

func TestFindOverlaps_ZeroOwnLinesClampsRatio(t *testing.T) {
	ours := []catalog.Component{skill("deploy", "us", 0, "deploy")}
	externals := []catalog.Component{skill("deploy", "them", 40, "deploy")}

	matches := FindOverlaps(ours, externals, 0.15)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].SizeRatio != 40.0 {
		t.Errorf("ratio must divide by max(lines,1), got %v", matches[0].SizeRatio)
	}
}

func TestFindOverlaps_MatchesReferenceCatalogEntries(t *testing.T) {
	ours := []catalog.Component{skill("deploy", "us", 10, "deploy")}
	externals := []catalog.Component{skill("deploy", "them", 20, "deploy")}

	matches := FindOverlaps(ours, externals, 0.15)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Ours != &ours[0] || matches[0].Theirs != &externals[0] {
		t.Fatal("matches must reference catalog entries, not copies")
	}
}

func TestFindUnmatched_BelowThresholdIsGap(t *testing.T) {
	ours := []catalog.Component{skill("pdf-export", "us", 10, "pdf", "export")}
	externals := []catalog.Component{skill("terraform-lint", "them", 10, "terraform", "lint")}

	gaps := FindUnmatched(externals, ours, 0.15)
	if len(gaps) != 1 || gaps[0].Name != "terraform-lint" {
		t.Fatalf("expected terraform-lint as gap, got %+v", gaps)
	}
}

func TestFindUnmatched_ExactNameEscapeHatch(t *testing.T) {
	// Zero keyword/name-token overlap is irrelevant when names are equal.
	ours := []catalog.Component{{Kind: catalog.KindSkill, Name: "x_y", Repo: "us", Path: "p"}}
	externals := []catalog.Component{{Kind: catalog.KindSkill, Name: "x_y", Repo: "them", Path: "q"}}

	if gaps := FindUnmatched(externals, ours, 0.15); len(gaps) != 0 {
		t.Fatalf("exact-name external must never be a gap, got %+v", gaps)
	}
}

func TestFindUnmatched_ThresholdIsStrict(t *testing.T) {
	// fix-bug vs fix-bugs: name Jaccard 1/3, combined ≈ 0.2.
	ours := []catalog.Component{skill("fix-bug", "us", 10)}
	externals := []catalog.Component{skill("fix-bugs", "them", 10)}

	if gaps := FindUnmatched(externals, ours, 0.19); len(gaps) != 0 {
		t.Fatalf("best similarity above threshold is not a gap, got %+v", gaps)
	}
	if gaps := FindUnmatched(externals, ours, 0.21); len(gaps) != 1 {
		t.Fatal("best similarity below threshold must be a gap")
	}
}
