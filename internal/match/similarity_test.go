package match

import (
	"math"
	"testing"

	"github.com/skillscan/skillscan/internal/catalog"
)

func comp(name string, keywords ...string) catalog.Component {
	return catalog.Component{Kind: catalog.KindSkill, Name: name, Repo: "r", Path: "p", Keywords: keywords}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCombinedSimilarity_PartialNameOverlap(t *testing.T) {
	// {fix} over {fix, bug, bugs} is 1/3; disjoint keywords add nothing.
	a := comp("fix-bug", "alpha")
	b := comp("fix-bugs", "beta")
	got := CombinedSimilarity(a, b)
	want := 0.6 * (1.0 / 3.0)
	if !almostEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCombinedSimilarity_ExactNameBonus(t *testing.T) {
	// Identical names must score 0.6 even with zero keyword overlap.
	a := comp("pdf-export", "alpha")
	b := comp("pdf-export", "beta")
	if got := CombinedSimilarity(a, b); !almostEqual(got, 0.6) {
		t.Fatalf("got %v, want 0.6", got)
	}
}

func TestCombinedSimilarity_Reflexive(t *testing.T) {
	c := comp("deploy-helper", "deploy", "helper")
	if got := CombinedSimilarity(c, c); !almostEqual(got, 1.0) {
		t.Fatalf("self-similarity = %v, want 1.0", got)
	}
}

func TestCombinedSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]catalog.Component{
		{comp("fix-bug", "alpha"), comp("fix-bugs", "beta")},
		{comp("a-b-c"), comp("c-d")},
		{comp("x", "k1", "k2"), comp("y", "k2", "k3")},
	}
	for _, p := range pairs {
		ab := CombinedSimilarity(p[0], p[1])
		ba := CombinedSimilarity(p[1], p[0])
		if !almostEqual(ab, ba) {
			t.Errorf("sim(%s,%s)=%v but sim(%s,%s)=%v", p[0].Name, p[1].Name, ab, p[1].Name, p[0].Name, ba)
		}
	}
}

func TestCombinedSimilarity_BoundedAndNoDivideByZero(t *testing.T) {
	cases := [][2]catalog.Component{
		{comp(""), comp("")},
		{comp("a"), comp("")},
		{comp("---"), comp("___")},
		{comp("same-name", "k"), comp("same-name", "k")},
	}
	for _, c := range cases {
		got := CombinedSimilarity(c[0], c[1])
		if got < 0 || got > 1 || math.IsNaN(got) {
			t.Errorf("sim(%q,%q) = %v out of [0,1]", c[0].Name, c[1].Name, got)
		}
	}
}

func TestKeywordSimilarity_EmptySetScoresZero(t *testing.T) {
	if got := KeywordSimilarity(nil, []string{"a"}); got != 0.0 {
		t.Fatalf("empty set must score 0.0, got %v", got)
	}
	if got := KeywordSimilarity(nil, nil); got != 0.0 {
		t.Fatalf("two empty sets must score 0.0, got %v", got)
	}
}

func TestNameSimilarity_SplitsOnHyphenAndUnderscore(t *testing.T) {
	if got := NameSimilarity("fix_bug", "fix-bug"); !almostEqual(got, 1.0) {
		t.Fatalf("separator choice must not matter, got %v", got)
	}
}
