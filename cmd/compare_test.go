package cmd

import (
	"strings"
	"testing"

	"github.com/skillscan/skillscan/internal/catalog"
)

func TestRunCompare_ReportOnlyWithoutCacheFails(t *testing.T) {
	// Fresh home: no config, no cache. The caller opted into a
	// cache-dependent mode with nothing to read, so this must fail.
	t.Setenv("HOME", t.TempDir())

	flagCompareReportOnly = true
	t.Cleanup(func() { flagCompareReportOnly = false })

	err := runCompare(compareCmd, nil)
	if err == nil {
		t.Fatal("report-only without caches must return an error")
	}
	if !strings.Contains(err.Error(), "no cached own catalog") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveFilterKind(t *testing.T) {
	cases := []struct {
		in      string
		want    catalog.Kind
		wantErr bool
	}{
		{"", "", false},
		{"skill", catalog.KindSkill, false},
		{"skills", catalog.KindSkill, false},
		{"agent", catalog.KindAgent, false},
		{"agents", catalog.KindAgent, false},
		{"workflows", "", true},
	}
	for _, c := range cases {
		got, err := resolveFilterKind(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.in, got, c.want)
		}
	}
}
