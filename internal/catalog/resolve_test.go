package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRepoRoots_SingleRepoByMarker(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "skills", "a", "SKILL.md"), "# A\n")
	// A nested submodule-like .git must not flip the decision.
	writeFile(t, filepath.Join(repo, "vendor-a", ".git", "HEAD"), "ref\n")
	writeFile(t, filepath.Join(repo, "vendor-b", ".git", "HEAD"), "ref\n")

	roots, warnings := ResolveRepoRoots([]string{repo})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(roots) != 1 || roots[0] != repo {
		t.Fatalf("marker-bearing path must resolve to itself, got %v", roots)
	}
}

func TestResolveRepoRoots_DirectoryOfRepos(t *testing.T) {
	parent := t.TempDir()
	writeFile(t, filepath.Join(parent, "one", "skills", "a", "SKILL.md"), "# A\n")
	writeFile(t, filepath.Join(parent, "two", "agents", "b.md"), "# B\n")
	if err := os.MkdirAll(filepath.Join(parent, ".hidden"), 0o755); err != nil {
		t.Fatal(err)
	}

	roots, warnings := ResolveRepoRoots([]string{parent})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	for _, r := range roots {
		if filepath.Base(r) == ".hidden" {
			t.Fatalf("hidden directories must be skipped: %v", roots)
		}
	}
}

func TestResolveRepoRoots_MissingPathIsWarning(t *testing.T) {
	parent := t.TempDir()
	writeFile(t, filepath.Join(parent, "ok", "agents", "a.md"), "# A\n")

	roots, warnings := ResolveRepoRoots([]string{filepath.Join(parent, "nope"), filepath.Join(parent, "ok")})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning for the missing path, got %v", warnings)
	}
	if len(roots) != 1 {
		t.Fatalf("scan must continue with remaining paths, got %v", roots)
	}
}

func TestIsRepoRoot_PluginMarker(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".claude-plugin", "plugin.json"), "{}\n")
	if !IsRepoRoot(repo) {
		t.Fatal("plugin marker must mark a repo root")
	}
	if IsRepoRoot(t.TempDir()) {
		t.Fatal("bare directory is not a repo root")
	}
}
