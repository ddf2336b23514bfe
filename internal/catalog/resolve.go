package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsRepoRoot reports whether path looks like a single scannable repo,
// i.e. it exhibits at least one of the supported layout markers. The
// check is deliberately marker-based: counting nested .git directories
// misfires on repos that carry submodules.
func IsRepoRoot(path string) bool {
	if _, err := os.Stat(filepath.Join(path, ".claude-plugin")); err == nil {
		return true
	}
	if matches, _ := filepath.Glob(filepath.Join(path, "skills", "*", "SKILL.md")); len(matches) > 0 {
		return true
	}
	for _, marker := range []string{"agents", "plugins", "categories"} {
		if info, err := os.Stat(filepath.Join(path, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// ResolveRepoRoots expands each input path into scannable repo roots.
// A path with layout markers is taken as one repo; a marker-less
// directory is treated as a collection, contributing each immediate
// non-hidden subdirectory. Unusable paths become warnings and the rest
// of the inputs are still resolved.
func ResolveRepoRoots(paths []string) (roots []string, warnings []string) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("path not found: %s", p))
			continue
		}
		if !info.IsDir() {
			warnings = append(warnings, fmt.Sprintf("not a directory: %s", p))
			continue
		}
		if IsRepoRoot(p) {
			roots = append(roots, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot read %s: %v", p, err))
			continue
		}
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				roots = append(roots, filepath.Join(p, e.Name()))
			}
		}
	}
	return roots, warnings
}
