package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanResult carries the components discovered under one repo root plus
// any non-fatal diagnostics collected along the way. Warnings are part
// of the result because the report's statistics are the primary trust
// signal: a branch that failed to scan must be visible, not silently
// dropped.
type ScanResult struct {
	Components []Component
	Warnings   []string
}

// ScanRepo walks a repository root and returns every component
// discoverable under the three supported layout conventions:
//
//  1. root-level skills/ (one skill per subdirectory holding SKILL.md)
//     and agents/ (one agent per *.md file, recursively);
//  2. plugins/: each plugin subdirectory re-applies convention 1
//     under the composite label "repo/<plugin>";
//  3. categories/: each category subdirectory is scanned as an
//     agents directory under the label "repo/<category>".
//
// The conventions are applied independently; a repo may match more than
// one. Directories that do not exist contribute zero components.
func ScanRepo(root, repoName string) ScanResult {
	var res ScanResult

	res.scanSkillsDir(filepath.Join(root, "skills"), root, repoName)
	res.scanAgentsDir(filepath.Join(root, "agents"), root, repoName)

	pluginsDir := filepath.Join(root, "plugins")
	for _, sub := range res.subdirs(pluginsDir) {
		base := filepath.Join(pluginsDir, sub)
		label := repoName + "/" + sub
		res.scanSkillsDir(filepath.Join(base, "skills"), base, label)
		res.scanAgentsDir(filepath.Join(base, "agents"), base, label)
	}

	categoriesDir := filepath.Join(root, "categories")
	for _, sub := range res.subdirs(categoriesDir) {
		res.scanAgentsDir(filepath.Join(categoriesDir, sub), categoriesDir, repoName+"/"+sub)
	}

	return res
}

// scanSkillsDir collects one skill component per immediate subdirectory
// of skillsDir that holds a SKILL.md. Paths are recorded relative to
// base.
func (r *ScanResult) scanSkillsDir(skillsDir, base, repoName string) {
	for _, sub := range r.subdirs(skillsDir) {
		dir := filepath.Join(skillsDir, sub)
		doc := filepath.Join(dir, "SKILL.md")

		b, err := os.ReadFile(doc)
		if err != nil {
			// A skill directory without SKILL.md is not a skill.
			if !os.IsNotExist(err) {
				r.warnf("cannot read %s: %v", doc, err)
			}
			continue
		}
		text := strings.ToValidUTF8(string(b), "\uFFFD")
		fm := ParseFrontmatter(text)
		refs := r.referenceFiles(dir)

		rel, err := filepath.Rel(base, doc)
		if err != nil {
			rel = doc
		}

		r.Components = append(r.Components, Component{
			Kind:           KindSkill,
			Name:           sub,
			Repo:           repoName,
			Path:           filepath.ToSlash(rel),
			Description:    fm["description"],
			Keywords:       ExtractKeywords(text, sub),
			Frontmatter:    fm,
			LineCount:      countLines(text),
			HasReferences:  len(refs) > 0,
			ReferenceFiles: refs,
		})
	}
}

// scanAgentsDir collects one agent component per *.md file anywhere
// under agentsDir, named by file stem. Paths are recorded relative to
// base.
func (r *ScanResult) scanAgentsDir(agentsDir, base, repoName string) {
	info, err := os.Stat(agentsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			r.warnf("cannot stat %s: %v", agentsDir, err)
		}
		return
	}
	if !info.IsDir() {
		return
	}

	walkErr := filepath.WalkDir(agentsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable branch: warn and keep walking siblings.
			r.warnf("cannot walk %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		b, err := os.ReadFile(path)
		if err != nil {
			r.warnf("cannot read %s: %v", path, err)
			return nil
		}
		text := strings.ToValidUTF8(string(b), "\uFFFD")
		fm := ParseFrontmatter(text)
		name := strings.TrimSuffix(d.Name(), ".md")

		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}

		r.Components = append(r.Components, Component{
			Kind:        KindAgent,
			Name:        name,
			Repo:        repoName,
			Path:        filepath.ToSlash(rel),
			Description: fm["description"],
			Keywords:    ExtractKeywords(text, name),
			Frontmatter: fm,
			LineCount:   countLines(text),
		})
		return nil
	})
	if walkErr != nil {
		r.warnf("cannot scan %s: %v", agentsDir, walkErr)
	}
}

// referenceFiles lists markdown/text files under a skill directory,
// excluding the SKILL.md documents themselves, relative to dir.
func (r *ScanResult) referenceFiles(dir string) []string {
	var refs []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.warnf("cannot walk %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() == "SKILL.md" {
			return nil
		}
		if ext := filepath.Ext(d.Name()); ext != ".md" && ext != ".txt" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		refs = append(refs, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		r.warnf("cannot list references under %s: %v", dir, walkErr)
	}
	return refs
}

// subdirs returns the sorted immediate subdirectory names of dir. A
// missing dir yields nil; any other failure is recorded as a warning.
func (r *ScanResult) subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			r.warnf("cannot read %s: %v", dir, err)
		}
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (r *ScanResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// countLines counts text lines the way an editor would: a trailing
// newline does not start an extra empty line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
