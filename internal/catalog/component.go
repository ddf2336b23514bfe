package catalog

// Kind distinguishes the two component families. Skills and agents are
// discovered through different conventions and are never compared
// against each other.
type Kind string

const (
	KindSkill Kind = "skill"
	KindAgent Kind = "agent"
)

// Component is one skill or agent definition discovered during a scan.
//
// A Component is fully determined by the document bytes at scan time and
// is never mutated afterwards; updating one means re-scanning and
// replacing the whole record.
type Component struct {
	Kind           Kind
	Name           string
	Repo           string
	Path           string
	Description    string
	Keywords       []string          // lowercase, deduplicated, sorted
	Frontmatter    map[string]string // scan-time intermediate, not persisted
	LineCount      int
	HasReferences  bool
	ReferenceFiles []string
}
