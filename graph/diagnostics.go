package graph

// SkippedFile records one file excluded from the run and why.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// NameCollision records two explicit component declarations whose distinct
// names collapsed to the same slug. They merge rather than conflict, but the
// collision may hide a genuine naming mistake, so it is surfaced.
type NameCollision struct {
	Slug  string   `json:"slug"`
	Names []string `json:"names"`
}

// Diagnostics accumulates the non-fatal findings of a run: skipped files,
// dropped malformed tag lines, uses targets that never resolved, and slug
// collisions between explicit declarations.
type Diagnostics struct {
	SkippedFiles   []SkippedFile   `json:"skippedFiles,omitempty"`
	DroppedTags    []string        `json:"droppedTags,omitempty"`
	UnresolvedUses []string        `json:"unresolvedUses,omitempty"`
	NameCollisions []NameCollision `json:"nameCollisions,omitempty"`
}

// SkipFile records a skipped file.
func (d *Diagnostics) SkipFile(path, reason string) {
	d.SkippedFiles = append(d.SkippedFiles, SkippedFile{Path: path, Reason: reason})
}

// Empty reports whether the run completed without findings.
func (d *Diagnostics) Empty() bool {
	return len(d.SkippedFiles) == 0 && len(d.DroppedTags) == 0 &&
		len(d.UnresolvedUses) == 0 && len(d.NameCollisions) == 0
}
