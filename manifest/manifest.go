package manifest

import (
	"path/filepath"
	"strings"
)

// Manifest describes one discovered packaging boundary: a package.json,
// pyproject.toml, go.mod or Cargo.toml file. Manifests are created once at
// discovery time and immutable afterwards.
type Manifest struct {
	Path        string // manifest file path
	Dir         string // directory owning the boundary
	Kind        string // npm, python, go, rust
	Name        string
	Version     string
	Description string
}

// Depth returns the number of path segments in the manifest directory, used
// to rank candidates so the deepest enclosing manifest wins.
func (m *Manifest) Depth() int {
	dir := filepath.ToSlash(m.Dir)
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return 0
	}
	return strings.Count(dir, "/") + 1
}

// Encloses reports whether the manifest directory is an ancestor of the
// given file path, comparing separator-normalized path prefixes.
func (m *Manifest) Encloses(filePath string) bool {
	dir := strings.TrimSuffix(filepath.ToSlash(m.Dir), "/")
	file := filepath.ToSlash(filePath)
	if dir == "" || dir == "." {
		return true
	}
	return strings.HasPrefix(file, dir+"/")
}

// Resolve returns the manifest whose directory is the deepest ancestor of
// filePath, or nil when no candidate encloses it. Discovery supplies the
// candidate list once per run; resolution itself touches no filesystem.
func Resolve(filePath string, candidates []*Manifest) *Manifest {
	var best *Manifest
	for _, candidate := range candidates {
		if !candidate.Encloses(filePath) {
			continue
		}
		if best == nil || candidate.Depth() > best.Depth() {
			best = candidate
		}
	}
	return best
}
