package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector discovers packaging manifests under a root directory.
type Detector struct {
	fs afs.Service
	// marker file name to manifest kind
	markers map[string]string
}

// NewDetector creates a detector recognizing the supported manifest kinds.
func NewDetector() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: map[string]string{
			"package.json":   "npm",
			"pyproject.toml": "python",
			"go.mod":         "go",
			"Cargo.toml":     "rust",
		},
	}
}

// Discover walks the root directory once and returns every manifest found,
// sorted by path so discovery order is stable across filesystems. The result
// is held immutable for the duration of a run.
func (d *Detector) Discover(ctx context.Context, root string) ([]*Manifest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var manifests []*Manifest
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if name == "node_modules" || name == ".git" || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		kind, ok := d.markers[info.Name()]
		if !ok {
			return nil
		}
		manifest, err := d.load(ctx, path, kind)
		if err != nil {
			// An unreadable or malformed manifest still marks a boundary.
			manifest = &Manifest{Path: path, Dir: filepath.Dir(path), Kind: kind, Name: filepath.Base(filepath.Dir(path))}
		}
		manifests = append(manifests, manifest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Path < manifests[j].Path
	})
	return manifests, nil
}

// load reads a manifest file and extracts its identity metadata.
func (d *Detector) load(ctx context.Context, path string, kind string) (*Manifest, error) {
	data, err := d.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, err
	}
	manifest := &Manifest{
		Path: path,
		Dir:  filepath.Dir(path),
		Kind: kind,
	}
	switch kind {
	case "npm":
		parsePackageJSON(data, manifest)
	case "python":
		parsePyProject(data, manifest)
	case "go":
		parseGoMod(path, data, manifest)
	case "rust":
		parseCargo(data, manifest)
	}
	if manifest.Name == "" {
		manifest.Name = filepath.Base(manifest.Dir)
	}
	return manifest, nil
}

func parsePackageJSON(data []byte, manifest *Manifest) {
	var pkg struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return
	}
	manifest.Name = pkg.Name
	manifest.Version = pkg.Version
	manifest.Description = pkg.Description
}

var (
	pyProjectNameRegex        = regexp.MustCompile(`(?m)^name\s*=\s*["']([^"']+)["']`)
	pyProjectVersionRegex     = regexp.MustCompile(`(?m)^version\s*=\s*["']([^"']+)["']`)
	pyProjectDescriptionRegex = regexp.MustCompile(`(?m)^description\s*=\s*["']([^"']+)["']`)
)

func parsePyProject(data []byte, manifest *Manifest) {
	if matches := pyProjectNameRegex.FindSubmatch(data); len(matches) > 1 {
		manifest.Name = string(matches[1])
	}
	if matches := pyProjectVersionRegex.FindSubmatch(data); len(matches) > 1 {
		manifest.Version = string(matches[1])
	}
	if matches := pyProjectDescriptionRegex.FindSubmatch(data); len(matches) > 1 {
		manifest.Description = string(matches[1])
	}
}

func parseGoMod(path string, data []byte, manifest *Manifest) {
	if mod, _ := modfile.Parse(path, data, nil); mod != nil && mod.Module != nil {
		modulePath := mod.Module.Mod.Path
		if idx := strings.LastIndex(modulePath, "/"); idx >= 0 {
			manifest.Name = modulePath[idx+1:]
		} else {
			manifest.Name = modulePath
		}
	}
}

var cargoPackageRegex = regexp.MustCompile(`\[package\](?:.|\n)*?name\s*=\s*["']([^"']+)["']`)

func parseCargo(data []byte, manifest *Manifest) {
	if matches := cargoPackageRegex.FindSubmatch(data); len(matches) > 1 {
		manifest.Name = string(matches[1])
	}
}
