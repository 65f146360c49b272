package graph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/archmap/ident"
	"github.com/viant/archmap/manifest"
	"github.com/viant/archmap/purity"
	"github.com/viant/archmap/tag"
)

// Aggregator folds per-file extraction records into the final architecture
// graph. Records accumulate through Add, which is cheap and can be fed from
// concurrent extractors through a single collecting goroutine; Build runs the
// single-threaded merge, prune and id assignment phases.
type Aggregator struct {
	config      *Config
	manifests   []*manifest.Manifest
	classifier  *purity.Classifier
	records     []*FileExtraction
	diagnostics *Diagnostics
}

// NewAggregator creates an aggregator over a pre-discovered, immutable
// manifest candidate list.
func NewAggregator(config *Config, manifests []*manifest.Manifest) *Aggregator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Aggregator{
		config:      config,
		manifests:   manifests,
		classifier:  purity.New(config.EffectPatterns...),
		diagnostics: &Diagnostics{},
	}
}

// Add collects one per-file extraction record.
func (a *Aggregator) Add(record *FileExtraction) {
	if record == nil {
		return
	}
	a.records = append(a.records, record)
}

// Diagnostics returns the findings accumulated so far; complete after Build.
func (a *Aggregator) Diagnostics() *Diagnostics {
	return a.diagnostics
}

// containerEntry is the working state for one packaging boundary.
type containerEntry struct {
	key      string // manifest dir, empty for the default container
	manifest *manifest.Manifest
	// untagged code items, owned by the container directly
	codeItems []*CodeItem
}

// componentEntry is the pre-merge working state for one component slug.
// Working keys are bare slugs; hierarchical ids are composed only after
// containers are final.
type componentEntry struct {
	slug          string
	name          string
	source        tag.Kind
	explicit      bool
	containerKey  string
	explicitDescs []string
	inferredDesc  string
	seenNames     []string
	codeItems     []*CodeItem
}

// actorOccurrence is one @actor declaration site.
type actorOccurrence struct {
	componentSlug string
	direction     tag.Direction
	description   string
}

// actorEntry merges all declarations of one actor slug.
type actorEntry struct {
	slug        string
	name        string
	kind        tag.ActorKind
	descs       []string
	occurrences []actorOccurrence
}

// usesEntry is one @uses declaration awaiting target resolution.
type usesEntry struct {
	sourceSlug  string
	target      string
	description string
}

// referenceEntry is structural usage evidence reported by a front end.
type referenceEntry struct {
	sourceSlug string
	target     string
}

// Build merges the collected records into the deduplicated graph. Records
// are sorted by file path first so "first seen" is deterministic regardless
// of filesystem enumeration order; running Build over the same record set
// always yields the same entity and edge sets.
func (a *Aggregator) Build() *ArchitectureGraph {
	sort.Slice(a.records, func(i, j int) bool {
		return a.records[i].Path < a.records[j].Path
	})

	containers := map[string]*containerEntry{}
	var containerOrder []string
	components := map[string]*componentEntry{}
	var componentOrder []string
	actors := map[string]*actorEntry{}
	var actorOrder []string
	var uses []usesEntry
	var references []referenceEntry

	ensureContainer := func(key string, m *manifest.Manifest) *containerEntry {
		entry, ok := containers[key]
		if !ok {
			entry = &containerEntry{key: key, manifest: m}
			containers[key] = entry
			containerOrder = append(containerOrder, key)
		}
		return entry
	}

	for _, record := range a.records {
		if record.ParseError != "" {
			a.diagnostics.SkipFile(record.Path, record.ParseError)
			continue
		}

		boundary := manifest.Resolve(record.Path, a.manifests)
		containerKey := ""
		if boundary != nil {
			containerKey = boundary.Dir
		}
		container := ensureContainer(containerKey, boundary)

		declared, actorDecls, usesDecls := a.parseComments(record)
		component := a.mergeComponent(components, &componentOrder, declared, record.Path, containerKey)

		componentSlug := ""
		if component != nil {
			componentSlug = component.slug
		}

		for _, raw := range record.CodeItems {
			if !raw.IsExported && !a.config.IncludeUnexported {
				continue
			}
			item := a.buildCodeItem(record.Path, raw)
			if component != nil {
				component.codeItems = append(component.codeItems, item)
			} else {
				container.codeItems = append(container.codeItems, item)
			}
		}

		for _, decl := range actorDecls {
			slug := ident.Slug(decl.Name)
			if slug == "" {
				continue
			}
			entry, ok := actors[slug]
			if !ok {
				entry = &actorEntry{slug: slug, name: decl.Name, kind: decl.Kind}
				actors[slug] = entry
				actorOrder = append(actorOrder, slug)
			}
			if decl.Description != "" && !contains(entry.descs, decl.Description) {
				entry.descs = append(entry.descs, decl.Description)
			}
			entry.occurrences = append(entry.occurrences, actorOccurrence{
				componentSlug: componentSlug,
				direction:     decl.Direction,
				description:   decl.Description,
			})
		}

		if componentSlug != "" {
			for _, decl := range usesDecls {
				uses = append(uses, usesEntry{
					sourceSlug:  componentSlug,
					target:      decl.Target,
					description: decl.Description,
				})
			}
			for _, ref := range record.References {
				references = append(references, referenceEntry{
					sourceSlug: componentSlug,
					target:     ref,
				})
			}
		}
	}

	// Prune inference-only components that attracted no code; inference must
	// not produce empty architectural nodes.
	kept := componentOrder[:0]
	for _, slug := range componentOrder {
		entry := components[slug]
		if !entry.explicit && len(entry.codeItems) == 0 {
			delete(components, slug)
			continue
		}
		kept = append(kept, slug)
	}
	componentOrder = kept

	return a.assemble(containers, containerOrder, components, componentOrder,
		actors, actorOrder, uses, references)
}

// parseComments lexes and parses every comment block of a record. The first
// block declaring a component wins; actor and uses declarations accumulate
// across blocks.
func (a *Aggregator) parseComments(record *FileExtraction) (*tag.ComponentDeclaration, []tag.ActorDeclaration, []tag.UsesDeclaration) {
	var component *tag.ComponentDeclaration
	var actors []tag.ActorDeclaration
	var uses []tag.UsesDeclaration

	for _, block := range record.CommentBlocks {
		lines, leading := tag.Lex(block)
		decls := tag.Parse(lines, leading)
		if component == nil && decls.Component != nil {
			component = decls.Component
		}
		actors = append(actors, decls.Actors...)
		uses = append(uses, decls.Uses...)
		for _, dropped := range decls.Dropped {
			a.diagnostics.DroppedTags = append(a.diagnostics.DroppedTags,
				fmt.Sprintf("%s: %s", record.Path, dropped))
		}
	}

	if component == nil {
		component = a.inferComponent(record.Path)
	}
	return component, actors, uses
}

// inferComponent falls back to the file's parent directory as the component
// name when no explicit declaration is present.
func (a *Aggregator) inferComponent(filePath string) *tag.ComponentDeclaration {
	dir := filepath.Base(filepath.Dir(filePath))
	if dir == "." || dir == "/" || dir == "" {
		return nil
	}
	return &tag.ComponentDeclaration{
		Name:        dir,
		Description: "Inferred from directory: " + dir,
		Inferred:    true,
	}
}

// mergeComponent folds one file's declaration into the per-slug working set.
// Explicit metadata wins over inferred; explicit descriptions concatenate in
// first-seen order while inferred boilerplate is kept only as a fallback.
func (a *Aggregator) mergeComponent(components map[string]*componentEntry, order *[]string,
	declared *tag.ComponentDeclaration, filePath, containerKey string) *componentEntry {
	if declared == nil {
		return nil
	}
	slug := ident.Slug(declared.Name)
	if slug == "" {
		return nil
	}

	entry, ok := components[slug]
	if !ok {
		entry = &componentEntry{
			slug:         slug,
			name:         declared.Name,
			source:       declared.Source,
			explicit:     !declared.Inferred,
			containerKey: containerKey,
			seenNames:    []string{declared.Name},
		}
		if declared.Inferred {
			entry.inferredDesc = declared.Description
		} else if declared.Description != "" {
			entry.explicitDescs = append(entry.explicitDescs, declared.Description)
		}
		components[slug] = entry
		*order = append(*order, slug)
		return entry
	}

	if declared.Inferred {
		if entry.inferredDesc == "" {
			entry.inferredDesc = declared.Description
		}
		return entry
	}

	// Explicit declaration merging into an existing entry.
	if !entry.explicit {
		// Explicit metadata supersedes the inferred placeholder.
		entry.name = declared.Name
		entry.source = declared.Source
		entry.explicit = true
		entry.seenNames = []string{declared.Name}
	} else {
		if declared.Name != entry.name && !contains(entry.seenNames, declared.Name) {
			entry.seenNames = append(entry.seenNames, declared.Name)
			a.diagnostics.NameCollisions = append(a.diagnostics.NameCollisions, NameCollision{
				Slug:  slug,
				Names: append([]string(nil), entry.seenNames...),
			})
		}
	}
	if declared.Description != "" && !contains(entry.explicitDescs, declared.Description) {
		entry.explicitDescs = append(entry.explicitDescs, declared.Description)
	}
	return entry
}

// buildCodeItem classifies and hashes one raw code item. The id is assigned
// later, once the owning component id is final.
func (a *Aggregator) buildCodeItem(filePath string, raw RawCodeItem) *CodeItem {
	label := a.classifier.Classify(raw.IsAsync, raw.ReturnType, raw.Body)
	hash, _ := Hash([]byte(raw.Signature + "\n" + raw.Body))
	return &CodeItem{
		Name:        raw.Name,
		Kind:        raw.Kind,
		FilePath:    filePath,
		Line:        raw.Line,
		Signature:   raw.Signature,
		Description: firstLine(raw.Doc),
		Purity:      label,
		Hash:        hash,
	}
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

func contains(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
