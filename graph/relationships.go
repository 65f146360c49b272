package graph

import (
	"sort"

	"github.com/viant/archmap/ident"
	"github.com/viant/archmap/tag"
)

// relationshipKey dedupes edges: one edge per (source, destination, kind),
// first description wins.
type relationshipKey struct {
	source      string
	destination string
	kind        string
}

// synthesize derives the typed edge set from the merged graph:
//
//   - actors declared {in} or {both} against a component produce an
//     actor -> component edge; {out} or {both} the reverse. Actor edges are
//     only materialized for actors that exist as entities, which is always
//     true here since occurrences belong to merged actor entries.
//   - uses declarations resolve case-insensitively by slug against declared
//     components; unresolved targets are recorded, not emitted. Two distinct
//     components cannot share a slug after merging, so resolution is never
//     ambiguous; the first-declared component simply owns the slug.
//   - structural references (for example templated component usage) become
//     edges only when the target is a known component.
func (a *Aggregator) synthesize(actors map[string]*actorEntry, actorOrder []string,
	componentIDBySlug map[string]string, uses []usesEntry, references []referenceEntry) []*Relationship {

	var relationships []*Relationship
	seen := map[relationshipKey]bool{}

	add := func(source, destination, description, kind string) {
		key := relationshipKey{source: source, destination: destination, kind: kind}
		if seen[key] {
			return
		}
		seen[key] = true
		relationships = append(relationships, &Relationship{
			Source:      source,
			Destination: destination,
			Description: description,
			Kind:        kind,
		})
	}

	for _, slug := range actorOrder {
		entry := actors[slug]
		for _, occurrence := range entry.occurrences {
			componentID, ok := componentIDBySlug[occurrence.componentSlug]
			if !ok {
				continue
			}
			if occurrence.direction == tag.DirectionIn || occurrence.direction == tag.DirectionBoth {
				add(slug, componentID, occurrence.description, RelationInteracts)
			}
			if occurrence.direction == tag.DirectionOut || occurrence.direction == tag.DirectionBoth {
				add(componentID, slug, occurrence.description, RelationInteracts)
			}
		}
	}

	for _, entry := range uses {
		sourceID, ok := componentIDBySlug[entry.sourceSlug]
		if !ok {
			continue
		}
		targetID, ok := componentIDBySlug[ident.Slug(entry.target)]
		if !ok {
			a.diagnostics.UnresolvedUses = append(a.diagnostics.UnresolvedUses,
				entry.sourceSlug+" -> "+entry.target)
			continue
		}
		add(sourceID, targetID, entry.description, RelationUses)
	}

	for _, reference := range references {
		sourceID, ok := componentIDBySlug[reference.sourceSlug]
		if !ok {
			continue
		}
		targetID, ok := componentIDBySlug[ident.Slug(reference.target)]
		if !ok || targetID == sourceID {
			// Unresolved structural references are dropped silently.
			continue
		}
		add(sourceID, targetID, "", RelationUses)
	}

	sort.Slice(relationships, func(i, j int) bool {
		left, right := relationships[i], relationships[j]
		if left.Source != right.Source {
			return left.Source < right.Source
		}
		if left.Destination != right.Destination {
			return left.Destination < right.Destination
		}
		return left.Kind < right.Kind
	})
	return relationships
}
