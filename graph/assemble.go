package graph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/archmap/ident"
	"github.com/viant/archmap/purity"
	"github.com/viant/archmap/tag"
)

// DefaultContainerID identifies the synthetic container assigned to files no
// manifest encloses.
const DefaultContainerID = "default-container"

// assemble turns the merged working state into final entities: container ids
// first, then hierarchical component and code item ids, then actors and
// synthesized relationships. Composition happens only here, after all
// deduplication is done.
func (a *Aggregator) assemble(containers map[string]*containerEntry, containerOrder []string,
	components map[string]*componentEntry, componentOrder []string,
	actors map[string]*actorEntry, actorOrder []string,
	uses []usesEntry, references []referenceEntry) *ArchitectureGraph {

	result := &ArchitectureGraph{
		Containers:    []*Container{},
		Components:    []*Component{},
		CodeItems:     []*CodeItem{},
		Actors:        []*Actor{},
		Relationships: []*Relationship{},
	}

	containerIDs := map[string]string{}
	takenIDs := map[string]bool{}
	for _, key := range containerOrder {
		entry := containers[key]
		container := a.buildContainer(entry, takenIDs)
		containerIDs[key] = container.ID
		result.Containers = append(result.Containers, container)
	}

	componentByID := map[string]*Component{}
	componentIDBySlug := map[string]string{}
	for _, slug := range componentOrder {
		entry := components[slug]
		containerID := containerIDs[entry.containerKey]
		component := &Component{
			ID:          ident.Hierarchical(containerID, entry.slug),
			ContainerID: containerID,
			Name:        entry.name,
			Kind:        ComponentKindService,
			Description: entry.description(),
			Inferred:    !entry.explicit,
		}
		labels := make([]purity.Label, 0, len(entry.codeItems))
		for _, item := range entry.codeItems {
			labels = append(labels, item.Purity)
		}
		if len(labels) > 0 {
			component.Purity = purity.Reduce(labels...)
		}
		componentByID[component.ID] = component
		componentIDBySlug[slug] = component.ID
		result.Components = append(result.Components, component)

		assignCodeItemIDs(component.ID, entry.codeItems)
		for _, item := range entry.codeItems {
			item.ComponentID = component.ID
			result.CodeItems = append(result.CodeItems, item)
		}
	}

	// Untagged code items attach directly to their container.
	for _, key := range containerOrder {
		entry := containers[key]
		if len(entry.codeItems) == 0 {
			continue
		}
		containerID := containerIDs[key]
		assignCodeItemIDs(containerID, entry.codeItems)
		result.CodeItems = append(result.CodeItems, entry.codeItems...)
	}

	for _, slug := range actorOrder {
		entry := actors[slug]
		actor := &Actor{
			ID:          slug,
			Name:        entry.name,
			Kind:        string(entry.kind),
			Description: strings.Join(entry.descs, "; "),
		}
		for _, occurrence := range entry.occurrences {
			if occurrence.direction == tag.DirectionOut {
				continue
			}
			componentID, ok := componentIDBySlug[occurrence.componentSlug]
			if !ok {
				continue
			}
			if !contains(actor.Targets, componentID) {
				actor.Targets = append(actor.Targets, componentID)
			}
		}
		result.Actors = append(result.Actors, actor)
	}

	result.Relationships = a.synthesize(actors, actorOrder, componentIDBySlug, uses, references)

	sort.Slice(result.Containers, func(i, j int) bool { return result.Containers[i].ID < result.Containers[j].ID })
	sort.Slice(result.Components, func(i, j int) bool { return result.Components[i].ID < result.Components[j].ID })
	sort.Slice(result.CodeItems, func(i, j int) bool { return result.CodeItems[i].ID < result.CodeItems[j].ID })
	sort.Slice(result.Actors, func(i, j int) bool { return result.Actors[i].ID < result.Actors[j].ID })
	return result
}

// buildContainer finalizes one container entity, keeping ids unique when two
// manifests slug to the same name.
func (a *Aggregator) buildContainer(entry *containerEntry, taken map[string]bool) *Container {
	if entry.manifest == nil {
		name := a.config.SystemName
		if name == "" {
			name = "Application"
		}
		taken[DefaultContainerID] = true
		return &Container{
			ID:   DefaultContainerID,
			Name: name,
			Kind: ContainerKindDefault,
		}
	}

	m := entry.manifest
	id := ident.Slug(m.Name)
	if id == "" {
		id = ident.Slug(filepath.Base(m.Dir))
	}
	if id == "" {
		id = "container"
	}
	if taken[id] {
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d", id, n)
			if !taken[candidate] {
				id = candidate
				break
			}
		}
	}
	taken[id] = true
	return &Container{
		ID:          id,
		Name:        m.Name,
		Kind:        ContainerKindService,
		Layer:       m.Kind,
		Version:     m.Version,
		Description: m.Description,
	}
}

// assignCodeItemIDs composes hierarchical code item ids under a parent id,
// suffixing duplicates so ids stay unique when one component collects two
// items with the same identifier form.
func assignCodeItemIDs(parentID string, items []*CodeItem) {
	seen := map[string]int{}
	for _, item := range items {
		local := ident.IdentifierForm(item.Name)
		seen[local]++
		if seen[local] > 1 {
			local = fmt.Sprintf("%s_%d", local, seen[local])
		}
		item.ID = ident.Hierarchical(parentID, local)
	}
}

// description resolves the merged component description: explicit
// declarations concatenated in first-seen order, inferred boilerplate only
// when nothing explicit exists.
func (e *componentEntry) description() string {
	if len(e.explicitDescs) > 0 {
		return strings.Join(e.explicitDescs, "; ")
	}
	return e.inferredDesc
}
