package graph

import "github.com/viant/archmap/purity"

// Container is a deployable or packaging boundary, one per resolved manifest
// plus at most one synthetic default container.
type Container struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Layer       string `json:"layer,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// Component is a logical grouping of code within a container, declared via a
// tag or inferred from directory structure.
type Component struct {
	ID          string       `json:"id"`
	ContainerID string       `json:"containerId"`
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Description string       `json:"description,omitempty"`
	Purity      purity.Label `json:"purity,omitempty"`
	// Inferred marks components that only exist because of directory
	// fallback; they are pruned when they hold no code items.
	Inferred bool `json:"inferred,omitempty"`
}

// CodeItem is an individual function, method, class or type, optionally
// attached to a component.
type CodeItem struct {
	ID          string       `json:"id"`
	ComponentID string       `json:"componentId,omitempty"`
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	FilePath    string       `json:"filePath,omitempty"`
	Line        int          `json:"line,omitempty"`
	Signature   string       `json:"signature,omitempty"`
	Description string       `json:"description,omitempty"`
	Purity      purity.Label `json:"purity,omitempty"`
	Hash        uint64       `json:"hash,omitempty"`
}

// Actor is an external person or system interacting with one or more
// components.
type Actor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
	Targets     []string `json:"targets,omitempty"`
}

// Relationship kinds.
const (
	RelationUses      = "uses"
	RelationInteracts = "interacts"
)

// Relationship is a typed directed edge between two entity ids.
type Relationship struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
}

// ArchitectureGraph is the final deduplicated, hierarchically identified
// output of an aggregation run. Every cross-reference field holds another
// entity's id by value.
type ArchitectureGraph struct {
	Containers    []*Container    `json:"containers"`
	Components    []*Component    `json:"components"`
	CodeItems     []*CodeItem     `json:"codeItems"`
	Actors        []*Actor        `json:"actors"`
	Relationships []*Relationship `json:"relationships"`
}

// Component kinds.
const (
	ComponentKindService = "component"
	ContainerKindService = "container"
	ContainerKindDefault = "application"
)

// Lookup returns the component with the given id, nil if absent.
func (g *ArchitectureGraph) Lookup(id string) *Component {
	for _, component := range g.Components {
		if component.ID == id {
			return component
		}
	}
	return nil
}

// LookupContainer returns the container with the given id, nil if absent.
func (g *ArchitectureGraph) LookupContainer(id string) *Container {
	for _, container := range g.Containers {
		if container.ID == id {
			return container
		}
	}
	return nil
}

// LookupActor returns the actor with the given id, nil if absent.
func (g *ArchitectureGraph) LookupActor(id string) *Actor {
	for _, actor := range g.Actors {
		if actor.ID == id {
			return actor
		}
	}
	return nil
}
