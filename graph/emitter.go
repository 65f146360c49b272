package graph

import (
	"encoding/json"
)

// Emitter serializes an architecture graph for downstream consumers.
type Emitter interface {
	Emit(graph *ArchitectureGraph) ([]byte, error)
}

// JSONEmitter emits the graph as the canonical JSON document: every id a
// string matching [a-z0-9_:-]+, every cross-reference a string id value.
type JSONEmitter struct {
	Indent bool
}

// Emit serializes the graph.
func (e *JSONEmitter) Emit(graph *ArchitectureGraph) ([]byte, error) {
	if e.Indent {
		return json.MarshalIndent(graph, "", "  ")
	}
	return json.Marshal(graph)
}
