package tag

import (
	"path"
	"strings"
)

// ActorKind distinguishes a human actor from an external system.
type ActorKind string

const (
	ActorPerson ActorKind = "Person"
	ActorSystem ActorKind = "System"
)

// Direction is the declared interaction direction between an actor and the
// component it was declared in.
type Direction string

const (
	DirectionIn   Direction = "in"
	DirectionOut  Direction = "out"
	DirectionBoth Direction = "both"
)

// ComponentDeclaration names a logical component. Inferred declarations come
// from directory fallback rather than an explicit tag and merge with lower
// precedence.
type ComponentDeclaration struct {
	Name        string
	Description string
	Source      Kind
	Inferred    bool
}

// ActorDeclaration is one parsed @actor line.
type ActorDeclaration struct {
	Name        string
	Kind        ActorKind
	Direction   Direction
	Description string
}

// UsesDeclaration is one parsed @uses line; the target resolves by name
// against other declared components during aggregation, not here.
type UsesDeclaration struct {
	Target      string
	Description string
}

// Declarations is the typed result of parsing one comment block's tag lines.
type Declarations struct {
	Component *ComponentDeclaration
	Actors    []ActorDeclaration
	Uses      []UsesDeclaration
	// Dropped records tag lines whose body failed its grammar; they are
	// skipped, never fatal, and surface in the run summary.
	Dropped []string
}

// Parse turns lexed tag lines into typed declarations. The component
// declaration is selected by tag priority (component > module > namespace),
// not by position. Malformed actor and uses lines are dropped individually.
func Parse(lines []RawLine, leading string) *Declarations {
	decls := &Declarations{}

	for _, kind := range componentPriority {
		for _, line := range lines {
			if line.Kind != kind {
				continue
			}
			decls.Component = parseComponent(line, leading)
			break
		}
		if decls.Component != nil {
			break
		}
	}

	for _, line := range lines {
		switch line.Kind {
		case KindActor:
			actor, ok := parseActor(line.Body)
			if !ok {
				decls.Dropped = append(decls.Dropped, "@actor "+line.Body)
				continue
			}
			decls.Actors = append(decls.Actors, actor)
		case KindUses:
			uses, ok := parseUses(line.Body)
			if !ok {
				decls.Dropped = append(decls.Dropped, "@uses "+line.Body)
				continue
			}
			decls.Uses = append(decls.Uses, uses)
		}
	}

	return decls
}

// parseComponent builds a component declaration from the winning tag line.
// A path-like body keeps only its parent directory segment, so many files
// under one logical module path collapse into a single component.
func parseComponent(line RawLine, leading string) *ComponentDeclaration {
	name := strings.TrimSpace(line.Body)
	if name == "" {
		return nil
	}
	if strings.Contains(name, "/") {
		dir := path.Dir(strings.Trim(name, "/"))
		if dir != "." && dir != "" {
			name = path.Base(dir)
		}
	}
	return &ComponentDeclaration{
		Name:        name,
		Description: leading,
		Source:      line.Kind,
	}
}

// parseActor parses "Name {Person|System} {in|out|both}? description".
// The name may contain spaces and runs up to the first brace.
func parseActor(body string) (ActorDeclaration, bool) {
	open := strings.Index(body, "{")
	if open < 0 {
		return ActorDeclaration{}, false
	}
	name := strings.TrimSpace(body[:open])
	if name == "" {
		return ActorDeclaration{}, false
	}

	kindText, rest, ok := braceField(body[open:])
	if !ok {
		return ActorDeclaration{}, false
	}
	var kind ActorKind
	switch kindText {
	case "Person":
		kind = ActorPerson
	case "System":
		kind = ActorSystem
	default:
		return ActorDeclaration{}, false
	}

	direction := DirectionBoth
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		dirText, after, ok := braceField(rest)
		if !ok {
			return ActorDeclaration{}, false
		}
		switch strings.ToLower(dirText) {
		case "in":
			direction = DirectionIn
		case "out":
			direction = DirectionOut
		case "both":
			direction = DirectionBoth
		default:
			return ActorDeclaration{}, false
		}
		rest = after
	}

	return ActorDeclaration{
		Name:        name,
		Kind:        kind,
		Direction:   direction,
		Description: strings.TrimSpace(rest),
	}, true
}

// braceField consumes a "{value}" field at the start of text and returns the
// value and the remainder.
func braceField(text string) (string, string, bool) {
	if !strings.HasPrefix(text, "{") {
		return "", "", false
	}
	end := strings.Index(text, "}")
	if end < 0 {
		return "", "", false
	}
	return strings.TrimSpace(text[1:end]), text[end+1:], true
}

// parseUses parses "TargetName description?"; the target is the first
// whitespace-delimited token, hyphens allowed.
func parseUses(body string) (UsesDeclaration, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return UsesDeclaration{}, false
	}
	target := body
	description := ""
	if idx := strings.IndexAny(body, " \t"); idx > 0 {
		target = body[:idx]
		description = strings.TrimSpace(body[idx+1:])
	}
	return UsesDeclaration{Target: target, Description: description}, true
}
