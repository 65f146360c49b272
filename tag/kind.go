package tag

// Kind identifies a recognized architecture tag keyword.
type Kind int

const (
	KindComponent Kind = iota
	KindModule
	KindNamespace
	KindActor
	KindUses
)

// String returns the tag keyword without its @ prefix.
func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindModule:
		return "module"
	case KindNamespace:
		return "namespace"
	case KindActor:
		return "actor"
	case KindUses:
		return "uses"
	}
	return "unknown"
}

// keywords maps tag keywords to their kind, matched after the @ or : sigil.
var keywords = map[string]Kind{
	"component": KindComponent,
	"module":    KindModule,
	"namespace": KindNamespace,
	"actor":     KindActor,
	"uses":      KindUses,
}

// componentPriority orders the declaration tags that can name a component;
// the first kind present in a comment block wins regardless of position.
var componentPriority = []Kind{KindComponent, KindModule, KindNamespace}

// RawLine is a single lexed tag line: the keyword kind plus everything after it.
type RawLine struct {
	Kind Kind
	Body string
}
