package purity

import (
	"strings"
)

// Label classifies a function or component as side-effect free or not.
type Label string

const (
	Pure      Label = "pure"
	Effectful Label = "effectful"
)

// effectReturnTypes are return type names that imply deferred or streaming
// execution; a textual match anywhere in the declared return type marks the
// function effectful.
var effectReturnTypes = []string{
	"Coroutine",
	"Awaitable",
	"Generator",
	"AsyncGenerator",
	"Iterator",
	"Promise",
}

// DefaultPatterns are body substrings that indicate side effects: I/O,
// time and randomness, global mutation, process/OS access, and network or
// database client calls.
var DefaultPatterns = []string{
	"fetch(",
	"axios.",
	"http.",
	"https.",
	"requests.",
	"urllib.",
	"socket.",
	"open(",
	"input(",
	"print(",
	"console.",
	"process.",
	"subprocess.",
	"os.",
	"sys.",
	"time.",
	"random.",
	"Math.random",
	"Date.now",
	"new Date(",
	"datetime.now",
	"localStorage",
	"sessionStorage",
	"global ",
	"nonlocal ",
	"globalThis",
	"db.",
	"cursor.",
	".query(",
	".execute(",
	".save(",
	".write(",
	".send(",
	".emit(",
	".publish(",
}

// Classifier labels functions by signature and body text. The zero value is
// not usable; construct with New.
type Classifier struct {
	patterns []string
}

// New creates a classifier with the given effectful body patterns; with none
// supplied the default pattern set applies.
func New(patterns ...string) *Classifier {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Classifier{patterns: patterns}
}

// Classify applies the rules in order, first match wins:
// async functions are effectful; effect-indicating return types are
// effectful; a body containing any configured pattern is effectful;
// everything else is pure.
func (c *Classifier) Classify(isAsync bool, returnType, body string) Label {
	if isAsync {
		return Effectful
	}
	for _, name := range effectReturnTypes {
		if strings.Contains(returnType, name) {
			return Effectful
		}
	}
	for _, pattern := range c.patterns {
		if strings.Contains(body, pattern) {
			return Effectful
		}
	}
	return Pure
}

// Reduce folds child labels into a container label: effectful if any child
// is effectful, pure otherwise. Reducing nothing yields Pure.
func Reduce(labels ...Label) Label {
	for _, label := range labels {
		if label == Effectful {
			return Effectful
		}
	}
	return Pure
}
