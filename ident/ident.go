package ident

import (
	"strings"
	"unicode"
)

// Separator joins the parts of a hierarchical identifier.
const Separator = "::"

// Slug converts a human readable name into a lowercase, hyphenated merge key.
// Runs of whitespace and path separators become a single hyphen, anything
// outside [a-z0-9-] is stripped, and repeated or dangling hyphens collapse.
// Slug is total: any input, including empty or all-symbol strings, yields a
// (possibly empty) valid slug.
func Slug(name string) string {
	var builder strings.Builder
	builder.Grow(len(name))

	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r) || r == '/' || r == '-':
			if !lastHyphen {
				builder.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			builder.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.Trim(builder.String(), "-")
}

// IdentifierForm converts a name into a code-level identifier: lowercase,
// with every character outside [a-z0-9_] replaced by an underscore. A result
// starting with a digit gets an underscore prefix.
func IdentifierForm(name string) string {
	var builder strings.Builder
	builder.Grow(len(name) + 1)

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			builder.WriteRune(r)
			continue
		}
		builder.WriteByte('_')
	}
	result := builder.String()
	if len(result) > 0 && result[0] >= '0' && result[0] <= '9' {
		return "_" + result
	}
	return result
}

// Hierarchical composes a container::component::code style identifier from
// already normalized parts. Empty parts are skipped so a missing component
// level never produces a dangling separator.
func Hierarchical(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, Separator)
}
