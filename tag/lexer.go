package tag

import (
	"strings"
)

// Lex scans a comment body, already stripped of host-language comment
// delimiters, and returns the recognized tag lines in order together with the
// leading description (the non-tag lines preceding the first tag).
//
// A line belongs to a tag when, after trimming leading markup such as "*" or
// "#", it starts with "@keyword" or ":keyword:" for one of the recognized
// keywords. Non-tag lines after an actor or uses tag continue that tag's
// body, since those grammars end in free description text. Component, module
// and namespace bodies are names and never absorb following prose.
func Lex(body string) ([]RawLine, string) {
	var lines []RawLine
	var leading []string

	for _, line := range strings.Split(body, "\n") {
		line = trimMarkup(line)

		if kind, rest, ok := matchTag(line); ok {
			lines = append(lines, RawLine{Kind: kind, Body: strings.TrimSpace(rest)})
			continue
		}
		if len(lines) == 0 {
			if line != "" || len(leading) > 0 {
				leading = append(leading, line)
			}
			continue
		}
		// Continuation of the previous tag body.
		if line != "" {
			last := &lines[len(lines)-1]
			if last.Kind != KindActor && last.Kind != KindUses {
				continue
			}
			if last.Body == "" {
				last.Body = line
			} else {
				last.Body += " " + line
			}
		}
	}

	return lines, strings.TrimSpace(strings.Join(leading, "\n"))
}

// trimMarkup removes decoration a comment line carries inside a block:
// leading whitespace, Javadoc style "*" gutters and hash prefixes.
func trimMarkup(line string) string {
	line = strings.TrimSpace(line)
	for len(line) > 0 && (line[0] == '*' || line[0] == '#') {
		line = strings.TrimSpace(line[1:])
	}
	return line
}

// matchTag reports whether a cleaned line starts a recognized tag and returns
// the remainder of the line after the keyword.
func matchTag(line string) (Kind, string, bool) {
	if len(line) < 2 {
		return 0, "", false
	}
	switch line[0] {
	case '@':
		keyword, rest := splitKeyword(line[1:])
		if kind, ok := keywords[keyword]; ok {
			return kind, rest, true
		}
	case ':':
		// Sphinx style ":keyword: body" field lines.
		end := strings.Index(line[1:], ":")
		if end <= 0 {
			return 0, "", false
		}
		keyword := strings.ToLower(strings.TrimSpace(line[1 : 1+end]))
		if kind, ok := keywords[keyword]; ok {
			return kind, line[end+2:], true
		}
	}
	return 0, "", false
}

// splitKeyword splits "keyword rest" at the first whitespace boundary.
func splitKeyword(text string) (string, string) {
	for i, r := range text {
		if r == ' ' || r == '\t' {
			return strings.ToLower(text[:i]), text[i+1:]
		}
	}
	return strings.ToLower(text), ""
}
