package tag

import "strings"

// CleanComment removes host-language comment markers from a raw comment
// block: /* */ fences, // line prefixes and Javadoc style * gutters. The
// result is the comment body the lexer expects.
func CleanComment(comment string) string {
	comment = strings.TrimSpace(comment)
	if strings.HasPrefix(comment, "/*") && strings.HasSuffix(comment, "*/") {
		comment = comment[2 : len(comment)-2]
		comment = strings.TrimPrefix(comment, "*")
	}

	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "//") {
			line = strings.TrimSpace(line[2:])
		}
		if strings.HasPrefix(line, "*") {
			line = strings.TrimSpace(line[1:])
		}
		lines[i] = line
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// CleanDocstring strips Python docstring quotes from a string literal body.
func CleanDocstring(text string) string {
	text = strings.TrimSpace(text)
	for _, quote := range []string{`"""`, `'''`} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			return strings.TrimSpace(text[len(quote) : len(text)-len(quote)])
		}
	}
	text = strings.Trim(text, `"'`)
	return strings.TrimSpace(text)
}
