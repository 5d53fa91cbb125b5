package blueprint

import "regexp"

// emphasisPattern matches the shortest **...** run. Unterminated markers are
// left in the surrounding plain text.
var emphasisPattern = regexp.MustCompile(`\*\*.*?\*\*`)

// SplitSpans splits a line into alternating plain and emphasized runs.
//
// Emphasized runs carry their text without the surrounding asterisks. An
// empty plain run is kept between two adjacent emphasized runs, but never
// produced before the first match at the start of the line or after the last
// match at the end of it. A line without markers yields a single plain span.
func SplitSpans(line string) []Span {
	matches := emphasisPattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return []Span{Plain(line)}
	}

	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for i, m := range matches {
		if m[0] > last || i > 0 {
			spans = append(spans, Plain(line[last:m[0]]))
		}
		spans = append(spans, Emphasized(line[m[0]+2:m[1]-2]))
		last = m[1]
	}
	if last < len(line) {
		spans = append(spans, Plain(line[last:]))
	}
	return spans
}
