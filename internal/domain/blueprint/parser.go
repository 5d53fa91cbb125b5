package blueprint

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeaderLevel = 3

// Parse converts generated text into one block per line, in order.
// Lines are split on "\n"; a trailing "\r" is dropped from each line.
// The empty string parses to no blocks.
func Parse(text string) []Block {
	if text == "" {
		return []Block{}
	}

	lines := strings.Split(text, "\n")
	blocks := make([]Block, len(lines))
	for i, line := range lines {
		blocks[i] = ParseLine(strings.TrimSuffix(line, "\r"))
	}
	return blocks
}

// ParseLine classifies a single line. Each line is judged in isolation.
func ParseLine(line string) Block {
	if text, ok := headerText(line); ok {
		return Header(text)
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return Bullet(SplitSpans(trimmed[2:])...)
	}

	if index, rest, ok := numberedItem(line); ok {
		return Numbered(index, SplitSpans(strings.TrimSpace(rest))...)
	}

	if trimmed != "" {
		return Paragraph(SplitSpans(line)...)
	}
	return Blank()
}

// headerText reports whether line opens with one to three '#' followed by a
// whitespace character, and returns what follows that character.
func headerText(line string) (string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeaderLevel || level == len(line) {
		return "", false
	}

	r, size := utf8.DecodeRuneInString(line[level:])
	if !unicode.IsSpace(r) {
		return "", false
	}
	return line[level+size:], true
}

// numberedItem reports whether line starts with a run of ASCII digits
// immediately followed by '.', returning the digits and the remainder.
func numberedItem(line string) (index, rest string, ok bool) {
	n := 0
	for n < len(line) && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	if n == 0 || n == len(line) || line[n] != '.' {
		return "", "", false
	}
	return line[:n], line[n+1:], true
}
