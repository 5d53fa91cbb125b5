package blueprint

import "strings"

// Kind identifies the variant of a Block.
type Kind string

const (
	KindHeader    Kind = "header"
	KindBullet    Kind = "bullet"
	KindNumbered  Kind = "numbered"
	KindParagraph Kind = "paragraph"
	KindBlank     Kind = "blank"
)

// SpanKind identifies the variant of a Span.
type SpanKind string

const (
	SpanPlain      SpanKind = "plain"
	SpanEmphasized SpanKind = "emphasized"
)

// Span is a run of inline text.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// Block is one classified line of content.
//
// Which fields are meaningful depends on Kind:
//   - header: Text
//   - bullet, paragraph: Spans
//   - numbered: Index, Spans
//   - blank: none
type Block struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Index string `json:"index,omitempty"`
	Spans []Span `json:"spans,omitempty"`
}

func Plain(text string) Span { return Span{Kind: SpanPlain, Text: text} }

func Emphasized(text string) Span { return Span{Kind: SpanEmphasized, Text: text} }

func Header(text string) Block { return Block{Kind: KindHeader, Text: text} }

func Bullet(spans ...Span) Block { return Block{Kind: KindBullet, Spans: spans} }

func Paragraph(spans ...Span) Block { return Block{Kind: KindParagraph, Spans: spans} }

func Blank() Block { return Block{Kind: KindBlank} }

func Numbered(index string, spans ...Span) Block {
	return Block{Kind: KindNumbered, Index: index, Spans: spans}
}

// PlainText returns the visible text of the block with every markdown
// marker removed.
func (b Block) PlainText() string {
	switch b.Kind {
	case KindHeader:
		return b.Text
	case KindBlank:
		return ""
	}

	var sb strings.Builder
	for _, span := range b.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Reconstruct joins the visible text of every block with newlines.
func Reconstruct(blocks []Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.PlainText()
	}
	return strings.Join(lines, "\n")
}

// Outline lists the header texts in order.
func Outline(blocks []Block) []string {
	outline := make([]string, 0)
	for _, b := range blocks {
		if b.Kind == KindHeader {
			outline = append(outline, b.Text)
		}
	}
	return outline
}

// Tally counts blocks per kind.
func Tally(blocks []Block) map[Kind]int {
	counts := make(map[Kind]int)
	for _, b := range blocks {
		counts[b.Kind]++
	}
	return counts
}
