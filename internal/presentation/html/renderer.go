package html

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/presentation"
	"github.com/microcosm-cc/bluemonday"
)

// Renderer turns views into standalone HTML pages.
type Renderer struct {
	sanitizer *bluemonday.Policy
	page      *template.Template
}

// NewRenderer creates a renderer with a UGC sanitizing policy that keeps the
// class attributes the page stylesheet relies on.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowStyling()

	return &Renderer{
		sanitizer: policy,
		page: template.Must(template.New("page").Funcs(template.FuncMap{
			"cagr":    presentation.CAGR,
			"market":  presentation.MarketSize,
			"months":  presentation.Months,
			"percent": presentation.Percent,
		}).Parse(pageTemplate)),
	}
}

// Content renders blocks as a sanitized HTML fragment, one element per line.
func (r *Renderer) Content(blocks []blueprint.Block) template.HTML {
	var sb strings.Builder
	for _, b := range blocks {
		writeBlock(&sb, b)
	}
	return template.HTML(r.sanitizer.Sanitize(sb.String()))
}

func writeBlock(sb *strings.Builder, b blueprint.Block) {
	switch b.Kind {
	case blueprint.KindHeader:
		sb.WriteString(`<h3 class="bp-header">`)
		sb.WriteString(template.HTMLEscapeString(b.Text))
		sb.WriteString("</h3>\n")
	case blueprint.KindBullet:
		sb.WriteString(`<div class="bp-bullet"><span class="bp-marker">&#9657;</span><p>`)
		writeSpans(sb, b.Spans)
		sb.WriteString("</p></div>\n")
	case blueprint.KindNumbered:
		sb.WriteString(`<div class="bp-numbered"><span class="bp-index">`)
		sb.WriteString(template.HTMLEscapeString(b.Index))
		sb.WriteString(".</span><p>")
		writeSpans(sb, b.Spans)
		sb.WriteString("</p></div>\n")
	case blueprint.KindParagraph:
		sb.WriteString(`<p class="bp-paragraph">`)
		writeSpans(sb, b.Spans)
		sb.WriteString("</p>\n")
	default:
		sb.WriteString("<br>\n")
	}
}

func writeSpans(sb *strings.Builder, spans []blueprint.Span) {
	for _, s := range spans {
		if s.Kind == blueprint.SpanEmphasized {
			sb.WriteString("<strong>")
			sb.WriteString(template.HTMLEscapeString(s.Text))
			sb.WriteString("</strong>")
			continue
		}
		sb.WriteString(template.HTMLEscapeString(s.Text))
	}
}

type pageData struct {
	View        view.View
	Dashboard   venture.Dashboard
	Points      []venture.Point
	ChartTitle  string
	Content     template.HTML
	Footer      string
	StatusClass string
}

// RenderView writes the full blueprint page of a view: header, dashboard and,
// depending on state, the loader, the failure message or the content.
func (r *Renderer) RenderView(w io.Writer, v view.View, dash venture.Dashboard) error {
	data := pageData{
		View:        v,
		Dashboard:   dash,
		Points:      dash.Trend.Points(),
		ChartTitle:  presentation.ChartTitle(),
		StatusClass: string(v.State),
	}
	if v.State == view.StateReady {
		data.Content = r.Content(v.Blocks)
		at := v.UpdatedAt
		if v.GeneratedAt != nil {
			at = *v.GeneratedAt
		}
		data.Footer = presentation.Footer(v.Model, at)
	}

	// Render into a buffer so a template error never leaves a partial page
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render view %s: %w", v.ID, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderString renders a view page to a string.
func (r *Renderer) RenderString(v view.View, dash venture.Dashboard) (string, error) {
	var sb strings.Builder
	if err := r.RenderView(&sb, v, dash); err != nil {
		return "", err
	}
	return sb.String(), nil
}
