package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/presentation"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth     = 20
	minWidth     = 40
	defaultWidth = 80
)

// Renderer draws blueprints for a terminal of a given width.
type Renderer struct {
	width int
}

// NewRenderer creates a renderer. Widths below 40 columns are raised to 40;
// zero means 80.
func NewRenderer(width int) *Renderer {
	if width == 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	return &Renderer{width: width}
}

// Ideas renders the catalog, one idea per entry.
func (r *Renderer) Ideas(ideas []catalog.Idea) string {
	var sb strings.Builder
	for _, idea := range ideas {
		sb.WriteString(idea.Icon)
		sb.WriteString("  ")
		sb.WriteString(styleTitle.Render(idea.Title))
		sb.WriteString(" ")
		sb.WriteString(styleCategory.Render("[" + idea.ID + "] " + idea.Category))
		sb.WriteByte('\n')
		if idea.ShortDescription != "" {
			sb.WriteString(styleText.Width(r.width - 4).PaddingLeft(4).Render(idea.ShortDescription))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Header renders the idea title line with its status label.
func (r *Renderer) Header(idea catalog.Idea, state view.State) string {
	title := idea.Icon + "  " + styleTitle.Render(idea.Title)
	status := statusStyle(state).Render("STATUS: " + state.Label())
	return lipgloss.JoinVertical(lipgloss.Left, title, styleCategory.Render(idea.Category)+"  "+status)
}

func statusStyle(state view.State) lipgloss.Style {
	switch state {
	case view.StateReady:
		return styleStatusReady
	case view.StateFailed:
		return styleStatusFailed
	default:
		return styleStatusLoading
	}
}

// Dashboard renders the KPI cards, the trend sparkline and the feasibility bars.
func (r *Renderer) Dashboard(dash venture.Dashboard) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("CAGR (Estimated)", presentation.CAGR(dash.Metrics.CAGRPercent)),
		card("Market Cap", presentation.MarketSize(dash.Metrics.MarketSizeBillion)),
		card("Time-to-Market", presentation.Months(dash.Metrics.TimeToProfitMonths)),
		card("Risk Score", presentation.Percent(dash.Metrics.RiskScorePercent)),
	)

	chart := lipgloss.JoinVertical(lipgloss.Left,
		styleCardLabel.Render(presentation.ChartTitle()),
		styleChart.Render(Sparkline(dash.Trend)),
		styleAxis.Render(axis(dash.Years)),
	)

	rows := make([]string, 0, len(dash.Feasibility)+1)
	rows = append(rows, styleCardLabel.Render("FEASIBILITY ANALYSIS"))
	for _, bar := range dash.Feasibility {
		rows = append(rows, feasibilityRow(bar))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", chart, "", lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func card(label, value string) string {
	return styleCard.Render(styleCardLabel.Render(label) + "\n" + styleCardValue.Render(value))
}

// Sparkline draws one glyph per trend point, scaled against the 100 ceiling.
func Sparkline(series venture.Series) string {
	var sb strings.Builder
	top := len(sparkLevels) - 1
	for i, v := range series {
		if i > 0 {
			sb.WriteString("   ")
		}
		level := int(v / 100 * float64(top))
		if level < 0 {
			level = 0
		}
		if level > top {
			level = top
		}
		sb.WriteRune(sparkLevels[level])
	}
	return sb.String()
}

// axis lays the years out so each sits under its sparkline glyph.
func axis(years []int) string {
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y % 100)
	}
	return "'" + strings.Join(labels, " '")
}

func feasibilityRow(bar venture.Bar) string {
	color, ok := barColors[bar.Label]
	if !ok {
		color = colorSuccess
		if bar.Level == venture.LevelElevated {
			color = colorWarning
		}
	}

	filled := bar.Percent * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	meter := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(barFilled, filled)) +
		styleAxis.Render(strings.Repeat(barEmpty, barWidth-filled))

	return fmt.Sprintf("%-14s %s %s", bar.Label, meter, presentation.Percent(bar.Percent))
}

// Blocks renders parsed content, one block per line.
func (r *Renderer) Blocks(blocks []blueprint.Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, r.block(b))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) block(b blueprint.Block) string {
	switch b.Kind {
	case blueprint.KindHeader:
		return styleHeader.Width(r.width).Render(b.Text)
	case blueprint.KindBullet:
		return "  " + styleMarker.Render(bulletMarker) + " " + spans(b.Spans)
	case blueprint.KindNumbered:
		return "  " + styleIndex.Render(b.Index+".") + " " + spans(b.Spans)
	case blueprint.KindParagraph:
		return spans(b.Spans)
	default:
		return ""
	}
}

func spans(ss []blueprint.Span) string {
	var sb strings.Builder
	for _, s := range ss {
		if s.Kind == blueprint.SpanEmphasized {
			sb.WriteString(styleEmphasis.Render(s.Text))
			continue
		}
		sb.WriteString(styleText.Render(s.Text))
	}
	return sb.String()
}

// View renders a whole blueprint: header, dashboard, then the content, the
// failure message or a loading note depending on the view state.
func (r *Renderer) View(v view.View, dash venture.Dashboard) string {
	parts := []string{r.Header(v.Idea, v.State), "", r.Dashboard(dash), ""}

	switch v.State {
	case view.StateReady:
		parts = append(parts, r.Blocks(v.Blocks))
		at := v.UpdatedAt
		if v.GeneratedAt != nil {
			at = *v.GeneratedAt
		}
		parts = append(parts, styleFooter.Render(presentation.Footer(v.Model, at)))
	case view.StateFailed:
		parts = append(parts, styleError.Render(v.Error))
	default:
		parts = append(parts, styleCategory.Render("Synthesizing market data, competitors and roadmap..."))
	}

	return strings.Join(parts, "\n") + "\n"
}
