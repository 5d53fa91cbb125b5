package html

import (
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/presentation"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/id"
	"github.com/GriffinCanCode/venture-blueprint/tests/helpers/testutil"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView(t *testing.T, state view.State) view.View {
	t.Helper()
	idea, err := catalog.Default().Get("1")
	require.NoError(t, err)

	at := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	v := view.View{
		ID:        id.NewViewID(),
		Idea:      idea,
		State:     state,
		Label:     state.Label(),
		Model:     "gemini-2.5-flash",
		Attempts:  1,
		OpenedAt:  at,
		UpdatedAt: at,
	}
	switch state {
	case view.StateReady:
		v.Blocks = blueprint.Parse(testutil.SampleBlueprint)
		v.GeneratedAt = &at
	case view.StateFailed:
		v.Error = "Failed to generate blueprint. Please check your connection or API key."
	}
	return v
}

func render(t *testing.T, v view.View) *goquery.Document {
	t.Helper()
	out, err := NewRenderer().RenderString(v, venture.Compute(v.Idea.ID))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRenderReadyView(t *testing.T) {
	v := testView(t, view.StateReady)
	dash := venture.Compute(v.Idea.ID)
	doc := render(t, v)

	assert.Equal(t, "AI-Powered Urban Farming", doc.Find("h1").Text())
	assert.Equal(t, "STATUS: BLUEPRINT_READY", doc.Find(".status").Text())
	assert.True(t, doc.Find(".status").HasClass("ready"))

	headers := doc.Find("main .bp-header")
	require.Equal(t, 3, headers.Length())
	assert.Equal(t, "📊 Executive Summary", headers.First().Text())

	assert.Equal(t, 2, doc.Find("main .bp-bullet").Length())
	assert.Equal(t, 3, doc.Find("main .bp-numbered").Length())
	assert.Equal(t, "1.", doc.Find("main .bp-index").First().Text())

	var emphasized []string
	doc.Find("main strong").Each(func(_ int, s *goquery.Selection) {
		emphasized = append(emphasized, s.Text())
	})
	assert.Equal(t, []string{"global", "Edge AI", "three"}, emphasized)

	assert.Equal(t, "GENERATED BY GEMINI-2.5-FLASH // 6/1/2025", doc.Find("main footer").Text())

	line, ok := doc.Find("path.line").Attr("d")
	require.True(t, ok)
	assert.Equal(t, dash.LinePath, line)
	area, _ := doc.Find("path.area").Attr("d")
	assert.Equal(t, dash.AreaPath, area)
	assert.Equal(t, 7, doc.Find("svg circle").Length())
}

func TestRenderDashboardPanel(t *testing.T) {
	v := testView(t, view.StateLoading)
	dash := venture.Compute(v.Idea.ID)
	doc := render(t, v)

	assert.Equal(t, presentation.ChartTitle(), doc.Find(".chart h3").Text())
	assert.Equal(t, presentation.CAGR(dash.Metrics.CAGRPercent), doc.Find(".cagr strong").Text())
	assert.Equal(t, presentation.MarketSize(dash.Metrics.MarketSizeBillion), doc.Find(".market strong").Text())
	assert.Equal(t, presentation.Months(dash.Metrics.TimeToProfitMonths), doc.Find(".profit strong").Text())

	var years []string
	doc.Find(".axis span").Each(func(_ int, s *goquery.Selection) {
		years = append(years, s.Text())
	})
	assert.Equal(t, []string{"2024", "2025", "2026", "2027", "2028", "2029", "2030"}, years)

	rows := doc.Find(".feasibility-row")
	require.Equal(t, 3, rows.Length())
	assert.Equal(t, "Scalability", rows.Eq(0).Find(".label").Text())
	assert.Equal(t, "92%", rows.Eq(0).Find(".value").Text())
	assert.Equal(t, "78%", rows.Eq(1).Find(".value").Text())
	assert.Equal(t, presentation.Percent(dash.Metrics.RiskScorePercent), rows.Eq(2).Find(".value").Text())
	assert.True(t, rows.Eq(2).HasClass(dash.Feasibility[2].Level))
}

func TestRenderLoadingView(t *testing.T) {
	doc := render(t, testView(t, view.StateLoading))

	assert.Equal(t, "STATUS: COMPUTING_BLUEPRINT...", doc.Find(".status").Text())
	assert.Equal(t, 1, doc.Find("main .loader").Length())
	assert.Equal(t, 0, doc.Find("main footer").Length())
}

func TestRenderFailedView(t *testing.T) {
	v := testView(t, view.StateFailed)
	doc := render(t, v)

	assert.Equal(t, "STATUS: SYSTEM FAILURE", doc.Find(".status").Text())
	assert.Equal(t, v.Error, doc.Find("main .error").Text())
	assert.Equal(t, 0, doc.Find("main .bp-header").Length())

	action, ok := doc.Find("main form").Attr("action")
	require.True(t, ok)
	assert.Equal(t, "/views/"+v.ID.String()+"/retry", action)
}

func TestContentIsSanitized(t *testing.T) {
	blocks := blueprint.Parse("## <script>alert(1)</script>\n<img src=x onerror=alert(2)> **<b>bold</b>**")
	fragment := string(NewRenderer().Content(blocks))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
	assert.Equal(t, 0, doc.Find("b").Length())
	assert.Equal(t, "<script>alert(1)</script>", doc.Find("h3").Text())
	assert.Equal(t, "<b>bold</b>", doc.Find("strong").Text())
}

func TestContentBlankLines(t *testing.T) {
	fragment := string(NewRenderer().Content(blueprint.Parse("a\n\nb")))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("p").Length())
	assert.Equal(t, 1, doc.Find("br").Length())
}
