// Package html renders blueprint views as standalone HTML pages.
//
// The page mirrors the blueprint screen: idea header with status line, the
// dashboard (SVG trend chart, metric cards, feasibility bars) and the content
// area, which shows a loader, the failure message with a retry form, or the
// parsed blocks followed by the generated-by footer.
//
// Generated text is escaped per span and the resulting fragment passes
// through a bluemonday UGC policy before it reaches the page template.
package html
