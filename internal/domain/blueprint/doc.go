// Package blueprint turns generated strategy text into structured content.
//
// The text is a small markdown dialect: headings, bullet and numbered items,
// paragraphs and **emphasis**. Each input line becomes exactly one Block,
// classified on its own without lookahead, so the parser is total over any
// input and never fails.
//
// Key Components:
//   - Parse: text to ordered blocks, one per line
//   - ParseLine: single-line classification
//   - SplitSpans: plain and emphasized runs within a line
//   - Reconstruct / Outline: visible text and section index of a blueprint
//
// Classification (first match wins):
//  1. "# ", "## ", "### "       -> header
//  2. "- " or "* " (trimmed)    -> bullet item
//  3. "12." leading digit run   -> numbered item
//  4. any other visible text    -> paragraph
//  5. empty or whitespace       -> blank
//
// Example:
//
//	blocks := blueprint.Parse("## 📊 Executive Summary\n- **Revenue**: grows fast")
//	fmt.Println(blueprint.Outline(blocks)) // [📊 Executive Summary]
package blueprint
