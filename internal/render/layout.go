package render

import "strings"

// Fixed dimensions of the composed document, in CSS pixels. innerPadding must
// match the padding of pre.code in the document template.
const (
	lineHeightFactor = 1.6
	innerPadding     = 28
	chromeBarHeight  = 44
	fixedMargin      = 40
	headingAllowance = 220

	// The estimate only sizes the viewport; the final crop comes from the
	// measured frame rect. The slack keeps extreme font/line combinations
	// from clipping content before measurement.
	viewportSlack = 1.25
)

// layoutEstimate is a sizing hint for the rasterization viewport, derived from
// line count and font metrics. It is a lower bound, never the final geometry.
type layoutEstimate struct {
	lineCount         int
	lineHeightPx      float64
	codeBlockHeightPx float64
	canvasHeightPx    float64
}

// estimateLayout computes the viewport height hint. Monotonically
// non-decreasing in both line count and font size.
func estimateLayout(code string, fontSizePx, canvasPadding int, variant Variant) layoutEstimate {
	lines := strings.Count(code, "\n") + 1
	lineHeight := float64(fontSizePx) * lineHeightFactor
	codeBlock := float64(lines)*lineHeight + 2*innerPadding

	canvas := codeBlock + chromeBarHeight + 2*float64(canvasPadding) + fixedMargin
	if variant == VariantOverlay {
		canvas += headingAllowance
	}
	canvas *= viewportSlack

	return layoutEstimate{
		lineCount:         lines,
		lineHeightPx:      lineHeight,
		codeBlockHeightPx: codeBlock,
		canvasHeightPx:    canvas,
	}
}
