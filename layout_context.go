package godocument

import (
	"math"

	"golang.org/x/image/font"
)

// defaultFontFamily is used for runs that do not name a family.
const defaultFontFamily = "Calibri"

// heightTolerance avoids premature page breaks from rounding: an element
// may exceed the content bottom by up to 2% of the content height.
const heightTolerance = 0.02

// gridHintActivation is the number of grid-pitch hints that must be
// observed before line heights start snapping to the document grid.
const gridHintActivation = 2

// layoutContext owns the geometric state of one render in progress: the
// active page settings (converted to device pixels), the write cursor,
// page/column counters, line-numbering and document-grid state, the
// paragraph-adjacency state for spacing collapse, and font resolution.
// It does no drawing.
type layoutContext struct {
	fonts     FontSource
	dpi       float64
	fontScale float64

	settings     PageSettings
	pageWidthPx  float64
	pageHeightPx float64

	pageNumber int     // 1-based, incremented by startPage
	column     int     // 0-based, reset on new page
	currentY   float64 // write cursor in device pixels

	headerReservedPx float64
	footerReservedPx float64

	lineCounter int
	gridHints   int

	// Line numbering applies to body text lines only; block content
	// (cells, text boxes, headers, footers) suspends the counter.
	suspendLineNumbers bool

	// Adjacency state for contextual spacing: the previous paragraph's
	// deferred spacing-after and its style linkage. Tables and breaks
	// reset it; spacing never collapses across them.
	pendingAfterPx float64
	lastStyleName  string
	lastContextual bool
}

func newLayoutContext(settings PageSettings, dpi, fontScale float64, fonts FontSource) *layoutContext {
	ctx := &layoutContext{dpi: dpi, fontScale: fontScale, fonts: fonts}
	ctx.setSettings(settings)
	return ctx
}

// px converts points to device pixels at the context's DPI.
func (ctx *layoutContext) px(pt float64) float64 {
	return pt * ctx.dpi / 72.0
}

func (ctx *layoutContext) setSettings(s PageSettings) {
	ctx.settings = s
	ctx.pageWidthPx = ctx.px(s.WidthPt)
	ctx.pageHeightPx = ctx.px(s.HeightPt)
}

// Content-area geometry. The left edge depends on the current column;
// top and bottom fold in the header/footer reserves.

func (ctx *layoutContext) contentLeft() float64 {
	left := ctx.px(ctx.settings.MarginLeftPt)
	if ctx.column > 0 {
		left += float64(ctx.column) * (ctx.columnWidth() + ctx.px(ctx.settings.ColumnSpacingPt))
	}
	return left
}

func (ctx *layoutContext) contentTop() float64 {
	return ctx.px(ctx.settings.MarginTopPt) + ctx.headerReservedPx
}

func (ctx *layoutContext) contentBottom() float64 {
	return ctx.pageHeightPx - ctx.px(ctx.settings.MarginBottomPt) - ctx.footerReservedPx
}

func (ctx *layoutContext) contentWidth() float64 {
	return ctx.pageWidthPx - ctx.px(ctx.settings.MarginLeftPt) - ctx.px(ctx.settings.MarginRightPt)
}

func (ctx *layoutContext) contentHeight() float64 {
	return ctx.contentBottom() - ctx.contentTop()
}

func (ctx *layoutContext) columnWidth() float64 {
	n := ctx.settings.ColumnCount()
	if n == 1 {
		return ctx.contentWidth()
	}
	return (ctx.contentWidth() - float64(n-1)*ctx.px(ctx.settings.ColumnSpacingPt)) / float64(n)
}

// hasSpaceFor reports whether height more pixels fit above the content
// bottom, within the rounding tolerance.
func (ctx *layoutContext) hasSpaceFor(height float64) bool {
	return ctx.currentY+height <= ctx.contentBottom()+heightTolerance*ctx.contentHeight()
}

// startPage begins a new page: next page number, first column, cursor at
// the content top.
func (ctx *layoutContext) startPage() {
	ctx.pageNumber++
	ctx.column = 0
	ctx.currentY = ctx.contentTop()
	if ln := ctx.settings.LineNumbering; ln != nil && ln.Restart == RestartNewPage {
		ctx.lineCounter = 0
	}
	ctx.resetAdjacency()
}

// moveToNextColumn advances to the next column, reporting false when the
// current column was the last one (the caller starts a new page instead).
func (ctx *layoutContext) moveToNextColumn() bool {
	if ctx.column+1 >= ctx.settings.ColumnCount() {
		return false
	}
	ctx.column++
	ctx.currentY = ctx.contentTop()
	ctx.resetAdjacency()
	return true
}

// applySection swaps in a section's page settings and resets the column
// and adjacency state. The cursor is deliberately untouched: continuous
// sections keep content flowing in place, and for the other break types
// the caller finishes the page and startPage resets the cursor anyway.
func (ctx *layoutContext) applySection(s *PageSettings) {
	if s != nil {
		ctx.setSettings(*s)
	}
	ctx.column = 0
	ctx.gridHints = 0
	if ln := ctx.settings.LineNumbering; ln != nil && ln.Restart == RestartNewSection {
		ctx.lineCounter = 0
	}
	ctx.resetAdjacency()
}

// setReserves records measured header/footer heights. Reserved space is
// only the overflow beyond the allotted header/footer distance: content
// that fits inside the margin costs the body nothing.
func (ctx *layoutContext) setReserves(headerHeightPx, footerHeightPx float64) {
	ctx.headerReservedPx = math.Max(0,
		ctx.px(ctx.settings.HeaderDistancePt)+headerHeightPx-ctx.px(ctx.settings.MarginTopPt))
	ctx.footerReservedPx = math.Max(0,
		ctx.px(ctx.settings.FooterDistancePt)+footerHeightPx-ctx.px(ctx.settings.MarginBottomPt))
}

// nextLineNumber advances the body-line counter and returns the number
// to draw in the margin, or 0 when this line is not at the interval.
func (ctx *layoutContext) nextLineNumber() int {
	ln := ctx.settings.LineNumbering
	if ln == nil || ln.CountBy <= 0 || ctx.suspendLineNumbers {
		return 0
	}
	ctx.lineCounter++
	if ctx.lineCounter%ln.CountBy == 0 {
		return ctx.lineCounter
	}
	return 0
}

// recordGridHint notes one observation that content is aligned to the
// document grid. The grid only becomes active at gridHintActivation.
func (ctx *layoutContext) recordGridHint() {
	ctx.gridHints++
}

func (ctx *layoutContext) gridActive() bool {
	return ctx.settings.LinePitchPt > 0 && ctx.gridHints >= gridHintActivation
}

// applyGridPitch floors a line height at the document grid pitch. Exact
// line spacing always wins over the grid.
func (ctx *layoutContext) applyGridPitch(h float64, rule LineSpacingRule) float64 {
	if !ctx.gridActive() || rule == LineSpacingExact {
		return h
	}
	if pitch := ctx.px(ctx.settings.LinePitchPt); h < pitch {
		return pitch
	}
	return h
}

// spacingBefore returns the gap to insert above a paragraph: the
// previous paragraph's deferred spacing-after plus this paragraph's
// spacing-before. When contextual spacing links the two as same-style
// neighbors the gap collapses to the larger of the two declared values
// instead of their sum.
func (ctx *layoutContext) spacingBefore(props *ParagraphProperties) float64 {
	if props.ContextualSpacing && ctx.lastContextual && ctx.lastStyleName == props.StyleName {
		return math.Max(ctx.pendingAfterPx, ctx.px(props.SpacingBeforePt))
	}
	return ctx.pendingAfterPx + ctx.px(props.SpacingBeforePt)
}

// spacingAfter returns the gap to apply below a paragraph now. With
// contextual spacing the gap is deferred instead: the next paragraph
// either collapses it or folds it into its own spacing-before.
func (ctx *layoutContext) spacingAfter(props *ParagraphProperties) float64 {
	if props.ContextualSpacing {
		return 0
	}
	return ctx.px(props.SpacingAfterPt)
}

// noteParagraph records adjacency state after a paragraph has rendered.
func (ctx *layoutContext) noteParagraph(props *ParagraphProperties) {
	if props.ContextualSpacing {
		ctx.pendingAfterPx = ctx.px(props.SpacingAfterPt)
	} else {
		ctx.pendingAfterPx = 0
	}
	ctx.lastStyleName = props.StyleName
	ctx.lastContextual = props.ContextualSpacing
}

// resetAdjacency clears the spacing-collapse state. Tables, breaks and
// new pages do not participate in contextual spacing.
func (ctx *layoutContext) resetAdjacency() {
	ctx.pendingAfterPx = 0
	ctx.lastStyleName = ""
	ctx.lastContextual = false
}

// faceFor returns the drawing face for a run, sized in device pixels
// (point size scaled by DPI).
func (ctx *layoutContext) faceFor(props *RunProperties) (font.Face, error) {
	if ctx.fonts == nil {
		return nil, ErrNoFontSource
	}
	return ctx.fonts.Face(runFamily(props), ctx.faceSize(props), props.Bold, props.Italic)
}

// measureFaceFor returns the measurement face for a run (unhinted
// metrics; see FontCache.MeasureFace).
func (ctx *layoutContext) measureFaceFor(props *RunProperties) (font.Face, error) {
	if ctx.fonts == nil {
		return nil, ErrNoFontSource
	}
	return ctx.fonts.MeasureFace(runFamily(props), ctx.faceSize(props), props.Bold, props.Italic)
}

func (ctx *layoutContext) faceSize(props *RunProperties) float64 {
	return ctx.px(props.EffectiveSizePt())
}

// measureWidth returns the advance width of s in face, scaled by the
// render's wrap-tuning font scale. Only wrap measurement is scaled;
// face metrics and line heights are not.
func (ctx *layoutContext) measureWidth(face font.Face, s string) float64 {
	return measureString(face, s) * ctx.fontScale
}

func runFamily(props *RunProperties) string {
	if props.FontFamily != "" {
		return props.FontFamily
	}
	return defaultFontFamily
}
