package godocument

import (
	"math"
	"testing"
)

func TestLayoutContext_Geometry(t *testing.T) {
	ctx := testContext(DefaultPageSettings())

	if got := ctx.contentLeft(); math.Abs(got-72) > 1e-9 {
		t.Errorf("contentLeft = %v, want 72", got)
	}
	if got := ctx.contentTop(); math.Abs(got-72) > 1e-9 {
		t.Errorf("contentTop = %v, want 72", got)
	}
	if got := ctx.contentBottom(); math.Abs(got-720) > 1e-9 {
		t.Errorf("contentBottom = %v, want 720", got)
	}
	if got := ctx.contentWidth(); math.Abs(got-468) > 1e-9 {
		t.Errorf("contentWidth = %v, want 468", got)
	}
	if got := ctx.contentHeight(); math.Abs(got-648) > 1e-9 {
		t.Errorf("contentHeight = %v, want 648", got)
	}
	if got := ctx.columnWidth(); math.Abs(got-468) > 1e-9 {
		t.Errorf("columnWidth = %v, want full content width 468", got)
	}
}

func TestLayoutContext_DPIScalesGeometry(t *testing.T) {
	ctx := newLayoutContext(DefaultPageSettings(), 144, 1.0, fakeFonts{})
	ctx.startPage()

	if math.Abs(ctx.pageWidthPx-1224) > 1e-9 || math.Abs(ctx.pageHeightPx-1584) > 1e-9 {
		t.Errorf("page = %vx%v px, want 1224x1584 at 144 DPI", ctx.pageWidthPx, ctx.pageHeightPx)
	}
	if got := ctx.px(36); math.Abs(got-72) > 1e-9 {
		t.Errorf("px(36) = %v, want 72 at 144 DPI", got)
	}
}

func TestLayoutContext_Columns(t *testing.T) {
	settings := DefaultPageSettings()
	settings.Columns = 2
	settings.ColumnSpacingPt = 24
	ctx := testContext(settings)

	if got := ctx.columnWidth(); math.Abs(got-222) > 1e-9 {
		t.Errorf("columnWidth = %v, want 222", got)
	}
	if got := ctx.contentLeft(); math.Abs(got-72) > 1e-9 {
		t.Errorf("column 0 left = %v, want 72", got)
	}

	ctx.currentY = 400
	if !ctx.moveToNextColumn() {
		t.Fatal("expected a second column")
	}
	if got := ctx.contentLeft(); math.Abs(got-318) > 1e-9 {
		t.Errorf("column 1 left = %v, want 318", got)
	}
	if math.Abs(ctx.currentY-ctx.contentTop()) > 1e-9 {
		t.Error("column advance must rewind the cursor to content top")
	}
	if ctx.moveToNextColumn() {
		t.Error("no third column exists")
	}
}

func TestLayoutContext_HasSpaceFor(t *testing.T) {
	ctx := testContext(DefaultPageSettings())

	ctx.currentY = 700
	if !ctx.hasSpaceFor(10) {
		t.Error("10px should fit at y=700")
	}
	// The tolerance is 2% of the content height (12.96px here).
	if !ctx.hasSpaceFor(30) {
		t.Error("30px should fit inside the rounding tolerance")
	}
	if ctx.hasSpaceFor(40) {
		t.Error("40px must not fit at y=700")
	}
}

func TestLayoutContext_StartPage(t *testing.T) {
	settings := DefaultPageSettings()
	settings.Columns = 2
	settings.LineNumbering = &LineNumbering{CountBy: 1}
	ctx := newLayoutContext(settings, 72, 1.0, fakeFonts{})

	ctx.startPage()
	if ctx.pageNumber != 1 {
		t.Errorf("pageNumber = %d, want 1", ctx.pageNumber)
	}
	ctx.moveToNextColumn()
	ctx.nextLineNumber()
	ctx.nextLineNumber()

	ctx.startPage()
	if ctx.pageNumber != 2 {
		t.Errorf("pageNumber = %d, want 2", ctx.pageNumber)
	}
	if ctx.column != 0 {
		t.Errorf("column = %d, want 0 after new page", ctx.column)
	}
	if math.Abs(ctx.currentY-ctx.contentTop()) > 1e-9 {
		t.Error("cursor must sit at content top after new page")
	}
	if got := ctx.nextLineNumber(); got != 1 {
		t.Errorf("line counter = %d after page restart, want 1", got)
	}
}

func TestLayoutContext_LineNumberRestartModes(t *testing.T) {
	settings := DefaultPageSettings()
	settings.LineNumbering = &LineNumbering{CountBy: 1, Restart: RestartContinuous}
	ctx := newLayoutContext(settings, 72, 1.0, fakeFonts{})
	ctx.startPage()
	ctx.nextLineNumber()
	ctx.nextLineNumber()
	ctx.startPage()
	if got := ctx.nextLineNumber(); got != 3 {
		t.Errorf("continuous counter = %d after page break, want 3", got)
	}

	ctx.applySection(nil)
	if got := ctx.nextLineNumber(); got != 4 {
		t.Errorf("continuous counter = %d after section, want 4", got)
	}

	settings.LineNumbering = &LineNumbering{CountBy: 1, Restart: RestartNewSection}
	ctx = newLayoutContext(settings, 72, 1.0, fakeFonts{})
	ctx.startPage()
	ctx.nextLineNumber()
	ctx.nextLineNumber()
	ctx.applySection(nil)
	if got := ctx.nextLineNumber(); got != 1 {
		t.Errorf("per-section counter = %d after section, want 1", got)
	}
}

func TestLayoutContext_ContextualSpacingCollapse(t *testing.T) {
	ctx := testContext(DefaultPageSettings())

	linked := &ParagraphProperties{
		StyleName:         "ListParagraph",
		SpacingBeforePt:   6,
		SpacingAfterPt:    12,
		ContextualSpacing: true,
	}
	other := &ParagraphProperties{StyleName: "Body", SpacingBeforePt: 4, SpacingAfterPt: 8}

	// First paragraph: nothing pending yet.
	if got := ctx.spacingBefore(linked); math.Abs(got-6) > 1e-9 {
		t.Errorf("first spacingBefore = %v, want 6", got)
	}
	if got := ctx.spacingAfter(linked); got != 0 {
		t.Errorf("contextual spacingAfter = %v, want deferred 0", got)
	}
	ctx.noteParagraph(linked)

	// Same style follows: the gap collapses to the larger declared
	// value (after 12 vs before 6), never their sum.
	if got := ctx.spacingBefore(linked); math.Abs(got-12) > 1e-9 {
		t.Errorf("linked neighbor spacingBefore = %v, want max(12, 6)", got)
	}
	ctx.noteParagraph(linked)

	// A different style follows: the deferred after-gap resurfaces.
	if got := ctx.spacingBefore(other); math.Abs(got-16) > 1e-9 {
		t.Errorf("unlinked neighbor spacingBefore = %v, want 12+4", got)
	}
	if got := ctx.spacingAfter(other); math.Abs(got-8) > 1e-9 {
		t.Errorf("plain spacingAfter = %v, want 8", got)
	}
	ctx.noteParagraph(other)

	// Plain paragraphs leave nothing pending.
	if got := ctx.spacingBefore(linked); math.Abs(got-6) > 1e-9 {
		t.Errorf("spacingBefore after plain neighbor = %v, want 6", got)
	}

	// Breaks clear the linkage.
	ctx.noteParagraph(linked)
	ctx.resetAdjacency()
	if got := ctx.spacingBefore(linked); math.Abs(got-6) > 1e-9 {
		t.Errorf("spacingBefore after reset = %v, want plain 6", got)
	}
}

func TestLayoutContext_HeaderFooterReserves(t *testing.T) {
	ctx := testContext(DefaultPageSettings())

	// A band that fits inside the margin costs the body nothing.
	ctx.setReserves(20, 20)
	if math.Abs(ctx.contentTop()-72) > 1e-9 || math.Abs(ctx.contentBottom()-720) > 1e-9 {
		t.Errorf("small bands must not move the content area, got top %v bottom %v",
			ctx.contentTop(), ctx.contentBottom())
	}

	// Overflow past the margin pushes the content.
	ctx.setReserves(50, 60)
	if got := ctx.contentTop(); math.Abs(got-86) > 1e-9 {
		t.Errorf("contentTop = %v, want 72+14", got)
	}
	if got := ctx.contentBottom(); math.Abs(got-696) > 1e-9 {
		t.Errorf("contentBottom = %v, want 720-24", got)
	}
}

func TestLayoutContext_ApplySection(t *testing.T) {
	settings := DefaultPageSettings()
	settings.Columns = 2
	settings.LinePitchPt = 18
	ctx := testContext(settings)
	ctx.moveToNextColumn()
	ctx.recordGridHint()
	ctx.recordGridHint()
	if !ctx.gridActive() {
		t.Fatal("two hints should activate the document grid")
	}

	narrow := DefaultPageSettings()
	narrow.WidthPt = 400
	narrow.LinePitchPt = 18
	ctx.applySection(&narrow)

	if ctx.column != 0 {
		t.Errorf("column = %d after section change, want 0", ctx.column)
	}
	if math.Abs(ctx.pageWidthPx-400) > 1e-9 {
		t.Errorf("pageWidthPx = %v, want 400", ctx.pageWidthPx)
	}
	if ctx.gridActive() {
		t.Error("grid hints must reset on section change")
	}

	// Nil settings keep the geometry but still reset flow state.
	ctx.moveToNextColumn()
	ctx.applySection(nil)
	if ctx.column != 0 || math.Abs(ctx.pageWidthPx-400) > 1e-9 {
		t.Error("nil section settings must keep geometry and reset the column")
	}
}

func TestLayoutContext_FontScale(t *testing.T) {
	ctx := newLayoutContext(DefaultPageSettings(), 96, 1.25, fakeFonts{})
	props := RunProperties{SizePt: 12}

	// Faces are sized by DPI alone: 12pt at 96 DPI is 16px.
	if got := ctx.faceSize(&props); math.Abs(got-16) > 1e-9 {
		t.Errorf("faceSize = %v, want 16", got)
	}

	// The scale tunes measured wrap widths only. The fake face
	// advances 8px per rune at 16px size, so "ab" is 16 raw, 20 scaled.
	face, err := ctx.measureFaceFor(&props)
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.measureWidth(face, "ab"); math.Abs(got-20) > 1e-9 {
		t.Errorf("measureWidth = %v, want 20", got)
	}
}
