package godocument

import (
	"math"
	"testing"
)

func TestTextFormField_DrawsBoxAndPlaceholder(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&TextFormField{Props: RunProperties{SizePt: 10}})
	doc.AddElement(plainParagraph("next", 10))

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if len(rc.fills) != 1 || len(rc.strokes) != 1 {
		t.Fatalf("fills=%d strokes=%d, want one shaded bordered box", len(rc.fills), len(rc.strokes))
	}
	box := rc.fills[0]
	// Field box: default 108pt width, 10pt metrics plus 2pt padding.
	if math.Abs(box.x-72) > 1e-9 || math.Abs(box.y-72) > 1e-9 ||
		math.Abs(box.w-108) > 1e-9 || math.Abs(box.h-14) > 1e-9 {
		t.Errorf("box = %+v, want 108x14 at (72,72)", box)
	}
	if box.c != fieldShading {
		t.Errorf("box color = %v, want field shading", box.c)
	}

	ph := rc.textContaining("_____")
	if ph == nil {
		t.Fatal("empty field must draw placeholder underscores")
	}
	if math.Abs(ph.x-74) > 1e-9 || math.Abs(ph.y-82) > 1e-9 {
		t.Errorf("placeholder at (%v,%v), want (74,82)", ph.x, ph.y)
	}

	// Cursor advanced by the box height plus the field gap.
	next := rc.textContaining("next")
	if next == nil {
		t.Fatal("following paragraph missing")
	}
	want := 72.0 + 14 + 4 + 10.75 - 2
	if math.Abs(next.y-want) > 1e-6 {
		t.Errorf("next baseline = %v, want %v", next.y, want)
	}
}

func TestTextFormField_Value(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&TextFormField{Value: "Alice", WidthPt: 200, Props: RunProperties{SizePt: 10}})

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if rc.textContaining("Alice") == nil {
		t.Error("field value not drawn")
	}
	if rc.textContaining("_____") != nil {
		t.Error("placeholder drawn despite a value")
	}
	if math.Abs(rc.fills[0].w-200) > 1e-9 {
		t.Errorf("box width = %v, want declared 200", rc.fills[0].w)
	}
}

func TestCheckBox_DrawsMarkWhenChecked(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&CheckBoxFormField{Checked: true})

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if len(rc.strokes) != 1 {
		t.Fatalf("strokes = %d, want the box outline", len(rc.strokes))
	}
	// Default 11pt square.
	if math.Abs(rc.strokes[0].w-11) > 1e-9 || math.Abs(rc.strokes[0].h-11) > 1e-9 {
		t.Errorf("box = %vx%v, want 11x11", rc.strokes[0].w, rc.strokes[0].h)
	}
	if rc.lines != 2 {
		t.Errorf("lines = %d, want the two X strokes", rc.lines)
	}

	doc = NewDocument()
	doc.AddElement(&CheckBoxFormField{})
	opts, rec = recordedOptions()
	renderPages(t, doc, opts)
	if rec.canvases[0].lines != 0 {
		t.Error("unchecked box must not draw a mark")
	}
}

func TestDropDown_DrawsSelectionAndArrow(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&DropDownFormField{
		Entries:  []string{"red", "green", "blue"},
		Selected: 1,
		Props:    RunProperties{SizePt: 10},
	})

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if rc.textContaining("green") == nil {
		t.Error("selected entry not drawn")
	}
	if rc.textContaining("red") != nil || rc.textContaining("blue") != nil {
		t.Error("unselected entries must not render")
	}
	// The field box plus the arrow pad square.
	if len(rc.strokes) != 2 {
		t.Fatalf("strokes = %d, want box and arrow pad", len(rc.strokes))
	}
	arrow := rc.strokes[1]
	if math.Abs(arrow.x-(72+108-14)) > 1e-9 || math.Abs(arrow.w-14) > 1e-9 {
		t.Errorf("arrow pad = %+v, want a 14px square at the right edge", arrow)
	}
	if rc.lines != 2 {
		t.Errorf("lines = %d, want the chevron pair", rc.lines)
	}
}

func TestDropDown_NoEntriesDrawsEmptyBox(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&DropDownFormField{Props: RunProperties{SizePt: 10}})

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]
	if len(rc.texts) != 0 {
		t.Errorf("texts = %d, empty selection draws no label", len(rc.texts))
	}
	if len(rc.strokes) != 2 {
		t.Errorf("strokes = %d, the box and arrow still render", len(rc.strokes))
	}
}

func TestFormField_MovesWhenCrossingBottom(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(exactPara("spacer", 655))
	doc.AddElement(&TextFormField{Props: RunProperties{SizePt: 10}})

	opts, rec := recordedOptions()
	pages := renderPages(t, doc, opts)
	if len(pages) != 2 {
		t.Fatalf("expected the field to move to page 2, got %d pages", len(pages))
	}
	if len(rec.canvases[0].fills) != 0 {
		t.Error("field leaked onto page 1")
	}
	if len(rec.canvases[1].fills) != 1 || math.Abs(rec.canvases[1].fills[0].y-72) > 1e-9 {
		t.Error("field must sit at the top of page 2")
	}
}

func TestContentControl_BracketsAndInset(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&ContentControl{
		Title:      "meta",
		Paragraphs: []*Paragraph{plainParagraph("inner", 10)},
	})
	doc.AddElement(plainParagraph("after", 10))

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if rc.lines != 8 {
		t.Errorf("lines = %d, want four corner brackets of two strokes", rc.lines)
	}
	inner := rc.textContaining("inner")
	if inner == nil {
		t.Fatal("control content missing")
	}
	if math.Abs(inner.x-78) > 1e-9 || math.Abs(inner.y-80.75) > 1e-6 {
		t.Errorf("content at (%v,%v), want (78,80.75)", inner.x, inner.y)
	}
	if rc.textContaining("meta") != nil {
		t.Error("the control title is metadata and must not render")
	}
	after := rc.textContaining("after")
	if after == nil {
		t.Fatal("following paragraph missing")
	}
	want := 72.0 + 10.75 + 4 + 10.75 - 2
	if math.Abs(after.y-want) > 1e-6 {
		t.Errorf("baseline after control = %v, want %v", after.y, want)
	}
}

func TestFloatingTextBox_DrawsAtAnchorWithoutAdvancing(t *testing.T) {
	fill := NewColor("FFF2CC")
	outline := ColorBlack
	doc := NewDocument()
	doc.AddElement(&FloatingTextBox{
		Paragraphs: []*Paragraph{plainParagraph("boxed", 10)},
		WidthPt:    100, HeightPt: 40,
		Fill: &fill, Outline: &outline,
		Anchor: Anchor{OffsetXPt: 200, OffsetYPt: 300},
	})
	doc.AddElement(plainParagraph("flow", 10))

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if len(rc.fills) != 1 || len(rc.strokes) != 1 {
		t.Fatalf("fills=%d strokes=%d, want one filled outlined box", len(rc.fills), len(rc.strokes))
	}
	if math.Abs(rc.fills[0].x-200) > 1e-9 || math.Abs(rc.fills[0].y-300) > 1e-9 {
		t.Errorf("box at (%v,%v), want page anchor (200,300)", rc.fills[0].x, rc.fills[0].y)
	}
	boxed := rc.textContaining("boxed")
	if boxed == nil {
		t.Fatal("box text missing")
	}
	if math.Abs(boxed.x-207.2) > 1e-6 || math.Abs(boxed.y-(303.6+10.75-2)) > 1e-6 {
		t.Errorf("box text at (%v,%v), want inset position", boxed.x, boxed.y)
	}

	// The flow is untouched by the floating box.
	flow := rc.textContaining("flow")
	if flow == nil || math.Abs(flow.y-(72+10.75-2)) > 1e-6 {
		t.Errorf("flow baseline = %+v, want the content top line", flow)
	}
}

func TestAnchorResolution(t *testing.T) {
	settings := DefaultPageSettings()
	settings.Columns = 2
	settings.ColumnSpacingPt = 24
	r := testRenderer(settings)

	cases := []struct {
		a    Anchor
		want float64
	}{
		{Anchor{Horizontal: AnchorHPage, OffsetXPt: 50}, 50},
		{Anchor{Horizontal: AnchorHMargin, OffsetXPt: 50}, 122},
		{Anchor{Horizontal: AnchorHColumn, OffsetXPt: 50}, 122},
		{Anchor{Horizontal: AnchorHCharacter, OffsetXPt: 50}, 122},
	}
	for _, c := range cases {
		if got := r.anchorX(c.a); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("anchorX(%+v) = %v, want %v", c.a, got, c.want)
		}
	}

	// Column anchoring follows the active column.
	r.ctx.moveToNextColumn()
	if got := r.anchorX(Anchor{Horizontal: AnchorHColumn, OffsetXPt: 50}); math.Abs(got-368) > 1e-9 {
		t.Errorf("column 1 anchorX = %v, want 368", got)
	}

	r.ctx.currentY = 300
	vcases := []struct {
		a    Anchor
		want float64
	}{
		{Anchor{Vertical: AnchorVPage, OffsetYPt: 40}, 40},
		{Anchor{Vertical: AnchorVMargin, OffsetYPt: 40}, 112},
		{Anchor{Vertical: AnchorVParagraph, OffsetYPt: 40}, 340},
		{Anchor{Vertical: AnchorVLine, OffsetYPt: 40}, 340},
	}
	for _, c := range vcases {
		if got := r.anchorY(c.a); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("anchorY(%+v) = %v, want %v", c.a, got, c.want)
		}
	}
}

func TestFloatingShape_Kinds(t *testing.T) {
	fill := ColorBlue
	outline := ColorBlack
	doc := NewDocument()
	doc.AddElement(&FloatingShape{Shape: ShapeEllipse, WidthPt: 60, HeightPt: 40, Fill: &fill,
		Anchor: Anchor{OffsetXPt: 10, OffsetYPt: 10}})
	doc.AddElement(&FloatingShape{Shape: ShapeRoundedRectangle, WidthPt: 60, HeightPt: 40, Fill: &fill,
		Anchor: Anchor{OffsetXPt: 10, OffsetYPt: 60}})
	doc.AddElement(&FloatingShape{Shape: ShapeLine, WidthPt: 60, HeightPt: 0, Outline: &outline,
		Anchor: Anchor{OffsetXPt: 10, OffsetYPt: 110}})
	doc.AddElement(&FloatingShape{Shape: ShapeRectangle, WidthPt: 60, HeightPt: 40, Fill: &fill, Outline: &outline,
		Anchor: Anchor{OffsetXPt: 10, OffsetYPt: 160}})

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if rc.ellipses != 1 {
		t.Errorf("ellipses = %d, want 1", rc.ellipses)
	}
	if rc.rounded != 1 {
		t.Errorf("rounded rects = %d, want 1", rc.rounded)
	}
	if rc.lines != 1 {
		t.Errorf("lines = %d, want 1", rc.lines)
	}
	if len(rc.fills) != 1 || len(rc.strokes) != 1 {
		t.Errorf("rectangle fills=%d strokes=%d, want 1 and 1", len(rc.fills), len(rc.strokes))
	}
}

func TestWordArt_InFlow(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&WordArt{Text: "BIG", SizePt: 36, Fill: ColorRed})
	doc.AddElement(plainParagraph("after", 10))

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	big := rc.textContaining("BIG")
	if big == nil {
		t.Fatal("wordart text missing")
	}
	// Top at the cursor; baseline one ascent (28.8px at 36pt) below.
	if math.Abs(big.x-72) > 1e-9 || math.Abs(big.y-100.8) > 1e-6 {
		t.Errorf("wordart at (%v,%v), want (72,100.8)", big.x, big.y)
	}
	after := rc.textContaining("after")
	if after == nil {
		t.Fatal("following paragraph missing")
	}
	want := 72.0 + 36 + 10.75 - 2
	if math.Abs(after.y-want) > 1e-6 {
		t.Errorf("baseline after wordart = %v, want %v", after.y, want)
	}
}

func TestWordArt_OutlineHalo(t *testing.T) {
	outline := ColorBlack
	doc := NewDocument()
	doc.AddElement(&WordArt{Text: "EDGE", SizePt: 36, Fill: ColorWhite, Outline: &outline})

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)

	n := 0
	for _, txt := range rec.canvases[0].texts {
		if txt.s == "EDGE" {
			n++
		}
	}
	if n != 9 {
		t.Errorf("outline halo draws = %d, want 8 offsets plus the fill", n)
	}
}

func TestFloatingWordArt_AnchoredWithoutAdvancing(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&FloatingWordArt{
		WordArt: WordArt{Text: "STAMP", SizePt: 36, Fill: ColorRed},
		Anchor:  Anchor{OffsetXPt: 100, OffsetYPt: 200},
	})
	doc.AddElement(plainParagraph("flow", 10))

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	stamp := rc.textContaining("STAMP")
	if stamp == nil {
		t.Fatal("floating wordart missing")
	}
	if math.Abs(stamp.x-100) > 1e-9 || math.Abs(stamp.y-228.8) > 1e-6 {
		t.Errorf("wordart at (%v,%v), want (100,228.8)", stamp.x, stamp.y)
	}
	flow := rc.textContaining("flow")
	if flow == nil || math.Abs(flow.y-(72+10.75-2)) > 1e-6 {
		t.Error("flow must start at the content top, unaffected by the anchor")
	}
}

func TestInk_StrokesAndAdvance(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&Ink{
		Strokes: [][]InkPoint{
			{{X: 0, Y: 0}, {X: 30, Y: 20}, {X: 60, Y: 0}},
			{{X: 10, Y: 10}},
		},
		Color:    ColorRed,
		WidthPt:  100,
		HeightPt: 50,
		PenPt:    2,
	})
	doc.AddElement(plainParagraph("after", 10))

	opts, rec := recordedOptions()
	renderPages(t, doc, opts)
	rc := rec.canvases[0]

	if rc.polylines != 1 {
		t.Errorf("polylines = %d, want 1", rc.polylines)
	}
	if rc.ellipses != 1 {
		t.Errorf("ellipses = %d, a single-point stroke is a dot", rc.ellipses)
	}
	after := rc.textContaining("after")
	if after == nil {
		t.Fatal("following paragraph missing")
	}
	want := 72.0 + 50 + 10.75 - 2
	if math.Abs(after.y-want) > 1e-6 {
		t.Errorf("baseline after ink = %v, want %v", after.y, want)
	}
}
