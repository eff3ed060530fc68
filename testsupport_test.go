package godocument

import (
	"image"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// fixedFace is a font.Face with constant advance and metrics so layout
// tests get deterministic geometry without touching system fonts.
type fixedFace struct {
	advance fixed.Int26_6
	ascent  fixed.Int26_6
	descent fixed.Int26_6
}

func newFixedFace(advancePx, ascentPx, descentPx float64) *fixedFace {
	return &fixedFace{
		advance: fixed.Int26_6(advancePx * 64),
		ascent:  fixed.Int26_6(ascentPx * 64),
		descent: fixed.Int26_6(descentPx * 64),
	}
}

func (f *fixedFace) Close() error { return nil }

func (f *fixedFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rect(0, 0, 1, 1), image.NewAlpha(image.Rect(0, 0, 1, 1)), image.Point{}, f.advance, true
}

func (f *fixedFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.Rectangle26_6{}, f.advance, true
}

func (f *fixedFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) { return f.advance, true }

func (f *fixedFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f *fixedFace) Metrics() font.Metrics {
	return font.Metrics{
		Height:  f.ascent + f.descent,
		Ascent:  f.ascent,
		Descent: f.descent,
	}
}

// fakeFonts serves fixed-metric faces derived from the requested size:
// every rune advances size/2, ascent is 0.8x size, descent 0.2x size.
// At 72 DPI one point equals one pixel, keeping expected values simple.
type fakeFonts struct{}

func (fakeFonts) Face(family string, size float64, bold, italic bool) (font.Face, error) {
	return newFixedFace(size/2, size*0.8, size*0.2), nil
}

func (fakeFonts) MeasureFace(family string, size float64, bold, italic bool) (font.Face, error) {
	return newFixedFace(size/2, size*0.8, size*0.2), nil
}

// recordingCanvas captures draw calls for assertions.
type recordingCanvas struct {
	w, h      int
	texts     []recordedText
	fills     []recordedRect
	strokes   []recordedRect
	lines     int
	polylines int
	ellipses  int
	rounded   int
	images    int
}

type recordedText struct {
	x, y float64
	s    string
}

type recordedRect struct {
	x, y, w, h float64
	c          Color
}

func (rc *recordingCanvas) Size() (int, int) { return rc.w, rc.h }

func (rc *recordingCanvas) FillRect(x, y, w, h float64, c Color) {
	rc.fills = append(rc.fills, recordedRect{x, y, w, h, c})
}

func (rc *recordingCanvas) StrokeRect(x, y, w, h float64, c Color, lineWidth float64) {
	rc.strokes = append(rc.strokes, recordedRect{x, y, w, h, c})
}

func (rc *recordingCanvas) Line(x1, y1, x2, y2 float64, c Color, lineWidth float64) {
	rc.lines++
}

func (rc *recordingCanvas) Ellipse(cx, cy, rx, ry float64, fill, outline *Color, lineWidth float64) {
	rc.ellipses++
}

func (rc *recordingCanvas) RoundedRect(x, y, w, h, r float64, fill, outline *Color, lineWidth float64) {
	rc.rounded++
}

func (rc *recordingCanvas) Polyline(xs, ys []float64, c Color, lineWidth float64) {
	rc.polylines++
}

func (rc *recordingCanvas) Text(x, baselineY float64, s string, face font.Face, c Color) {
	rc.texts = append(rc.texts, recordedText{x, baselineY, s})
}

func (rc *recordingCanvas) DrawImage(img image.Image, x, y int) { rc.images++ }

func (rc *recordingCanvas) textContaining(sub string) *recordedText {
	for i := range rc.texts {
		if rc.texts[i].s == sub {
			return &rc.texts[i]
		}
	}
	return nil
}

// canvasRecorder hands out one recordingCanvas per page so tests can
// inspect what was drawn where.
type canvasRecorder struct {
	canvases []*recordingCanvas
}

func (cr *canvasRecorder) factory(img *image.RGBA) Canvas {
	b := img.Bounds()
	rc := &recordingCanvas{w: b.Dx(), h: b.Dy()}
	cr.canvases = append(cr.canvases, rc)
	return rc
}

// testOptions renders at 72 DPI with fake fonts: one point is one pixel
// and glyph advances are size/2.
func testOptions() *RenderOptions {
	return &RenderOptions{DPI: 72, FontScale: 1.0, FontSource: fakeFonts{}}
}

// recordedOptions is testOptions plus a canvas recorder.
func recordedOptions() (*RenderOptions, *canvasRecorder) {
	rec := &canvasRecorder{}
	opts := testOptions()
	opts.CanvasFactory = rec.factory
	return opts, rec
}

// testContext builds a bare layout context over fake fonts.
func testContext(settings PageSettings) *layoutContext {
	ctx := newLayoutContext(settings, 72, 1.0, fakeFonts{})
	ctx.startPage()
	return ctx
}

func plainParagraph(text string, size float64) *Paragraph {
	p := &Paragraph{}
	p.AddRun(text, RunProperties{SizePt: size})
	return p
}

func renderPages(t *testing.T, doc *Document, opts *RenderOptions) []PageImage {
	t.Helper()
	pages, err := RenderDocument(doc, opts)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	return pages
}
