package godocument

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Canvas is the drawing surface the page orchestrator paints on. All
// coordinates are device pixels; text is positioned by its baseline.
// Implementations are not required to be safe for concurrent use.
type Canvas interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c Color)
	StrokeRect(x, y, w, h float64, c Color, lineWidth float64)
	Line(x1, y1, x2, y2 float64, c Color, lineWidth float64)
	Ellipse(cx, cy, rx, ry float64, fill, outline *Color, lineWidth float64)
	RoundedRect(x, y, w, h, r float64, fill, outline *Color, lineWidth float64)
	Polyline(xs, ys []float64, c Color, lineWidth float64)
	Text(x, baselineY float64, s string, face font.Face, c Color)
	DrawImage(img image.Image, x, y int)
}

// CanvasFactory builds a Canvas over a freshly allocated page bitmap.
type CanvasFactory func(img *image.RGBA) Canvas

// ggCanvas is the default Canvas backend over a gg drawing context.
type ggCanvas struct {
	dc *gg.Context
	w  int
	h  int
}

func newGGCanvas(img *image.RGBA) Canvas {
	b := img.Bounds()
	return &ggCanvas{dc: gg.NewContextForRGBA(img), w: b.Dx(), h: b.Dy()}
}

func (g *ggCanvas) Size() (int, int) { return g.w, g.h }

func (g *ggCanvas) setColor(c Color) {
	rgba := c.RGBA()
	g.dc.SetRGBA255(int(rgba.R), int(rgba.G), int(rgba.B), int(rgba.A))
}

func (g *ggCanvas) FillRect(x, y, w, h float64, c Color) {
	g.setColor(c)
	g.dc.DrawRectangle(x, y, w, h)
	g.dc.Fill()
}

func (g *ggCanvas) StrokeRect(x, y, w, h float64, c Color, lineWidth float64) {
	g.setColor(c)
	g.dc.SetLineWidth(lineWidth)
	g.dc.DrawRectangle(x, y, w, h)
	g.dc.Stroke()
}

func (g *ggCanvas) Line(x1, y1, x2, y2 float64, c Color, lineWidth float64) {
	g.setColor(c)
	g.dc.SetLineWidth(lineWidth)
	g.dc.DrawLine(x1, y1, x2, y2)
	g.dc.Stroke()
}

func (g *ggCanvas) Ellipse(cx, cy, rx, ry float64, fill, outline *Color, lineWidth float64) {
	g.dc.DrawEllipse(cx, cy, rx, ry)
	g.paint(fill, outline, lineWidth)
}

func (g *ggCanvas) RoundedRect(x, y, w, h, r float64, fill, outline *Color, lineWidth float64) {
	g.dc.DrawRoundedRectangle(x, y, w, h, r)
	g.paint(fill, outline, lineWidth)
}

// paint fills and/or strokes the current path, then drops it.
func (g *ggCanvas) paint(fill, outline *Color, lineWidth float64) {
	if fill != nil {
		g.setColor(*fill)
		if outline != nil {
			g.dc.FillPreserve()
		} else {
			g.dc.Fill()
		}
	}
	if outline != nil {
		g.setColor(*outline)
		g.dc.SetLineWidth(lineWidth)
		g.dc.Stroke()
	}
	if fill == nil && outline == nil {
		g.dc.ClearPath()
	}
}

func (g *ggCanvas) Polyline(xs, ys []float64, c Color, lineWidth float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return
	}
	g.dc.MoveTo(xs[0], ys[0])
	for i := 1; i < n; i++ {
		g.dc.LineTo(xs[i], ys[i])
	}
	g.setColor(c)
	g.dc.SetLineWidth(lineWidth)
	g.dc.Stroke()
}

func (g *ggCanvas) Text(x, baselineY float64, s string, face font.Face, c Color) {
	if face == nil || s == "" {
		return
	}
	g.dc.SetFontFace(face)
	g.setColor(c)
	g.dc.DrawString(s, x, baselineY)
}

func (g *ggCanvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	g.dc.DrawImage(img, x, y)
}

// pageSurface owns the bitmap of the page currently being rendered.
// Exactly one surface is open at a time; finishing appends the result
// and discarding drops it (used to trim a spurious trailing blank page).
type pageSurface struct {
	img    *image.RGBA
	canvas Canvas
	// hasContent records whether anything beyond the page background
	// was drawn. explicit records that the page owes its existence to
	// an explicit break, which protects it from the trailing-blank trim.
	hasContent bool
	explicit   bool
}

func newPageSurface(wPx, hPx int, background *Color, factory CanvasFactory) *pageSurface {
	img := image.NewRGBA(image.Rect(0, 0, wPx, hPx))
	canvas := factory(img)
	bg := ColorWhite
	if background != nil {
		bg = *background
	}
	canvas.FillRect(0, 0, float64(wPx), float64(hPx), bg)
	return &pageSurface{img: img, canvas: canvas}
}

// markContent flags the page as non-blank.
func (p *pageSurface) markContent() {
	p.hasContent = true
}
