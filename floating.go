package godocument

import "math"

// anchorX resolves a floating element's X coordinate in device pixels.
// Character anchoring is approximated by the column origin; the model
// does not track individual character positions across reflows.
func (r *renderer) anchorX(a Anchor) float64 {
	ctx := r.ctx
	off := ctx.px(a.OffsetXPt)
	switch a.Horizontal {
	case AnchorHMargin:
		return ctx.px(ctx.settings.MarginLeftPt) + off
	case AnchorHColumn, AnchorHCharacter:
		return ctx.contentLeft() + off
	default: // AnchorHPage
		return off
	}
}

// anchorY resolves a floating element's Y coordinate. Paragraph and Line
// anchoring are relative to the cursor at the moment the element is
// reached in the flow.
func (r *renderer) anchorY(a Anchor) float64 {
	ctx := r.ctx
	off := ctx.px(a.OffsetYPt)
	switch a.Vertical {
	case AnchorVMargin:
		return ctx.px(ctx.settings.MarginTopPt) + off
	case AnchorVParagraph, AnchorVLine:
		return ctx.currentY + off
	default: // AnchorVPage
		return off
	}
}

func (r *renderer) renderFloatingImage(f *FloatingImage) error {
	ctx := r.ctx
	w := ctx.px(f.WidthPt)
	h := ctx.px(f.HeightPt)
	decoded, err := decodeAt(f.Data, f.Vector, int(math.Round(w)), int(math.Round(h)))
	if err != nil {
		return nil // skip the pixels; the flow is untouched either way
	}
	if canvas := r.canvas(); canvas != nil {
		canvas.DrawImage(decoded, int(math.Round(r.anchorX(f.Anchor))), int(math.Round(r.anchorY(f.Anchor))))
		r.markContent()
	}
	return nil
}

func (r *renderer) renderFloatingTextBox(f *FloatingTextBox) error {
	canvas := r.canvas()
	if canvas == nil {
		return nil
	}
	ctx := r.ctx
	x := r.anchorX(f.Anchor)
	y := r.anchorY(f.Anchor)
	w := ctx.px(f.WidthPt)
	h := ctx.px(f.HeightPt)
	if f.Fill != nil {
		canvas.FillRect(x, y, w, h, *f.Fill)
	}
	if f.Outline != nil {
		lw := ctx.px(f.OutlineWidthPt)
		if lw <= 0 {
			lw = 1
		}
		canvas.StrokeRect(x, y, w, h, *f.Outline, lw)
	}
	ix := ctx.px(textBoxInsetXPt)
	iy := ctx.px(textBoxInsetYPt)
	if _, err := r.paragraphsBlock(f.Paragraphs, x+ix, y+iy, w-2*ix, true); err != nil {
		return err
	}
	r.markContent()
	return nil
}

// renderFloatingShape draws a shape when its element is reached in the
// flow. Behind-text shapes were usually painted at page start already;
// the drawn set catches the ones soft breaks carried to a later page.
func (r *renderer) renderFloatingShape(idx int, f *FloatingShape) {
	if f.BehindText {
		if r.behindDrawn[idx] {
			return
		}
		r.behindDrawn[idx] = true
		r.drawShape(f)
		return
	}
	r.drawShape(f)
	r.markContent()
}

func (r *renderer) drawShape(f *FloatingShape) {
	canvas := r.canvas()
	if canvas == nil {
		return
	}
	ctx := r.ctx
	x := r.anchorX(f.Anchor)
	y := r.anchorY(f.Anchor)
	w := ctx.px(f.WidthPt)
	h := ctx.px(f.HeightPt)
	lw := ctx.px(f.OutlineWidthPt)
	if f.Outline != nil && lw <= 0 {
		lw = 1
	}

	switch f.Shape {
	case ShapeEllipse:
		canvas.Ellipse(x+w/2, y+h/2, w/2, h/2, f.Fill, f.Outline, lw)
	case ShapeRoundedRectangle:
		radius := math.Min(w, h) / 6
		canvas.RoundedRect(x, y, w, h, radius, f.Fill, f.Outline, lw)
	case ShapeLine:
		c := ColorBlack
		if f.Outline != nil {
			c = *f.Outline
		}
		if lw <= 0 {
			lw = 1
		}
		canvas.Line(x, y, x+w, y+h, c, lw)
	default: // ShapeRectangle
		if f.Fill != nil {
			canvas.FillRect(x, y, w, h, *f.Fill)
		}
		if f.Outline != nil {
			canvas.StrokeRect(x, y, w, h, *f.Outline, lw)
		}
	}
}

func (r *renderer) renderFloatingWordArt(f *FloatingWordArt) error {
	if r.canvas() == nil {
		return nil
	}
	if err := r.drawWordArt(&f.WordArt, r.anchorX(f.Anchor), r.anchorY(f.Anchor)); err != nil {
		return err
	}
	r.markContent()
	return nil
}
