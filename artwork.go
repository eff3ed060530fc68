package godocument

// wordArtProps maps WordArt declarations onto run properties so the
// ordinary font resolution chain applies.
func wordArtProps(w *WordArt) RunProperties {
	size := w.SizePt
	if size <= 0 {
		size = 36
	}
	return RunProperties{
		FontFamily: w.FontFamily,
		SizePt:     size,
		Bold:       w.Bold,
		Italic:     w.Italic,
		Color:      w.Fill,
	}
}

// measureWordArt returns the rendered width and height of the text.
func (r *renderer) measureWordArt(w *WordArt) (float64, float64, error) {
	props := wordArtProps(w)
	face, err := r.ctx.measureFaceFor(&props)
	if err != nil {
		return 0, 0, err
	}
	m := face.Metrics()
	return measureString(face, w.Text), fixedToFloat(m.Ascent) + fixedToFloat(m.Descent), nil
}

// drawWordArt paints the text with its top-left corner at (x, y). The
// outline effect is an eight-direction halo pass under the fill, which
// reads as a stroked glyph at display sizes.
func (r *renderer) drawWordArt(w *WordArt, x, y float64) error {
	canvas := r.canvas()
	if canvas == nil {
		return nil
	}
	props := wordArtProps(w)
	face, err := r.ctx.faceFor(&props)
	if err != nil {
		return err
	}
	m := face.Metrics()
	baseline := y + fixedToFloat(m.Ascent)
	if w.Outline != nil {
		offsets := [8][2]float64{
			{-1, -1}, {0, -1}, {1, -1},
			{-1, 0}, {1, 0},
			{-1, 1}, {0, 1}, {1, 1},
		}
		for _, d := range offsets {
			canvas.Text(x+d[0], baseline+d[1], w.Text, face, *w.Outline)
		}
	}
	canvas.Text(x, baseline, w.Text, face, w.Fill)
	return nil
}

// renderWordArt places display text in the flow at the cursor.
func (r *renderer) renderWordArt(w *WordArt) error {
	_, h, err := r.measureWordArt(w)
	if err != nil {
		return err
	}
	if err := r.ensureSpace(h); err != nil {
		return err
	}
	if r.canvas() != nil {
		if err := r.drawWordArt(w, r.ctx.contentLeft(), r.ctx.currentY); err != nil {
			return err
		}
		r.markContent()
	}
	r.ctx.currentY += h
	r.ctx.resetAdjacency()
	return nil
}

// renderInk draws freehand pen strokes inside the declared bounding box
// at the cursor and advances by the box height. Stroke points are in
// points relative to the box origin.
func (r *renderer) renderInk(ink *Ink) error {
	ctx := r.ctx
	h := ctx.px(ink.HeightPt)
	if err := r.ensureSpace(h); err != nil {
		return err
	}
	x := ctx.contentLeft()
	y := ctx.currentY
	pen := ctx.px(ink.PenPt)
	if pen <= 0 {
		pen = 1
	}

	if canvas := r.canvas(); canvas != nil {
		for _, stroke := range ink.Strokes {
			if len(stroke) == 0 {
				continue
			}
			if len(stroke) == 1 {
				// A lone point is a pen dot.
				canvas.Ellipse(x+ctx.px(stroke[0].X), y+ctx.px(stroke[0].Y), pen/2, pen/2, &ink.Color, nil, 0)
				continue
			}
			xs := make([]float64, len(stroke))
			ys := make([]float64, len(stroke))
			for i, pt := range stroke {
				xs[i] = x + ctx.px(pt.X)
				ys[i] = y + ctx.px(pt.Y)
			}
			canvas.Polyline(xs, ys, ink.Color, pen)
		}
		if len(ink.Strokes) > 0 {
			r.markContent()
		}
	}

	ctx.currentY += h
	ctx.resetAdjacency()
	return nil
}
