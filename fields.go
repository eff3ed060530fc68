package godocument

const (
	// formFieldGapPt is the vertical gap left after every form-field
	// style element.
	formFieldGapPt = 4.0
	// fieldPadPt is the inner padding of text and drop-down field boxes.
	fieldPadPt = 2.0
	// textBoxInsetXPt and textBoxInsetYPt are the internal text margins
	// of floating text boxes.
	textBoxInsetXPt = 7.2
	textBoxInsetYPt = 3.6
	// contentControlInsetPt is the horizontal inset between a content
	// control's bracket marks and its paragraphs.
	contentControlInsetPt = 6.0
	// defaultFieldWidthPt is used when a field declares no width.
	defaultFieldWidthPt = 108.0
)

// fieldShading is the classic gray fill of interactive form fields.
var fieldShading = Color{ARGB: "FFE0E0E0"}

// formFieldHeight is the box height of a single-line field: the natural
// line height of the field's run properties plus padding.
func (r *renderer) formFieldHeight(props *RunProperties) (float64, error) {
	face, err := r.ctx.measureFaceFor(props)
	if err != nil {
		return 0, err
	}
	m := face.Metrics()
	return fixedToFloat(m.Ascent) + fixedToFloat(m.Descent) + 2*r.ctx.px(fieldPadPt), nil
}

// boundFieldTop runs the bottom-bound test shared by the fixed-height
// fields: a field that would cross the content bottom moves to the next
// column or page first.
func (r *renderer) boundFieldTop(height float64) error {
	if !r.ctx.hasSpaceFor(height) && !r.atColumnTop() {
		return r.advance()
	}
	return nil
}

// renderTextFormField draws a shaded, bordered fill-in box containing the
// field value, or placeholder underscores when it is empty.
func (r *renderer) renderTextFormField(f *TextFormField) error {
	ctx := r.ctx
	h, err := r.formFieldHeight(&f.Props)
	if err != nil {
		return err
	}
	if err := r.boundFieldTop(h); err != nil {
		return err
	}
	w := ctx.px(f.WidthPt)
	if w <= 0 {
		w = ctx.px(defaultFieldWidthPt)
	}
	x := ctx.contentLeft()
	y := ctx.currentY

	if canvas := r.canvas(); canvas != nil {
		canvas.FillRect(x, y, w, h, fieldShading)
		canvas.StrokeRect(x, y, w, h, ColorBlack, 1)
		value := f.Value
		if value == "" {
			value = "_____"
		}
		face, err := ctx.faceFor(&f.Props)
		if err != nil {
			return err
		}
		m := face.Metrics()
		baseline := y + ctx.px(fieldPadPt) + fixedToFloat(m.Ascent)
		canvas.Text(x+ctx.px(fieldPadPt), baseline, value, face, f.Props.Color)
		r.markContent()
	}

	ctx.currentY += h + ctx.px(formFieldGapPt)
	ctx.resetAdjacency()
	return nil
}

// checkBoxSide is the square side of a check box field in device pixels.
func (r *renderer) checkBoxSide(f *CheckBoxFormField) float64 {
	size := f.SizePt
	if size <= 0 {
		size = 11
	}
	return r.ctx.px(size)
}

func (r *renderer) renderCheckBoxFormField(f *CheckBoxFormField) error {
	ctx := r.ctx
	side := r.checkBoxSide(f)
	if err := r.boundFieldTop(side); err != nil {
		return err
	}
	x := ctx.contentLeft()
	y := ctx.currentY

	if canvas := r.canvas(); canvas != nil {
		canvas.StrokeRect(x, y, side, side, ColorBlack, 1)
		if f.Checked {
			in := side * 0.2
			canvas.Line(x+in, y+in, x+side-in, y+side-in, ColorBlack, 1.5)
			canvas.Line(x+side-in, y+in, x+in, y+side-in, ColorBlack, 1.5)
		}
		r.markContent()
	}

	ctx.currentY += side + ctx.px(formFieldGapPt)
	ctx.resetAdjacency()
	return nil
}

// renderDropDownFormField draws the selected entry in a shaded box with a
// drop arrow pad at the right edge.
func (r *renderer) renderDropDownFormField(f *DropDownFormField) error {
	ctx := r.ctx
	h, err := r.formFieldHeight(&f.Props)
	if err != nil {
		return err
	}
	if err := r.boundFieldTop(h); err != nil {
		return err
	}
	w := ctx.px(f.WidthPt)
	if w <= 0 {
		w = ctx.px(defaultFieldWidthPt)
	}
	x := ctx.contentLeft()
	y := ctx.currentY

	if canvas := r.canvas(); canvas != nil {
		canvas.FillRect(x, y, w, h, fieldShading)
		canvas.StrokeRect(x, y, w, h, ColorBlack, 1)

		if sel := f.Selection(); sel != "" {
			face, err := ctx.faceFor(&f.Props)
			if err != nil {
				return err
			}
			m := face.Metrics()
			baseline := y + ctx.px(fieldPadPt) + fixedToFloat(m.Ascent)
			canvas.Text(x+ctx.px(fieldPadPt), baseline, sel, face, f.Props.Color)
		}

		// Arrow pad: a square at the right edge with a chevron.
		ax := x + w - h
		canvas.StrokeRect(ax, y, h, h, ColorBlack, 1)
		cx, cy, q := ax+h/2, y+h/2, h/5
		canvas.Line(cx-q, cy-q/2, cx, cy+q/2, ColorBlack, 1.5)
		canvas.Line(cx, cy+q/2, cx+q, cy-q/2, ColorBlack, 1.5)
		r.markContent()
	}

	ctx.currentY += h + ctx.px(formFieldGapPt)
	ctx.resetAdjacency()
	return nil
}

// contentControlWidth is the paragraph width inside the bracket marks.
func (r *renderer) contentControlWidth() float64 {
	return r.ctx.columnWidth() - 2*r.ctx.px(contentControlInsetPt)
}

// renderContentControl draws a structured tag's paragraphs with light
// corner brackets around the block. The title is metadata for callers
// and is not rendered.
func (r *renderer) renderContentControl(c *ContentControl) error {
	ctx := r.ctx
	width := r.contentControlWidth()
	h, err := r.paragraphsBlock(c.Paragraphs, 0, 0, width, false)
	if err != nil {
		return err
	}
	if err := r.ensureSpace(h); err != nil {
		return err
	}
	x := ctx.contentLeft()
	y := ctx.currentY

	if canvas := r.canvas(); canvas != nil && h > 0 {
		drawCornerBrackets(canvas, x, y, ctx.columnWidth(), h, ctx.px(4))
	}
	if _, err := r.paragraphsBlock(c.Paragraphs, x+ctx.px(contentControlInsetPt), y, width, true); err != nil {
		return err
	}
	if h > 0 {
		r.markContent()
	}

	ctx.currentY += h + ctx.px(formFieldGapPt)
	ctx.resetAdjacency()
	return nil
}

// drawCornerBrackets paints four light L-shaped marks at the corners of
// the block.
func drawCornerBrackets(canvas Canvas, x, y, w, h, arm float64) {
	c := ColorGray
	// top-left
	canvas.Line(x, y, x+arm, y, c, 1)
	canvas.Line(x, y, x, y+arm, c, 1)
	// top-right
	canvas.Line(x+w-arm, y, x+w, y, c, 1)
	canvas.Line(x+w, y, x+w, y+arm, c, 1)
	// bottom-left
	canvas.Line(x, y+h, x+arm, y+h, c, 1)
	canvas.Line(x, y+h-arm, x, y+h, c, 1)
	// bottom-right
	canvas.Line(x+w-arm, y+h, x+w, y+h, c, 1)
	canvas.Line(x+w, y+h-arm, x+w, y+h, c, 1)
}
