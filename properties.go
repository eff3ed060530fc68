package godocument

// Alignment is the horizontal alignment of a paragraph's lines.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// LineSpacingRule selects how a paragraph's line spacing value is applied.
type LineSpacingRule int

const (
	// LineSpacingAuto treats the value as a multiple of the natural line
	// height (1.0 = single). Multiples between 0.9 and 1.15 additionally
	// receive a small compensation boost matching Word's metrics.
	LineSpacingAuto LineSpacingRule = iota
	// LineSpacingExact forces every line to exactly the value in points.
	LineSpacingExact
	// LineSpacingAtLeast uses the value in points as a floor under the
	// natural line height.
	LineSpacingAtLeast
)

// LineSpacing is a paragraph line spacing declaration.
type LineSpacing struct {
	Rule  LineSpacingRule
	Value float64 // multiplier for Auto, points otherwise
}

// VerticalTextAlign positions a run relative to the baseline.
type VerticalTextAlign int

const (
	VerticalAlignBaseline VerticalTextAlign = iota
	VerticalAlignSuperscript
	VerticalAlignSubscript
)

// ParagraphProperties is the block-level formatting of a paragraph.
// Spacing and indents are in points.
type ParagraphProperties struct {
	Alignment Alignment

	SpacingBeforePt float64
	SpacingAfterPt  float64
	LineSpacing     *LineSpacing

	IndentLeftPt      float64
	IndentRightPt     float64
	IndentFirstPt     float64 // positive first-line indent
	IndentHangingPt   float64 // positive hanging indent, overrides IndentFirstPt
	ContextualSpacing bool    // suppress before/after between same-style neighbors
	StyleName         string

	KeepWithNext      bool
	KeepLinesTogether bool
	PageBreakBefore   bool
	// WidowControl is accepted for model fidelity but has no layout
	// effect; widow/orphan handling is out of scope.
	WidowControl bool

	Numbering *NumberingRef
	Shading   *Color
}

// NumberingRef attaches a pre-resolved list glyph to a paragraph. List
// counter resolution happens in the parser; the layout engine only draws
// the glyph on the first line and indents the text body.
type NumberingRef struct {
	Glyph    string  // e.g. "•" or "3."
	IndentPt float64 // gap reserved for the glyph before the text body
}

// FirstLineExtraPt returns the additional indent of the first line
// relative to the paragraph's left edge; negative for hanging indents.
func (p *ParagraphProperties) FirstLineExtraPt() float64 {
	if p.IndentHangingPt > 0 {
		return -p.IndentHangingPt
	}
	return p.IndentFirstPt
}

// LeftEdgePt returns the left text edge for a first or continuation
// line, folding hanging indents into the continuation lines.
func (p *ParagraphProperties) LeftEdgePt(firstLine bool) float64 {
	left := p.IndentLeftPt
	if p.IndentHangingPt > 0 {
		// Hanging: first line at left, continuations pushed right.
		if !firstLine {
			left += p.IndentHangingPt
		}
		return left
	}
	if firstLine {
		left += p.IndentFirstPt
	}
	return left
}

// RunProperties is the character-level formatting of a run.
type RunProperties struct {
	FontFamily string
	SizePt     float64
	Bold       bool
	Italic     bool
	Underline  bool
	Strike     bool
	Color      Color
	Highlight  *Color
	AllCaps    bool
	VertAlign  VerticalTextAlign
}

// EffectiveSizePt returns the glyph size in points after applying the
// subscript/superscript reduction (Word renders both at two thirds of
// the declared size).
func (r *RunProperties) EffectiveSizePt() float64 {
	size := r.SizePt
	if size <= 0 {
		size = 11 // Word's default body size
	}
	if r.VertAlign != VerticalAlignBaseline {
		size = size * 2 / 3
	}
	return size
}

// BaselineShiftPt returns the signed baseline displacement in points for
// subscript/superscript runs; negative values move glyphs up.
func (r *RunProperties) BaselineShiftPt() float64 {
	size := r.SizePt
	if size <= 0 {
		size = 11
	}
	switch r.VertAlign {
	case VerticalAlignSuperscript:
		return -0.35 * size
	case VerticalAlignSubscript:
		return 0.15 * size
	}
	return 0
}
