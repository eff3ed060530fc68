package godocument

import (
	"math"
	"strconv"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Single-spacing compatibility boost: raw font ascent+descent comes out
// shorter than Word's "single spacing" line pitch. Auto-spaced lines
// with multipliers in [lineBoostLow, lineBoostHigh] are stretched by up
// to lineBoostMax (at the low end), tapering to nothing at the high end.
const (
	lineBoostLow  = 0.90
	lineBoostHigh = 1.15
	lineBoostMax  = 0.125
)

const (
	softHyphen        = '­'
	nonBreakingHyphen = '‑'
)

// textFragment is one drawable piece of a line: a styled text span, a
// whitespace gap, or an inline image.
type textFragment struct {
	text    string
	width   float64
	ascent  float64
	descent float64
	props   RunProperties
	img     *InlineImage
	isSpace bool
}

// textLine is one laid-out line of a paragraph. Lines are values; the
// layout appends them and rebuilds the final entry to set lastLine
// rather than mutating in place.
type textLine struct {
	fragments []textFragment
	width     float64
	height    float64
	ascent    float64
	descent   float64
	firstLine bool
	lastLine  bool
}

// spaceGaps counts the whitespace fragments available for justification.
func (l *textLine) spaceGaps() int {
	n := 0
	for _, f := range l.fragments {
		if f.isSpace {
			n++
		}
	}
	return n
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenSpace
	tokenNewline
	tokenImage
)

// token is one unit of run content for the greedy line filler. shyAfter
// marks a word piece that ended at a soft hyphen: a legal break point
// that becomes a visible hyphen only if the line actually breaks there.
type token struct {
	kind     tokenKind
	text     string
	props    RunProperties
	img      *InlineImage
	shyAfter bool
}

// tokenizeRun splits a run into word/whitespace/newline tokens. Soft
// hyphens split words into joinable pieces; non-breaking hyphens are
// folded into the word as a plain hyphen and never break. AllCaps runs
// are upper-cased before measuring so widths match what is drawn.
func tokenizeRun(run Run, caser *cases.Caser) []token {
	if run.Image != nil {
		return []token{{kind: tokenImage, img: run.Image, props: run.Props}}
	}
	text := run.Text
	if text == "" {
		return nil
	}
	if run.Props.AllCaps {
		text = caser.String(text)
	}

	var toks []token
	var word, space []rune
	flushWord := func(shy bool) {
		if len(word) == 0 {
			return
		}
		toks = append(toks, token{kind: tokenWord, text: string(word), props: run.Props, shyAfter: shy})
		word = word[:0]
	}
	flushSpace := func() {
		if len(space) == 0 {
			return
		}
		toks = append(toks, token{kind: tokenSpace, text: string(space), props: run.Props})
		space = space[:0]
	}

	for _, r := range text {
		switch {
		case r == '\n':
			flushWord(false)
			flushSpace()
			toks = append(toks, token{kind: tokenNewline, props: run.Props})
		case r == '\r':
			// ignored; \n carries the break
		case r == softHyphen:
			flushWord(true)
		case r == nonBreakingHyphen:
			flushSpace()
			word = append(word, '-')
		case r == ' ':
			// non-breaking space: part of the word, drawn as a space
			flushSpace()
			word = append(word, ' ')
		case r == ' ' || r == '\t' || unicode.IsSpace(r):
			flushWord(false)
			space = append(space, ' ')
		default:
			flushSpace()
			word = append(word, r)
		}
	}
	flushWord(false)
	flushSpace()
	return toks
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

func measureString(face font.Face, s string) float64 {
	return fixedToFloat(font.MeasureString(face, s))
}

// splitWordToWidth splits a word wider than the column into the longest
// head that still fits (never fewer than one rune, so layout always
// progresses) and the remaining tail.
func splitWordToWidth(ctx *layoutContext, face font.Face, word string, width float64) (head, tail string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && ctx.measureWidth(face, string(runes[:n+1])) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// transformLineHeight applies the paragraph's line-spacing rule to a
// natural (ascent+descent) line height, including the single-spacing
// compatibility boost and the document-grid floor.
func transformLineHeight(ctx *layoutContext, natural float64, ls *LineSpacing) float64 {
	rule, value := LineSpacingAuto, 1.0
	if ls != nil {
		rule, value = ls.Rule, ls.Value
	}
	var h float64
	switch rule {
	case LineSpacingExact:
		h = ctx.px(value)
	case LineSpacingAtLeast:
		h = math.Max(natural, ctx.px(value))
	default:
		m := value
		if m <= 0 {
			m = 1.0
		}
		h = natural * m
		if m >= lineBoostLow && m <= lineBoostHigh {
			boost := lineBoostMax * (lineBoostHigh - m) / (lineBoostHigh - lineBoostLow)
			h *= 1 + boost
		}
	}
	return ctx.applyGridPitch(h, rule)
}

// layoutParagraph lays out a paragraph's runs into lines no wider than
// maxWidthPx (before indents). The whole paragraph is laid out eagerly:
// its height must be known before any of it is drawn. A paragraph with
// no content still yields one empty line.
func layoutParagraph(ctx *layoutContext, para *Paragraph, maxWidthPx float64) ([]textLine, error) {
	caser := cases.Upper(language.Und)
	var toks []token
	for _, run := range para.Runs {
		toks = append(toks, tokenizeRun(run, &caser)...)
	}

	props := &para.Props
	firstWidth := maxWidthPx - ctx.px(props.LeftEdgePt(true)) - ctx.px(props.IndentRightPt)
	restWidth := maxWidthPx - ctx.px(props.LeftEdgePt(false)) - ctx.px(props.IndentRightPt)

	var (
		lines      []textLine
		cur        []textFragment
		curW       float64
		curAscent  float64
		curDescent float64
	)
	firstLineFlag := true
	justWrapped := false
	var pendingShy *RunProperties

	effWidth := func() float64 {
		if firstLineFlag {
			return firstWidth
		}
		return restWidth
	}

	finish := func(emptyProps *RunProperties) error {
		for len(cur) > 0 && cur[len(cur)-1].isSpace {
			curW -= cur[len(cur)-1].width
			cur = cur[:len(cur)-1]
		}
		ascent, descent := curAscent, curDescent
		if len(cur) == 0 {
			// Empty line: height comes from the run active at the break.
			p := RunProperties{}
			if emptyProps != nil {
				p = *emptyProps
			}
			face, err := ctx.measureFaceFor(&p)
			if err != nil {
				return err
			}
			m := face.Metrics()
			ascent, descent = fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
		}
		height := transformLineHeight(ctx, ascent+descent, props.LineSpacing)
		lines = append(lines, textLine{
			fragments: cur,
			width:     curW,
			height:    height,
			ascent:    ascent,
			descent:   descent,
			firstLine: firstLineFlag,
		})
		cur, curW, curAscent, curDescent = nil, 0, 0, 0
		firstLineFlag = false
		pendingShy = nil
		return nil
	}

	// wrapBreak finishes the current line at a wrap point, making a
	// trailing soft hyphen visible.
	wrapBreak := func() error {
		if pendingShy != nil {
			face, err := ctx.measureFaceFor(pendingShy)
			if err != nil {
				return err
			}
			m := face.Metrics()
			hw := ctx.measureWidth(face, "-")
			cur = append(cur, textFragment{
				text:    "-",
				width:   hw,
				ascent:  fixedToFloat(m.Ascent),
				descent: fixedToFloat(m.Descent),
				props:   *pendingShy,
			})
			curW += hw
		}
		if err := finish(nil); err != nil {
			return err
		}
		justWrapped = true
		return nil
	}

	i := 0
	for i < len(toks) {
		tok := toks[i]
		switch tok.kind {
		case tokenNewline:
			if err := finish(&tok.props); err != nil {
				return nil, err
			}
			justWrapped = false
			i++

		case tokenSpace:
			if justWrapped && len(cur) == 0 {
				i++ // spaces do not carry across a wrap
				continue
			}
			face, err := ctx.measureFaceFor(&tok.props)
			if err != nil {
				return nil, err
			}
			m := face.Metrics()
			w := ctx.measureWidth(face, tok.text)
			cur = append(cur, textFragment{
				text:    tok.text,
				width:   w,
				ascent:  fixedToFloat(m.Ascent),
				descent: fixedToFloat(m.Descent),
				props:   tok.props,
				isSpace: true,
			})
			curW += w
			curAscent = math.Max(curAscent, fixedToFloat(m.Ascent))
			curDescent = math.Max(curDescent, fixedToFloat(m.Descent))
			pendingShy = nil
			i++

		case tokenImage:
			w := ctx.px(tok.img.WidthPt)
			h := ctx.px(tok.img.HeightPt)
			if len(cur) > 0 && curW+w > effWidth() {
				if err := wrapBreak(); err != nil {
					return nil, err
				}
				continue
			}
			cur = append(cur, textFragment{
				width:  w,
				ascent: h, // image bottom sits on the baseline
				props:  tok.props,
				img:    tok.img,
			})
			curW += w
			curAscent = math.Max(curAscent, h)
			pendingShy = nil
			justWrapped = false
			i++

		case tokenWord:
			face, err := ctx.measureFaceFor(&tok.props)
			if err != nil {
				return nil, err
			}
			w := ctx.measureWidth(face, tok.text)
			if len(cur) > 0 && curW+w > effWidth() {
				if err := wrapBreak(); err != nil {
					return nil, err
				}
				continue
			}
			text, tail := tok.text, ""
			if w > effWidth() {
				// Wider than the column on its own: hard-split at the
				// rune level. The head fills this line and the tail
				// re-enters the loop as the same token.
				text, tail = splitWordToWidth(ctx, face, tok.text, effWidth())
				w = ctx.measureWidth(face, text)
			}
			m := face.Metrics()
			cur = append(cur, textFragment{
				text:    text,
				width:   w,
				ascent:  fixedToFloat(m.Ascent),
				descent: fixedToFloat(m.Descent),
				props:   tok.props,
			})
			curW += w
			curAscent = math.Max(curAscent, fixedToFloat(m.Ascent))
			curDescent = math.Max(curDescent, fixedToFloat(m.Descent))
			if tail != "" {
				toks[i].text = tail
				if err := wrapBreak(); err != nil {
					return nil, err
				}
				continue
			}
			if tok.shyAfter {
				p := tok.props
				pendingShy = &p
			} else {
				pendingShy = nil
			}
			justWrapped = false
			i++
		}
	}

	if len(cur) > 0 || len(lines) == 0 {
		var emptyProps *RunProperties
		if len(para.Runs) > 0 {
			emptyProps = &para.Runs[len(para.Runs)-1].Props
		}
		if err := finish(emptyProps); err != nil {
			return nil, err
		}
	}

	// Rebuild the final entry with the last-line flag set; justification
	// never stretches the last line.
	last := lines[len(lines)-1]
	last.lastLine = true
	lines[len(lines)-1] = last
	return lines, nil
}

// linesHeight sums the transformed heights of laid-out lines.
func linesHeight(lines []textLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.height
	}
	return total
}

// drawTextLine renders one laid-out line with its top edge at y. The
// X origin comes from the paragraph alignment; justified lines get
// (available - width) / gaps extra after each whitespace fragment,
// except on the paragraph's last line. Also draws the margin line
// number and, on the first line, the list glyph.
func drawTextLine(ctx *layoutContext, canvas Canvas, props *ParagraphProperties, line *textLine, originX, y, maxWidthPx float64) error {
	left := originX + ctx.px(props.LeftEdgePt(line.firstLine))
	avail := maxWidthPx - ctx.px(props.LeftEdgePt(line.firstLine)) - ctx.px(props.IndentRightPt)

	x := left
	justifyExtra := 0.0
	switch props.Alignment {
	case AlignCenter:
		x = left + (avail-line.width)/2
	case AlignRight:
		x = left + (avail - line.width)
	case AlignJustify:
		if !line.lastLine && len(line.fragments) >= 2 {
			if gaps := line.spaceGaps(); gaps > 0 {
				justifyExtra = (avail - line.width) / float64(gaps)
			}
		}
	}

	// Baseline sits at the bottom of the line box; exact spacing smaller
	// than the natural height clips glyph tops, matching Word.
	baselineY := y + line.height - line.descent

	if n := ctx.nextLineNumber(); n > 0 && canvas != nil {
		if err := drawLineNumber(ctx, canvas, n, baselineY); err != nil {
			return err
		}
	}

	if line.firstLine && props.Numbering != nil && props.Numbering.Glyph != "" && canvas != nil {
		gp := RunProperties{}
		if len(line.fragments) > 0 {
			gp = line.fragments[0].props
		}
		face, err := ctx.faceFor(&gp)
		if err != nil {
			return err
		}
		canvas.Text(x-ctx.px(props.Numbering.IndentPt), baselineY, props.Numbering.Glyph, face, gp.Color)
	}

	for i := range line.fragments {
		frag := &line.fragments[i]
		if err := drawFragment(ctx, canvas, frag, x, baselineY); err != nil {
			return err
		}
		x += frag.width
		if frag.isSpace {
			x += justifyExtra
		}
	}
	return nil
}

// drawLineNumber draws the margin line number right-aligned left of the
// text column.
func drawLineNumber(ctx *layoutContext, canvas Canvas, n int, baselineY float64) error {
	ln := ctx.settings.LineNumbering
	props := RunProperties{SizePt: 9}
	face, err := ctx.faceFor(&props)
	if err != nil {
		return err
	}
	label := strconv.Itoa(n)
	w := measureString(face, label)
	x := ctx.contentLeft() - ctx.px(ln.DistancePt) - w
	canvas.Text(x, baselineY, label, face, ColorGray)
	return nil
}

// drawFragment renders a single fragment at the given pen position:
// highlight first, then glyphs or image, then underline/strikethrough.
// Image decode failures skip the blit but the pen still advances by the
// declared width, so pagination is unaffected.
func drawFragment(ctx *layoutContext, canvas Canvas, frag *textFragment, x, baselineY float64) error {
	if canvas == nil {
		return nil
	}
	baselineY += ctx.px(frag.props.BaselineShiftPt())

	if frag.img != nil {
		w := int(math.Round(frag.width))
		h := int(math.Round(ctx.px(frag.img.HeightPt)))
		img, err := decodeAt(frag.img.Data, frag.img.Vector, w, h)
		if err == nil {
			canvas.DrawImage(img, int(math.Round(x)), int(math.Round(baselineY-float64(h))))
		}
		return nil
	}

	if frag.props.Highlight != nil {
		canvas.FillRect(x, baselineY-frag.ascent, frag.width, frag.ascent+frag.descent, *frag.props.Highlight)
	}

	if frag.text != "" && !frag.isSpace {
		face, err := ctx.faceFor(&frag.props)
		if err != nil {
			return err
		}
		canvas.Text(x, baselineY, frag.text, face, frag.props.Color)
	}

	if frag.props.Underline || frag.props.Strike {
		thickness := math.Max(1, (frag.ascent+frag.descent)/14)
		color := frag.props.Color
		if color.IsZero() {
			color = ColorBlack
		}
		if frag.props.Underline {
			uy := baselineY + math.Max(1.5, frag.descent*0.4)
			canvas.Line(x, uy, x+frag.width, uy, color, thickness)
		}
		if frag.props.Strike {
			sy := baselineY - frag.ascent*0.4
			canvas.Line(x, sy, x+frag.width, sy, color, thickness)
		}
	}
	return nil
}
