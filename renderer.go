package godocument

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures document-to-image rendering.
type RenderOptions struct {
	// DPI is the rendering resolution; page geometry in points maps to
	// pixels at DPI/72. Default: 96.
	DPI float64
	// FontScale multiplies measured glyph advances, to fine-tune line
	// wrap points against a reference rendering. Default: 1.0.
	FontScale float64
	// Format is the output image format for RenderToFiles (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// Background overrides the page background color. Nil means use the
	// document's background or white.
	Background *Color
	// FontDirs specifies additional directories to search for
	// TrueType/OpenType fonts. System font directories are always
	// searched automatically.
	FontDirs []string
	// FontSource allows sharing a pre-configured FontCache (or any
	// other face provider) across renders. If nil, the process-wide
	// default cache is used, or a new cache when FontDirs is set.
	FontSource FontSource
	// CanvasFactory overrides the drawing backend. Nil uses the
	// default raster backend.
	CanvasFactory CanvasFactory
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		DPI:         96,
		FontScale:   1.0,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// PageImage is one rendered page.
type PageImage struct {
	Image    *image.RGBA
	Number   int // 1-based page number
	WidthPx  int
	HeightPx int
}

// RenderDocument paginates the document and renders every page to a
// raster image. The document is not mutated.
func RenderDocument(doc *Document, opts *RenderOptions) ([]PageImage, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = 96
	}
	scale := opts.FontScale
	if scale <= 0 {
		scale = 1.0
	}
	fonts := opts.FontSource
	if fonts == nil {
		if len(opts.FontDirs) > 0 {
			fonts = NewFontCache(opts.FontDirs...)
		} else {
			fonts = DefaultFontCache()
		}
	}
	factory := opts.CanvasFactory
	if factory == nil {
		factory = newGGCanvas
	}

	// Faces are memoized per render: the source (often a process-wide
	// FontCache) is shared, the mutable faces built from it are not.
	r := &renderer{
		doc:         doc,
		ctx:         newLayoutContext(doc.Settings, dpi, scale, newFaceCache(fonts)),
		opts:        opts,
		factory:     factory,
		behindDrawn: make(map[int]bool),
	}
	return r.run()
}

// Render renders the document with the given options.
func (d *Document) Render(opts *RenderOptions) ([]PageImage, error) {
	return RenderDocument(d, opts)
}

// RenderToFiles renders the document and saves one image per page. The
// pattern must contain %d for the page number (1-based), e.g.
// "page_%d.png".
func RenderToFiles(doc *Document, pattern string, opts *RenderOptions) error {
	pages, err := RenderDocument(doc, opts)
	if err != nil {
		return err
	}
	for _, pg := range pages {
		if err := savePageImage(pg, fmt.Sprintf(pattern, pg.Number), opts); err != nil {
			return fmt.Errorf("page %d: %w", pg.Number, err)
		}
	}
	return nil
}

// RenderToFiles renders every page of the document to numbered files.
func (d *Document) RenderToFiles(pattern string, opts *RenderOptions) error {
	return RenderToFiles(d, pattern, opts)
}

// SavePageImage encodes one rendered page to path, creating parent
// directories as needed. The format and JPEG quality come from opts.
func SavePageImage(pg PageImage, path string, opts *RenderOptions) error {
	return savePageImage(pg, path, opts)
}

// savePageImage encodes a page to path, creating directories as needed.
func savePageImage(pg PageImage, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, pg.Image, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, pg.Image)
	}
}

// --- renderer ---

// renderer walks the element sequence, decides page and column breaks,
// and draws each element kind onto the active page surface.
type renderer struct {
	doc     *Document
	ctx     *layoutContext
	opts    *RenderOptions
	factory CanvasFactory

	pages   []PageImage
	surface *pageSurface
	elemIdx int

	// "Behind text" shapes are collected once up front and painted when
	// the page they belong to starts, underneath its content. Parity
	// filler pages stay out of that accounting. carryHeight is the
	// remaining height of the element a soft break carried onto the page
	// being started; the page-start shape scan counts it as flow.
	behindShapes  []int
	behindDrawn   map[int]bool
	fillingParity bool
	carryHeight   float64

	footerHeightPx float64

	// Flags of the most recently finished page, for the trailing-blank
	// page trim.
	lastHasContent bool
	lastExplicit   bool
}

func (r *renderer) run() ([]PageImage, error) {
	r.prescanBehindShapes()
	if err := r.measureHeaderFooter(); err != nil {
		return nil, err
	}
	r.elemIdx = -1 // nothing processed yet, so page 1 starts at element 0
	if err := r.startPage(false); err != nil {
		return nil, err
	}

	for i, el := range r.doc.Elements {
		r.elemIdx = i
		if err := r.renderElement(el); err != nil {
			return nil, err
		}
	}

	if err := r.finishPage(); err != nil {
		return nil, err
	}
	r.trimTrailingBlank()
	return r.pages, nil
}

func (r *renderer) canvas() Canvas {
	if r.surface == nil {
		return nil
	}
	return r.surface.canvas
}

func (r *renderer) markContent() {
	if r.surface != nil {
		r.surface.markContent()
	}
}

func (r *renderer) background() *Color {
	if r.opts.Background != nil {
		return r.opts.Background
	}
	return r.ctx.settings.Background
}

// startPage opens a fresh page surface: header first, then any "behind
// text" shapes belonging to this page, so body content paints over both.
func (r *renderer) startPage(explicit bool) error {
	r.ctx.startPage()
	w := int(math.Round(r.ctx.pageWidthPx))
	h := int(math.Round(r.ctx.pageHeightPx))
	r.surface = newPageSurface(w, h, r.background(), r.factory)
	r.surface.explicit = explicit
	if err := r.drawHeader(); err != nil {
		return err
	}
	if !r.fillingParity {
		if err := r.drawBehindShapesForPage(); err != nil {
			return err
		}
	}
	return nil
}

// finishPage draws the footer, stashes the bitmap and releases the
// surface. Exactly one surface is live at a time, bounding peak memory
// to one page plus the finished bitmaps.
func (r *renderer) finishPage() error {
	if r.surface == nil {
		return nil
	}
	if err := r.drawFooter(); err != nil {
		return err
	}
	b := r.surface.img.Bounds()
	r.pages = append(r.pages, PageImage{
		Image:    r.surface.img,
		Number:   r.ctx.pageNumber,
		WidthPx:  b.Dx(),
		HeightPx: b.Dy(),
	})
	r.lastHasContent = r.surface.hasContent
	r.lastExplicit = r.surface.explicit
	r.surface = nil
	return nil
}

func (r *renderer) pageBreak(explicit bool) error {
	if err := r.finishPage(); err != nil {
		return err
	}
	return r.startPage(explicit)
}

// advance moves to the next column, or the next page when the columns
// are exhausted.
func (r *renderer) advance() error {
	if r.ctx.moveToNextColumn() {
		return nil
	}
	return r.pageBreak(false)
}

// advanceCarrying is advance for soft breaks inside an element: carried
// is the element content still to place, visible to the page-start
// shape scan.
func (r *renderer) advanceCarrying(carried float64) error {
	r.carryHeight = carried
	err := r.advance()
	r.carryHeight = 0
	return err
}

func (r *renderer) atColumnTop() bool {
	return r.ctx.currentY <= r.ctx.contentTop()+0.5
}

// trimTrailingBlank discards the final page when it is a spurious blank:
// more than one page exists, nothing significant was drawn on it, and no
// explicit break asked for it.
func (r *renderer) trimTrailingBlank() {
	if len(r.pages) <= 1 {
		return
	}
	if !r.lastHasContent && !r.lastExplicit {
		r.pages = r.pages[:len(r.pages)-1]
	}
}

// --- element dispatch ---

func (r *renderer) renderElement(el Element) error {
	switch e := el.(type) {
	case *Paragraph:
		return r.renderParagraph(e)
	case *Table:
		return r.renderTable(e)
	case *Image:
		return r.renderBlockImage(e)
	case *FloatingImage:
		return r.renderFloatingImage(e)
	case *FloatingTextBox:
		return r.renderFloatingTextBox(e)
	case *FloatingShape:
		r.renderFloatingShape(r.elemIdx, e)
		return nil
	case *FloatingWordArt:
		return r.renderFloatingWordArt(e)
	case *WordArt:
		return r.renderWordArt(e)
	case *Ink:
		return r.renderInk(e)
	case *TextFormField:
		return r.renderTextFormField(e)
	case *CheckBoxFormField:
		return r.renderCheckBoxFormField(e)
	case *DropDownFormField:
		return r.renderDropDownFormField(e)
	case *ContentControl:
		return r.renderContentControl(e)
	case PageBreak, *PageBreak:
		return r.pageBreak(true)
	case ColumnBreak, *ColumnBreak:
		return r.columnBreak()
	case *SectionBreak:
		return r.renderSectionBreak(e)
	default:
		return nil // unknown element kinds are ignored
	}
}

func (r *renderer) columnBreak() error {
	if r.ctx.moveToNextColumn() {
		return nil
	}
	return r.pageBreak(true)
}

func (r *renderer) renderSectionBreak(sb *SectionBreak) error {
	switch sb.BreakType {
	case SectionBreakContinuous:
		// New settings apply in place; content keeps flowing.
		r.ctx.applySection(sb.Settings)
		return r.measureHeaderFooter()

	case SectionBreakNextColumn:
		prevCol := r.ctx.column
		if sb.Settings != nil {
			r.ctx.applySection(sb.Settings)
			if err := r.measureHeaderFooter(); err != nil {
				return err
			}
		}
		// Advance relative to the column the break happened in; a
		// narrower column count in the new settings spills to a page.
		if prevCol+1 < r.ctx.settings.ColumnCount() {
			r.ctx.column = prevCol + 1
			r.ctx.currentY = r.ctx.contentTop()
			r.ctx.resetAdjacency()
			return nil
		}
		return r.pageBreak(true)

	case SectionBreakEvenPage, SectionBreakOddPage:
		if err := r.finishPage(); err != nil {
			return err
		}
		r.ctx.applySection(sb.Settings)
		if err := r.measureHeaderFooter(); err != nil {
			return err
		}
		wantEven := sb.BreakType == SectionBreakEvenPage
		if ((r.ctx.pageNumber+1)%2 == 0) != wantEven {
			// Parity filler: one blank page, explicitly requested.
			// Background shapes wait for the section's real first page.
			r.fillingParity = true
			err := r.startPage(true)
			r.fillingParity = false
			if err != nil {
				return err
			}
			if err := r.finishPage(); err != nil {
				return err
			}
		}
		return r.startPage(true)

	default: // SectionBreakNextPage
		if err := r.finishPage(); err != nil {
			return err
		}
		r.ctx.applySection(sb.Settings)
		if err := r.measureHeaderFooter(); err != nil {
			return err
		}
		return r.startPage(true)
	}
}

// --- paragraphs ---

func (r *renderer) renderParagraph(p *Paragraph) error {
	ctx := r.ctx
	lines, err := layoutParagraph(ctx, p, ctx.columnWidth())
	if err != nil {
		return err
	}
	bodyH := linesHeight(lines)

	// Each body paragraph paginated under a grid-enabled section counts
	// toward activating the pitch floor for the paragraphs after it.
	if ctx.settings.LinePitchPt > 0 && !p.IsEmpty() {
		ctx.recordGridHint()
	}

	// A forced page break before the paragraph, unless the cursor is
	// already at the top of fresh content.
	if p.Props.PageBreakBefore && !p.IsEmpty() && !r.atColumnTop() {
		if err := r.pageBreak(true); err != nil {
			return err
		}
	}

	before := ctx.spacingBefore(&p.Props)
	after := ctx.spacingAfter(&p.Props)

	if p.IsEmpty() {
		// Empty paragraphs occupy one line when space remains but never
		// force a page advance; that avoids spurious trailing pages.
		if ctx.hasSpaceFor(before + bodyH) {
			ctx.currentY += before + bodyH + after
		}
		ctx.noteParagraph(&p.Props)
		return nil
	}

	pageH := ctx.contentHeight()
	total := before + bodyH + after
	breakFirst := false
	if p.Props.KeepWithNext {
		nextH, err := r.nextRenderableHeight()
		if err != nil {
			return err
		}
		if nextH > 0 {
			combined := total + nextH
			if combined <= pageH && !ctx.hasSpaceFor(combined) {
				breakFirst = true
			}
		}
	}
	if !breakFirst && p.Props.KeepLinesTogether && total <= pageH && !ctx.hasSpaceFor(total) {
		breakFirst = true
	}
	if !breakFirst && before+bodyH <= pageH && !ctx.hasSpaceFor(before+bodyH) {
		breakFirst = true
	}
	if breakFirst && !r.atColumnTop() {
		if err := r.advanceCarrying(total); err != nil {
			return err
		}
		before = ctx.spacingBefore(&p.Props) // adjacency state was reset
	}

	ctx.currentY += before

	i := 0
	for i < len(lines) {
		// Longest run of lines that fits from the cursor down.
		h := 0.0
		j := i
		for j < len(lines) && ctx.hasSpaceFor(h+lines[j].height) {
			h += lines[j].height
			j++
		}
		if j == i {
			if !r.atColumnTop() {
				if err := r.advanceCarrying(linesHeight(lines[i:]) + after); err != nil {
					return err
				}
				continue
			}
			// A single line taller than the column: place it anyway,
			// no break can help.
			h = lines[i].height
			j = i + 1
		}

		if p.Props.Shading != nil && r.canvas() != nil {
			x := ctx.contentLeft() + ctx.px(p.Props.IndentLeftPt)
			w := ctx.columnWidth() - ctx.px(p.Props.IndentLeftPt) - ctx.px(p.Props.IndentRightPt)
			r.canvas().FillRect(x, ctx.currentY, w, h, *p.Props.Shading)
			r.markContent()
		}
		for k := i; k < j; k++ {
			if err := drawTextLine(ctx, r.canvas(), &p.Props, &lines[k], ctx.contentLeft(), ctx.currentY, ctx.columnWidth()); err != nil {
				return err
			}
			if len(lines[k].fragments) > 0 {
				r.markContent()
			}
			ctx.currentY += lines[k].height
		}
		i = j
		if i < len(lines) {
			if err := r.advanceCarrying(linesHeight(lines[i:]) + after); err != nil {
				return err
			}
		}
	}

	ctx.currentY += after
	ctx.noteParagraph(&p.Props)
	return nil
}

// nextRenderableHeight measures the run of elements bound to the
// current paragraph by keep-with-next: consecutive keep-with-next
// paragraphs plus the first element that ends the chain. Breaks end the
// pairing; floating elements are transparent to it.
func (r *renderer) nextRenderableHeight() (float64, error) {
	total := 0.0
	for j := r.elemIdx + 1; j < len(r.doc.Elements); j++ {
		switch e := r.doc.Elements[j].(type) {
		case PageBreak, *PageBreak, ColumnBreak, *ColumnBreak, *SectionBreak:
			return total, nil
		case *FloatingImage, *FloatingTextBox, *FloatingShape, *FloatingWordArt:
			continue
		case *Paragraph:
			h, err := r.measureElementHeight(e)
			if err != nil {
				return 0, err
			}
			total += h
			if !e.Props.KeepWithNext {
				return total, nil
			}
		default:
			h, err := r.measureElementHeight(e)
			if err != nil {
				return 0, err
			}
			return total + h, nil
		}
	}
	return total, nil
}

// measureElementHeight lays out an element without drawing it.
func (r *renderer) measureElementHeight(el Element) (float64, error) {
	ctx := r.ctx
	switch e := el.(type) {
	case *Paragraph:
		lines, err := layoutParagraph(ctx, e, ctx.columnWidth())
		if err != nil {
			return 0, err
		}
		return ctx.px(e.Props.SpacingBeforePt) + linesHeight(lines) + ctx.px(e.Props.SpacingAfterPt), nil
	case *Table:
		tl, err := r.layoutTable(e, ctx.columnWidth())
		if err != nil {
			return 0, err
		}
		return tl.totalHeight(), nil
	case *Image:
		return ctx.px(e.HeightPt), nil
	case *WordArt:
		_, h, err := r.measureWordArt(e)
		return h, err
	case *Ink:
		return ctx.px(e.HeightPt), nil
	case *TextFormField:
		h, err := r.formFieldHeight(&e.Props)
		if err != nil {
			return 0, err
		}
		return h + ctx.px(formFieldGapPt), nil
	case *CheckBoxFormField:
		return r.checkBoxSide(e) + ctx.px(formFieldGapPt), nil
	case *DropDownFormField:
		h, err := r.formFieldHeight(&e.Props)
		if err != nil {
			return 0, err
		}
		return h + ctx.px(formFieldGapPt), nil
	case *ContentControl:
		h, err := r.paragraphsBlock(e.Paragraphs, 0, 0, r.contentControlWidth(), false)
		if err != nil {
			return 0, err
		}
		return h + ctx.px(formFieldGapPt), nil
	}
	return 0, nil
}

// ensureSpace advances to the next column or page when height does not
// fit, unless no break could help (taller than a full page) or the
// cursor is already at fresh content top.
func (r *renderer) ensureSpace(height float64) error {
	if r.ctx.hasSpaceFor(height) {
		return nil
	}
	if height > r.ctx.contentHeight() {
		return nil
	}
	if r.atColumnTop() {
		return nil
	}
	return r.advanceCarrying(height)
}

// --- block images ---

func (r *renderer) renderBlockImage(img *Image) error {
	ctx := r.ctx
	w := ctx.px(img.WidthPt)
	h := ctx.px(img.HeightPt)
	if err := r.ensureSpace(h); err != nil {
		return err
	}
	decoded, err := decodeAt(img.Data, img.Vector, int(math.Round(w)), int(math.Round(h)))
	if err == nil && r.canvas() != nil {
		r.canvas().DrawImage(decoded, int(math.Round(ctx.contentLeft())), int(math.Round(ctx.currentY)))
		r.markContent()
	}
	// Decode failures skip the blit but keep the declared advance, so
	// pagination does not depend on image health.
	ctx.currentY += h
	ctx.resetAdjacency()
	return nil
}

// --- shared paragraph block drawing (cells, text boxes, controls) ---

// paragraphsBlock lays out paragraphs in a fixed-width box with its top
// left at (x, y) and no page breaking, drawing them when draw is set.
// Returns the block height. Line numbering never applies inside blocks.
func (r *renderer) paragraphsBlock(paras []*Paragraph, x, y, width float64, draw bool) (float64, error) {
	ctx := r.ctx
	prev := ctx.suspendLineNumbers
	ctx.suspendLineNumbers = true
	defer func() { ctx.suspendLineNumbers = prev }()

	total := 0.0
	for _, p := range paras {
		if p == nil {
			continue
		}
		lines, err := layoutParagraph(ctx, p, width)
		if err != nil {
			return 0, err
		}
		total += ctx.px(p.Props.SpacingBeforePt)
		if draw && p.Props.Shading != nil && r.canvas() != nil {
			r.canvas().FillRect(x, y+total, width, linesHeight(lines), *p.Props.Shading)
		}
		ly := y + total
		for i := range lines {
			if draw {
				if err := drawTextLine(ctx, r.canvas(), &p.Props, &lines[i], x, ly, width); err != nil {
					return 0, err
				}
			}
			ly += lines[i].height
		}
		total += linesHeight(lines) + ctx.px(p.Props.SpacingAfterPt)
	}
	return total, nil
}

// --- header & footer ---

// measureHeaderFooter lays out the header/footer bands and installs the
// resulting reserved space on the context. Called at render start and
// after every section settings change.
func (r *renderer) measureHeaderFooter() error {
	hh, err := r.renderBand(r.doc.Header, 0, 0, r.ctx.contentWidth(), false)
	if err != nil {
		return err
	}
	fh, err := r.renderBand(r.doc.Footer, 0, 0, r.ctx.contentWidth(), false)
	if err != nil {
		return err
	}
	r.footerHeightPx = fh
	r.ctx.setReserves(hh, fh)
	return nil
}

func (r *renderer) drawHeader() error {
	if len(r.doc.Header) == 0 {
		return nil
	}
	ctx := r.ctx
	x := ctx.px(ctx.settings.MarginLeftPt)
	y := ctx.px(ctx.settings.HeaderDistancePt)
	_, err := r.renderBand(r.doc.Header, x, y, ctx.contentWidth(), true)
	return err
}

func (r *renderer) drawFooter() error {
	if len(r.doc.Footer) == 0 {
		return nil
	}
	ctx := r.ctx
	x := ctx.px(ctx.settings.MarginLeftPt)
	y := ctx.pageHeightPx - ctx.px(ctx.settings.FooterDistancePt) - r.footerHeightPx
	_, err := r.renderBand(r.doc.Footer, x, y, ctx.contentWidth(), true)
	return err
}

// renderBand renders header/footer content: a vertical run of
// paragraphs and images in a fixed-width band. Returns the band height.
func (r *renderer) renderBand(els []Element, x, y float64, width float64, draw bool) (float64, error) {
	ctx := r.ctx
	total := 0.0
	for _, el := range els {
		switch e := el.(type) {
		case *Paragraph:
			h, err := r.paragraphsBlock([]*Paragraph{e}, x, y+total, width, draw)
			if err != nil {
				return 0, err
			}
			total += h
		case *Image:
			if draw && r.canvas() != nil {
				w := int(math.Round(ctx.px(e.WidthPt)))
				h := int(math.Round(ctx.px(e.HeightPt)))
				if img, err := decodeAt(e.Data, e.Vector, w, h); err == nil {
					r.canvas().DrawImage(img, int(math.Round(x)), int(math.Round(y+total)))
				}
			}
			total += ctx.px(e.HeightPt)
		}
	}
	return total, nil
}

// --- behind-text shapes ---

func (r *renderer) prescanBehindShapes() {
	for i, el := range r.doc.Elements {
		if fs, ok := el.(*FloatingShape); ok && fs.BehindText {
			r.behindShapes = append(r.behindShapes, i)
		}
	}
}

// drawBehindShapesForPage paints the background shapes that belong to
// the page just started: those ahead of the cursor with no explicit
// page boundary in between and within the page's measured reach. The
// element being processed is exempt from the boundary scan, since a
// break there is the one that opened this page. The reach bound sums
// the carried-over remainder of that element plus the measured heights
// of the elements before the shape; keep rules and grid snapping are
// not simulated, so a shape the bound defers is painted when a later
// page start or its own element reaches it.
func (r *renderer) drawBehindShapesForPage() error {
	limit := r.ctx.contentHeight() * (1 + heightTolerance)
	for _, idx := range r.behindShapes {
		if r.behindDrawn[idx] || idx < r.elemIdx {
			continue
		}
		skip := false
		flow := r.carryHeight
		for j := r.elemIdx + 1; j < idx && !skip; j++ {
			switch e := r.doc.Elements[j].(type) {
			case PageBreak, *PageBreak, *SectionBreak:
				skip = true
			case *FloatingImage, *FloatingTextBox, *FloatingShape, *FloatingWordArt:
				// anchored, no flow height
			default:
				h, err := r.measureElementHeight(e)
				if err != nil {
					return err
				}
				flow += h
				if flow > limit {
					// The flow runs off this page before reaching the
					// shape's anchor.
					skip = true
				}
			}
		}
		if skip {
			continue
		}
		r.drawShape(r.doc.Elements[idx].(*FloatingShape))
		r.behindDrawn[idx] = true
	}
	return nil
}
