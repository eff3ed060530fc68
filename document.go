// Package godocument provides a pure Go layout and rendering engine for
// word-processing documents. It paginates a structured element model
// (paragraphs, tables, images, floating objects, form fields) into a
// sequence of fixed-size raster page images, reproducing the line breaking,
// spacing and page-break behavior of Microsoft Word's rendering engine.
//
// Parsing a source file format into the element model and encoding the
// finished pages are the caller's concern; the package consumes a parsed
// Document and hands back pixel buffers.
//
// See the Version variable for the current library version.
package godocument

// ElementType identifies the concrete type of a document element.
type ElementType int

const (
	ElementTypeParagraph ElementType = iota
	ElementTypeTable
	ElementTypeImage
	ElementTypeFloatingImage
	ElementTypeFloatingTextBox
	ElementTypeFloatingShape
	ElementTypeFloatingWordArt
	ElementTypeWordArt
	ElementTypeInk
	ElementTypeTextFormField
	ElementTypeCheckBoxFormField
	ElementTypeDropDownFormField
	ElementTypeContentControl
	ElementTypePageBreak
	ElementTypeColumnBreak
	ElementTypeSectionBreak
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeTable:
		return "Table"
	case ElementTypeImage:
		return "Image"
	case ElementTypeFloatingImage:
		return "FloatingImage"
	case ElementTypeFloatingTextBox:
		return "FloatingTextBox"
	case ElementTypeFloatingShape:
		return "FloatingShape"
	case ElementTypeFloatingWordArt:
		return "FloatingWordArt"
	case ElementTypeWordArt:
		return "WordArt"
	case ElementTypeInk:
		return "Ink"
	case ElementTypeTextFormField:
		return "TextFormField"
	case ElementTypeCheckBoxFormField:
		return "CheckBoxFormField"
	case ElementTypeDropDownFormField:
		return "DropDownFormField"
	case ElementTypeContentControl:
		return "ContentControl"
	case ElementTypePageBreak:
		return "PageBreak"
	case ElementTypeColumnBreak:
		return "ColumnBreak"
	case ElementTypeSectionBreak:
		return "SectionBreak"
	default:
		return "Unknown"
	}
}

// Element is the interface implemented by every document body element.
// The set of implementations is closed; the renderer dispatches on the
// concrete type and treats anything else as a no-op.
type Element interface {
	Type() ElementType
}

// Document is the parsed, render-ready form of a word-processing document:
// an ordered element sequence, optional header/footer content and the
// initial page settings. The renderer never mutates a Document, so one
// instance may be rendered concurrently by independent renders.
type Document struct {
	Elements []Element
	Header   []Element
	Footer   []Element
	Settings PageSettings
}

// NewDocument creates an empty document with default (US Letter) settings.
func NewDocument() *Document {
	return &Document{Settings: DefaultPageSettings()}
}

// AddElement appends an element to the document body.
func (d *Document) AddElement(el Element) {
	d.Elements = append(d.Elements, el)
}

// Paragraph is a flow of styled runs broken into lines by the layout
// engine. A paragraph with zero runs still occupies one empty line but
// never forces a page advance.
type Paragraph struct {
	Props ParagraphProperties
	Runs  []Run
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }

// IsEmpty reports whether the paragraph has no runs at all.
func (p *Paragraph) IsEmpty() bool { return len(p.Runs) == 0 }

// AddRun appends a text run with the given properties.
func (p *Paragraph) AddRun(text string, props RunProperties) *Paragraph {
	p.Runs = append(p.Runs, Run{Text: text, Props: props})
	return p
}

// Run is a contiguous span of identically formatted content: either text
// or a single inline image.
type Run struct {
	Text  string
	Props RunProperties
	Image *InlineImage
}

// InlineImage is an image that participates in text flow as one atomic
// token. Width and height are the declared layout size in points; the
// pixel data is decoded only at draw time.
type InlineImage struct {
	Data     []byte
	WidthPt  float64
	HeightPt float64
	Vector   bool // data is a size-normalized SVG document
}

// Image is a block-level picture occupying its own vertical slot.
type Image struct {
	Data     []byte
	WidthPt  float64
	HeightPt float64
	Vector   bool
}

func (i *Image) Type() ElementType { return ElementTypeImage }

// HorizontalAnchor selects the reference edge for a floating element's
// X offset.
type HorizontalAnchor int

const (
	AnchorHPage HorizontalAnchor = iota
	AnchorHMargin
	AnchorHColumn
	AnchorHCharacter
)

// VerticalAnchor selects the reference edge for a floating element's
// Y offset.
type VerticalAnchor int

const (
	AnchorVPage VerticalAnchor = iota
	AnchorVMargin
	AnchorVParagraph
	AnchorVLine
)

// Anchor positions a floating element: a signed offset in points from the
// selected horizontal and vertical references. Floating elements never
// advance the layout cursor.
type Anchor struct {
	Horizontal HorizontalAnchor
	Vertical   VerticalAnchor
	OffsetXPt  float64
	OffsetYPt  float64
}

// FloatingImage is an absolutely positioned picture.
type FloatingImage struct {
	Image
	Anchor Anchor
}

func (f *FloatingImage) Type() ElementType { return ElementTypeFloatingImage }

// FloatingTextBox is an absolutely positioned box containing its own
// paragraph flow.
type FloatingTextBox struct {
	Paragraphs     []*Paragraph
	WidthPt        float64
	HeightPt       float64
	Fill           *Color
	Outline        *Color
	OutlineWidthPt float64
	Anchor         Anchor
}

func (f *FloatingTextBox) Type() ElementType { return ElementTypeFloatingTextBox }

// ShapeKind enumerates the drawable floating shape geometries.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapeRoundedRectangle
	ShapeLine
)

// FloatingShape is an absolutely positioned geometric shape. Shapes with
// BehindText set are collected once per document and painted before the
// page content they share a page with.
type FloatingShape struct {
	Shape          ShapeKind
	WidthPt        float64
	HeightPt       float64
	Fill           *Color
	Outline        *Color
	OutlineWidthPt float64
	BehindText     bool
	Anchor         Anchor
}

func (f *FloatingShape) Type() ElementType { return ElementTypeFloatingShape }

// WordArt is decorative display text rendered at its declared size with a
// fill and optional outline, occupying a block slot in the flow.
type WordArt struct {
	Text       string
	FontFamily string
	SizePt     float64
	Fill       Color
	Outline    *Color
	Bold       bool
	Italic     bool
}

func (w *WordArt) Type() ElementType { return ElementTypeWordArt }

// FloatingWordArt is WordArt positioned by an anchor instead of the flow.
type FloatingWordArt struct {
	WordArt
	Anchor Anchor
}

func (f *FloatingWordArt) Type() ElementType { return ElementTypeFloatingWordArt }

// InkPoint is one point of an ink stroke, in points relative to the ink
// element's top-left corner.
type InkPoint struct {
	X float64
	Y float64
}

// Ink is a block of freehand pen strokes inside a fixed bounding box.
type Ink struct {
	Strokes  [][]InkPoint
	Color    Color
	WidthPt  float64 // bounding box width
	HeightPt float64 // bounding box height
	PenPt    float64 // stroke thickness
}

func (i *Ink) Type() ElementType { return ElementTypeInk }

// TextFormField is a fill-in text field drawn as a bordered box with its
// current value (or placeholder underscores when empty).
type TextFormField struct {
	Value   string
	WidthPt float64
	Props   RunProperties
}

func (t *TextFormField) Type() ElementType { return ElementTypeTextFormField }

// CheckBoxFormField is a square check box form field.
type CheckBoxFormField struct {
	Checked bool
	SizePt  float64
}

func (c *CheckBoxFormField) Type() ElementType { return ElementTypeCheckBoxFormField }

// DropDownFormField is a drop-down selection field; only the selected
// entry is rendered, with a drop arrow at the right edge.
type DropDownFormField struct {
	Entries  []string
	Selected int
	WidthPt  float64
	Props    RunProperties
}

func (d *DropDownFormField) Type() ElementType { return ElementTypeDropDownFormField }

// Selection returns the selected entry text, or "" when out of range.
func (d *DropDownFormField) Selection() string {
	if d.Selected < 0 || d.Selected >= len(d.Entries) {
		return ""
	}
	return d.Entries[d.Selected]
}

// ContentControl is a structured document tag wrapping its own paragraph
// content, drawn with light bracket marks around it.
type ContentControl struct {
	Title      string
	Paragraphs []*Paragraph
}

func (c *ContentControl) Type() ElementType { return ElementTypeContentControl }

// PageBreak forces the current page to finish and a new page to start.
type PageBreak struct{}

func (PageBreak) Type() ElementType { return ElementTypePageBreak }

// ColumnBreak advances to the next column, or to a new page when the
// current column is the last one.
type ColumnBreak struct{}

func (ColumnBreak) Type() ElementType { return ElementTypeColumnBreak }

// SectionBreakType selects how a section break transitions to the new
// section's settings.
type SectionBreakType int

const (
	SectionBreakNextPage SectionBreakType = iota
	SectionBreakEvenPage
	SectionBreakOddPage
	SectionBreakContinuous
	SectionBreakNextColumn
)

// SectionBreak replaces the active page settings. NextPage, EvenPage and
// OddPage finish the page first (the parity forms may insert one extra
// page); Continuous applies the settings in place and resets to column 0
// without moving the cursor; NextColumn advances a column, spilling to a
// new page when columns are exhausted.
type SectionBreak struct {
	BreakType SectionBreakType
	Settings  *PageSettings
}

func (s *SectionBreak) Type() ElementType { return ElementTypeSectionBreak }

// Table is a grid of rows and cells with optional declared grid widths.
// Column, row and merge resolution happens during rendering because it is
// interleaved with pagination decisions.
type Table struct {
	Rows    []TableRow
	GridPt  []float64 // declared grid column widths in points, may be nil
	Borders bool      // draw cell borders
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// AddRow appends a row and returns it for population.
func (t *Table) AddRow() *TableRow {
	t.Rows = append(t.Rows, TableRow{})
	return &t.Rows[len(t.Rows)-1]
}

// RowHeightRule selects how an explicit row height interacts with the
// content-driven height.
type RowHeightRule int

const (
	RowHeightAuto    RowHeightRule = iota
	RowHeightAtLeast               // raises the computed minimum
	RowHeightExact                 // overrides the computed height
)

// RowHeight is an explicit table row height declaration.
type RowHeight struct {
	ValuePt float64
	Rule    RowHeightRule
}

// TableRow is one table row.
type TableRow struct {
	Cells  []TableCell
	Height *RowHeight
}

// AddCell appends a cell containing a single paragraph of plain text.
func (r *TableRow) AddCell(text string, props RunProperties) *TableCell {
	p := &Paragraph{}
	if text != "" {
		p.AddRun(text, props)
	}
	r.Cells = append(r.Cells, TableCell{Paragraphs: []*Paragraph{p}})
	return &r.Cells[len(r.Cells)-1]
}

// VerticalMerge marks a cell's participation in a vertical merge chain.
// The Restart cell is the one visually rendered over the full merged
// height; Continue cells are skipped during rendering but still consume
// per-column Y tracking.
type VerticalMerge int

const (
	VMergeNone VerticalMerge = iota
	VMergeRestart
	VMergeContinue
)

// TableCell is one table cell. GridSpan is the number of grid columns the
// cell occupies horizontally (minimum 1).
type TableCell struct {
	Paragraphs []*Paragraph
	WidthPt    float64 // explicit cell width, 0 means unset
	GridSpan   int
	VMerge     VerticalMerge
	Shading    *Color
}

// Span returns the effective grid span (never below 1).
func (c *TableCell) Span() int {
	if c.GridSpan < 1 {
		return 1
	}
	return c.GridSpan
}
