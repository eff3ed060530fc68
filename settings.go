package godocument

// PageSettings carries the page geometry active for a section: physical
// page size, margins, column layout, header/footer distances and optional
// line numbering. All values are in points.
type PageSettings struct {
	WidthPt  float64
	HeightPt float64

	MarginTopPt    float64
	MarginBottomPt float64
	MarginLeftPt   float64
	MarginRightPt  float64

	// Columns is the number of text columns (minimum 1).
	// ColumnSpacingPt is the gap between adjacent columns.
	Columns         int
	ColumnSpacingPt float64

	// HeaderDistancePt and FooterDistancePt are the distances from the
	// page edge to the header/footer content, matching Word's
	// "header from top" / "footer from bottom" settings.
	HeaderDistancePt float64
	FooterDistancePt float64

	// Background fills the whole page before content is drawn; nil
	// leaves the page white.
	Background *Color

	LineNumbering *LineNumbering

	// LinePitchPt is the document grid line pitch. The grid only snaps
	// line heights once enough grid-aligned content has been seen; see
	// LayoutContext.RecordGridHint.
	LinePitchPt float64

	// CompatibilityMode mirrors Word's w:compatibilityMode setting.
	// Mode 15 (Word 2013+) lets a unit-rendered table overrun the page
	// boundary slightly further than mode 14. Zero means
	// CompatibilityModeCurrent.
	CompatibilityMode int
}

// Compatibility modes observed in the wild.
const (
	CompatibilityModeLegacy  = 14 // Word 2010
	CompatibilityModeCurrent = 15 // Word 2013 and later
)

// LineNumberRestart selects when the running line counter resets.
type LineNumberRestart int

const (
	RestartNewPage LineNumberRestart = iota
	RestartNewSection
	RestartContinuous
)

// LineNumbering enables margin line numbers for body text lines: every
// CountBy-th line is labeled. A nil LineNumbering on the settings turns
// the feature off.
type LineNumbering struct {
	CountBy    int
	Restart    LineNumberRestart
	DistancePt float64 // gap between number and text column
}

// DefaultPageSettings returns US Letter portrait geometry with one-inch
// margins and a single column, Word's defaults for a blank document.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		WidthPt:          612, // 8.5in
		HeightPt:         792, // 11in
		MarginTopPt:      72,
		MarginBottomPt:   72,
		MarginLeftPt:     72,
		MarginRightPt:    72,
		Columns:          1,
		ColumnSpacingPt:  36, // 0.5in
		HeaderDistancePt: 36,
		FooterDistancePt: 36,
	}
}

// Clone returns a deep copy. Section breaks carry their own settings
// instance so the renderer can swap them without aliasing the caller's.
func (s *PageSettings) Clone() *PageSettings {
	c := *s
	if s.Background != nil {
		bg := *s.Background
		c.Background = &bg
	}
	if s.LineNumbering != nil {
		ln := *s.LineNumbering
		c.LineNumbering = &ln
	}
	return &c
}

// EffectiveCompatibilityMode returns the compatibility mode, defaulting
// to CompatibilityModeCurrent when unset.
func (s *PageSettings) EffectiveCompatibilityMode() int {
	if s.CompatibilityMode == 0 {
		return CompatibilityModeCurrent
	}
	return s.CompatibilityMode
}

// ColumnCount returns the effective number of columns (never below 1).
func (s *PageSettings) ColumnCount() int {
	if s.Columns < 1 {
		return 1
	}
	return s.Columns
}

// ContentWidthPt returns the usable width between the left and right
// margins.
func (s *PageSettings) ContentWidthPt() float64 {
	return s.WidthPt - s.MarginLeftPt - s.MarginRightPt
}

// ColumnWidthPt returns the width of a single text column.
func (s *PageSettings) ColumnWidthPt() float64 {
	n := s.ColumnCount()
	if n == 1 {
		return s.ContentWidthPt()
	}
	return (s.ContentWidthPt() - float64(n-1)*s.ColumnSpacingPt) / float64(n)
}
