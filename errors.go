package godocument

import (
	"errors"
	"fmt"
)

// Validation errors returned by Document.Validate and the renderer.
var (
	ErrNilDocument    = errors.New("godocument: document is nil")
	ErrNoPageSize     = errors.New("godocument: page size must be positive")
	ErrMarginOverflow = errors.New("godocument: margins exceed page size")
	ErrNoFontSource   = errors.New("godocument: font source is nil")

	// ErrMalformedVector marks vector image content that cannot be
	// rasterized (zero-area viewbox, unparsable paths). The renderer
	// skips the drawing but still advances the cursor by the declared
	// extent so pagination stays stable.
	ErrMalformedVector = errors.New("godocument: malformed vector image")
)

// FontNotFoundError is returned when a font family cannot be resolved to
// any available font file after exhausting every fallback tier. Font
// resolution failures are fatal for the render: producing pages with
// wrong metrics would silently corrupt the layout.
type FontNotFoundError struct {
	Family string
	Bold   bool
	Italic bool
}

func (e *FontNotFoundError) Error() string {
	style := "regular"
	switch {
	case e.Bold && e.Italic:
		style = "bold italic"
	case e.Bold:
		style = "bold"
	case e.Italic:
		style = "italic"
	}
	return fmt.Sprintf("godocument: font %q (%s) not found", e.Family, style)
}

// IsFontNotFound reports whether err wraps a FontNotFoundError.
func IsFontNotFound(err error) bool {
	var fnf *FontNotFoundError
	return errors.As(err, &fnf)
}
