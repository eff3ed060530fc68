package godocument

import (
	"fmt"
	"strings"
)

// Validate checks the document for structural issues and returns an
// error describing all problems found, or nil if the document is valid.
// Geometry faults that make pagination impossible surface as the
// dedicated sentinel errors so callers can test for them.
func (d *Document) Validate() error {
	s := &d.Settings
	if s.WidthPt <= 0 || s.HeightPt <= 0 {
		return ErrNoPageSize
	}
	if s.ContentWidthPt() <= 0 || s.HeightPt-s.MarginTopPt-s.MarginBottomPt <= 0 {
		return ErrMarginOverflow
	}

	var errs []string
	for i, el := range d.Elements {
		prefix := fmt.Sprintf("element %d", i+1)
		if el == nil {
			errs = append(errs, prefix+": element is nil")
			continue
		}
		errs = append(errs, validateElement(el, prefix)...)
	}
	for i, el := range d.Header {
		prefix := fmt.Sprintf("header element %d", i+1)
		if el == nil {
			errs = append(errs, prefix+": element is nil")
			continue
		}
		errs = append(errs, validateElement(el, prefix)...)
	}
	for i, el := range d.Footer {
		prefix := fmt.Sprintf("footer element %d", i+1)
		if el == nil {
			errs = append(errs, prefix+": element is nil")
			continue
		}
		errs = append(errs, validateElement(el, prefix)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateElement(el Element, prefix string) []string {
	var errs []string
	switch e := el.(type) {
	case *Paragraph:
		errs = append(errs, validateParagraphs([]*Paragraph{e}, prefix)...)
	case *Table:
		if len(e.Rows) == 0 {
			errs = append(errs, prefix+": table has no rows")
		}
		for ri := range e.Rows {
			row := &e.Rows[ri]
			if len(row.Cells) == 0 {
				errs = append(errs, fmt.Sprintf("%s: row %d has no cells", prefix, ri+1))
			}
			for ci := range row.Cells {
				cell := &row.Cells[ci]
				cp := fmt.Sprintf("%s: row %d cell %d", prefix, ri+1, ci+1)
				if cell.GridSpan < 0 {
					errs = append(errs, cp+": grid span is negative")
				}
				if cell.WidthPt < 0 {
					errs = append(errs, cp+": width is negative")
				}
				errs = append(errs, validateParagraphs(cell.Paragraphs, cp)...)
			}
		}
	case *Image:
		if len(e.Data) == 0 {
			errs = append(errs, prefix+": image has no data")
		}
		if e.WidthPt < 0 || e.HeightPt < 0 {
			errs = append(errs, prefix+": image size is negative")
		}
	case *FloatingImage:
		if len(e.Data) == 0 {
			errs = append(errs, prefix+": image has no data")
		}
		if e.WidthPt < 0 || e.HeightPt < 0 {
			errs = append(errs, prefix+": image size is negative")
		}
	case *FloatingTextBox:
		if e.WidthPt < 0 || e.HeightPt < 0 {
			errs = append(errs, prefix+": text box size is negative")
		}
		errs = append(errs, validateParagraphs(e.Paragraphs, prefix)...)
	case *FloatingShape:
		if e.WidthPt < 0 || e.HeightPt < 0 {
			errs = append(errs, prefix+": shape size is negative")
		}
	case *WordArt:
		if e.Text == "" {
			errs = append(errs, prefix+": wordart text is empty")
		}
	case *FloatingWordArt:
		if e.Text == "" {
			errs = append(errs, prefix+": wordart text is empty")
		}
	case *Ink:
		if e.WidthPt < 0 || e.HeightPt < 0 {
			errs = append(errs, prefix+": ink bounds are negative")
		}
	case *DropDownFormField:
		if len(e.Entries) > 0 && (e.Selected < 0 || e.Selected >= len(e.Entries)) {
			errs = append(errs, prefix+": drop-down selection out of range")
		}
	case *ContentControl:
		errs = append(errs, validateParagraphs(e.Paragraphs, prefix)...)
	case *SectionBreak:
		if e.Settings != nil {
			if e.Settings.WidthPt <= 0 || e.Settings.HeightPt <= 0 {
				errs = append(errs, prefix+": section page size must be positive")
			} else if e.Settings.ContentWidthPt() <= 0 {
				errs = append(errs, prefix+": section margins exceed the page width")
			}
		}
	}
	return errs
}

// validateParagraphs checks paragraph content for common issues.
func validateParagraphs(paragraphs []*Paragraph, prefix string) []string {
	var errs []string
	for i, para := range paragraphs {
		if para == nil {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d is nil", prefix, i+1))
			continue
		}
		for k := range para.Runs {
			run := &para.Runs[k]
			if run.Image != nil {
				if len(run.Image.Data) == 0 {
					errs = append(errs, fmt.Sprintf("%s: paragraph %d run %d inline image has no data", prefix, i+1, k+1))
				}
				if run.Image.WidthPt < 0 || run.Image.HeightPt < 0 {
					errs = append(errs, fmt.Sprintf("%s: paragraph %d run %d inline image size is negative", prefix, i+1, k+1))
				}
			}
			if run.Props.SizePt < 0 {
				errs = append(errs, fmt.Sprintf("%s: paragraph %d run %d font size is negative", prefix, i+1, k+1))
			}
		}
	}
	return errs
}
