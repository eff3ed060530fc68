package godocument

import (
	"strings"
	"testing"
)

func TestValidate_CleanDocument(t *testing.T) {
	if err := buildComprehensiveDocument().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_ElementIssues(t *testing.T) {
	badPara := &Paragraph{}
	badPara.AddRun("x", RunProperties{SizePt: -1})

	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"nil element", nil, "element is nil"},
		{"empty table", &Table{}, "table has no rows"},
		{"row without cells", &Table{Rows: []TableRow{{}}}, "has no cells"},
		{"negative grid span", &Table{Rows: []TableRow{{Cells: []TableCell{{GridSpan: -1}}}}}, "grid span is negative"},
		{"image without data", &Image{WidthPt: 10, HeightPt: 10}, "image has no data"},
		{"negative image size", &Image{Data: testPNG(), WidthPt: -1}, "image size is negative"},
		{"empty wordart", &WordArt{}, "wordart text is empty"},
		{"drop-down out of range", &DropDownFormField{Entries: []string{"a"}, Selected: 3}, "selection out of range"},
		{"negative font size", badPara, "font size is negative"},
		{"section zero size", &SectionBreak{Settings: &PageSettings{}}, "section page size must be positive"},
		{"section margin overflow", &SectionBreak{Settings: &PageSettings{WidthPt: 100, HeightPt: 100, MarginLeftPt: 60, MarginRightPt: 60}}, "section margins exceed"},
		{"nil control paragraph", &ContentControl{Paragraphs: []*Paragraph{nil}}, "paragraph 1 is nil"},
		{"inline image without data", func() Element {
			p := &Paragraph{}
			p.Runs = append(p.Runs, Run{Image: &InlineImage{WidthPt: 10, HeightPt: 10}})
			return p
		}(), "inline image has no data"},
	}
	for _, tt := range tests {
		doc := NewDocument()
		doc.AddElement(tt.el)
		err := doc.Validate()
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestValidate_HeaderAndFooterChecked(t *testing.T) {
	doc := NewDocument()
	doc.Header = []Element{&WordArt{}}
	doc.Footer = []Element{nil}

	err := doc.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "header element 1") {
		t.Errorf("error %q does not locate the header issue", err)
	}
	if !strings.Contains(err.Error(), "footer element 1") {
		t.Errorf("error %q does not locate the footer issue", err)
	}
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	doc := NewDocument()
	doc.AddElement(&Table{})
	doc.AddElement(&WordArt{})

	err := doc.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "element 1") || !strings.Contains(msg, "element 2") {
		t.Errorf("error %q must report both elements", err)
	}
}
