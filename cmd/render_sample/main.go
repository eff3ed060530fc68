package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	godocument "github.com/VantageDataChat/GoWord"
)

func main() {
	dst := "render_sample_out"
	if len(os.Args) > 1 {
		dst = os.Args[1]
	}

	if err := os.MkdirAll(dst, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	doc := buildSample()

	opts := godocument.DefaultRenderOptions()
	opts.DPI = 144

	pages, err := doc.Render(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	for _, pg := range pages {
		path := filepath.Join(dst, fmt.Sprintf("page%02d.png", pg.Number))
		if err := godocument.SavePageImage(pg, path, opts); err != nil {
			fmt.Fprintf(os.Stderr, "save: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Rendered %d pages to %s\n", len(pages), dst)
}

// buildSample assembles a document touching most element kinds.
func buildSample() *godocument.Document {
	doc := godocument.NewDocument()
	doc.Settings.LineNumbering = &godocument.LineNumbering{CountBy: 5, DistancePt: 12}

	header := &godocument.Paragraph{Props: godocument.ParagraphProperties{Alignment: godocument.AlignRight}}
	header.AddRun("Quarterly Overview", godocument.RunProperties{SizePt: 9, Italic: true})
	doc.Header = append(doc.Header, header)

	footer := &godocument.Paragraph{Props: godocument.ParagraphProperties{Alignment: godocument.AlignCenter}}
	footer.AddRun("Internal use only", godocument.RunProperties{SizePt: 8, Color: godocument.ColorGray})
	doc.Footer = append(doc.Footer, footer)

	banner := &godocument.FloatingShape{
		Shape:      godocument.ShapeRectangle,
		WidthPt:    468,
		HeightPt:   40,
		Fill:       &godocument.Color{ARGB: "FFEFF3FA"},
		BehindText: true,
		Anchor: godocument.Anchor{
			Horizontal: godocument.AnchorHMargin,
			Vertical:   godocument.AnchorVMargin,
			OffsetYPt:  -6,
		},
	}
	doc.AddElement(banner)

	title := &godocument.Paragraph{Props: godocument.ParagraphProperties{
		Alignment:      godocument.AlignCenter,
		SpacingAfterPt: 14,
	}}
	title.AddRun("Quarterly Overview", godocument.RunProperties{SizePt: 22, Bold: true})
	doc.AddElement(title)

	body := &godocument.Paragraph{Props: godocument.ParagraphProperties{
		Alignment:      godocument.AlignJustify,
		SpacingAfterPt: 6,
		LineSpacing:    &godocument.LineSpacing{Rule: godocument.LineSpacingAuto, Value: 1.15},
	}}
	body.AddRun("This report demonstrates paragraph flow, justified lines, list numbering, "+
		"table layout with merged cells, floating artwork and form fields. ", godocument.RunProperties{SizePt: 11})
	body.AddRun("Highlighted, ", godocument.RunProperties{SizePt: 11, Highlight: &godocument.ColorYellow})
	body.AddRun("bold ", godocument.RunProperties{SizePt: 11, Bold: true})
	body.AddRun("and struck ", godocument.RunProperties{SizePt: 11, Strike: true})
	body.AddRun("runs mix freely; superscripts", godocument.RunProperties{SizePt: 11})
	body.AddRun("2", godocument.RunProperties{SizePt: 11, VertAlign: godocument.VerticalAlignSuperscript})
	body.AddRun(" shift the baseline.", godocument.RunProperties{SizePt: 11})
	doc.AddElement(body)

	items := []string{
		"Revenue grew in all regions",
		"Churn stayed below target",
		"Two launches slipped to next quarter",
	}
	for i, item := range items {
		p := &godocument.Paragraph{Props: godocument.ParagraphProperties{
			IndentLeftPt:   24,
			SpacingAfterPt: 2,
			Numbering:      &godocument.NumberingRef{Glyph: fmt.Sprintf("%d.", i+1), IndentPt: 18},
		}}
		p.AddRun(item, godocument.RunProperties{SizePt: 11})
		doc.AddElement(p)
	}

	doc.AddElement(buildTable())
	doc.AddElement(&godocument.Image{Data: samplePNG(), WidthPt: 120, HeightPt: 80})

	check := &godocument.Paragraph{Props: godocument.ParagraphProperties{SpacingBeforePt: 8}}
	check.AddRun("Sign-off required:", godocument.RunProperties{SizePt: 11, Bold: true})
	doc.AddElement(check)
	doc.AddElement(&godocument.CheckBoxFormField{Checked: true})
	doc.AddElement(&godocument.TextFormField{Value: "A. Reviewer", WidthPt: 160, Props: godocument.RunProperties{SizePt: 11}})
	doc.AddElement(&godocument.DropDownFormField{
		Entries:  []string{"Draft", "Reviewed", "Final"},
		Selected: 1,
		WidthPt:  120,
		Props:    godocument.RunProperties{SizePt: 11},
	})

	doc.AddElement(&godocument.PageBreak{})

	two := doc.Settings.Clone()
	two.Columns = 2
	two.ColumnSpacingPt = 24
	doc.AddElement(&godocument.SectionBreak{BreakType: godocument.SectionBreakContinuous, Settings: two})

	for i := 0; i < 6; i++ {
		p := &godocument.Paragraph{Props: godocument.ParagraphProperties{
			Alignment:      godocument.AlignJustify,
			SpacingAfterPt: 6,
		}}
		p.AddRun("Two-column flow fills the left column first and spills into the right. "+
			"Soft­hyphenated words only show their hyphen when a line actually breaks there.",
			godocument.RunProperties{SizePt: 10})
		doc.AddElement(p)
	}

	doc.AddElement(&godocument.WordArt{
		Text:    "THANK YOU",
		SizePt:  32,
		Fill:    godocument.ColorBlue,
		Outline: &godocument.ColorBlack,
		Bold:    true,
	})

	ink := &godocument.Ink{
		Color:    godocument.ColorRed,
		WidthPt:  140,
		HeightPt: 50,
		PenPt:    1.5,
		Strokes: [][]godocument.InkPoint{
			{{X: 5, Y: 40}, {X: 30, Y: 10}, {X: 55, Y: 38}, {X: 80, Y: 12}, {X: 110, Y: 35}},
		},
	}
	doc.AddElement(ink)

	return doc
}

func buildTable() *godocument.Table {
	table := &godocument.Table{Borders: true, GridPt: []float64{156, 156, 156}}

	hdr := table.AddRow()
	for _, h := range []string{"Region", "Revenue", "Change"} {
		cell := hdr.AddCell(h, godocument.RunProperties{SizePt: 11, Bold: true})
		cell.Shading = &godocument.Color{ARGB: "FFD9D9D9"}
	}

	rows := [][2]string{
		{"1.2M", "+4%"},
		{"0.9M", "+2%"},
		{"1.5M", "+9%"},
	}
	for i, r := range rows {
		row := table.AddRow()
		if i == 0 {
			merged := row.AddCell("Americas", godocument.RunProperties{SizePt: 11, Italic: true})
			merged.VMerge = godocument.VMergeRestart
		} else {
			cont := row.AddCell("", godocument.RunProperties{})
			cont.VMerge = godocument.VMergeContinue
		}
		row.AddCell(r[0], godocument.RunProperties{SizePt: 11})
		row.AddCell(r[1], godocument.RunProperties{SizePt: 11})
	}
	return table
}

// samplePNG encodes a small two-tone placeholder picture.
func samplePNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			if (x/10+y/10)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 70, G: 110, B: 180, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 230, G: 235, B: 245, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
