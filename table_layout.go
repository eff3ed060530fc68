package godocument

// Table layout tuning constants. They reproduce a reference renderer's
// visual output; change them only against a pixel comparison.
const (
	// minRowHeightPx is the minimum computed row height in device pixels.
	minRowHeightPx = 20.0
	// tableSplitTolerance is the fraction of the content height a table
	// may exceed before it is rendered row-by-row with per-row breaks.
	tableSplitTolerance = 0.10
	// cellInsetPt is the padding between a cell edge and its content.
	cellInsetPt = 2.0
)

// tableFitSlack is the page-boundary overrun allowed when a table is
// rendered as a unit, as a fraction of the content height.
func tableFitSlack(compatMode int) float64 {
	if compatMode >= CompatibilityModeCurrent {
		return 0.02
	}
	return 0.01
}

// tableLayout is the resolved geometry of one table: per-grid-column
// widths and offsets, per-row heights, and each cell's grid column.
type tableLayout struct {
	colWidths  []float64 // device px per grid column
	colX       []float64 // px offset of each grid column from table left
	rowHeights []float64 // device px per row
	cellCols   [][]int   // grid column of each cell, [row][cell index]
}

func (tl *tableLayout) totalHeight() float64 {
	total := 0.0
	for _, h := range tl.rowHeights {
		total += h
	}
	return total
}

// cellWidth sums the grid columns a cell spans.
func (tl *tableLayout) cellWidth(row, cell, span int) float64 {
	g := tl.cellCols[row][cell]
	w := 0.0
	for i := g; i < g+span && i < len(tl.colWidths); i++ {
		w += tl.colWidths[i]
	}
	return w
}

// tableGridColumns derives the grid column count from the declared grid
// and the widest row.
func tableGridColumns(t *Table) int {
	cols := len(t.GridPt)
	for ri := range t.Rows {
		n := 0
		for ci := range t.Rows[ri].Cells {
			n += t.Rows[ri].Cells[ci].Span()
		}
		if n > cols {
			cols = n
		}
	}
	return cols
}

// layoutTable resolves the full table geometry for the given available
// width without drawing anything.
func (r *renderer) layoutTable(t *Table, availPx float64) (*tableLayout, error) {
	cols := tableGridColumns(t)
	if cols == 0 || len(t.Rows) == 0 {
		return &tableLayout{}, nil
	}
	tl := &tableLayout{
		colWidths:  make([]float64, cols),
		rowHeights: make([]float64, len(t.Rows)),
		cellCols:   make([][]int, len(t.Rows)),
	}
	for ri := range t.Rows {
		row := &t.Rows[ri]
		tl.cellCols[ri] = make([]int, len(row.Cells))
		g := 0
		for ci := range row.Cells {
			tl.cellCols[ri][ci] = g
			g += row.Cells[ci].Span()
		}
	}
	r.resolveColumnWidths(t, tl, availPx)
	if err := r.resolveRowHeights(t, tl); err != nil {
		return nil, err
	}
	return tl, nil
}

// resolveColumnWidths fills colWidths and colX. Explicit widths on
// non-spanning cells win, with blank columns sharing the remainder;
// otherwise the declared grid is scaled to the available width;
// otherwise columns split it evenly.
func (r *renderer) resolveColumnWidths(t *Table, tl *tableLayout, availPx float64) {
	ctx := r.ctx
	cols := len(tl.colWidths)

	explicit := make([]float64, cols)
	haveExplicit := false
	for ri := range t.Rows {
		row := &t.Rows[ri]
		for ci := range row.Cells {
			cell := &row.Cells[ci]
			if cell.Span() != 1 || cell.WidthPt <= 0 {
				continue
			}
			g := tl.cellCols[ri][ci]
			if g < cols && explicit[g] == 0 {
				explicit[g] = ctx.px(cell.WidthPt)
				haveExplicit = true
			}
		}
	}

	switch {
	case haveExplicit:
		sum := 0.0
		unset := 0
		for _, w := range explicit {
			sum += w
			if w == 0 {
				unset++
			}
		}
		if unset > 0 {
			share := (availPx - sum) / float64(unset)
			if share < availPx/float64(cols)/4 {
				share = availPx / float64(cols) / 4
			}
			for i, w := range explicit {
				if w == 0 {
					explicit[i] = share
					sum += share
				}
			}
		}
		if sum > availPx && sum > 0 {
			scale := availPx / sum
			for i := range explicit {
				explicit[i] *= scale
			}
		}
		copy(tl.colWidths, explicit)

	case len(t.GridPt) > 0:
		sum := 0.0
		for _, w := range t.GridPt {
			sum += w
		}
		if sum <= 0 {
			for i := range tl.colWidths {
				tl.colWidths[i] = availPx / float64(cols)
			}
			break
		}
		for i := range tl.colWidths {
			declared := 0.0
			if i < len(t.GridPt) {
				declared = t.GridPt[i]
			}
			tl.colWidths[i] = availPx * declared / sum
		}

	default:
		for i := range tl.colWidths {
			tl.colWidths[i] = availPx / float64(cols)
		}
	}

	tl.colX = make([]float64, cols)
	x := 0.0
	for i, w := range tl.colWidths {
		tl.colX[i] = x
		x += w
	}
}

// resolveRowHeights runs the three height passes: content-driven
// minimums, explicit row heights, then vertical-merge distribution.
func (r *renderer) resolveRowHeights(t *Table, tl *tableLayout) error {
	ctx := r.ctx
	inset := ctx.px(cellInsetPt)

	// Pass 1: content heights of plain cells.
	for ri := range t.Rows {
		row := &t.Rows[ri]
		h := minRowHeightPx
		for ci := range row.Cells {
			cell := &row.Cells[ci]
			if cell.VMerge != VMergeNone {
				continue
			}
			cw := tl.cellWidth(ri, ci, cell.Span())
			ch, err := r.paragraphsBlock(cell.Paragraphs, 0, 0, cw-2*inset, false)
			if err != nil {
				return err
			}
			if ch+2*inset > h {
				h = ch + 2*inset
			}
		}
		tl.rowHeights[ri] = h
	}

	// Pass 2: explicit heights. Exact overrides, at-least raises. When
	// every row is explicit and the table has vertical merges, at-least
	// rows are forced exact too, preserving letterhead-style layouts
	// that depend on precise row positions.
	allExplicit := len(t.Rows) > 0
	hasMerge := false
	for ri := range t.Rows {
		if t.Rows[ri].Height == nil || t.Rows[ri].Height.ValuePt <= 0 {
			allExplicit = false
		}
		for ci := range t.Rows[ri].Cells {
			if t.Rows[ri].Cells[ci].VMerge != VMergeNone {
				hasMerge = true
			}
		}
	}
	forceExact := allExplicit && hasMerge
	for ri := range t.Rows {
		rh := t.Rows[ri].Height
		if rh == nil || rh.ValuePt <= 0 {
			continue
		}
		hpx := ctx.px(rh.ValuePt)
		if rh.Rule == RowHeightExact || forceExact {
			tl.rowHeights[ri] = hpx
		} else if hpx > tl.rowHeights[ri] {
			tl.rowHeights[ri] = hpx
		}
	}

	// Pass 3: a vertical-merge restart cell taller than the rows it
	// spans distributes the shortfall evenly across them.
	for ri := range t.Rows {
		row := &t.Rows[ri]
		for ci := range row.Cells {
			cell := &row.Cells[ci]
			if cell.VMerge != VMergeRestart {
				continue
			}
			g := tl.cellCols[ri][ci]
			span := mergeRowSpan(t, tl, ri, g)
			cw := tl.cellWidth(ri, ci, cell.Span())
			ch, err := r.paragraphsBlock(cell.Paragraphs, 0, 0, cw-2*inset, false)
			if err != nil {
				return err
			}
			need := ch + 2*inset
			sum := 0.0
			for i := ri; i < ri+span; i++ {
				sum += tl.rowHeights[i]
			}
			if need > sum {
				extra := (need - sum) / float64(span)
				for i := ri; i < ri+span; i++ {
					tl.rowHeights[i] += extra
				}
			}
		}
	}
	return nil
}

// mergeRowSpan counts the chain rows from startRow down in grid column
// g: startRow itself plus the continue rows after it. Called on a
// restart row it spans the whole chain; called on a continue row it
// spans the chain's remainder.
func mergeRowSpan(t *Table, tl *tableLayout, startRow, g int) int {
	span := 1
	for ri := startRow + 1; ri < len(t.Rows); ri++ {
		if !rowContinuesMerge(t, tl, ri, g) {
			break
		}
		span++
	}
	return span
}

// rowContinuesMerge reports whether row ri has a continue cell covering
// grid column g.
func rowContinuesMerge(t *Table, tl *tableLayout, ri, g int) bool {
	row := &t.Rows[ri]
	for ci := range row.Cells {
		gc := tl.cellCols[ri][ci]
		if g >= gc && g < gc+row.Cells[ci].Span() {
			return row.Cells[ci].VMerge == VMergeContinue
		}
	}
	return false
}

// renderTable lays out and draws a table at the cursor. Tables taller
// than the content height by more than tableSplitTolerance are rendered
// row-by-row with a break check before each row; anything shorter is
// placed as a unit with a small boundary slack. Tables never take part
// in paragraph spacing collapse.
func (r *renderer) renderTable(t *Table) error {
	ctx := r.ctx
	defer ctx.resetAdjacency()
	if len(t.Rows) == 0 {
		return nil
	}
	tl, err := r.layoutTable(t, ctx.columnWidth())
	if err != nil {
		return err
	}
	if len(tl.rowHeights) == 0 {
		return nil
	}

	total := tl.totalHeight()
	pageH := ctx.contentHeight()
	if total > pageH*(1+tableSplitTolerance) {
		return r.renderTableSplit(t, tl)
	}

	slack := pageH * tableFitSlack(ctx.settings.EffectiveCompatibilityMode())
	if ctx.currentY+total > ctx.contentBottom()+slack && !r.atColumnTop() {
		if err := r.advanceCarrying(total); err != nil {
			return err
		}
	}
	return r.drawTableRows(t, tl, 0, len(t.Rows))
}

// renderTableSplit draws contiguous runs of rows that fit at the
// cursor, advancing between runs so an overflowing row starts at the
// top of the next column or page. Rows on the same page draw in one
// run, which keeps their merge chains painting as one box.
func (r *renderer) renderTableSplit(t *Table, tl *tableLayout) error {
	ctx := r.ctx
	ri := 0
	for ri < len(t.Rows) {
		rh := tl.rowHeights[ri]
		if !ctx.hasSpaceFor(rh) && !r.atColumnTop() && rh <= ctx.contentHeight() {
			rest := 0.0
			for i := ri; i < len(t.Rows); i++ {
				rest += tl.rowHeights[i]
			}
			if err := r.advanceCarrying(rest); err != nil {
				return err
			}
		}
		end := ri + 1
		run := rh
		for end < len(t.Rows) && ctx.hasSpaceFor(run+tl.rowHeights[end]) {
			run += tl.rowHeights[end]
			end++
		}
		if err := r.drawTableRows(t, tl, ri, end); err != nil {
			return err
		}
		ri = end
	}
	return nil
}

// drawTableRows draws rows [start, end) at the cursor and advances it by
// their summed heights. Each grid column tracks its own Y so a
// vertical-merge restart cell paints the chained rows present in the
// range while cells in other columns keep their row offsets. A chain
// cut short by the range resumes in the next one as a box without
// content; continue cells inside a range draw nothing.
func (r *renderer) drawTableRows(t *Table, tl *tableLayout, start, end int) error {
	ctx := r.ctx
	left := ctx.contentLeft()
	cols := len(tl.colWidths)
	colY := make([]float64, cols)
	for i := range colY {
		colY[i] = ctx.currentY
	}

	for ri := start; ri < end; ri++ {
		row := &t.Rows[ri]
		for ci := range row.Cells {
			cell := &row.Cells[ci]
			g := tl.cellCols[ri][ci]
			if g >= cols {
				continue
			}
			continued := cell.VMerge == VMergeContinue
			if continued && ri > start {
				continue
			}
			h := tl.rowHeights[ri]
			if cell.VMerge == VMergeRestart || continued {
				span := mergeRowSpan(t, tl, ri, g)
				if ri+span > end {
					span = end - ri
				}
				h = 0
				for i := ri; i < ri+span; i++ {
					h += tl.rowHeights[i]
				}
			}
			x := left + tl.colX[g]
			w := tl.cellWidth(ri, ci, cell.Span())
			if continued {
				// The chain's restart painted its content on an earlier
				// page; the rows carried over get an empty box.
				r.drawCellBox(t, cell, x, colY[g], w, h)
			} else if err := r.drawCell(t, cell, x, colY[g], w, h); err != nil {
				return err
			}
			bottom := colY[g] + h
			for i := g; i < g+cell.Span() && i < cols; i++ {
				colY[i] = bottom
			}
		}
	}

	for i := start; i < end; i++ {
		ctx.currentY += tl.rowHeights[i]
	}
	r.markContent()
	return nil
}

// drawCellBox paints a cell's shading and border.
func (r *renderer) drawCellBox(t *Table, cell *TableCell, x, y, w, h float64) {
	canvas := r.canvas()
	if canvas == nil {
		return
	}
	if cell.Shading != nil {
		canvas.FillRect(x, y, w, h, *cell.Shading)
	}
	if t.Borders {
		canvas.StrokeRect(x, y, w, h, ColorBlack, 1)
	}
}

// drawCell paints one cell: shading, then the border, then the content
// inset on all sides.
func (r *renderer) drawCell(t *Table, cell *TableCell, x, y, w, h float64) error {
	if r.canvas() == nil {
		return nil
	}
	r.drawCellBox(t, cell, x, y, w, h)
	inset := r.ctx.px(cellInsetPt)
	_, err := r.paragraphsBlock(cell.Paragraphs, x+inset, y+inset, w-2*inset, true)
	return err
}
