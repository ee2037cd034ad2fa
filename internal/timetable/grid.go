package timetable

// RawCell is one table cell exactly as declared in source markup, before
// span reconstruction.
type RawCell struct {
	Text    string
	Class   string
	RowSpan int
	ColSpan int
}

// CellKind distinguishes the three states a logical grid position can be in.
type CellKind int

const (
	// CellEmpty marks a position with no cell at all (sparse or malformed
	// source rows).
	CellEmpty CellKind = iota
	// CellOwner is the top-left position of a placed cell and carries its
	// content.
	CellOwner
	// CellOccupied is covered by the row/column span of another cell.
	CellOccupied
)

// Cell is one position of a LogicalGrid.
type Cell struct {
	Kind  CellKind
	Text  string
	Class string
}

// LogicalGrid is the reconstructed row-major layout of a spanned table:
// every source cell appears exactly once as an owner, with every further
// position it covers marked occupied.
type LogicalGrid struct {
	rows [][]Cell
}

// Reconstruct builds a LogicalGrid from ordered rows of raw cells.
//
// Rows are scanned top to bottom. Within a row a cursor advances past
// positions already claimed by earlier rowspans or same-row colspans before
// each placement. A cell spanning rowSpan x colSpan writes its owner at the
// cursor and occupied markers at every other covered position, materializing
// rows on demand when a span reaches beyond the current grid. Positions are
// never overwritten: the first writer in scan order wins. A source row with
// no cells stays as an all-empty logical row.
func Reconstruct(rows [][]RawCell) *LogicalGrid {
	g := &LogicalGrid{rows: make([][]Cell, len(rows))}

	for r, row := range rows {
		col := 0
		for _, raw := range row {
			for g.at(r, col).Kind != CellEmpty {
				col++
			}

			rowSpan := raw.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			colSpan := raw.ColSpan
			if colSpan < 1 {
				colSpan = 1
			}

			for dr := 0; dr < rowSpan; dr++ {
				for dc := 0; dc < colSpan; dc++ {
					g.ensure(r+dr, col+dc)
					if g.rows[r+dr][col+dc].Kind != CellEmpty {
						continue
					}
					if dr == 0 && dc == 0 {
						g.rows[r][col] = Cell{Kind: CellOwner, Text: raw.Text, Class: raw.Class}
					} else {
						g.rows[r+dr][col+dc] = Cell{Kind: CellOccupied}
					}
				}
			}
			col += colSpan
		}
	}
	return g
}

// NumRows returns the number of materialized logical rows.
func (g *LogicalGrid) NumRows() int {
	return len(g.rows)
}

// Row returns logical row r, or nil when out of range.
func (g *LogicalGrid) Row(r int) []Cell {
	if r < 0 || r >= len(g.rows) {
		return nil
	}
	return g.rows[r]
}

// At returns the cell at (r, c); out-of-range positions read as empty.
func (g *LogicalGrid) At(r, c int) Cell {
	return g.at(r, c)
}

func (g *LogicalGrid) at(r, c int) Cell {
	if r < 0 || r >= len(g.rows) || c < 0 || c >= len(g.rows[r]) {
		return Cell{}
	}
	return g.rows[r][c]
}

// ensure grows the grid so that position (r, c) exists, padding with empty
// cells.
func (g *LogicalGrid) ensure(r, c int) {
	for len(g.rows) <= r {
		g.rows = append(g.rows, nil)
	}
	for len(g.rows[r]) <= c {
		g.rows[r] = append(g.rows[r], Cell{})
	}
}
