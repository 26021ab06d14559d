package engine

// Default board dimensions.
const (
	DefaultCols    = 10
	DefaultVisible = 20
	DefaultHidden  = 4
)

// Grid is the playfield. Rows 0..hidden-1 form the hidden spawn margin above
// the visible field. Cells are stored in row-major order: index = row*cols + col.
//
// A grid smaller than one piece bounding box (4x4) is not supported.
type Grid struct {
	rows   int
	cols   int
	hidden int
	cells  []Kind
}

// NewGrid creates an empty grid with the given visible size and hidden margin.
func NewGrid(cols, visibleRows, hidden int) *Grid {
	rows := visibleRows + hidden
	return &Grid{
		rows:   rows,
		cols:   cols,
		hidden: hidden,
		cells:  make([]Kind, rows*cols),
	}
}

// Rows returns the total row count, hidden margin included.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Hidden returns the height of the hidden margin.
func (g *Grid) Hidden() int { return g.hidden }

// VisibleRows returns the number of rendered rows.
func (g *Grid) VisibleRows() int { return g.rows - g.hidden }

// InBounds reports whether (row, col) addresses a stored cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the kind stored at (row, col). Out of range reads as empty.
func (g *Grid) Cell(row, col int) Kind {
	if !g.InBounds(row, col) {
		return KindNone
	}
	return g.cells[row*g.cols+col]
}

// Occupied reports whether (row, col) holds a locked block.
func (g *Grid) Occupied(row, col int) bool {
	return g.Cell(row, col) != KindNone
}

// CanPlace reports whether matrix m fits with its box origin at (row, col).
// Cells above row 0 are always placeable so a spawning piece can straddle the top.
func (g *Grid) CanPlace(m Matrix, row, col int) bool {
	for r := 0; r < MatrixSize; r++ {
		for c := 0; c < MatrixSize; c++ {
			if !m[r][c] {
				continue
			}
			R, C := row+r, col+c
			if C < 0 || C >= g.cols || R >= g.rows {
				return false
			}
			if R >= 0 && g.cells[R*g.cols+C] != KindNone {
				return false
			}
		}
	}
	return true
}

// Place writes k into every occupied cell of m at (row, col) that lies at row >= 0.
// It does not validate; callers check CanPlace first.
func (g *Grid) Place(m Matrix, row, col int, k Kind) {
	for r := 0; r < MatrixSize; r++ {
		for c := 0; c < MatrixSize; c++ {
			if !m[r][c] {
				continue
			}
			R, C := row+r, col+c
			if R >= 0 && R < g.rows && C >= 0 && C < g.cols {
				g.cells[R*g.cols+C] = k
			}
		}
	}
}

// rowFull reports whether row has no empty cell.
func (g *Grid) rowFull(row int) bool {
	base := row * g.cols
	for c := 0; c < g.cols; c++ {
		if g.cells[base+c] == KindNone {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (g *Grid) FullRows() []int {
	var rows []int
	for r := 0; r < g.rows; r++ {
		if g.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearLines removes every full row in a single pass, shifts the remaining rows
// down in order and fills the top with empty rows. It returns the number removed.
func (g *Grid) ClearLines() int {
	next := make([]Kind, len(g.cells))
	dst := g.rows - 1
	for src := g.rows - 1; src >= 0; src-- {
		if g.rowFull(src) {
			continue
		}
		copy(next[dst*g.cols:(dst+1)*g.cols], g.cells[src*g.cols:(src+1)*g.cols])
		dst--
	}
	cleared := dst + 1
	g.cells = next
	return cleared
}

// IsOverflowed reports whether any cell of the hidden margin is occupied.
func (g *Grid) IsOverflowed() bool {
	for i := 0; i < g.hidden*g.cols; i++ {
		if g.cells[i] != KindNone {
			return true
		}
	}
	return false
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, k := range g.cells {
		if k != KindNone {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no cell is occupied.
func (g *Grid) IsEmpty() bool {
	return g.FilledCount() == 0
}

// Cells returns a copy of every row, top to bottom.
func (g *Grid) Cells() [][]Kind {
	out := make([][]Kind, g.rows)
	for r := range out {
		out[r] = make([]Kind, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Kind, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:   g.rows,
		cols:   g.cols,
		hidden: g.hidden,
		cells:  cells,
	}
}

// Equal reports whether two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols || g.hidden != other.hidden {
		return false
	}
	for i, k := range g.cells {
		if k != other.cells[i] {
			return false
		}
	}
	return true
}

// set stores k at (row, col) without any checks on the rest of the board.
func (g *Grid) set(row, col int, k Kind) {
	if g.InBounds(row, col) {
		g.cells[row*g.cols+col] = k
	}
}
