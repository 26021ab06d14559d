package engine

// Cell is an absolute board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// RotateDir is a rotation direction.
type RotateDir int

const (
	CW  RotateDir = 1
	CCW RotateDir = -1
)

// Piece is a tetromino instance. It owns its matrix by value, so copying a
// Piece never shares state with the original.
type Piece struct {
	Kind     Kind   `json:"kind"`
	Matrix   Matrix `json:"-"`
	Rotation int    `json:"rotation"` // 0 = spawn, wraps modulo 4
	Row      int    `json:"row"`      // board row of the matrix origin
	Col      int    `json:"col"`      // board column of the matrix origin
}

// NewPiece creates a piece of kind k in spawn orientation at (row, col).
func NewPiece(k Kind, row, col int) Piece {
	return Piece{
		Kind:   k,
		Matrix: Shape(k),
		Row:    row,
		Col:    col,
	}
}

// OccupiedCells returns the board coordinates of every block of the piece,
// shifted by (dr, dc).
func (p Piece) OccupiedCells(dr, dc int) []Cell {
	cells := make([]Cell, 0, 4)
	for r := 0; r < MatrixSize; r++ {
		for c := 0; c < MatrixSize; c++ {
			if p.Matrix[r][c] {
				cells = append(cells, Cell{Row: p.Row + r + dr, Col: p.Col + c + dc})
			}
		}
	}
	return cells
}

// Fits reports whether the piece can occupy its current position on g.
func (p Piece) Fits(g *Grid) bool {
	return g.CanPlace(p.Matrix, p.Row, p.Col)
}

// DropRow returns the lowest row the piece can reach moving straight down.
// The piece is not modified.
func (p Piece) DropRow(g *Grid) int {
	row := p.Row
	for g.CanPlace(p.Matrix, row+1, p.Col) {
		row++
	}
	return row
}

// Moved returns a copy shifted by (dr, dc).
func (p Piece) Moved(dr, dc int) Piece {
	p.Row += dr
	p.Col += dc
	return p
}

// Rotate tries to turn the piece in direction dir on g using the kick table.
// Offsets are tried in table order; the first legal one commits the matrix,
// orientation and position together. On failure the piece is unchanged and
// ok is false.
func (p *Piece) Rotate(g *Grid, dir RotateDir) (kick Offset, ok bool) {
	from := p.Rotation
	to := mod4(from + int(dir))

	var rotated Matrix
	switch {
	case p.Kind == KindO:
		// Turning the O box would slide the square; only the orientation advances.
		rotated = p.Matrix
	case dir == CW:
		rotated = p.Matrix.RotateCW()
	default:
		rotated = p.Matrix.RotateCCW()
	}

	for _, off := range Kicks(FamilyOf(p.Kind), from, to) {
		row, col := p.Row+off.Row, p.Col+off.Col
		if g.CanPlace(rotated, row, col) {
			p.Matrix = rotated
			p.Rotation = to
			p.Row = row
			p.Col = col
			return off, true
		}
	}
	return Offset{}, false
}
