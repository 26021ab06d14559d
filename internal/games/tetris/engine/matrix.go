package engine

// MatrixSize is the side of every piece bounding box, I and O included.
const MatrixSize = 4

// Matrix is a 4x4 occupancy box for one orientation of a piece.
// It is a value type: assigning or returning a Matrix copies it.
type Matrix [MatrixSize][MatrixSize]bool

// RotateCW returns the matrix turned clockwise (transpose, then reverse row order).
func (m Matrix) RotateCW() Matrix {
	var out Matrix
	for r := 0; r < MatrixSize; r++ {
		for c := 0; c < MatrixSize; c++ {
			out[c][MatrixSize-1-r] = m[r][c]
		}
	}
	return out
}

// RotateCCW returns the matrix turned counter-clockwise
// (reverse column order, then transpose).
func (m Matrix) RotateCCW() Matrix {
	var out Matrix
	for r := 0; r < MatrixSize; r++ {
		for c := 0; c < MatrixSize; c++ {
			out[MatrixSize-1-c][r] = m[r][c]
		}
	}
	return out
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	for r := 0; r < MatrixSize; r++ {
		for c := 0; c < MatrixSize; c++ {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

// String renders the matrix as four lines of '#' and '.'.
func (m Matrix) String() string {
	buf := make([]byte, 0, MatrixSize*(MatrixSize+1))
	for r := 0; r < MatrixSize; r++ {
		if r > 0 {
			buf = append(buf, '\n')
		}
		for c := 0; c < MatrixSize; c++ {
			if m[r][c] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}

// parseMatrix builds a matrix from four rows of '1'/'0' characters.
func parseMatrix(rows [MatrixSize]string) Matrix {
	var m Matrix
	for r, line := range rows {
		for c := 0; c < MatrixSize && c < len(line); c++ {
			m[r][c] = line[c] == '1'
		}
	}
	return m
}

// spawnShapes holds the spawn orientation of every kind, indexed by Kind.
// Shape returns copies, so the table is never mutated.
var spawnShapes = [...]Matrix{
	KindNone: {},
	KindI:    parseMatrix([MatrixSize]string{"0000", "1111", "0000", "0000"}),
	KindO:    parseMatrix([MatrixSize]string{"0110", "0110", "0000", "0000"}),
	KindT:    parseMatrix([MatrixSize]string{"0100", "1110", "0000", "0000"}),
	KindS:    parseMatrix([MatrixSize]string{"0110", "1100", "0000", "0000"}),
	KindZ:    parseMatrix([MatrixSize]string{"1100", "0110", "0000", "0000"}),
	KindJ:    parseMatrix([MatrixSize]string{"1000", "1110", "0000", "0000"}),
	KindL:    parseMatrix([MatrixSize]string{"0010", "1110", "0000", "0000"}),
}

// Shape returns the spawn-orientation matrix of a kind.
func Shape(k Kind) Matrix {
	if int(k) >= len(spawnShapes) {
		return Matrix{}
	}
	return spawnShapes[k]
}
