package engine

import "strings"

// PieceState is the serializable form of the active piece.
type PieceState struct {
	Kind     Kind   `json:"kind"`
	Rotation int    `json:"rotation"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Cells    []Cell `json:"cells"`
}

// Snapshot captures the complete session state for determinism testing and
// for remote hosts.
type Snapshot struct {
	Tick       uint64      `json:"tick"`
	Phase      Phase       `json:"phase"`
	Score      int         `json:"score"`
	Lines      int         `json:"lines"`
	Level      int         `json:"level"`
	Combo      int         `json:"combo"`
	BackToBack bool        `json:"back_to_back"`
	Piece      *PieceState `json:"piece,omitempty"`
	GhostRow   int         `json:"ghost_row"`
	Hold       Kind        `json:"hold"`
	HoldLocked bool        `json:"hold_locked"`
	Next       []Kind      `json:"next"`
	Board      []string    `json:"board"` // visible rows, one letter per cell, '.' = empty
	GameOver   string      `json:"game_over,omitempty"`
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       e.tick,
		Phase:      e.phase,
		Score:      e.score,
		Lines:      e.lines,
		Level:      e.Level(),
		Combo:      e.combo,
		BackToBack: e.backToBack,
		Hold:       e.hold,
		HoldLocked: e.holdLocked,
		Next:       e.Next(e.cfg.NextCount),
		Board:      e.boardRows(),
		GameOver:   e.overReason,
	}
	if e.active() {
		snap.Piece = &PieceState{
			Kind:     e.piece.Kind,
			Rotation: e.piece.Rotation,
			Row:      e.piece.Row,
			Col:      e.piece.Col,
			Cells:    e.piece.OccupiedCells(0, 0),
		}
		snap.GhostRow = e.GhostRow()
	}
	return snap
}

// boardRows encodes the visible rows of the grid as strings.
func (e *Engine) boardRows() []string {
	rows := make([]string, 0, e.grid.VisibleRows())
	var sb strings.Builder
	for r := e.grid.Hidden(); r < e.grid.Rows(); r++ {
		sb.Reset()
		for c := 0; c < e.grid.Cols(); c++ {
			sb.WriteString(e.grid.Cell(r, c).String())
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// ASCII renders the visible board with the active piece as letters and the
// ghost as ':' cells, framed by '|' walls. Meant for logs and text hosts.
func (e *Engine) ASCII() string {
	rows, cols := e.grid.Rows(), e.grid.Cols()
	canvas := make([][]byte, rows)
	for r := range canvas {
		canvas[r] = make([]byte, cols)
		for c := range canvas[r] {
			canvas[r][c] = e.grid.Cell(r, c).String()[0]
		}
	}
	if e.active() {
		for _, cell := range e.GhostCells() {
			if e.grid.InBounds(cell.Row, cell.Col) && canvas[cell.Row][cell.Col] == '.' {
				canvas[cell.Row][cell.Col] = ':'
			}
		}
		letter := e.piece.Kind.String()[0]
		for _, cell := range e.piece.OccupiedCells(0, 0) {
			if e.grid.InBounds(cell.Row, cell.Col) {
				canvas[cell.Row][cell.Col] = letter
			}
		}
	}

	var sb strings.Builder
	for r := e.grid.Hidden(); r < rows; r++ {
		sb.WriteByte('|')
		sb.Write(canvas[r])
		sb.WriteString("|\n")
	}
	sb.WriteByte('+')
	sb.WriteString(strings.Repeat("-", cols))
	sb.WriteByte('+')
	return sb.String()
}
