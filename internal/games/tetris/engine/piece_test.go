package engine

import (
	"reflect"
	"testing"
)

func TestShapesHaveFourBlocks(t *testing.T) {
	for _, k := range Kinds {
		if got := Shape(k).Count(); got != 4 {
			t.Errorf("Shape(%v).Count() = %d, want 4", k, got)
		}
	}
}

func TestShapeReturnsCopy(t *testing.T) {
	s := Shape(KindT)
	s[3][3] = true
	if Shape(KindT)[3][3] {
		t.Error("mutating a returned shape changed the shape table")
	}
}

func TestRotateCCWUndoesCW(t *testing.T) {
	for _, k := range Kinds {
		m := Shape(k)
		if got := m.RotateCW().RotateCCW(); got != m {
			t.Errorf("%v: CW then CCW =\n%v\nwant\n%v", k, got, m)
		}
		if got := m.RotateCCW(); got != m.RotateCW().RotateCW().RotateCW() {
			t.Errorf("%v: CCW differs from three CW turns", k)
		}
	}
}

func TestFourRotationsRestorePiece(t *testing.T) {
	tests := []struct {
		name string
		dir  RotateDir
	}{
		{"clockwise", CW},
		{"counter-clockwise", CCW},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range Kinds {
				g := NewGrid(DefaultCols, DefaultVisible, DefaultHidden)
				p := NewPiece(k, 8, 3)
				orig := p

				for i := 0; i < 4; i++ {
					if _, ok := p.Rotate(g, tt.dir); !ok {
						t.Fatalf("%v: rotation %d failed on empty board", k, i+1)
					}
				}
				if p.Matrix != orig.Matrix {
					t.Errorf("%v: matrix after 4 turns =\n%v\nwant\n%v", k, p.Matrix, orig.Matrix)
				}
				if p.Rotation != 0 {
					t.Errorf("%v: rotation after 4 turns = %d, want 0", k, p.Rotation)
				}
				if p.Row != orig.Row || p.Col != orig.Col {
					t.Errorf("%v: position moved to (%d,%d)", k, p.Row, p.Col)
				}
			}
		})
	}
}

func TestRotationWrapsBothWays(t *testing.T) {
	g := NewGrid(DefaultCols, DefaultVisible, DefaultHidden)
	p := NewPiece(KindT, 8, 3)
	p.Rotate(g, CCW)
	if p.Rotation != 3 {
		t.Errorf("Rotation after one CCW = %d, want 3", p.Rotation)
	}
	p.Rotate(g, CW)
	p.Rotate(g, CW)
	if p.Rotation != 1 {
		t.Errorf("Rotation after CCW, CW, CW = %d, want 1", p.Rotation)
	}
}

func TestOPieceRotationAdvancesOrientation(t *testing.T) {
	g := NewGrid(DefaultCols, DefaultVisible, DefaultHidden)
	p := NewPiece(KindO, 8, 3)
	before := p.OccupiedCells(0, 0)

	off, ok := p.Rotate(g, CW)
	if !ok {
		t.Fatal("O rotation failed")
	}
	if off != (Offset{}) {
		t.Errorf("O kick = %+v, want zero offset", off)
	}
	if p.Rotation != 1 {
		t.Errorf("O rotation = %d, want 1", p.Rotation)
	}
	if !reflect.DeepEqual(p.OccupiedCells(0, 0), before) {
		t.Errorf("O cells changed: %v, want %v", p.OccupiedCells(0, 0), before)
	}
}

// J in spawn orientation flush against the left wall at row 10. Its CW
// orientation occupies box cells (0,2) (0,3) (1,2) (2,2).
func TestJKickCommitsFirstLegalOffset(t *testing.T) {
	tests := []struct {
		name     string
		blocked  []Cell
		wantOK   bool
		wantKick Offset
	}{
		{
			name:     "no obstacle uses identity",
			wantOK:   true,
			wantKick: Offset{0, 0},
		},
		{
			name:     "identity blocked takes second entry",
			blocked:  []Cell{{10, 3}},
			wantOK:   true,
			wantKick: Offset{0, -1},
		},
		{
			name:     "first two blocked takes third entry",
			blocked:  []Cell{{10, 2}},
			wantOK:   true,
			wantKick: Offset{1, -1},
		},
		{
			name:    "every entry blocked fails",
			blocked: []Cell{{10, 2}, {12, 1}, {8, 1}},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(DefaultCols, DefaultVisible, DefaultHidden)
			for _, c := range tt.blocked {
				g.set(c.Row, c.Col, KindZ)
			}
			p := NewPiece(KindJ, 10, 0)
			if !p.Fits(g) {
				t.Fatal("J does not fit before rotating")
			}
			orig := p

			kick, ok := p.Rotate(g, CW)
			if ok != tt.wantOK {
				t.Fatalf("Rotate ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if p != orig {
					t.Errorf("failed rotation changed piece: %+v, want %+v", p, orig)
				}
				return
			}
			if kick != tt.wantKick {
				t.Errorf("kick = %+v, want %+v", kick, tt.wantKick)
			}
			if p.Row != orig.Row+tt.wantKick.Row || p.Col != orig.Col+tt.wantKick.Col {
				t.Errorf("position = (%d,%d), want (%d,%d)", p.Row, p.Col,
					orig.Row+tt.wantKick.Row, orig.Col+tt.wantKick.Col)
			}
			if p.Rotation != 1 {
				t.Errorf("rotation = %d, want 1", p.Rotation)
			}
			if p.Matrix != Shape(KindJ).RotateCW() {
				t.Errorf("matrix not rotated:\n%v", p.Matrix)
			}
		})
	}
}

func TestDropRowIsPure(t *testing.T) {
	g := NewGrid(DefaultCols, DefaultVisible, DefaultHidden)
	p := NewPiece(KindO, 0, 3)

	if got := p.DropRow(g); got != 22 {
		t.Errorf("DropRow() = %d, want 22", got)
	}
	if p.Row != 0 {
		t.Errorf("DropRow moved the piece to row %d", p.Row)
	}

	g.set(20, 4, KindI)
	if got := p.DropRow(g); got != 18 {
		t.Errorf("DropRow() over obstacle = %d, want 18", got)
	}
}

func TestOccupiedCells(t *testing.T) {
	p := NewPiece(KindT, 5, 2)
	want := []Cell{{5, 3}, {6, 2}, {6, 3}, {6, 4}}
	if got := p.OccupiedCells(0, 0); !reflect.DeepEqual(got, want) {
		t.Errorf("OccupiedCells(0,0) = %v, want %v", got, want)
	}
	shifted := []Cell{{6, 2}, {7, 1}, {7, 2}, {7, 3}}
	if got := p.OccupiedCells(1, -1); !reflect.DeepEqual(got, shifted) {
		t.Errorf("OccupiedCells(1,-1) = %v, want %v", got, shifted)
	}
}

func TestPieceCopiesDoNotShareMatrix(t *testing.T) {
	g := NewGrid(DefaultCols, DefaultVisible, DefaultHidden)
	p := NewPiece(KindL, 8, 3)
	ghost := p
	p.Rotate(g, CW)
	if ghost.Matrix != Shape(KindL) {
		t.Error("rotating a piece changed its copy")
	}
}
