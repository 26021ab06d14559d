package tetris

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Glyphs. Each board cell is two characters wide so squares look square.
const (
	blockGlyph = "██"
	ghostGlyph = "░░"
	emptyGlyph = " ·"
	panelWidth = 12
)

// KindColor returns the display color of a piece kind.
func KindColor(k engine.Kind) core.Color {
	switch k {
	case engine.KindI:
		return core.ColorCyan
	case engine.KindO:
		return core.ColorYellow
	case engine.KindT:
		return core.ColorMagenta
	case engine.KindS:
		return core.ColorGreen
	case engine.KindZ:
		return core.ColorRed
	case engine.KindJ:
		return core.ColorBlue
	case engine.KindL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// layout holds the screen positions computed for one frame.
type layout struct {
	board core.Rect
	hold  core.Rect
	next  core.Rect
	stats int // first row of the stats column
}

func (g *Game) layout(dst *core.Screen) layout {
	boardW := g.cfg.Board.Cols*2 + 2
	boardH := g.cfg.Board.Rows + 2
	bx := (dst.Width() - boardW) / 2
	by := core.Max(0, (dst.Height()-boardH)/2)

	nextCount := core.Clamp(g.cfg.Preview.Next, 0, 6)
	l := layout{
		board: core.NewRect(bx, by, boardW, boardH),
		hold:  core.NewRect(bx-panelWidth-1, by, panelWidth, 4),
		stats: by + 5,
	}
	if nextCount > 0 {
		l.next = core.NewRect(bx+boardW+1, by, panelWidth, nextCount*3+1)
	}
	return l
}

// Render draws the playfield, side panels and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.eng == nil {
		return
	}

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	l := g.layout(dst)
	g.renderBoard(dst, l.board)
	g.renderHold(dst, l.hold)
	g.renderNext(dst, l.next)
	g.renderStats(dst, l.hold.X, l.stats)
	g.renderOverlay(dst, l.board)
}

func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBoxColored(r, core.ColorGray)

	cells := g.eng.Cells()
	hidden := g.cfg.Board.Hidden
	visible := g.cfg.Board.Rows

	// Hidden rows fall above the interior and are clipped with it.
	inner := r.Inset(1)
	cellAt := func(row, col int) (x, y int, ok bool) {
		x, y = inner.X+col*2, inner.Y+row-hidden
		return x, y, inner.Contains(x, y)
	}

	for row := hidden; row < hidden+visible && row < len(cells); row++ {
		for col, k := range cells[row] {
			x, y, _ := cellAt(row, col)
			if k == engine.KindNone {
				dst.DrawTextColored(x, y, emptyGlyph, core.ColorDim)
				continue
			}
			dst.DrawTextColored(x, y, blockGlyph, KindColor(k))
		}
	}

	p, ok := g.eng.Piece()
	if !ok {
		return
	}
	if g.cfg.Preview.Ghost {
		for _, c := range g.eng.GhostCells() {
			if x, y, in := cellAt(c.Row, c.Col); in {
				dst.DrawTextColored(x, y, ghostGlyph, core.ColorGray)
			}
		}
	}
	for _, c := range p.OccupiedCells(0, 0) {
		if x, y, in := cellAt(c.Row, c.Col); in {
			dst.DrawTextColored(x, y, blockGlyph, KindColor(p.Kind))
		}
	}
}

// drawMini draws the top two rows of a spawn shape, which hold every
// piece's blocks.
func drawMini(dst *core.Screen, x, y int, k engine.Kind, c core.Color) {
	if k == engine.KindNone {
		return
	}
	m := engine.Shape(k)
	for row := 0; row < 2; row++ {
		for col := 0; col < engine.MatrixSize; col++ {
			if m[row][col] {
				dst.DrawTextColored(x+col*2, y+row, blockGlyph, c)
			}
		}
	}
}

func (g *Game) renderHold(dst *core.Screen, r core.Rect) {
	dst.DrawBoxColored(r, core.ColorGray)
	dst.DrawTextColored(r.X+2, r.Y, " HOLD ", core.ColorWhite)

	k := g.eng.HoldKind()
	color := KindColor(k)
	if g.eng.HoldLocked() {
		color = core.ColorGray
	}
	drawMini(dst, r.X+2, r.Y+1, k, color)
}

func (g *Game) renderNext(dst *core.Screen, r core.Rect) {
	if r.H == 0 {
		return
	}
	dst.DrawBoxColored(r, core.ColorGray)
	dst.DrawTextColored(r.X+2, r.Y, " NEXT ", core.ColorWhite)

	for i, k := range g.eng.Next((r.H - 1) / 3) {
		drawMini(dst, r.X+2, r.Y+1+i*3, k, KindColor(k))
	}
}

func (g *Game) renderStats(dst *core.Screen, x, y int) {
	stat := func(label, value string) {
		dst.DrawTextColored(x, y, label, core.ColorGray)
		dst.DrawTextColored(x, y+1, value, core.ColorBrightWhite)
		y += 2
	}

	stat("SCORE", strconv.Itoa(g.eng.Score()))
	stat("LINES", strconv.Itoa(g.eng.Lines()))
	stat("LEVEL", strconv.Itoa(g.eng.Level()))

	switch g.mode {
	case ModeSprint:
		stat("LEFT", strconv.Itoa(core.Max(0, SprintLines-g.eng.Lines())))
		stat("TIME", formatTime(g.ElapsedSeconds()))
	case ModeUltra:
		remaining := float64(UltraSeconds) - g.ElapsedSeconds()
		stat("REMAIN", formatTime(max(0, remaining)))
	default:
		if !g.difficulty.IsEnabled() {
			stat("SPEED", "FIXED")
		} else if next := g.difficulty.LinesToNextLevel(g.eng.Lines()); next > 0 {
			stat("NEXT LV", strconv.Itoa(next))
			dst.DrawTextColored(x, y, levelBar(g.difficulty.Progress(g.eng.Lines()), panelWidth-2), core.ColorCyan)
			y++
		}
		stat("TIME", formatTime(g.ElapsedSeconds()))
	}

	if c := g.eng.Combo(); c > 0 {
		dst.DrawTextColored(x, y, "COMBO x"+strconv.Itoa(c), core.ColorMagenta)
	}
	if g.flash != "" {
		dst.DrawTextColored(x, y+1, g.flash, core.ColorYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, r core.Rect) {
	center := func(row int, text string, c core.Color) {
		x := r.X + (r.W-len([]rune(text)))/2
		dst.DrawTextColored(x, row, text, c)
	}
	mid := r.Y + r.H/2

	switch {
	case g.won:
		center(mid-1, "COMPLETE!", core.ColorGreen)
		center(mid, formatTime(g.ElapsedSeconds()), core.ColorBrightWhite)
		center(mid+2, "R restart", core.ColorGray)
	case g.timeUp:
		center(mid-1, "TIME UP", core.ColorYellow)
		center(mid, strconv.Itoa(g.eng.Score()), core.ColorBrightWhite)
		center(mid+2, "R restart", core.ColorGray)
	case g.eng.GameOver():
		center(mid-1, "GAME OVER", core.ColorRed)
		center(mid, strconv.Itoa(g.eng.Score()), core.ColorBrightWhite)
		center(mid+2, "R restart", core.ColorGray)
	case g.paused:
		center(mid, "PAUSED", core.ColorYellow)
	}
}

// levelBar draws the fraction of the current level completed.
func levelBar(progress float64, width int) string {
	filled := core.Clamp(int(progress*float64(width)), 0, width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatTime renders seconds as m:ss.cc.
func formatTime(seconds float64) string {
	cs := int(seconds*100 + 0.5)
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}
