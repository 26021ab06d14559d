package engine

import "math/rand"

// Phase is the engine state machine position.
type Phase string

const (
	PhaseSpawning  Phase = "spawning"
	PhaseFalling   Phase = "falling"
	PhaseLocking   Phase = "locking"
	PhaseLineClear Phase = "line_clear"
	PhaseGameOver  Phase = "game_over"
)

// Engine runs one Tetris session. It is single-writer and synchronous:
// callers issue intents and call Tick once per frame.
type Engine struct {
	cfg  Config
	seed int64
	rng  *rand.Rand

	grid  *Grid
	bag   *Bag
	piece Piece
	phase Phase

	hold       Kind
	holdLocked bool

	// Timing counters, all advanced by Tick.
	tick           uint64
	gravityCounter int
	lockCounter    int
	lockResets     int
	clearTimer     int
	dasCounter     int
	arrCounter     int
	shiftDir       Direction
	leftHeld       bool
	rightHeld      bool

	score      int
	lines      int
	combo      int
	backToBack bool
	overReason string

	events    []Event
	recording bool
	frames    []Frame
}

// New creates an engine and spawns the first piece.
func New(cfg Config, seed int64) *Engine {
	e := &Engine{}
	e.Reset(cfg, seed)
	return e
}

// Reset discards the whole session and starts a new one.
func (e *Engine) Reset(cfg Config, seed int64) {
	cfg = cfg.normalized()
	recording := e.recording

	*e = Engine{
		cfg:       cfg,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		combo:     comboInactive,
		recording: recording,
	}
	e.grid = NewGrid(cfg.Cols, cfg.VisibleRows, cfg.HiddenRows)
	e.bag = NewBag(e.rng)
	e.spawnNext()
}

// spawnOrigin returns the matrix origin of a fresh piece: the two bottom
// hidden rows, horizontally centered.
func (e *Engine) spawnOrigin() (row, col int) {
	return e.cfg.HiddenRows - 2, e.cfg.Cols/2 - 2
}

func (e *Engine) spawnNext() {
	e.spawn(e.bag.Next())
}

// spawn places a fresh piece of kind k. A collision ends the game.
func (e *Engine) spawn(k Kind) {
	e.phase = PhaseSpawning
	row, col := e.spawnOrigin()
	e.piece = NewPiece(k, row, col)
	e.gravityCounter = 0
	e.lockCounter = 0
	e.lockResets = 0
	e.holdLocked = false

	if !e.piece.Fits(e.grid) {
		e.gameOver(ReasonSpawnCollision)
		return
	}
	e.phase = PhaseFalling
	e.emit(Event{Type: EventSpawn, Kind: k})
}

func (e *Engine) gameOver(reason string) {
	e.phase = PhaseGameOver
	e.overReason = reason
	e.shiftDir = DirNone
	e.emit(Event{Type: EventGameOver, Reason: reason})
}

// active reports whether a piece accepts moves and rotations.
func (e *Engine) active() bool {
	return e.phase == PhaseFalling
}

// resting reports whether the active piece is blocked from falling.
func (e *Engine) resting() bool {
	return !e.grid.CanPlace(e.piece.Matrix, e.piece.Row+1, e.piece.Col)
}

// resetLock restarts the lock delay after a successful move or rotation.
func (e *Engine) resetLock() {
	if e.cfg.MaxLockResets > 0 && e.resting() {
		if e.lockResets >= e.cfg.MaxLockResets {
			return
		}
		e.lockResets++
	}
	e.lockCounter = 0
}

// shift moves the active piece one column; it does not record an intent.
func (e *Engine) shift(dir Direction) bool {
	if !e.active() {
		return false
	}
	if !e.grid.CanPlace(e.piece.Matrix, e.piece.Row, e.piece.Col+int(dir)) {
		return false
	}
	e.piece.Col += int(dir)
	e.resetLock()
	return true
}

// MoveLeft shifts the piece one column left.
func (e *Engine) MoveLeft() bool {
	e.record(IntentMoveLeft)
	return e.shift(DirLeft)
}

// MoveRight shifts the piece one column right.
func (e *Engine) MoveRight() bool {
	e.record(IntentMoveRight)
	return e.shift(DirRight)
}

// SoftDropStep moves the piece down one row and restarts the lock delay.
func (e *Engine) SoftDropStep() bool {
	e.record(IntentSoftDrop)
	if !e.active() || e.resting() {
		return false
	}
	e.piece.Row++
	e.lockCounter = 0
	e.score += e.cfg.Scoring.SoftDropPoints
	return true
}

// HardDrop moves the piece to its drop row and locks it at once.
func (e *Engine) HardDrop() bool {
	e.record(IntentHardDrop)
	if !e.active() {
		return false
	}
	target := e.piece.DropRow(e.grid)
	e.score += (target - e.piece.Row) * e.cfg.Scoring.HardDropPoints
	e.piece.Row = target
	e.lock()
	return true
}

// RotateCW rotates clockwise with wall kicks.
func (e *Engine) RotateCW() bool {
	e.record(IntentRotateCW)
	return e.rotate(CW)
}

// RotateCCW rotates counter-clockwise with wall kicks.
func (e *Engine) RotateCCW() bool {
	e.record(IntentRotateCCW)
	return e.rotate(CCW)
}

func (e *Engine) rotate(dir RotateDir) bool {
	if !e.active() {
		return false
	}
	if _, ok := e.piece.Rotate(e.grid, dir); !ok {
		return false
	}
	e.resetLock()
	return true
}

// Hold stores the active kind. The first hold spawns from the bag, later
// holds swap with the stored kind. Only one hold is allowed per piece.
func (e *Engine) Hold() bool {
	e.record(IntentHold)
	if !e.active() || e.holdLocked {
		return false
	}
	current := e.piece.Kind
	e.emit(Event{Type: EventHold, Kind: current})
	if e.hold == KindNone {
		e.hold = current
		e.spawnNext()
	} else {
		swap := e.hold
		e.hold = current
		e.spawn(swap)
	}
	e.holdLocked = true
	return true
}

// Tick advances gravity, lock delay, line clear delay and auto-shift by one frame.
// It returns false once the game is over.
func (e *Engine) Tick() bool {
	if e.phase == PhaseGameOver {
		return false
	}
	e.tick++

	if e.phase == PhaseLineClear {
		e.clearTimer--
		if e.clearTimer <= 0 {
			e.spawnNext()
		}
		return e.phase != PhaseGameOver
	}

	e.stepShift()

	if e.resting() {
		e.gravityCounter = 0
		e.lockCounter++
		if e.lockCounter >= e.cfg.LockDelay {
			e.lock()
		}
		return e.phase != PhaseGameOver
	}

	e.gravityCounter++
	if e.gravityCounter >= e.GravityThreshold() {
		e.gravityCounter = 0
		e.piece.Row++
		e.lockCounter = 0
	}
	return true
}

// lock writes the active piece into the grid, clears lines, scores and
// either spawns the next piece or ends the game on overflow.
func (e *Engine) lock() {
	e.phase = PhaseLocking
	locked := e.piece
	e.grid.Place(locked.Matrix, locked.Row, locked.Col, locked.Kind)
	e.emit(Event{Type: EventLock, Kind: locked.Kind})

	cleared := e.grid.ClearLines()
	chained := cleared >= 4 && e.backToBack
	points := e.award(cleared)
	if cleared > 0 {
		e.phase = PhaseLineClear
		e.emit(Event{
			Type:       EventLineClear,
			Kind:       locked.Kind,
			Lines:      cleared,
			Points:     points,
			Combo:      e.combo,
			BackToBack: chained,
		})
	}

	if e.grid.IsOverflowed() {
		e.gameOver(ReasonOverflow)
		return
	}
	if cleared > 0 && e.cfg.ClearDelay > 0 {
		e.clearTimer = e.cfg.ClearDelay
		return
	}
	e.spawnNext()
}

// Config returns the normalized session configuration.
func (e *Engine) Config() Config { return e.cfg }

// Seed returns the seed the bag was shuffled with.
func (e *Engine) Seed() int64 { return e.seed }

// Phase returns the state machine position.
func (e *Engine) Phase() Phase { return e.phase }

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool { return e.phase == PhaseGameOver }

// GameOverReason returns why the game ended, or "".
func (e *Engine) GameOverReason() string { return e.overReason }

// CurrentTick returns how many ticks have elapsed.
func (e *Engine) CurrentTick() uint64 { return e.tick }

// Piece returns a copy of the active piece. ok is false while no piece is
// in play (line clear delay or game over).
func (e *Engine) Piece() (p Piece, ok bool) {
	return e.piece, e.active()
}

// GhostRow returns the row the active piece would land at if hard-dropped.
func (e *Engine) GhostRow() int {
	return e.piece.DropRow(e.grid)
}

// GhostCells returns the board cells of the ghost piece.
func (e *Engine) GhostCells() []Cell {
	ghost := e.piece
	ghost.Row = e.GhostRow()
	return ghost.OccupiedCells(0, 0)
}

// HoldKind returns the stored kind, KindNone when empty.
func (e *Engine) HoldKind() Kind { return e.hold }

// HoldLocked reports whether hold is spent for the active piece.
func (e *Engine) HoldLocked() bool { return e.holdLocked }

// Next previews the next n kinds.
func (e *Engine) Next(n int) []Kind { return e.bag.Peek(n) }

// Grid returns a copy of the board.
func (e *Engine) Grid() *Grid { return e.grid.Clone() }

// Cells returns the locked board contents row by row.
func (e *Engine) Cells() [][]Kind { return e.grid.Cells() }

// Score returns the points scored so far.
func (e *Engine) Score() int { return e.score }

// Lines returns the total cleared lines.
func (e *Engine) Lines() int { return e.lines }

// Combo returns the current combo count, -1 when no streak is running.
func (e *Engine) Combo() int { return e.combo }

// BackToBack reports whether the last clear was a tetris.
func (e *Engine) BackToBack() bool { return e.backToBack }

// LockCounter returns the resting ticks accumulated by the active piece.
func (e *Engine) LockCounter() int { return e.lockCounter }
