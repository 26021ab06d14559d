package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// MaxSelectableLevel is the highest start level offered by the picker.
const MaxSelectableLevel = 15

// LevelSelectModel lets users choose the starting level of a marathon.
type LevelSelectModel struct {
	cursor    int // 0-indexed level
	tickRate  int
	width     int
	height    int
	keyMapper *KeyMapper
	level     int
	choosing  bool
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level picker with the cursor on startLevel.
func NewLevelSelectModel(width, height, tickRate, startLevel int) LevelSelectModel {
	return LevelSelectModel{
		cursor:    core.Clamp(startLevel-1, 0, MaxSelectableLevel-1),
		tickRate:  tickRate,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown, MenuActionRight:
		if m.cursor < MaxSelectableLevel-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.level = m.cursor + 1
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list with the gravity of each level.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("START LEVEL", m.width))
	b.WriteString("\n\n")

	for i := 0; i < MaxSelectableLevel; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		frames := engine.LevelGravityFrames(i+1, m.tickRate)
		line := fmt.Sprintf("%sLevel %2d  %3d ticks/row", cursor, i+1, frames)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level, or 0 while still choosing.
func (m LevelSelectModel) Selected() int {
	if m.choosing {
		return 0
	}
	return m.level
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker. It returns 0 when the user backs out.
func RunLevelSelector(cfg core.RuntimeConfig, startLevel int) (int, error) {
	model := NewLevelSelectModel(cfg.ScreenW, cfg.ScreenH, cfg.TickRate, startLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return 0, nil
	}

	return m.Selected(), nil
}
