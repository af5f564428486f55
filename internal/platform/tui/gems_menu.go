package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/gems"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// GemsMode represents the selected game mode.
type GemsMode int

const (
	GemsModeCampaign GemsMode = iota
	GemsModeEndless
)

// GameID returns the registry ID that plays this mode.
func (m GemsMode) GameID() string {
	if m == GemsModeEndless {
		return "gems_endless"
	}
	return "gems"
}

// gemsDifficulties are cycled with left/right on the mode screen.
var gemsDifficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// GemsSelection holds the user's selection from the Gem Swap menu.
type GemsSelection struct {
	Mode       GemsMode
	Level      int // 0 = start from beginning, otherwise 1-based level
	Difficulty config.DifficultyPreset
}

// configurable is implemented by games that take a start level and a
// difficulty preset per instance.
type configurable interface {
	Configure(startLevel int, preset string) error
}

// NewGame creates the game for this selection.
func (s GemsSelection) NewGame() (registry.Game, error) {
	game, err := registry.Create(s.Mode.GameID())
	if err != nil {
		return nil, err
	}
	if c, ok := game.(configurable); ok {
		if err := c.Configure(s.Level, string(s.Difficulty)); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// Rows of the mode screen.
const (
	rowCampaign = iota
	rowEndless
	rowLevels
	modeRows
)

// GemsModeModel picks mode, difficulty and start level before a Gem Swap
// game. Left/right cycle the difficulty on the mode screen.
type GemsModeModel struct {
	row           int
	difficulty    int
	level         int
	inLevelSelect bool
	levels        []config.GemsLevel
	width         int
	keyMapper     *KeyMapper
	selection     *GemsSelection
	quitting      bool
	back          bool
}

// NewGemsModeModel opens on Campaign at normal difficulty.
func NewGemsModeModel(width, _ int) GemsModeModel {
	return GemsModeModel{
		difficulty: slices.Index(gemsDifficulties, config.DifficultyNormal),
		levels:     gems.Levels(),
		width:      width,
		keyMapper:  NewKeyMapper(),
	}
}

func (m GemsModeModel) Init() tea.Cmd {
	return nil
}

func (m GemsModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if action == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.inLevelSelect {
			return m.levelKey(action)
		}
		return m.modeKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m GemsModeModel) modeKey(action MenuAction) (tea.Model, tea.Cmd) {
	n := len(gemsDifficulties)
	switch action {
	case MenuActionUp:
		m.row = max(m.row-1, 0)
	case MenuActionDown:
		m.row = min(m.row+1, modeRows-1)
	case MenuActionLeft:
		m.difficulty = (m.difficulty + n - 1) % n
	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % n
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionSelect:
		switch m.row {
		case rowCampaign:
			return m.choose(GemsModeCampaign, 0)
		case rowEndless:
			return m.choose(GemsModeEndless, 0)
		case rowLevels:
			m.inLevelSelect = len(m.levels) > 0
			m.level = 0
		}
	}
	return m, nil
}

func (m GemsModeModel) levelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		m.level = max(m.level-1, 0)
	case MenuActionDown:
		m.level = min(m.level+1, len(m.levels)-1)
	case MenuActionBack:
		m.inLevelSelect = false
	case MenuActionSelect:
		return m.choose(GemsModeCampaign, m.level+1)
	}
	return m, nil
}

func (m GemsModeModel) choose(mode GemsMode, level int) (tea.Model, tea.Cmd) {
	m.selection = &GemsSelection{Mode: mode, Level: level, Difficulty: gemsDifficulties[m.difficulty]}
	return m, tea.Quit
}

func (m GemsModeModel) View() string {
	if m.quitting {
		return ""
	}

	var (
		title, footer string
		items         []string
		cursor        int
	)
	if m.inLevelSelect {
		title, footer, cursor = "SELECT LEVEL", "Enter: Start  |  Esc: Back  |  Q: Quit", m.level
		for i, lvl := range m.levels {
			items = append(items, fmt.Sprintf("%2d. %-12s %dx%d  %d pts in %d moves",
				i+1, lvl.Name, lvl.Width, lvl.Height, lvl.Target, lvl.Moves))
		}
	} else {
		title, footer, cursor = "G E M   S W A P", "Enter: Select  |  Left/Right: Difficulty  |  Esc: Back  |  Q: Quit", m.row
		items = []string{
			fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
			"Endless",
			"Select level...",
		}
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(centerText(s, m.width))
		b.WriteByte('\n')
	}
	line("")
	line(title)
	line("")
	for i, item := range items {
		if i == cursor {
			line("> " + item)
		} else {
			line("  " + item)
		}
	}
	line("")
	if !m.inLevelSelect {
		line(fmt.Sprintf("Difficulty: < %s >", gemsDifficulties[m.difficulty]))
		line("")
	}
	line(footer)
	return b.String()
}

// Selected returns the choice, nil until one is made.
func (m GemsModeModel) Selected() *GemsSelection {
	return m.selection
}

func (m GemsModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack reports whether the user left for the main menu.
func (m GemsModeModel) WantsBack() bool {
	return m.back
}

// RunGemsModeSelector shows the selector in its own program. It returns
// nil when the user backed out or quit.
func RunGemsModeSelector(cfg core.RuntimeConfig) (*GemsSelection, error) {
	final, err := tea.NewProgram(NewGemsModeModel(cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(GemsModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
