package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// MenuAction is a menu intent derived from a key.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

type gameBinding struct {
	key    key.Binding
	action core.Action
}

type menuBinding struct {
	key    key.Binding
	action MenuAction
}

func bind(keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...))
}

var quitKeys = bind("q", "ctrl+c")

// KeyMapper turns key messages into game and menu actions.
type KeyMapper struct {
	game []gameBinding
	menu []menuBinding
}

// NewKeyMapper returns the default bindings: arrows or WASD to move,
// vim keys in menus as well.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: []gameBinding{
			{bind("up", "w"), core.ActionUp},
			{bind("down", "s"), core.ActionDown},
			{bind("left", "a"), core.ActionLeft},
			{bind("right", "d"), core.ActionRight},
			{bind(" "), core.ActionSelect},
			{bind("enter"), core.ActionConfirm},
			{bind("esc", "b"), core.ActionBack},
			{bind("h"), core.ActionHint},
			{bind("p"), core.ActionPause},
			{bind("r"), core.ActionRestart},
		},
		menu: []menuBinding{
			{quitKeys, MenuActionQuit},
			{bind("up", "w", "k"), MenuActionUp},
			{bind("down", "s", "j"), MenuActionDown},
			{bind("left", "a"), MenuActionLeft},
			{bind("right", "d", "l"), MenuActionRight},
			{bind("enter", " "), MenuActionSelect},
			{bind("esc", "b"), MenuActionBack},
			{bind("tab"), MenuActionScoreboard},
		},
	}
}

// MapKey returns the game action of a key, ActionNone when unbound.
// isQuit is set for the quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, quitKeys) {
		return core.ActionQuit, true
	}
	for _, b := range km.game {
		if key.Matches(msg, b.key) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in frame and reports a quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.key) {
			return b.action
		}
	}
	return MenuActionNone
}
