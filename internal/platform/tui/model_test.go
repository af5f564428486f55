package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// scriptedGame reports a fixed list of events, one entry per tick.
type scriptedGame struct {
	events [][]core.Event
	steps  int
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) {}
func (g *scriptedGame) Render(dst *core.Screen) { dst.Clear() }
func (g *scriptedGame) State() core.GameState { return core.GameState{} }
func (g *scriptedGame) Step(core.InputFrame) core.StepResult {
	var events []core.Event
	if g.steps < len(g.events) {
		events = g.events[g.steps]
	}
	g.steps++
	return core.StepResult{Events: events}
}

func TestModelShowsEventStatus(t *testing.T) {
	game := &scriptedGame{events: [][]core.Event{
		{{Kind: core.EventSwapAccepted, Value: 3}},
		{{Kind: core.EventSwapRejected}},
		nil,
		nil,
		nil,
		{{Kind: core.EventCascade, Value: 1}},
		{{Kind: core.EventCascade, Value: 3}},
		{{Kind: core.EventCascade, Value: 4}, {Kind: core.EventLevelCleared, Value: 2}},
	}}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 3, Seed: 1}
	m := NewModel(game, nil, cfg)

	want := []string{"", "no match", "no match", "no match", "", "", "combo x3", "level 2 cleared"}
	for i, w := range want {
		m = press(t, m, tick).(Model)
		if m.Status() != w {
			t.Errorf("tick %d: status = %q, want %q", i+1, m.Status(), w)
		}
	}

	m.View()
	if row := m.screen.Row(cfg.ScreenH - 1); !strings.HasPrefix(row, "level 2 cleared") {
		t.Errorf("last row = %q, want the status", row)
	}
}

func TestEventStatus(t *testing.T) {
	tests := []struct {
		event core.Event
		want  string
	}{
		{core.Event{Kind: core.EventSwapRejected}, "no match"},
		{core.Event{Kind: core.EventSwapAccepted, Value: 5}, ""},
		{core.Event{Kind: core.EventCascade, Value: 1}, ""},
		{core.Event{Kind: core.EventCascade, Value: 2}, "combo x2"},
		{core.Event{Kind: core.EventLevelCleared, Value: 3}, "level 3 cleared"},
	}

	for _, tt := range tests {
		if got := eventStatus(tt.event); got != tt.want {
			t.Errorf("eventStatus(%+v) = %q, want %q", tt.event, got, tt.want)
		}
	}
}
