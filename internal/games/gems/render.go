package gems

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	cellWidth = 3 // Marker, gem, marker
	hudHeight = 3
)

// Gem glyphs and colors per tile type. Shapes differ so the board stays
// readable without color.
var (
	gemRunes  = [match3.MaxVariations]rune{'●', '◆', '■', '★', '▲', '♥'}
	gemColors = [match3.MaxVariations]core.Color{
		core.ColorBrightRed,
		core.ColorBrightGreen,
		core.ColorBrightBlue,
		core.ColorBrightYellow,
		core.ColorBrightMagenta,
		core.ColorOrange,
	}
)

// boardSize returns the on-screen size of a board including its frame.
func boardSize(width, height int) (int, int) {
	return width*cellWidth + 2, height + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.engine.Width(), g.engine.Height())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	dst.DrawTextCenteredColor(boardY+boardH, g.Controls(), core.ColorGray)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightCyan)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Lv %d/%d  Goal %d  Moves %d", g.levelIndex+1, len(g.cfg.Levels), g.target, g.movesLeft)
	} else {
		info = fmt.Sprintf("Colors %d  Swaps %d", g.engine.Variations(), g.swaps)
	}
	dst.DrawText(boardX, 2, info)

	if g.cascadeLevel > 1 {
		combo := fmt.Sprintf("Combo x%d", g.cascadeLevel)
		dst.DrawTextColor(boardX+boardW-len(combo), 1, combo, core.ColorBrightYellow)
	}
}

// renderBoard draws the frame, the gems and the cursor markers. Row y = 0
// of the board is drawn at the bottom.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	width, height := g.engine.Width(), g.engine.Height()
	boardW, boardH := boardSize(width, height)

	frame := core.ColorWhite
	if g.phase == PhaseSelected {
		frame = core.ColorBrightYellow
	}
	dst.DrawBoxColor(core.NewRect(boardX, boardY, boardW, boardH), frame)

	for y := 0; y < height; y++ {
		sy := boardY + 1 + (height - 1 - y)
		for x := 0; x < width; x++ {
			sx := boardX + 1 + x*cellWidth
			t := g.engine.Tile(x, y)

			switch {
			case slices.Contains(g.flash, t):
				dst.SetColor(sx+1, sy, '✶', core.ColorBrightWhite)
			case t.Valid:
				dst.SetColor(sx+1, sy, gemRunes[t.Type], gemColors[t.Type])
			}

			switch {
			case t == g.selected:
				dst.SetColor(sx, sy, '<', core.ColorBrightYellow)
				dst.SetColor(sx+2, sy, '>', core.ColorBrightYellow)
			case x == g.cursorX && y == g.cursorY && !g.finished():
				dst.SetColor(sx, sy, '[', core.ColorBrightWhite)
				dst.SetColor(sx+2, sy, ']', core.ColorBrightWhite)
			case slices.Contains(g.hint, t):
				dst.SetColor(sx, sy, '·', core.ColorCyan)
				dst.SetColor(sx+2, sy, '·', core.ColorCyan)
			}
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.phase == PhaseLevelCleared:
		if g.levelIndex >= len(g.cfg.Levels)-1 {
			drawOverlay(dst, centerX, centerY, "LEVEL CLEAR!", "Final level complete!")
		} else {
			drawOverlay(dst, centerX, centerY, "LEVEL CLEAR!", fmt.Sprintf("Next: %s", g.cfg.Levels[g.levelIndex+1].Name))
		}
	case g.phase == PhaseWin:
		drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.phase == PhaseGameOver:
		drawOverlay(dst, centerX, centerY, "OUT OF MOVES", fmt.Sprintf("%d/%d points", g.score, g.target), "Press R to restart")
	}
}

// drawOverlay draws a centered boxed message.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(centerX, centerY, 0, 0).Centered(maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len([]rune(line))/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows move  Space pick  H hint  P pause"
}
