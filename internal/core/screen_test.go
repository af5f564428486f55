package core

import (
	"strings"
	"testing"
)

func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenSetClipsAndClears(t *testing.T) {
	s := NewScreen(3, 3)

	s.Set(1, 1, 'x')
	s.SetColor(2, 0, 'y', ColorRed)
	s.Set(-1, 0, 'z')
	s.Set(3, 0, 'z')
	s.Set(0, 3, 'z')

	if got := s.GetCell(2, 0); got != (Cell{Rune: 'y', Color: ColorRed}) {
		t.Errorf("GetCell(2, 0) = %+v", got)
	}
	if got := s.GetCell(5, 5); got != blankCell {
		t.Errorf("GetCell outside = %+v, want blank", got)
	}
	if got := rows(s); got[0] != "  y" || got[1] != " x " || got[2] != "   " {
		t.Errorf("rows = %q", got)
	}

	s.Clear()
	if strings.TrimSpace(s.String()) != "" || s.GetCell(2, 0).Color != ColorDefault {
		t.Error("Clear() should blank every cell")
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want string
	}{
		{"plain", func(s *Screen) { s.DrawText(1, 0, "abc") }, " abc    "},
		{"clipped", func(s *Screen) { s.DrawText(6, 0, "abc") }, "      ab"},
		{"negative start", func(s *Screen) { s.DrawText(-2, 0, "abc") }, "c       "},
		{"centered", func(s *Screen) { s.DrawTextCentered(0, "ab") }, "   ab   "},
		{"unicode", func(s *Screen) { s.DrawText(0, 0, "●◆■") }, "●◆■     "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			tc.draw(s)
			if got := s.Row(0); got != tc.want {
				t.Errorf("Row(0) = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScreenTextColor(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCenteredColor(0, "gem", ColorOrange)

	for x := 3; x < 6; x++ {
		if c := s.GetCell(x, 0).Color; c != ColorOrange {
			t.Errorf("cell %d color = %v, want orange", x, c)
		}
	}
	if s.GetCell(2, 0).Color != ColorDefault {
		t.Error("text color leaked outside the text")
	}
}

func TestScreenBoxes(t *testing.T) {
	s := NewScreen(6, 4)
	s.FillRect(NewRect(0, 0, 6, 4), '.')
	s.DrawBoxColor(NewRect(1, 0, 4, 3), ColorCyan)

	want := []string{
		".┌──┐.",
		".│..│.",
		".└──┘.",
		"......",
	}
	got := rows(s)
	for y := range want {
		if got[y] != want[y] {
			t.Errorf("row %d = %q, want %q", y, got[y], want[y])
		}
	}
	if s.GetCell(1, 0).Color != ColorCyan || s.GetCell(2, 1).Color != ColorDefault {
		t.Error("only the outline should be colored")
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.SetColor(1, 1, 'x', ColorGreen)

	s.Resize(2, 3)
	if got := rows(s); got[0] != "ab" || got[1] != " x" || got[2] != "  " {
		t.Errorf("after shrink: %q", got)
	}
	if s.GetCell(1, 1).Color != ColorGreen {
		t.Error("resize should keep colors")
	}

	s.Resize(4, 1)
	if got := s.String(); got != "ab  " {
		t.Errorf("after grow: %q", got)
	}

	if s.Row(-1) != "    " || s.Row(1) != "    " {
		t.Error("rows outside the screen should be blank")
	}
}
