package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcadeloop/internal/core"
)

func TestPaletteRenderKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColor(0, 1, "xyz", core.ColorBrown)
	s.SetColor(5, 1, '!', core.Color(200))

	// A renderer on a non-terminal has no colors, so only the text is left.
	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	if got, want := p.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestPaletteCoversColors(t *testing.T) {
	for c := core.ColorDefault; c < core.ColorCount; c++ {
		if c != core.ColorDefault && ansiCodes[c] == "" {
			t.Errorf("%s has no terminal color", c)
		}
	}
	if core.Color(200).Valid() || core.Color(200).String() != "invalid" {
		t.Error("colors past the palette should be invalid")
	}
}
