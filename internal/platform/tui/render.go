package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcadeloop/internal/core"
)

// ansiCodes holds the terminal color for each core.Color; "" leaves the
// cell unstyled. The 256-color entries degrade through the renderer's
// profile.
var ansiCodes = [core.ColorCount]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "130",
}

// Palette turns screen colors into styles for one output. SSH sessions
// each get their own so colors follow the client's terminal, not ours.
type Palette struct {
	styles [core.ColorCount]lipgloss.Style
}

// NewPalette builds a palette on r, or on the default renderer when r is nil.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{}
	for c, code := range ansiCodes {
		p.styles[c] = r.NewStyle()
		if code != "" {
			p.styles[c] = p.styles[c].Foreground(lipgloss.Color(code))
		}
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if !c.Valid() {
		c = core.ColorDefault
	}
	return p.styles[c]
}

// Render converts a screen to a styled string, one span per run of equal color.
func (p *Palette) Render(s *core.Screen) string {
	var sb, span strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	flush := func(c core.Color) {
		if span.Len() == 0 {
			return
		}
		sb.WriteString(p.style(c).Render(span.String()))
		span.Reset()
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var color core.Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if x > 0 && cell.Color != color {
				flush(color)
			}
			color = cell.Color
			span.WriteRune(cell.Rune)
		}
		flush(color)
	}
	return sb.String()
}
