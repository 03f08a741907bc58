package core

// Color is the foreground color of a screen cell. Hosts map each value
// onto whatever their output supports; values past ColorCount draw as
// ColorDefault.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown

	ColorCount // number of palette entries
)

var colorNames = [ColorCount]string{
	"default", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-red", "bright-green", "bright-yellow", "bright-blue",
	"bright-magenta", "bright-cyan", "bright-white", "orange", "gray", "brown",
}

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool {
	return c < ColorCount
}

func (c Color) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return colorNames[c]
}
