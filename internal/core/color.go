package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
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
	ColorBrightCyan
	ColorOrange
	ColorBrown
	ColorGray
)

// Semantic colors shared by the games' HUDs.
const (
	ColorHUD     = ColorBrightCyan
	ColorWarning = ColorBrightRed
	ColorGood    = ColorBrightGreen
	ColorMuted   = ColorGray
)
