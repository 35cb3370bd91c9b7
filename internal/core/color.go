package core

// Color is a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
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
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorBrown
	ColorGray
)

var ansiCodes = [...]string{
	ColorDefault:      "",
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorBlue:         "4",
	ColorMagenta:      "5",
	ColorCyan:         "6",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightBlue:   "12",
	ColorBrightCyan:   "14",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
	ColorBrown:        "130",
	ColorGray:         "245",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}
