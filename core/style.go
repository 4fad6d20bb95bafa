package core

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// RGB is a 24-bit color. Components are not range checked; values outside
// 0-255 are passed to the terminal as given.
type RGB struct {
	R, G, B int
}

// Style is the color and emphasis annotation carried by a message.
// The zero Style means "undecorated".
type Style struct {
	Fg        color.Attribute
	Bg        color.Attribute
	FgRGB     *RGB
	BgRGB     *RGB
	Bold      bool
	Italic    bool
	Underline bool
}

// IsZero reports whether the style carries no decoration.
func (s Style) IsZero() bool {
	return s.Fg == 0 && s.Bg == 0 && s.FgRGB == nil && s.BgRGB == nil &&
		!s.Bold && !s.Italic && !s.Underline
}

// Color builds a fatih/color value for the style. Colors are forced on;
// whether to decorate at all is the formatter's decision.
func (s Style) Color() *color.Color {
	c := color.New()
	if s.Bold {
		c.Add(color.Bold)
	}
	if s.Italic {
		c.Add(color.Italic)
	}
	if s.Underline {
		c.Add(color.Underline)
	}
	switch {
	case s.FgRGB != nil:
		c.AddRGB(s.FgRGB.R, s.FgRGB.G, s.FgRGB.B)
	case s.Fg != 0:
		c.Add(s.Fg)
	}
	switch {
	case s.BgRGB != nil:
		c.AddBgRGB(s.BgRGB.R, s.BgRGB.G, s.BgRGB.B)
	case s.Bg != 0:
		c.Add(s.Bg)
	}
	c.EnableColor()
	return c
}

// Apply wraps text in the style's escape sequences.
func (s Style) Apply(text string) string {
	if s.IsZero() {
		return text
	}
	return s.Color().Sprint(text)
}

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"gray":    color.FgHiBlack,
	"grey":    color.FgHiBlack,
}

// ColorByName returns the foreground attribute for a basic color name.
// A "bright" or "hi" prefix selects the high-intensity variant.
func ColorByName(name string) (color.Attribute, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	bright := false
	for _, p := range []string{"bright", "hi"} {
		if rest, ok := strings.CutPrefix(name, p); ok {
			name = strings.TrimLeft(rest, " -_")
			bright = true
			break
		}
	}
	attr, ok := colorNames[name]
	if !ok {
		return 0, false
	}
	if bright && attr != color.FgHiBlack {
		attr += color.FgHiBlack - color.FgBlack
	}
	return attr, true
}

// ParseHex parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

// LevelStyle is the default decoration used for level tags.
func LevelStyle(l Level) Style {
	switch l {
	case TraceLevel:
		return Style{Fg: color.FgHiBlack}
	case DebugLevel:
		return Style{Fg: color.FgCyan}
	case InfoLevel:
		return Style{Fg: color.FgGreen}
	case WarnLevel:
		return Style{Fg: color.FgYellow}
	case ErrorLevel:
		return Style{Fg: color.FgRed}
	case CriticalLevel:
		return Style{Fg: color.FgHiRed, Bold: true}
	default:
		return Style{}
	}
}
