package styles

import (
	"fmt"
	"strconv"
	"strings"
)

// ANSIReset resets all terminal attributes.
const ANSIReset = "\x1b[0m"

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// fallbackGray is returned for unparseable hex strings.
var fallbackGray = RGB{128, 128, 128}

// HexToRGB parses "#RRGGBB" (hash optional). Invalid input yields gray.
func HexToRGB(hex string) RGB {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return fallbackGray
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallbackGray
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ToANSI returns the truecolor foreground escape for c.
func (c RGB) ToANSI() string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// Luminance returns the relative luminance in [0, 1].
func (c RGB) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// IsDark reports whether light text reads better on c.
func (c RGB) IsDark() bool {
	return c.Luminance() < 0.6
}
