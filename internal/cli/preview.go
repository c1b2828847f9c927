package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/swatchkit/swatch/internal/extract"
)

// ANSI escape codes for truecolor terminal previews.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
)

// colorPreview returns a solid colour block of the given width with
// the hex code overlaid. The overlay text is black or white, chosen
// by the colour's Lab lightness so it stays readable on any swatch.
func colorPreview(c extract.ColorResult, width int) string {
	if width <= 0 {
		width = 8
	}

	text := c.Hex
	if len(text) > width {
		text = strings.Repeat(" ", width)
	} else if len(text) < width {
		pad := (width - len(text)) / 2
		text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	fg := "0;0;0"
	if lightness(c) < 0.5 {
		fg = "255;255;255"
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + ansiFgPrefix + fg + ansiSuffix + text + ansiReset
}

// lightness returns the CIE Lab lightness of a colour in [0,1].
func lightness(c extract.ColorResult) float64 {
	l, _, _ := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Lab()
	return l
}

// stdoutSupportsPreview reports whether stdout is a terminal that can
// be expected to render ANSI colour sequences.
func stdoutSupportsPreview() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
