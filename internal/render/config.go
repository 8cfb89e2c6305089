package render

import "image/color"

// Global render configuration.
var (
	// Foreground is used for hint text, Background for everything not lit.
	Foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Background = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}

	// WindowTitle names the full-screen window on windowed backends.
	WindowTitle = "Stuck Pixel Repair"
)
