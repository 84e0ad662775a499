package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	Foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Background = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1920
	CanvasHeight = 1080

	// Vertical margin kept free above and below a presented image.
	CanvasMargin = 100

	// Synthesized keycaps are square; the glyph is rendered at the full
	// canvas height and shifted up by KeycapYBias pixels.
	KeycapSize  = 500
	KeycapYBias = 50
)
