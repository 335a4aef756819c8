package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw presents the framebuffer on a terminal screen using upper-half-block
// cells: each terminal row carries two framebuffer rows, the top pixel as
// the foreground of "▀" and the bottom pixel as the background. The
// framebuffer should therefore be twice as tall as the terminal area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to the color.Color interface, mapping
// fully transparent pixels to "no color".
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
