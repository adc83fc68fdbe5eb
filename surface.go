package main

import (
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

// canvas collects the lit cells of a frame as rectangles. pixel's origin is
// bottom-left, so rows are flipped against the framebuffer.
type canvas struct {
	imd    *imdraw.IMDraw
	height int
	bg     color.Color
	fg     color.Color
}

func newCanvas(height int) *canvas {
	return &canvas{
		imd:    imdraw.New(nil),
		height: height,
		bg:     colornames.Black,
		fg:     colornames.White,
	}
}

func (c *canvas) Clear() {
	c.imd.Clear()
}

func (c *canvas) FillRect(x, y, w, h int) {
	c.imd.Color = c.fg
	c.imd.Push(
		pixel.V(float64(x), float64(c.height-y-h)),
		pixel.V(float64(x+w), float64(c.height-y)),
	)
	c.imd.Rectangle(0)
}

func (c *canvas) Draw(win *pixelgl.Window) {
	win.Clear(c.bg)
	c.imd.Draw(win)
}
