package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/arbor"
)

// Canvas implements arbor.Canvas on an ebiten image. Clipping uses
// sub-images, so every primitive drawn while a clip is pushed is confined
// to it.
type Canvas struct {
	root  *ebiten.Image
	stack []*ebiten.Image
	font  *Font
}

// NewCanvas wraps dst. Text is drawn with font, or DefaultFont when nil.
func NewCanvas(dst *ebiten.Image, font *Font) *Canvas {
	if font == nil {
		font = DefaultFont()
	}
	return &Canvas{root: dst, font: font}
}

func (c *Canvas) target() *ebiten.Image {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1]
	}
	return c.root
}

// FillRect draws a solid rectangle.
func (c *Canvas) FillRect(r arbor.Rect, col arbor.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(c.target(), float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), toNRGBA(col), false)
}

// StrokeRect draws a rectangle outline of the given width.
func (c *Canvas) StrokeRect(r arbor.Rect, width float64, col arbor.Color) {
	if r.Empty() || width <= 0 {
		return
	}
	vector.StrokeRect(c.target(), float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), toNRGBA(col), false)
}

// DrawText draws s with its top-left corner at (x, y).
func (c *Canvas) DrawText(s string, x, y float64, col arbor.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toNRGBA(col))
	op.LineSpacing = c.font.lineHeight
	text.Draw(c.target(), s, c.font.face, op)
}

// PushClip restricts drawing to r intersected with the current clip.
func (c *Canvas) PushClip(r arbor.Rect) {
	cur := c.target()
	b := cur.Bounds()
	clip := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	).Intersect(b)
	c.stack = append(c.stack, cur.SubImage(clip).(*ebiten.Image))
}

// PopClip restores the previous clip.
func (c *Canvas) PopClip() {
	if n := len(c.stack); n > 0 {
		c.stack[n-1] = nil
		c.stack = c.stack[:n-1]
	}
}

func toNRGBA(c arbor.Color) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}
