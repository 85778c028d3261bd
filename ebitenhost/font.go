package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/arbor"
)

// Font wraps an ebiten text/v2 face for measuring and drawing labels.
type Font struct {
	face       text.Face
	lineHeight float64
}

// NewFont wraps face. The line height is taken from the face metrics.
func NewFont(face text.Face) *Font {
	m := face.Metrics()
	return &Font{face: face, lineHeight: m.HAscent + m.HDescent + m.HLineGap}
}

var defaultFont *Font

// DefaultFont returns a font backed by the 7x13 bitmap face from
// golang.org/x/image. It needs no assets.
func DefaultFont() *Font {
	if defaultFont == nil {
		defaultFont = NewFont(text.NewGoXFace(basicfont.Face7x13))
	}
	return defaultFont
}

// Measure returns the size of s.
func (f *Font) Measure(s string) arbor.Size {
	w, h := text.Measure(s, f.face, f.lineHeight)
	return arbor.Size{Width: w, Height: h}
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lineHeight
}

// Texter is implemented by node contexts that carry text to measure.
type Texter interface {
	Text() string
}

// MeasureFunc returns an arbor.MeasureFunc that sizes leaves whose context
// (Tree.SetContext) is a string or a Texter. Other leaves measure zero.
// Known dimensions win over the measured size.
func (f *Font) MeasureFunc() arbor.MeasureFunc {
	return func(tree *arbor.Tree, id arbor.NodeID, known arbor.KnownDimensions, available arbor.AvailableSize) arbor.Size {
		var s string
		switch ctx := tree.Context(id).(type) {
		case string:
			s = ctx
		case Texter:
			s = ctx.Text()
		default:
			return arbor.Size{}
		}
		size := f.Measure(s)
		if known.HasWidth {
			size.Width = known.Width
		}
		if known.HasHeight {
			size.Height = known.Height
		}
		return size
	}
}
