package ebitenhost

import "github.com/phanxgames/arbor"

// Label is an Object that draws a line of text inside its node's inner box,
// over an optional background. Set it as both the node's handler and its
// context so Font.MeasureFunc can size the node:
//
//	l := &ebitenhost.Label{Content: "Hello", Color: arbor.ColorWhite}
//	tree.SetContext(id, l)
//	scene.Register(id, l)
type Label struct {
	arbor.BaseObject
	Content    string
	Color      arbor.Color
	Background arbor.Color
}

// Text returns the label content.
func (l *Label) Text() string { return l.Content }

// Render draws the background and the text.
func (l *Label) Render(_ *arbor.Scene, rc arbor.RenderContext) {
	if l.Background.A > 0 {
		rc.Canvas.FillRect(rc.Placement.Rect, l.Background)
	}
	rc.Canvas.DrawText(l.Content, rc.Placement.Inner.X, rc.Placement.Inner.Y, l.Color)
}

// SetText changes the content and marks the node for re-measurement.
func (l *Label) SetText(tree *arbor.Tree, id arbor.NodeID, s string) {
	if s == l.Content {
		return
	}
	l.Content = s
	tree.MarkDirty(id)
}
