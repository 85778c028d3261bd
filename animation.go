package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween is advanced by Scene.Update until Finished reports true.
type Tween interface {
	Update(dt float32)
	Finished() bool
}

// TweenGroup animates two float64 components of a node's offset or scroll
// simultaneously. Neither property invalidates layout, so a running tween
// never triggers re-layout. If the target node is removed, the group stops
// immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	tree   *Tree
	target NodeID
	apply  func(t *Tree, id NodeID, v Vec2)
	Done   bool
}

// Update advances both tweens by dt seconds and writes the values to the
// target node.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.tree.Contains(g.target) {
		g.Done = true
		return
	}
	x, doneX := g.tweens[0].Update(dt)
	y, doneY := g.tweens[1].Update(dt)
	g.apply(g.tree, g.target, Vec2{X: float64(x), Y: float64(y)})
	g.Done = doneX && doneY
}

// Finished reports whether the group has completed.
func (g *TweenGroup) Finished() bool {
	return g.Done
}

func newTweenGroup(t *Tree, id NodeID, from, to Vec2, duration float32, fn ease.TweenFunc, apply func(*Tree, NodeID, Vec2)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{tree: t, target: id, apply: apply}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	return g
}

// TweenOffset creates a TweenGroup that moves the node's offset to the given
// value over duration seconds.
func TweenOffset(t *Tree, id NodeID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(t, id, t.Offset(id), to, duration, fn, (*Tree).SetOffset)
}

// TweenScroll creates a TweenGroup that scrolls a container to the given
// position over duration seconds. The target is clamped to the scrollable
// range when the tween is created.
func TweenScroll(t *Tree, id NodeID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	lim := t.MaxScroll(id)
	to = Vec2{X: clamp(to.X, 0, lim.X), Y: clamp(to.Y, 0, lim.Y)}
	return newTweenGroup(t, id, t.Scroll(id), to, duration, fn, (*Tree).SetScroll)
}

// ScrollTo animates a scroll container of this scene and registers the
// tween with Animate.
func (s *Scene) ScrollTo(id NodeID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := TweenScroll(s.tree, id, to, duration, fn)
	s.Animate(g)
	return g
}
