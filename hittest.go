package arbor

// HitTest returns the path from the root to the deepest node whose border
// box contains (x, y). The last element is the topmost node. The result is
// empty when the root itself is missed.
//
// A node that misses excludes its whole subtree. When several siblings
// contain the point only the last one, which paints on top, is descended
// into.
func (t *Tree) HitTest(x, y float64) []NodeID {
	return t.AppendHitTest(nil, x, y)
}

// AppendHitTest is HitTest reusing buf.
func (t *Tree) AppendHitTest(buf []NodeID, x, y float64) []NodeID {
	if !finite(x) || !finite(y) {
		return buf
	}
	return t.hitNode(buf, t.root, Vec2{}, x, y)
}

// Topmost returns the last node of the hit path at (x, y).
func (t *Tree) Topmost(x, y float64) (NodeID, bool) {
	path := t.HitTest(x, y)
	if len(path) == 0 {
		return NodeID{}, false
	}
	return path[len(path)-1], true
}

func (t *Tree) hitNode(buf []NodeID, id NodeID, origin Vec2, x, y float64) []NodeID {
	s := t.slot(id)
	if s.style.Display == DisplayNone {
		return buf
	}
	pos := origin.Add(s.layout.Location).Add(s.offset)
	r := Rect{X: pos.X, Y: pos.Y, Width: s.layout.Size.Width, Height: s.layout.Size.Height}
	if !r.Contains(x, y) {
		return buf
	}
	buf = append(buf, id)

	childOrigin := pos.Sub(s.scroll)
	var top NodeID
	for _, c := range s.children {
		if t.containsAt(c, childOrigin, x, y) {
			top = c
		}
	}
	if top.IsZero() {
		return buf
	}
	return t.hitNode(buf, top, childOrigin, x, y)
}

func (t *Tree) containsAt(id NodeID, origin Vec2, x, y float64) bool {
	s := t.slot(id)
	if s.style.Display == DisplayNone {
		return false
	}
	pos := origin.Add(s.layout.Location).Add(s.offset)
	r := Rect{X: pos.X, Y: pos.Y, Width: s.layout.Size.Width, Height: s.layout.Size.Height}
	return r.Contains(x, y)
}
