package arbor

import "math"

// Placement is the resolved absolute geometry of a node.
type Placement struct {
	ID NodeID

	// Rect is the border box in absolute coordinates, offsets included.
	Rect Rect
	// Inner is Rect inset by border and padding.
	Inner Rect
	// Content starts at the inner origin (shifted by the node's own scroll)
	// and has the solver's content size. It exceeds Inner when children
	// overflow.
	Content Rect

	Border  Edges
	Padding Edges
}

// --- Offsets ---

// SetOffset sets a render/hit-test translation applied to the node and its
// subtree. It does not invalidate layout.
func (t *Tree) SetOffset(id NodeID, v Vec2) {
	t.slot(id).offset = v
}

// Offset returns the node's translation.
func (t *Tree) Offset(id NodeID) Vec2 {
	return t.slot(id).offset
}

// SetScroll sets the scroll position of a container; its descendants are
// translated by -v. It does not invalidate layout.
func (t *Tree) SetScroll(id NodeID, v Vec2) {
	t.slot(id).scroll = v
}

// Scroll returns the container's scroll position.
func (t *Tree) Scroll(id NodeID) Vec2 {
	return t.slot(id).scroll
}

// MaxScroll returns how far the container's content overflows its inner box.
func (t *Tree) MaxScroll(id NodeID) Vec2 {
	l := t.slot(id).layout
	inner := Rect{Width: l.Size.Width, Height: l.Size.Height}.Inset(l.Border.Add(l.Padding))
	return Vec2{
		X: math.Max(0, l.ContentSize.Width-inner.Width),
		Y: math.Max(0, l.ContentSize.Height-inner.Height),
	}
}

// ScrollBy moves the container's scroll position by d, clamped to
// [0, MaxScroll]. It reports whether the position changed.
func (t *Tree) ScrollBy(id NodeID, d Vec2) bool {
	lim := t.MaxScroll(id)
	s := t.slot(id)
	next := Vec2{
		X: clamp(s.scroll.X+d.X, 0, lim.X),
		Y: clamp(s.scroll.Y+d.Y, 0, lim.Y),
	}
	if next == s.scroll {
		return false
	}
	s.scroll = next
	return true
}

// --- Resolution ---

// AbsolutePosition walks the parent chain accumulating locations, offsets
// and ancestor scroll.
func (t *Tree) AbsolutePosition(id NodeID) Vec2 {
	s := t.slot(id)
	pos := s.layout.Location.Add(s.offset)
	for p := s.parent; !p.IsZero(); {
		ps := t.slot(p)
		pos = pos.Add(ps.layout.Location).Add(ps.offset).Sub(ps.scroll)
		p = ps.parent
	}
	return pos
}

// Placement resolves the node's absolute geometry from its cached layout.
func (t *Tree) Placement(id NodeID) Placement {
	return t.placementAt(id, t.AbsolutePosition(id))
}

func (t *Tree) placementAt(id NodeID, pos Vec2) Placement {
	s := t.slot(id)
	l := &s.layout
	rect := Rect{X: pos.X, Y: pos.Y, Width: l.Size.Width, Height: l.Size.Height}
	if rect.Empty() {
		rect.Width, rect.Height = 0, 0
	}
	inner := rect.Inset(l.Border.Add(l.Padding))
	return Placement{
		ID:    id,
		Rect:  rect,
		Inner: inner,
		Content: Rect{
			X:      inner.X - s.scroll.X,
			Y:      inner.Y - s.scroll.Y,
			Width:  l.ContentSize.Width,
			Height: l.ContentSize.Height,
		},
		Border:  l.Border,
		Padding: l.Padding,
	}
}

// RenderList returns Placements for id and its visible descendants in
// depth-first paint order. Hidden subtrees are skipped.
func (t *Tree) RenderList(id NodeID) []Placement {
	return t.AppendRenderList(nil, id)
}

// AppendRenderList is RenderList reusing buf.
func (t *Tree) AppendRenderList(buf []Placement, id NodeID) []Placement {
	var origin Vec2
	if p, ok := t.Parent(id); ok {
		origin = t.AbsolutePosition(p).Sub(t.slot(p).scroll)
	}
	return t.appendPlacements(buf, id, origin)
}

// appendPlacements accumulates positions top-down so the whole list costs
// O(n) rather than O(n * depth).
func (t *Tree) appendPlacements(buf []Placement, id NodeID, origin Vec2) []Placement {
	s := t.slot(id)
	if s.style.Display == DisplayNone {
		return buf
	}
	pos := origin.Add(s.layout.Location).Add(s.offset)
	buf = append(buf, t.placementAt(id, pos))
	childOrigin := pos.Sub(s.scroll)
	for _, c := range s.children {
		buf = t.appendPlacements(buf, c, childOrigin)
	}
	return buf
}
