package arbor

import "time"

// Canvas is the drawing surface a host hands to Scene.Render. Coordinates
// are absolute, in the same space as Placement rectangles.
type Canvas interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, width float64, c Color)
	DrawText(text string, x, y float64, c Color)
	// PushClip restricts drawing to r intersected with the current clip.
	PushClip(r Rect)
	PopClip()
}

// RenderContext is passed to an object's render callbacks.
type RenderContext struct {
	Placement Placement
	Canvas    Canvas
	// Clip is the visible area for this node, already intersected with
	// every clipping ancestor. Zero when nothing clips.
	Clip  Rect
	Depth int
}

// Render brings layout up to date and walks the visible tree depth-first.
// Each node's handler gets PreRender and Render, then its children are
// drawn, then PostRender. Containers whose Overflow is not visible clip
// their descendants to the inner box. Nodes entirely outside the clip are
// culled but their children are still visited.
func (s *Scene) Render(canvas Canvas) {
	s.ensureLayout()
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	var clip Rect
	clipped := false
	if s.hasViewport {
		clip = Rect{Width: s.viewport.Width, Height: s.viewport.Height}
		clipped = true
	}
	count := s.renderNode(canvas, s.tree.Root(), Vec2{}, clip, clipped, 0)
	if s.debug {
		s.log.Debug("render", "nodes", count, "duration", time.Since(start))
	}
}

func (s *Scene) renderNode(canvas Canvas, id NodeID, origin Vec2, clip Rect, clipped bool, depth int) int {
	n := s.tree.slot(id)
	if n.style.Display == DisplayNone {
		return 0
	}
	pos := origin.Add(n.layout.Location).Add(n.offset)
	p := s.tree.placementAt(id, pos)
	rc := RenderContext{Placement: p, Canvas: canvas, Clip: clip, Depth: depth}

	drawn := 0
	culled := clipped && !p.Rect.Empty() && !p.Rect.Intersects(clip)
	if !culled {
		s.dispatch(id, func(o Object) {
			o.PreRender(s, rc)
			o.Render(s, rc)
		})
		drawn++
	}

	// A render callback may restyle or remove nodes; re-resolve the slot.
	if !s.tree.Contains(id) {
		return drawn
	}
	n = s.tree.slot(id)
	clips := n.style.Overflow != OverflowVisible
	childClip, childClipped := clip, clipped
	if clips {
		if clipped {
			childClip = p.Inner.Intersect(clip)
		} else {
			childClip = p.Inner
		}
		childClipped = true
	}
	if !clips || !childClip.Empty() {
		if clips {
			canvas.PushClip(p.Inner)
		}
		childOrigin := pos.Sub(n.scroll)
		children := append([]NodeID(nil), n.children...)
		for _, c := range children {
			if s.tree.Contains(c) {
				drawn += s.renderNode(canvas, c, childOrigin, childClip, childClipped, depth+1)
			}
		}
		if clips {
			canvas.PopClip()
		}
	}

	if !culled {
		s.dispatch(id, func(o Object) { o.PostRender(s, rc) })
	}
	return drawn
}
