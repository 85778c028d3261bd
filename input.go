package arbor

import "time"

// --- Drag state ---

// dragState tracks a press from button down until release. A press becomes
// a drag on the first move after the primary button has been held longer
// than the scene's drag threshold.
type dragState struct {
	pending   bool
	dragging  bool
	button    MouseButton
	startPos  Vec2
	startTime time.Time
	startNode NodeID
	last      Vec2
}

// --- Queries ---

// Pointer returns the last known pointer position.
func (s *Scene) Pointer() Vec2 {
	return s.pointer
}

// Hovered returns the topmost node under the pointer, or the zero NodeID.
func (s *Scene) Hovered() NodeID {
	return s.hovered
}

// HoverPath returns a copy of the hit-test path computed on the last pointer
// move, root first.
func (s *Scene) HoverPath() []NodeID {
	out := make([]NodeID, len(s.hoverPath))
	copy(out, s.hoverPath)
	return out
}

// Dragging reports whether a press has been promoted to a drag.
func (s *Scene) Dragging() bool {
	return s.drag.dragging
}

// WindowFocused reports whether the host window currently has focus.
func (s *Scene) WindowFocused() bool {
	return s.windowFocused
}

// --- Pointer ---

// PointerMove records the new pointer position, updates hover and advances
// any pending press or drag.
func (s *Scene) PointerMove(x, y float64) {
	s.stopped = false
	s.pointer = Vec2{X: x, Y: y}
	s.updateHover()
	s.updateDrag()
}

// updateHover recomputes the hit path. Only the topmost node receives
// Enter and Leave; ancestors on the path are not notified.
func (s *Scene) updateHover() {
	s.ensureLayout()
	s.hoverPath = s.tree.AppendHitTest(s.hoverPath[:0], s.pointer.X, s.pointer.Y)

	var top NodeID
	if n := len(s.hoverPath); n > 0 {
		top = s.hoverPath[n-1]
	}
	if top == s.hovered {
		return
	}
	old := s.hovered
	s.hovered = top
	if !old.IsZero() {
		s.fire(Event{Type: EventMouseLeave, Node: old, Related: top, X: s.pointer.X, Y: s.pointer.Y})
	}
	if !top.IsZero() && s.hovered == top {
		s.fire(Event{Type: EventMouseEnter, Node: top, Related: old, X: s.pointer.X, Y: s.pointer.Y})
	}
}

func (s *Scene) updateDrag() {
	d := &s.drag
	if !d.pending {
		return
	}
	if !d.dragging {
		if d.button != MouseButtonLeft || s.now().Sub(d.startTime) <= s.dragThreshold {
			return
		}
		d.dragging = true
		d.last = d.startPos
		s.fire(Event{
			Type:   EventDragStart,
			Node:   d.startNode,
			X:      d.startPos.X,
			Y:      d.startPos.Y,
			StartX: d.startPos.X,
			StartY: d.startPos.Y,
			Button: d.button,
		})
		return
	}

	delta := s.pointer.Sub(d.last)
	d.last = s.pointer
	source := d.startNode
	s.fire(Event{
		Type:   EventDragMove,
		Node:   source,
		X:      s.pointer.X,
		Y:      s.pointer.Y,
		StartX: d.startPos.X,
		StartY: d.startPos.Y,
		DeltaX: delta.X,
		DeltaY: delta.Y,
		Button: d.button,
	})
	// A DragMove handler may have removed the source.
	if !s.drag.dragging || s.hovered.IsZero() || s.hovered == source {
		return
	}
	s.fire(Event{
		Type:    EventDragOver,
		Node:    s.hovered,
		Related: source,
		X:       s.pointer.X,
		Y:       s.pointer.Y,
		StartX:  d.startPos.X,
		StartY:  d.startPos.Y,
		Button:  d.button,
	})
}

// ButtonDown dispatches MouseDown to the hovered node and records the press.
// While a drag is running the press is not recorded, so the drag keeps its
// source and button and ends only when that button is released. A primary
// press also moves focus to the nearest focusable node on the hover path
// unless a handler stopped propagation.
func (s *Scene) ButtonDown(button MouseButton, mods KeyModifiers) {
	s.stopped = false
	if !s.hovered.IsZero() {
		s.fire(Event{Type: EventMouseDown, Node: s.hovered, X: s.pointer.X, Y: s.pointer.Y, Button: button, Modifiers: mods})
	}
	// A second button pressed mid-drag must not orphan the running drag.
	if !s.drag.dragging {
		s.drag = dragState{
			pending:   true,
			button:    button,
			startPos:  s.pointer,
			startTime: s.now(),
			startNode: s.hovered,
			last:      s.pointer,
		}
	}
	if button == MouseButtonLeft && !s.stopped {
		s.focusFromPath()
	}
}

// ButtonUp dispatches MouseUp to the hovered node. Releasing the button
// that started a drag fires Drop on the hovered node (when it is not the
// source) and then DragEnd on the source.
func (s *Scene) ButtonUp(button MouseButton, mods KeyModifiers) {
	s.stopped = false
	if !s.hovered.IsZero() {
		s.fire(Event{Type: EventMouseUp, Node: s.hovered, X: s.pointer.X, Y: s.pointer.Y, Button: button, Modifiers: mods})
	}
	if !s.drag.pending || s.drag.button != button {
		return
	}
	d := s.drag
	s.drag = dragState{}
	if !d.dragging {
		return
	}
	if target := s.hovered; !target.IsZero() && target != d.startNode {
		s.fire(Event{
			Type:      EventDrop,
			Node:      target,
			Related:   d.startNode,
			X:         s.pointer.X,
			Y:         s.pointer.Y,
			StartX:    d.startPos.X,
			StartY:    d.startPos.Y,
			Button:    button,
			Modifiers: mods,
		})
	}
	delta := s.pointer.Sub(d.last)
	s.fire(Event{
		Type:      EventDragEnd,
		Node:      d.startNode,
		X:         s.pointer.X,
		Y:         s.pointer.Y,
		StartX:    d.startPos.X,
		StartY:    d.startPos.Y,
		DeltaX:    delta.X,
		DeltaY:    delta.Y,
		Button:    button,
		Modifiers: mods,
	})
}

// --- Wheel ---

// Wheel bubbles a wheel event from the topmost node under the pointer to
// the root. Unless a handler stops propagation, the nearest scroll container
// on the path that can still move is scrolled by the delta.
func (s *Scene) Wheel(dx, dy float64, unit WheelUnit, mods KeyModifiers) {
	s.stopped = false
	if !finite(dx) || !finite(dy) {
		return
	}
	if unit == WheelLines {
		dx *= s.wheelLineHeight
		dy *= s.wheelLineHeight
	}
	s.ensureLayout()
	path := s.tree.HitTest(s.pointer.X, s.pointer.Y)
	s.bubble(Event{
		Type:      EventWheel,
		X:         s.pointer.X,
		Y:         s.pointer.Y,
		WheelX:    dx,
		WheelY:    dy,
		Modifiers: mods,
	}, path)
	if s.stopped {
		return
	}
	for i := len(path) - 1; i >= 0; i-- {
		id := path[i]
		if !s.tree.Contains(id) || s.tree.slot(id).style.Overflow != OverflowScroll {
			continue
		}
		if s.tree.ScrollBy(id, Vec2{X: dx, Y: dy}) {
			return
		}
	}
}

// --- Keys ---

// KeyDown delivers the key to the focused node and bubbles it through its
// ancestors. An unhandled Tab moves focus forward, Shift+Tab backward.
func (s *Scene) KeyDown(key Key, repeat bool, mods KeyModifiers) {
	s.stopped = false
	s.bubble(Event{Type: EventKeyDown, Key: key, Repeat: repeat, Modifiers: mods, X: s.pointer.X, Y: s.pointer.Y}, s.focusPath())
	if s.stopped || key != KeyTab {
		return
	}
	if mods&ModShift != 0 {
		s.FocusPrev()
	} else {
		s.FocusNext()
	}
}

// KeyUp delivers a key release along the focus path.
func (s *Scene) KeyUp(key Key, mods KeyModifiers) {
	s.stopped = false
	s.bubble(Event{Type: EventKeyUp, Key: key, Modifiers: mods, X: s.pointer.X, Y: s.pointer.Y}, s.focusPath())
}

// --- Window ---

// WindowFocus records host window focus changes. Losing focus cancels a
// pending press, ends a running drag with DragEnd and sends Leave to the
// hovered node.
func (s *Scene) WindowFocus(focused bool) {
	s.stopped = false
	s.windowFocused = focused
	if focused {
		return
	}
	d := s.drag
	s.drag = dragState{}
	if d.dragging {
		s.fire(Event{
			Type:   EventDragEnd,
			Node:   d.startNode,
			X:      s.pointer.X,
			Y:      s.pointer.Y,
			StartX: d.startPos.X,
			StartY: d.startPos.Y,
			Button: d.button,
		})
	}
	if old := s.hovered; !old.IsZero() {
		s.hovered = NodeID{}
		s.hoverPath = s.hoverPath[:0]
		s.fire(Event{Type: EventMouseLeave, Node: old, X: s.pointer.X, Y: s.pointer.Y})
	}
}
