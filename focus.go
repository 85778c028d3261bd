package arbor

// Focused returns the node holding keyboard focus, or the zero NodeID.
func (s *Scene) Focused() NodeID {
	return s.focused
}

// SetFocus moves keyboard focus to id, firing FocusLost on the previous node
// and FocusGained on the new one. The zero NodeID clears focus. Setting focus
// to a node that does not accept it is a no-op.
func (s *Scene) SetFocus(id NodeID) {
	if id == s.focused {
		return
	}
	if !id.IsZero() && !s.acceptsFocus(id) {
		return
	}
	old := s.focused
	s.focused = id
	if !old.IsZero() {
		s.fire(Event{Type: EventFocusLost, Node: old, Related: id})
	}
	if !id.IsZero() && s.focused == id {
		s.fire(Event{Type: EventFocusGained, Node: id, Related: old})
	}
}

// FocusNext moves focus to the next focusable node in depth-first order,
// wrapping to the first. With nothing focused the first node is chosen.
func (s *Scene) FocusNext() {
	s.cycleFocus(1)
}

// FocusPrev moves focus to the previous focusable node, wrapping to the
// last.
func (s *Scene) FocusPrev() {
	s.cycleFocus(-1)
}

func (s *Scene) cycleFocus(dir int) {
	order := s.focusOrder()
	if len(order) == 0 {
		return
	}
	cur := -1
	for i, id := range order {
		if id == s.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && dir > 0:
		next = 0
	case cur < 0:
		next = len(order) - 1
	default:
		next = (cur + dir + len(order)) % len(order)
	}
	s.SetFocus(order[next])
}

// focusOrder lists visible focusable nodes in depth-first order.
func (s *Scene) focusOrder() []NodeID {
	var out []NodeID
	s.tree.Walk(s.tree.Root(), func(id NodeID) bool {
		if s.tree.slot(id).style.Display == DisplayNone {
			return false
		}
		if s.acceptsFocus(id) {
			out = append(out, id)
		}
		return true
	})
	return out
}

// focusFromPath focuses the topmost node on the hover path that accepts
// focus, or clears focus when none does.
func (s *Scene) focusFromPath() {
	for i := len(s.hoverPath) - 1; i >= 0; i-- {
		id := s.hoverPath[i]
		if s.tree.Contains(id) && s.acceptsFocus(id) {
			s.SetFocus(id)
			return
		}
	}
	s.SetFocus(NodeID{})
}

// focusPath returns the focused node and its ancestors, root first.
func (s *Scene) focusPath() []NodeID {
	if s.focused.IsZero() || !s.tree.Contains(s.focused) {
		return nil
	}
	var path []NodeID
	for id := s.focused; !id.IsZero(); id = s.tree.slot(id).parent {
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *Scene) acceptsFocus(id NodeID) bool {
	obj, ok := s.peek(id)
	if !ok {
		return false
	}
	f, ok := obj.(Focuser)
	return ok && f.AcceptsFocus()
}
