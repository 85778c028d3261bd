package arbor

// Object is the interaction handler attached to a node. Every method receives
// the Scene with full mutable access: a handler may restyle nodes, add or
// remove nodes, or grab other handlers. Embed BaseObject to get no-op
// defaults and override only what you need.
type Object interface {
	PreRender(s *Scene, rc RenderContext)
	Render(s *Scene, rc RenderContext)
	PostRender(s *Scene, rc RenderContext)

	MouseDown(s *Scene, e Event)
	MouseUp(s *Scene, e Event)
	MouseEnter(s *Scene, e Event)
	MouseLeave(s *Scene, e Event)

	DragStart(s *Scene, e Event)
	DragMove(s *Scene, e Event)
	DragEnd(s *Scene, e Event)
	DragOver(s *Scene, e Event)
	Drop(s *Scene, e Event)
}

// Focuser is implemented by objects that can take keyboard focus.
type Focuser interface {
	// AcceptsFocus reports whether the node currently opts in to focus.
	AcceptsFocus() bool
	FocusGained(s *Scene, e Event)
	FocusLost(s *Scene, e Event)
}

// KeyHandler receives key events while its node, or a descendant, has focus.
type KeyHandler interface {
	KeyDown(s *Scene, e Event)
	KeyUp(s *Scene, e Event)
}

// WheelHandler receives wheel events over its node or a descendant.
type WheelHandler interface {
	Wheel(s *Scene, e Event)
}

// BaseObject implements Object with no-ops.
type BaseObject struct{}

func (BaseObject) PreRender(*Scene, RenderContext)  {}
func (BaseObject) Render(*Scene, RenderContext)     {}
func (BaseObject) PostRender(*Scene, RenderContext) {}
func (BaseObject) MouseDown(*Scene, Event)          {}
func (BaseObject) MouseUp(*Scene, Event)            {}
func (BaseObject) MouseEnter(*Scene, Event)         {}
func (BaseObject) MouseLeave(*Scene, Event)         {}
func (BaseObject) DragStart(*Scene, Event)          {}
func (BaseObject) DragMove(*Scene, Event)           {}
func (BaseObject) DragEnd(*Scene, Event)            {}
func (BaseObject) DragOver(*Scene, Event)           {}
func (BaseObject) Drop(*Scene, Event)               {}

// --- Registry ---

// objectSlot is Present when obj is held, Vacant while a callback owns the
// handler. A node with no entry has no handler at all.
type objectSlot struct {
	obj     Object
	present bool
}

// Register attaches obj to the node, replacing any previous handler. A nil
// obj removes the handler.
func (s *Scene) Register(id NodeID, obj Object) {
	s.tree.slot(id)
	if obj == nil {
		delete(s.objects, id)
		return
	}
	s.objects[id] = objectSlot{obj: obj, present: true}
}

// Grab removes the node's handler from the registry and hands it to the
// caller, leaving the slot Vacant. It returns false when the node has no
// handler or the handler is already grabbed, which is what a handler sees
// when it tries to grab itself during its own callback. Every successful
// Grab must be paired with Place, or with Drop to discard the handler.
func (s *Scene) Grab(id NodeID) (Object, bool) {
	e, ok := s.objects[id]
	if !ok || !e.present {
		return nil, false
	}
	s.objects[id] = objectSlot{}
	return e.obj, true
}

// Place puts a handler back into the node's slot.
func (s *Scene) Place(id NodeID, obj Object) {
	s.Register(id, obj)
}

// Drop removes the node's handler permanently. Called from within the
// node's own callback it keeps the grabbed handler from being placed back,
// leaving the node inert.
func (s *Scene) Drop(id NodeID) {
	if _, ok := s.objects[id]; ok && s.debug {
		s.log.Debug("handler dropped", "node", id)
	}
	delete(s.objects, id)
}

// With grabs the node's handler, runs fn and places it back. It reports
// whether a handler was available.
func (s *Scene) With(id NodeID, fn func(Object)) bool {
	return s.dispatch(id, fn)
}

// HasObject reports whether a handler is currently present for the node.
func (s *Scene) HasObject(id NodeID) bool {
	return s.objects[id].present
}

// peek returns the present handler without grabbing it. Only for
// side-effect free queries such as Focuser.AcceptsFocus.
func (s *Scene) peek(id NodeID) (Object, bool) {
	e := s.objects[id]
	return e.obj, e.present
}

// dispatch runs fn on the node's handler under the grab/place protocol. The
// handler is placed back only if its slot is still Vacant afterwards and the
// node still exists: a callback that dropped or replaced the handler, or
// removed the node, wins. If fn panics the slot stays Vacant and is never
// double-owned.
func (s *Scene) dispatch(id NodeID, fn func(Object)) bool {
	obj, ok := s.Grab(id)
	if !ok {
		if e, exists := s.objects[id]; exists && !e.present && s.debug {
			s.log.Debug("handler vacant, callback skipped", "node", id)
		}
		return false
	}
	fn(obj)
	e, exists := s.objects[id]
	switch {
	case !exists:
		if s.debug {
			s.log.Debug("handler not placed back", "node", id)
		}
	case !e.present && s.tree.Contains(id):
		s.objects[id] = objectSlot{obj: obj, present: true}
	}
	return true
}
