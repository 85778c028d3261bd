package arbor

import "time"

// Key is a normalized key code. Hosts map platform keys onto these values;
// codes outside the named set are passed through untouched.
type Key int

const (
	KeyUnknown Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// Event is passed to handlers and scene-level listeners.
type Event struct {
	Type EventType
	Node NodeID
	// Target is the node the event was first delivered to. It differs from
	// Node while a key or wheel event bubbles through ancestors.
	Target NodeID
	// Related is the drag source for DragOver and Drop, and the node on the
	// other side of a focus change for FocusGained and FocusLost.
	Related NodeID

	X, Y      float64 // pointer position
	Button    MouseButton
	Modifiers KeyModifiers
	Time      time.Time

	// Drag fields
	StartX, StartY float64
	DeltaX, DeltaY float64

	// Key fields
	Key    Key
	Repeat bool

	// Wheel deltas, already converted to pixels
	WheelX, WheelY float64
}

// InputKind identifies a normalized input event from the host.
type InputKind uint8

const (
	InputPointerMoved InputKind = iota
	InputButtonDown
	InputButtonUp
	InputWheel
	InputResize
	InputFocusIn
	InputFocusOut
	InputKeyDown
	InputKeyUp
)

// InputEvent is the host-neutral input the scene consumes. Which fields are
// meaningful depends on Kind.
type InputEvent struct {
	Kind      InputKind
	X, Y      float64 // PointerMoved position, Wheel delta, Resize size
	Button    MouseButton
	Unit      WheelUnit
	Key       Key
	Repeat    bool
	Modifiers KeyModifiers
}

// HandleInput routes a normalized input event to the matching Scene method.
func (s *Scene) HandleInput(ev InputEvent) {
	switch ev.Kind {
	case InputPointerMoved:
		s.PointerMove(ev.X, ev.Y)
	case InputButtonDown:
		s.ButtonDown(ev.Button, ev.Modifiers)
	case InputButtonUp:
		s.ButtonUp(ev.Button, ev.Modifiers)
	case InputWheel:
		s.Wheel(ev.X, ev.Y, ev.Unit, ev.Modifiers)
	case InputResize:
		s.Resize(ev.X, ev.Y)
	case InputFocusIn:
		s.WindowFocus(true)
	case InputFocusOut:
		s.WindowFocus(false)
	case InputKeyDown:
		s.KeyDown(ev.Key, ev.Repeat, ev.Modifiers)
	case InputKeyUp:
		s.KeyUp(ev.Key, ev.Modifiers)
	}
}

// --- Scene-level listeners ---

type listener struct {
	id uint32
	fn func(Event)
}

type listenerRegistry struct {
	byType [eventTypeCount][]listener
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level listener.
type CallbackHandle struct {
	id    uint32
	reg   *listenerRegistry
	event EventType
}

// Remove unregisters the listener so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// On registers a scene-level listener for one event type. Listeners run
// before the node's handler for every dispatched event, including events
// with no target node.
func (s *Scene) On(t EventType, fn func(Event)) CallbackHandle {
	s.listeners.nextID++
	id := s.listeners.nextID
	s.listeners.byType[t] = append(s.listeners.byType[t], listener{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.listeners, event: t}
}

// StopPropagation ends bubbling and default handling for the rest of the
// current input event.
func (s *Scene) StopPropagation() {
	s.stopped = true
}

// PropagationStopped reports whether a handler stopped the current input
// event.
func (s *Scene) PropagationStopped() bool {
	return s.stopped
}

// fire delivers e to listeners, then to the target node's handler, then to
// the ECS bridge.
func (s *Scene) fire(e Event) {
	if e.Time.IsZero() {
		e.Time = s.now()
	}
	if e.Target.IsZero() {
		e.Target = e.Node
	}
	s.fireListeners(e)
	if !e.Node.IsZero() && s.tree.Contains(e.Node) {
		s.dispatch(e.Node, func(o Object) { invoke(o, s, e) })
	}
	s.emitInteractionEvent(e)
}

// bubble delivers e to listeners once, then to every node of path from the
// last element towards the first until a handler stops propagation.
func (s *Scene) bubble(e Event, path []NodeID) {
	if e.Time.IsZero() {
		e.Time = s.now()
	}
	if n := len(path); n > 0 {
		e.Target = path[n-1]
		e.Node = e.Target
	}
	s.fireListeners(e)
	s.emitInteractionEvent(e)
	for i := len(path) - 1; i >= 0 && !s.stopped; i-- {
		id := path[i]
		if !s.tree.Contains(id) {
			continue
		}
		e.Node = id
		s.dispatch(id, func(o Object) { invoke(o, s, e) })
	}
}

func (s *Scene) fireListeners(e Event) {
	ls := s.listeners.byType[e.Type]
	if len(ls) == 0 {
		return
	}
	// Listeners may remove themselves; iterate over a snapshot.
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(e)
	}
}

// invoke calls the Object method matching the event type.
func invoke(o Object, s *Scene, e Event) {
	switch e.Type {
	case EventMouseDown:
		o.MouseDown(s, e)
	case EventMouseUp:
		o.MouseUp(s, e)
	case EventMouseEnter:
		o.MouseEnter(s, e)
	case EventMouseLeave:
		o.MouseLeave(s, e)
	case EventDragStart:
		o.DragStart(s, e)
	case EventDragMove:
		o.DragMove(s, e)
	case EventDragEnd:
		o.DragEnd(s, e)
	case EventDragOver:
		o.DragOver(s, e)
	case EventDrop:
		o.Drop(s, e)
	case EventFocusGained:
		if f, ok := o.(Focuser); ok {
			f.FocusGained(s, e)
		}
	case EventFocusLost:
		if f, ok := o.(Focuser); ok {
			f.FocusLost(s, e)
		}
	case EventKeyDown:
		if k, ok := o.(KeyHandler); ok {
			k.KeyDown(s, e)
		}
	case EventKeyUp:
		if k, ok := o.(KeyHandler); ok {
			k.KeyUp(s, e)
		}
	case EventWheel:
		if w, ok := o.(WheelHandler); ok {
			w.Wheel(s, e)
		}
	}
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(e Event) {
	if s.store == nil || e.Node.IsZero() || !s.tree.Contains(e.Node) {
		return
	}
	entity := s.tree.EntityID(e.Node)
	if entity == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      e.Type,
		EntityID:  entity,
		X:         e.X,
		Y:         e.Y,
		Button:    e.Button,
		Modifiers: e.Modifiers,
		StartX:    e.StartX,
		StartY:    e.StartY,
		DeltaX:    e.DeltaX,
		DeltaY:    e.DeltaY,
	})
}
