package arbor

import (
	"time"

	"github.com/charmbracelet/log"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	X         float64
	Y         float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDragMove, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

const (
	defaultDragThreshold   = 100 * time.Millisecond
	defaultWheelLineHeight = 16.0
)

// Scene is the interaction controller. It owns the node tree, the object
// registry, pointer/focus/drag state and the scene-level listeners. All
// methods must be called from the goroutine driving the host event loop.
type Scene struct {
	tree    *Tree
	store   EntityStore
	objects map[NodeID]objectSlot

	log   *log.Logger
	debug bool
	now   func() time.Time

	viewport    Size
	hasViewport bool

	// Input state
	listeners       listenerRegistry
	pointer         Vec2
	hoverPath       []NodeID
	hovered         NodeID
	focused         NodeID
	drag            dragState
	stopped         bool
	windowFocused   bool
	dragThreshold   time.Duration
	wheelLineHeight float64
	injectQueue     [][]InputEvent
	testRunner      *TestRunner
	screenshotQueue []string

	tweens []Tween
}

// NewScene creates a scene with a fresh tree.
func NewScene() *Scene {
	s := &Scene{
		tree:            NewTree(),
		objects:         make(map[NodeID]objectSlot),
		log:             defaultLogger(),
		now:             time.Now,
		windowFocused:   true,
		dragThreshold:   defaultDragThreshold,
		wheelLineHeight: defaultWheelLineHeight,
	}
	s.tree.log = s.log
	s.tree.addObserver(s)
	return s
}

// Tree returns the scene's node tree.
func (s *Scene) Tree() *Tree {
	return s.tree
}

// Root returns the root node.
func (s *Scene) Root() NodeID {
	return s.tree.Root()
}

// Viewport returns the size set by the last Resize.
func (s *Scene) Viewport() Size {
	return s.viewport
}

// Update advances tweens by dt seconds and consumes at most one injected
// input event. Hosts call it once per frame.
func (s *Scene) Update(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	live := s.tweens[:0]
	for _, tw := range s.tweens {
		tw.Update(dt)
		if !tw.Finished() {
			live = append(live, tw)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// Animate registers a tween to be advanced by Update until it finishes.
func (s *Scene) Animate(tw Tween) {
	s.tweens = append(s.tweens, tw)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetClock replaces the time source used for drag promotion.
func (s *Scene) SetClock(now func() time.Time) {
	s.now = now
}

// SetDragThreshold sets how long the primary button must be held before a
// move starts a drag.
func (s *Scene) SetDragThreshold(d time.Duration) {
	s.dragThreshold = d
}

// SetWheelLineHeight sets the pixel distance of one wheel line.
func (s *Scene) SetWheelLineHeight(px float64) {
	s.wheelLineHeight = px
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.log
}

// SetLogger replaces the scene's logger.
func (s *Scene) SetLogger(l *log.Logger) {
	s.log = l
	s.tree.log = l
	if s.debug {
		l.SetLevel(log.DebugLevel)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, AddChild checks
// for cycles, tree depth and child count warnings are logged, and per-pass
// layout stats and handler drops are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.tree.debug = enabled
	if enabled {
		s.log.SetLevel(log.DebugLevel)
	} else {
		s.log.SetLevel(log.WarnLevel)
	}
}

// ApplyConfig copies the interaction settings of cfg onto the scene.
func (s *Scene) ApplyConfig(cfg Config) {
	s.dragThreshold = cfg.DragThreshold.Duration
	s.wheelLineHeight = cfg.WheelLineHeight
	s.SetDebugMode(cfg.Debug)
}

// Resize sets the root to the new viewport size and recomputes layout
// immediately, so the next hit test sees the new rectangles.
func (s *Scene) Resize(w, h float64) {
	w, h = sanitizeLength(w), sanitizeLength(h)
	s.viewport = Size{w, h}
	s.hasViewport = true
	s.tree.UpdateStyle(s.tree.Root(), func(st *Style) {
		st.Width = Points(w)
		st.Height = Points(h)
	})
	s.tree.ComputeLayout(s.tree.Root(), DefiniteSize(w, h))
}

// ensureLayout brings geometry up to date. With nothing dirty this is a
// single cache hit on the root.
func (s *Scene) ensureLayout() {
	avail := AvailableSize{Width: MaxContent(), Height: MaxContent()}
	if s.hasViewport {
		avail = DefiniteSize(s.viewport.Width, s.viewport.Height)
	}
	s.tree.ComputeLayout(s.tree.Root(), avail)
}

// --- Tree observer ---

// nodeRemoved drops every reference the scene holds to a removed node. No
// Leave or DragEnd is fired for it.
func (s *Scene) nodeRemoved(id NodeID) {
	if s.hovered == id {
		s.hovered = NodeID{}
	}
	for i, p := range s.hoverPath {
		if p == id {
			s.hoverPath = s.hoverPath[:i]
			break
		}
	}
	if s.focused == id {
		s.focused = NodeID{}
	}
	if s.drag.startNode == id {
		s.drag = dragState{}
	}
	delete(s.objects, id)
	if s.debug {
		s.log.Debug("cleared references to removed node", "node", id)
	}
}

func (s *Scene) treeCleared() {
	s.hovered = NodeID{}
	s.hoverPath = s.hoverPath[:0]
	s.focused = NodeID{}
	s.drag = dragState{}
	clear(s.objects)
}
