package arbor

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// fakeClock is a manually advanced time source for drag thresholds.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestScene returns a scene of the given viewport size with a fake clock
// and a silent logger.
func newTestScene(t *testing.T, w, h float64) (*Scene, *fakeClock) {
	t.Helper()
	s := NewScene()
	s.SetLogger(log.New(io.Discard))
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s.SetClock(clk.Now)
	s.Resize(w, h)
	return s, clk
}

func box(w, h float64) Style {
	return Style{Width: Points(w), Height: Points(h)}
}

// addNode creates a named child of parent.
func addNode(tree *Tree, parent NodeID, name string, st Style) NodeID {
	id := tree.AddNode(st)
	tree.SetName(id, name)
	tree.AddChild(parent, id)
	return id
}

// entry is one recorded event: its type and the name of the node it was
// delivered to.
type entry struct {
	Type EventType
	Node string
}

// recordEvents logs every event dispatched by s.
func recordEvents(s *Scene) *[]entry {
	var events []entry
	for et := EventType(0); et < eventTypeCount; et++ {
		s.On(et, func(e Event) {
			name := ""
			if !e.Node.IsZero() && s.tree.Contains(e.Node) {
				name = s.tree.Name(e.Node)
			}
			events = append(events, entry{e.Type, name})
		})
	}
	return &events
}

// recorder is a handler that logs the callbacks it receives, tagged with
// its name, and optionally runs a hook.
type recorder struct {
	BaseObject
	name  string
	log   *[]entry
	hook  func(s *Scene, e Event)
	focus bool
}

func (r *recorder) rec(s *Scene, e Event) {
	if r.log != nil {
		*r.log = append(*r.log, entry{e.Type, r.name})
	}
	if r.hook != nil {
		r.hook(s, e)
	}
}

func (r *recorder) MouseDown(s *Scene, e Event)  { r.rec(s, e) }
func (r *recorder) MouseUp(s *Scene, e Event)    { r.rec(s, e) }
func (r *recorder) MouseEnter(s *Scene, e Event) { r.rec(s, e) }
func (r *recorder) MouseLeave(s *Scene, e Event) { r.rec(s, e) }
func (r *recorder) DragStart(s *Scene, e Event)  { r.rec(s, e) }
func (r *recorder) DragMove(s *Scene, e Event)   { r.rec(s, e) }
func (r *recorder) DragEnd(s *Scene, e Event)    { r.rec(s, e) }
func (r *recorder) DragOver(s *Scene, e Event)   { r.rec(s, e) }
func (r *recorder) Drop(s *Scene, e Event)       { r.rec(s, e) }

// focusRecorder additionally takes focus and handles keys and wheel.
type focusRecorder struct {
	recorder
}

func (r *focusRecorder) AcceptsFocus() bool            { return r.focus }
func (r *focusRecorder) FocusGained(s *Scene, e Event) { r.rec(s, e) }
func (r *focusRecorder) FocusLost(s *Scene, e Event)   { r.rec(s, e) }
func (r *focusRecorder) KeyDown(s *Scene, e Event)     { r.rec(s, e) }
func (r *focusRecorder) KeyUp(s *Scene, e Event)       { r.rec(s, e) }
func (r *focusRecorder) Wheel(s *Scene, e Event)       { r.rec(s, e) }
