package arbor

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// drain runs frames until the inject queue is empty, advancing the clock by
// step before each one.
func drain(s *Scene, clk *fakeClock, step time.Duration) int {
	frames := 0
	for s.PendingInjections() > 0 {
		clk.Advance(step)
		s.Update(1.0 / 60)
		frames++
	}
	return frames
}

func TestInjectClick(t *testing.T) {
	s, _, _, _ := twoBoxes(t)
	events := recordEvents(s)

	s.InjectClick(50, 50)
	if n := s.PendingInjections(); n != 2 {
		t.Fatalf("queued %d frames, want 2", n)
	}

	s.Update(1.0 / 60)
	want := []entry{{EventMouseEnter, "a"}, {EventMouseDown, "a"}}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("after press frame (-want +got):\n%s", diff)
	}

	s.Update(1.0 / 60)
	want = append(want, entry{EventMouseUp, "a"})
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("after release frame (-want +got):\n%s", diff)
	}
}

func TestInjectDrag(t *testing.T) {
	s, clk, _, _ := twoBoxes(t)
	events := recordEvents(s)

	// Press, moves to x=45, 80, 115, release at 150.
	s.InjectDrag(10, 10, 150, 10, 5)
	if frames := drain(s, clk, 60*time.Millisecond); frames != 5 {
		t.Fatalf("drag took %d frames, want 5", frames)
	}

	want := []entry{
		{EventMouseEnter, "a"},
		{EventMouseDown, "a"},
		{EventDragStart, "a"},
		{EventMouseLeave, "a"},
		{EventMouseEnter, "b"},
		{EventDragMove, "a"},
		{EventDragOver, "b"},
		// The release frame moves to x=150 first.
		{EventDragMove, "a"},
		{EventDragOver, "b"},
		{EventMouseUp, "b"},
		{EventDrop, "b"},
		{EventDragEnd, "a"},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestInjectDragTooFastIsAClick(t *testing.T) {
	s, clk, _, _ := twoBoxes(t)
	events := recordEvents(s)

	s.InjectDrag(10, 10, 150, 10, 2)
	drain(s, clk, 10*time.Millisecond)

	for _, e := range *events {
		if e.Type == EventDragStart || e.Type == EventDrop {
			t.Errorf("unexpected %v", e.Type)
		}
	}
}

func TestInjectKeyAndWheel(t *testing.T) {
	s, _, inner, _ := scrollScene(t)
	events := recordEvents(s)

	s.InjectKey(KeyEscape, 0)
	s.InjectWheel(0, 1, WheelLines)
	s.Update(1.0 / 60)

	want := []entry{{EventKeyDown, ""}, {EventKeyUp, ""}}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("key frame (-want +got):\n%s", diff)
	}
	if s.PendingInjections() != 1 {
		t.Fatalf("pending = %d, want 1", s.PendingInjections())
	}

	s.Update(1.0 / 60)
	if got := s.Tree().Scroll(inner); got != (Vec2{0, 16}) {
		t.Errorf("scroll = %v, want 16", got)
	}
}
