package arbor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlacementRects(t *testing.T) {
	tree := newRowTree(200, 100, func(st *Style) { st.Padding = EdgeAll(10) })
	c := addNode(tree, tree.Root(), "c", Style{
		Width:   Points(80),
		Height:  Points(60),
		Border:  EdgeAll(1),
		Padding: EdgeSymmetric(4, 2),
	})
	layoutRoot(tree)

	got := tree.Placement(c)
	want := Placement{
		ID:      c,
		Rect:    Rect{X: 10, Y: 10, Width: 80, Height: 60},
		Inner:   Rect{X: 13, Y: 15, Width: 74, Height: 50},
		Content: Rect{X: 13, Y: 15, Width: 74, Height: 50},
		Border:  EdgeAll(1),
		Padding: EdgeSymmetric(4, 2),
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(NodeID{})); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
}

func TestOffsetAndScrollDoNotInvalidate(t *testing.T) {
	tree := newRowTree(200, 100, func(st *Style) { st.Overflow = OverflowScroll })
	c := addNode(tree, tree.Root(), "c", box(50, 50))
	g := addNode(tree, c, "g", box(10, 10))
	layoutRoot(tree)
	before := tree.RecomputeCount(tree.Root())

	tree.SetOffset(c, Vec2{5, 7})
	tree.SetScroll(tree.Root(), Vec2{0, 3})

	for _, id := range []NodeID{tree.Root(), c, g} {
		if !tree.LayoutValid(id) {
			t.Errorf("%s lost its layout cache", tree.Name(id))
		}
	}
	if got := tree.AbsolutePosition(c); got != (Vec2{5, 4}) {
		t.Errorf("c position = %v, want (5,4)", got)
	}
	if got := tree.AbsolutePosition(g); got != (Vec2{5, 4}) {
		t.Errorf("g position = %v, want (5,4)", got)
	}
	if got := tree.Layout(c).Location; got != (Vec2{}) {
		t.Errorf("layout location changed to %v", got)
	}
	layoutRoot(tree)
	if tree.RecomputeCount(tree.Root()) != before {
		t.Error("offset or scroll forced a relayout")
	}
}

func TestScrollByClamps(t *testing.T) {
	tree := NewTree()
	tree.UpdateStyle(tree.Root(), func(st *Style) {
		st.Direction = Column
		st.Width = Points(100)
		st.Height = Points(100)
		st.Overflow = OverflowScroll
	})
	for range 4 {
		addNode(tree, tree.Root(), "row", Style{Height: Points(50)})
	}
	layoutRoot(tree)
	root := tree.Root()

	if got := tree.MaxScroll(root); got != (Vec2{0, 100}) {
		t.Fatalf("max scroll = %v, want (0,100)", got)
	}
	tests := []struct {
		name    string
		delta   Vec2
		want    Vec2
		changed bool
	}{
		{"down", Vec2{0, 40}, Vec2{0, 40}, true},
		{"past the end", Vec2{0, 500}, Vec2{0, 100}, true},
		{"already at end", Vec2{0, 1}, Vec2{0, 100}, false},
		{"no horizontal room", Vec2{30, 0}, Vec2{0, 100}, false},
		{"back past start", Vec2{0, -1000}, Vec2{0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.ScrollBy(root, tt.delta); got != tt.changed {
				t.Errorf("ScrollBy changed = %v, want %v", got, tt.changed)
			}
			if got := tree.Scroll(root); got != tt.want {
				t.Errorf("scroll = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScrollShiftsContent(t *testing.T) {
	tree := NewTree()
	tree.UpdateStyle(tree.Root(), func(st *Style) {
		st.Direction = Column
		st.Width = Points(100)
		st.Height = Points(100)
	})
	rows := make([]NodeID, 3)
	for i := range rows {
		rows[i] = addNode(tree, tree.Root(), "row", Style{Height: Points(50)})
	}
	layoutRoot(tree)
	tree.SetScroll(tree.Root(), Vec2{0, 30})

	if got := tree.Placement(rows[1]).Rect.Y; got != 20 {
		t.Errorf("row 1 y = %v, want 20", got)
	}
	p := tree.Placement(tree.Root())
	if p.Content != (Rect{X: 0, Y: -30, Width: 100, Height: 150}) {
		t.Errorf("content = %+v", p.Content)
	}
	if p.Rect != (Rect{Width: 100, Height: 100}) {
		t.Errorf("the scrolled container itself moved: %+v", p.Rect)
	}
}

func TestRenderListOrder(t *testing.T) {
	tree := newRowTree(300, 100, nil)
	a := addNode(tree, tree.Root(), "a", box(50, 50))
	addNode(tree, a, "a1", box(10, 10))
	hidden := addNode(tree, tree.Root(), "hidden", Style{Display: DisplayNone})
	addNode(tree, hidden, "h1", box(10, 10))
	b := addNode(tree, tree.Root(), "b", box(50, 50))
	layoutRoot(tree)

	var got []string
	for _, p := range tree.RenderList(tree.Root()) {
		got = append(got, tree.Name(p.ID))
	}
	if diff := cmp.Diff([]string{"root", "a", "a1", "b"}, got); diff != "" {
		t.Errorf("render order (-want +got):\n%s", diff)
	}

	// A sub-list carries absolute positions.
	sub := tree.RenderList(b)
	if len(sub) != 1 || sub[0].Rect.X != 50 {
		t.Errorf("sub list = %+v", sub)
	}
	for _, p := range tree.RenderList(tree.Root()) {
		if want := tree.Placement(p.ID); p != want {
			t.Errorf("%s: list placement %+v != Placement %+v", tree.Name(p.ID), p.Rect, want.Rect)
		}
	}
}
