package arbor

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newRowTree returns a tree whose root is a w x h flex container.
func newRowTree(w, h float64, edit func(*Style)) *Tree {
	tree := NewTree()
	tree.UpdateStyle(tree.Root(), func(st *Style) {
		st.Width = Points(w)
		st.Height = Points(h)
		if edit != nil {
			edit(st)
		}
	})
	return tree
}

func layoutRoot(tree *Tree) {
	tree.ComputeLayout(tree.Root(), AvailableSize{Width: MaxContent(), Height: MaxContent()})
}

func TestResizeScenario(t *testing.T) {
	s, _ := newTestScene(t, 800, 600)
	tree := s.Tree()
	a := addNode(tree, s.Root(), "a", Style{Width: Percent(50), FlexShrink: 1})
	b := addNode(tree, s.Root(), "b", Style{Width: Percent(50), FlexShrink: 1})
	s.Resize(800, 600)
	if got := tree.Layout(a).Size; got != (Size{400, 600}) {
		t.Fatalf("a at 800x600 = %v", got)
	}

	s.Resize(1000, 600)

	if got := tree.Layout(a).Size; got != (Size{500, 600}) {
		t.Errorf("a size = %v, want 500x600", got)
	}
	if got := tree.Layout(b).Size; got != (Size{500, 600}) {
		t.Errorf("b size = %v, want 500x600", got)
	}
	if got := tree.Layout(b).Location; got != (Vec2{500, 0}) {
		t.Errorf("b location = %v, want (500,0)", got)
	}
}

func TestComputeLayoutIdempotent(t *testing.T) {
	tree := newRowTree(400, 300, nil)
	p := addNode(tree, tree.Root(), "p", Style{Direction: Column, FlexGrow: 1, Padding: EdgeAll(4)})
	addNode(tree, p, "p1", box(50, 20))
	addNode(tree, p, "p2", Style{Height: Points(30)})
	q := addNode(tree, tree.Root(), "q", Style{Width: Percent(25)})
	addNode(tree, q, "q1", box(10, 10))

	layoutRoot(tree)
	first := tree.RenderList(tree.Root())
	counts := map[NodeID]int{}
	tree.Walk(tree.Root(), func(id NodeID) bool {
		counts[id] = tree.RecomputeCount(id)
		return true
	})

	layoutRoot(tree)

	if diff := cmp.Diff(first, tree.RenderList(tree.Root()), cmp.AllowUnexported(NodeID{})); diff != "" {
		t.Errorf("placements changed (-first +second):\n%s", diff)
	}
	tree.Walk(tree.Root(), func(id NodeID) bool {
		if got := tree.RecomputeCount(id); got != counts[id] {
			t.Errorf("%s recomputed: %d -> %d", tree.Name(id), counts[id], got)
		}
		return true
	})
	if st := tree.Stats(); st.Misses != 0 || st.Hits != 1 {
		t.Errorf("stats = %+v, want 1 hit and 0 misses", st)
	}
}

func TestRelayoutRecomputesDirtyPathOnly(t *testing.T) {
	tree := newRowTree(400, 100, nil)
	p := addNode(tree, tree.Root(), "p", box(200, 100))
	x := addNode(tree, p, "x", box(10, 10))
	q := addNode(tree, tree.Root(), "q", box(100, 100))
	y := addNode(tree, q, "y", box(10, 10))
	layoutRoot(tree)
	before := map[NodeID]int{}
	for _, id := range []NodeID{p, x, q, y} {
		before[id] = tree.RecomputeCount(id)
	}

	tree.UpdateStyle(x, func(st *Style) { st.Width = Points(30) })
	layoutRoot(tree)

	if got := tree.Layout(x).Size.Width; got != 30 {
		t.Errorf("x width = %v, want 30", got)
	}
	for _, id := range []NodeID{q, y} {
		if tree.RecomputeCount(id) != before[id] {
			t.Errorf("clean node %s was recomputed", tree.Name(id))
		}
	}
	for _, id := range []NodeID{p, x} {
		if tree.RecomputeCount(id) == before[id] {
			t.Errorf("dirty node %s was not recomputed", tree.Name(id))
		}
	}
}

func TestFlexGrowShrink(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		a, b      Style
		wantA     float64
		wantB     float64
		wantBLeft float64
	}{
		{
			name:  "grow by factor",
			width: 400,
			a:     Style{FlexBasis: Points(100), FlexGrow: 1},
			b:     Style{FlexBasis: Points(100), FlexGrow: 3},
			wantA: 150, wantB: 250, wantBLeft: 150,
		},
		{
			name:  "shrink by basis",
			width: 100,
			a:     Style{Width: Points(100), FlexShrink: 1},
			b:     Style{Width: Points(100), FlexShrink: 1},
			wantA: 50, wantB: 50, wantBLeft: 50,
		},
		{
			name:  "max clamps and redistributes",
			width: 400,
			a:     Style{Width: Points(100), MaxWidth: Points(120), FlexGrow: 1},
			b:     Style{Width: Points(100), FlexGrow: 1},
			wantA: 120, wantB: 280, wantBLeft: 120,
		},
		{
			name:  "no shrink overflows",
			width: 100,
			a:     Style{Width: Points(80)},
			b:     Style{Width: Points(80)},
			wantA: 80, wantB: 80, wantBLeft: 80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newRowTree(tt.width, 50, nil)
			a := addNode(tree, tree.Root(), "a", tt.a)
			b := addNode(tree, tree.Root(), "b", tt.b)
			layoutRoot(tree)
			if got := tree.Layout(a).Size.Width; math.Abs(got-tt.wantA) > 1e-9 {
				t.Errorf("a width = %v, want %v", got, tt.wantA)
			}
			if got := tree.Layout(b).Size.Width; math.Abs(got-tt.wantB) > 1e-9 {
				t.Errorf("b width = %v, want %v", got, tt.wantB)
			}
			if got := tree.Layout(b).Location.X; math.Abs(got-tt.wantBLeft) > 1e-9 {
				t.Errorf("b x = %v, want %v", got, tt.wantBLeft)
			}
		})
	}
}

func TestFlexJustify(t *testing.T) {
	tests := []struct {
		name    string
		justify Justify
		want    [2]float64
	}{
		{"start", JustifyStart, [2]float64{0, 50}},
		{"end", JustifyEnd, [2]float64{200, 250}},
		{"center", JustifyCenter, [2]float64{100, 150}},
		{"space between", JustifySpaceBetween, [2]float64{0, 250}},
		{"space around", JustifySpaceAround, [2]float64{50, 200}},
		{"space evenly", JustifySpaceEvenly, [2]float64{200.0 / 3, 400.0/3 + 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newRowTree(300, 50, func(st *Style) { st.JustifyContent = tt.justify })
			a := addNode(tree, tree.Root(), "a", box(50, 50))
			b := addNode(tree, tree.Root(), "b", box(50, 50))
			layoutRoot(tree)
			got := [2]float64{tree.Layout(a).Location.X, tree.Layout(b).Location.X}
			if math.Abs(got[0]-tt.want[0]) > 1e-9 || math.Abs(got[1]-tt.want[1]) > 1e-9 {
				t.Errorf("x = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexAlign(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		child Style
		wantY float64
		wantH float64
	}{
		{"stretch auto height", AlignStretch, Style{Width: Points(10)}, 0, 100},
		{"stretch keeps explicit height", AlignStretch, box(10, 20), 0, 20},
		{"start", AlignStart, box(10, 20), 0, 20},
		{"center", AlignCenter, box(10, 20), 40, 20},
		{"end", AlignEnd, box(10, 20), 80, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newRowTree(100, 100, func(st *Style) { st.AlignItems = tt.align })
			c := addNode(tree, tree.Root(), "c", tt.child)
			layoutRoot(tree)
			l := tree.Layout(c)
			if l.Location.Y != tt.wantY || l.Size.Height != tt.wantH {
				t.Errorf("y=%v h=%v, want y=%v h=%v", l.Location.Y, l.Size.Height, tt.wantY, tt.wantH)
			}
		})
	}
}

func TestFlexAlignSelfOverrides(t *testing.T) {
	tree := newRowTree(100, 100, func(st *Style) { st.AlignItems = AlignStart })
	end := AlignEnd
	c := addNode(tree, tree.Root(), "c", Style{Width: Points(10), Height: Points(10), AlignSelf: &end})
	layoutRoot(tree)
	if got := tree.Layout(c).Location.Y; got != 90 {
		t.Errorf("y = %v, want 90", got)
	}
}

func TestFlexPaddingBorderGapMargin(t *testing.T) {
	tree := newRowTree(400, 100, func(st *Style) {
		st.Padding = EdgeAll(10)
		st.Border = EdgeAll(2)
		st.Gap = 5
	})
	a := addNode(tree, tree.Root(), "a", box(20, 20))
	b := addNode(tree, tree.Root(), "b", Style{Width: Points(20), Height: Points(20), Margin: Edges{Left: 3, Top: 4}})
	layoutRoot(tree)

	if got := tree.Layout(a).Location; got != (Vec2{12, 12}) {
		t.Errorf("a location = %v, want (12,12)", got)
	}
	if got := tree.Layout(b).Location; got != (Vec2{12 + 20 + 5 + 3, 16}) {
		t.Errorf("b location = %v, want (40,16)", got)
	}
	root := tree.Layout(tree.Root())
	if root.Padding != EdgeAll(10) || root.Border != EdgeAll(2) {
		t.Errorf("root insets = %+v %+v", root.Padding, root.Border)
	}
}

func TestFlexColumnAutoHeight(t *testing.T) {
	tree := NewTree()
	tree.UpdateStyle(tree.Root(), func(st *Style) {
		st.Direction = Column
		st.Width = Points(100)
		st.Padding = EdgeAll(5)
	})
	a := addNode(tree, tree.Root(), "a", Style{Height: Points(30)})
	b := addNode(tree, tree.Root(), "b", Style{Height: Points(40)})
	layoutRoot(tree)

	if got := tree.Layout(tree.Root()).Size; got != (Size{100, 80}) {
		t.Errorf("root size = %v, want 100x80", got)
	}
	if got := tree.Layout(a).Size; got != (Size{90, 30}) {
		t.Errorf("a size = %v, want 90x30", got)
	}
	if got := tree.Layout(b).Location; got != (Vec2{5, 35}) {
		t.Errorf("b location = %v, want (5,35)", got)
	}
}

func TestBlockLayout(t *testing.T) {
	tree := newRowTree(200, 200, func(st *Style) { st.Display = DisplayBlock })
	a := addNode(tree, tree.Root(), "a", Style{Height: Points(30), Margin: Edges{Top: 5, Left: 10}})
	b := addNode(tree, tree.Root(), "b", box(50, 20))
	layoutRoot(tree)

	if got := tree.Layout(a); got.Location != (Vec2{10, 5}) || got.Size != (Size{190, 30}) {
		t.Errorf("a = %v %v", got.Location, got.Size)
	}
	if got := tree.Layout(b); got.Location != (Vec2{0, 35}) || got.Size != (Size{50, 20}) {
		t.Errorf("b = %v %v", got.Location, got.Size)
	}
}

func TestGridLayout(t *testing.T) {
	tree := newRowTree(320, 200, func(st *Style) {
		st.Display = DisplayGrid
		st.GridColumns = 3
		st.Gap = 10
	})
	heights := []float64{10, 30, 20, 15, 5}
	cells := make([]NodeID, len(heights))
	for i, h := range heights {
		cells[i] = addNode(tree, tree.Root(), "cell", Style{Height: Points(h)})
	}
	layoutRoot(tree)

	wantLoc := []Vec2{{0, 0}, {110, 0}, {220, 0}, {0, 40}, {110, 40}}
	wantSize := []Size{{100, 30}, {100, 30}, {100, 30}, {100, 15}, {100, 15}}
	for i, c := range cells {
		l := tree.Layout(c)
		if l.Location != wantLoc[i] || l.Size != wantSize[i] {
			t.Errorf("cell %d = %v %v, want %v %v", i, l.Location, l.Size, wantLoc[i], wantSize[i])
		}
	}
}

func TestDisplayNone(t *testing.T) {
	tree := newRowTree(300, 50, nil)
	addNode(tree, tree.Root(), "a", box(50, 50))
	hidden := addNode(tree, tree.Root(), "hidden", Style{Display: DisplayNone, Width: Points(50), Height: Points(50)})
	inner := addNode(tree, hidden, "inner", box(10, 10))
	c := addNode(tree, tree.Root(), "c", box(50, 50))
	layoutRoot(tree)

	if got := tree.Layout(c).Location.X; got != 50 {
		t.Errorf("c x = %v, want 50", got)
	}
	if tree.Layout(hidden) != (Layout{}) || tree.Layout(inner) != (Layout{}) {
		t.Error("hidden subtree should have zero layout")
	}
	if got, _ := tree.Topmost(75, 10); got != c {
		t.Errorf("topmost = %v, want c", tree.Name(got))
	}
}

func TestDisplayNoneRestoresSubtree(t *testing.T) {
	tree := newRowTree(300, 100, nil)
	panel := addNode(tree, tree.Root(), "panel", box(100, 100))
	row := addNode(tree, panel, "row", box(80, 40))
	leaf := addNode(tree, row, "leaf", box(20, 20))
	layoutRoot(tree)
	want := tree.Layout(leaf)

	tree.UpdateStyle(panel, func(st *Style) { st.Display = DisplayNone })
	layoutRoot(tree)
	if tree.Layout(leaf) != (Layout{}) {
		t.Fatalf("hidden leaf = %+v, want zero", tree.Layout(leaf))
	}

	tree.UpdateStyle(panel, func(st *Style) { st.Display = DisplayFlex })
	layoutRoot(tree)

	if diff := cmp.Diff(want, tree.Layout(leaf)); diff != "" {
		t.Errorf("leaf layout after unhide (-want +got):\n%s", diff)
	}
	if got := tree.Layout(row).Size; got != (Size{80, 40}) {
		t.Errorf("row size = %v, want 80x40", got)
	}
	if got := tree.Placement(leaf).Rect; got != (Rect{0, 0, 20, 20}) {
		t.Errorf("leaf rect = %v, want {0 0 20 20}", got)
	}
	if got, _ := tree.Topmost(10, 10); got != leaf {
		t.Errorf("topmost = %q, want leaf", tree.Name(got))
	}
	if got := names(tree, tree.HitTest(10, 10)); !cmp.Equal(got, []string{"root", "panel", "row", "leaf"}) {
		t.Errorf("hit path = %v", got)
	}
}

func TestMeasureFuncLeavesOnly(t *testing.T) {
	tree := newRowTree(300, 100, func(st *Style) { st.AlignItems = AlignStart })
	label := addNode(tree, tree.Root(), "label", Style{Padding: EdgeAll(2)})
	tree.SetContext(label, "hello")
	group := addNode(tree, tree.Root(), "group", Style{})
	addNode(tree, group, "child", box(10, 10))

	measured := map[string]int{}
	tree.SetMeasureFunc(func(tr *Tree, id NodeID, known KnownDimensions, avail AvailableSize) Size {
		measured[tr.Name(id)]++
		s, _ := tr.Context(id).(string)
		return Size{Width: float64(7 * len(s)), Height: 13}
	})
	layoutRoot(tree)

	if got := tree.Layout(label).Size; got != (Size{39, 17}) {
		t.Errorf("label size = %v, want 39x17", got)
	}
	if measured["group"] != 0 || measured["root"] != 0 {
		t.Errorf("containers were measured: %v", measured)
	}
	if measured["label"] == 0 {
		t.Error("label was never measured")
	}
}

func TestCustomSolver(t *testing.T) {
	tree := newRowTree(100, 100, func(st *Style) { st.Display = DisplayGrid })
	c := addNode(tree, tree.Root(), "c", Style{})
	tree.SetSolver(DisplayGrid, SolverFunc(func(lt LayoutTree, id NodeID, in LayoutInput) LayoutOutput {
		for _, child := range lt.ChildIDs(id) {
			out := lt.ComputeChild(child, LayoutInput{
				Known: KnownDimensions{Width: 7, HasWidth: true, Height: 9, HasHeight: true},
				Mode:  in.Mode,
			})
			if in.Mode == RunPerformLayout {
				lt.SetComputedLayout(child, Layout{Location: Vec2{5, 6}, Size: out.Size, ContentSize: out.ContentSize})
			}
		}
		size := Size{in.Known.Width, in.Known.Height}
		return LayoutOutput{Size: size, ContentSize: size}
	}))
	layoutRoot(tree)

	if got := tree.Layout(c); got.Location != (Vec2{5, 6}) || got.Size != (Size{7, 9}) {
		t.Errorf("c = %v %v", got.Location, got.Size)
	}
}

func TestSolverCacheAccess(t *testing.T) {
	tree := newRowTree(100, 100, func(st *Style) { st.Display = DisplayGrid })
	c := addNode(tree, tree.Root(), "c", Style{})
	seed, reset := true, false
	tree.SetSolver(DisplayGrid, SolverFunc(func(lt LayoutTree, id NodeID, in LayoutInput) LayoutOutput {
		childIn := LayoutInput{
			Known: KnownDimensions{Width: 7, HasWidth: true, Height: 9, HasHeight: true},
			Mode:  in.Mode,
		}
		for _, child := range lt.ChildIDs(id) {
			if reset {
				lt.CacheClear(child)
			}
			if _, ok := lt.CacheGet(child, childIn); !ok && seed {
				lt.CacheStore(child, childIn, LayoutOutput{Size: Size{11, 13}})
			}
			out := lt.ComputeChild(child, childIn)
			if in.Mode == RunPerformLayout {
				lt.SetComputedLayout(child, Layout{Size: out.Size})
			}
		}
		size := Size{in.Known.Width, in.Known.Height}
		return LayoutOutput{Size: size, ContentSize: size}
	}))

	layoutRoot(tree)
	if got := tree.Layout(c).Size; got != (Size{11, 13}) {
		t.Errorf("seeded size = %v, want 11x13", got)
	}
	if got := tree.RecomputeCount(c); got != 0 {
		t.Errorf("recompute count = %d, want 0", got)
	}

	seed, reset = false, true
	tree.MarkDirty(tree.Root())
	layoutRoot(tree)
	if got := tree.Layout(c).Size; got != (Size{7, 9}) {
		t.Errorf("size after clear = %v, want 7x9", got)
	}
}

func TestContentSizeOverflow(t *testing.T) {
	tree := NewTree()
	tree.UpdateStyle(tree.Root(), func(st *Style) {
		st.Direction = Column
		st.Width = Points(100)
		st.Height = Points(100)
		st.Padding = EdgeAll(5)
	})
	for range 3 {
		addNode(tree, tree.Root(), "row", Style{Height: Points(50)})
	}
	layoutRoot(tree)

	l := tree.Layout(tree.Root())
	if l.ContentSize != (Size{90, 150}) {
		t.Errorf("content size = %v, want 90x150", l.ContentSize)
	}
	if got := tree.MaxScroll(tree.Root()); got != (Vec2{0, 60}) {
		t.Errorf("max scroll = %v, want (0,60)", got)
	}
}

func TestDegenerateAvailableSpace(t *testing.T) {
	tree := NewTree()
	c := addNode(tree, tree.Root(), "c", Style{Width: Percent(50)})
	tree.ComputeLayout(tree.Root(), DefiniteSize(math.NaN(), -5))

	if got := tree.Layout(tree.Root()).Size; got != (Size{}) {
		t.Errorf("root size = %v, want zero", got)
	}
	if got := tree.Layout(c).Size; got != (Size{}) {
		t.Errorf("child size = %v, want zero", got)
	}
	if path := tree.HitTest(0, 0); len(path) != 0 {
		t.Errorf("hit test on empty root = %v, want empty", path)
	}

	// Degenerate input still memoizes.
	tree.ComputeLayout(tree.Root(), DefiniteSize(math.NaN(), -5))
	if st := tree.Stats(); st.Misses != 0 {
		t.Errorf("stats = %+v, want 0 misses", st)
	}
}

func TestPercentAgainstUnknownParentIsAuto(t *testing.T) {
	tree := NewTree()
	c := addNode(tree, tree.Root(), "c", Style{Width: Percent(50), Height: Points(10)})
	layoutRoot(tree)
	if got := tree.Layout(c).Size.Width; got != 0 {
		t.Errorf("width = %v, want 0 for unresolvable percent", got)
	}
}
