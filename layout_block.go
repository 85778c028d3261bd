package arbor

import "math"

// solveBlock stacks visible children vertically. Auto-width children fill the
// inner width; the container's auto height is the sum of its children.
func solveBlock(t LayoutTree, id NodeID, in LayoutInput) LayoutOutput {
	st := t.StyleOf(id)
	box := resolveContainer(st, in)
	innerW, hasInnerW := box.innerAvl.Width.Value, box.innerAvl.Width.IsDefinite()
	innerH, hasInnerH := box.innerAvl.Height.Value, box.innerAvl.Height.IsDefinite() && box.hasH

	type blockItem struct {
		id   NodeID
		st   *Style
		size Size
	}
	var items []blockItem
	var content Size
	for _, c := range t.ChildIDs(id) {
		cs := t.StyleOf(c)
		if cs.Display == DisplayNone {
			if in.Mode == RunPerformLayout {
				t.ComputeChild(c, LayoutInput{Mode: RunPerformLayout})
				t.SetComputedLayout(c, Layout{})
			}
			continue
		}
		known := KnownDimensions{}
		if w, ok := cs.Width.Resolve(innerW, hasInnerW); ok {
			known.Width, known.HasWidth = w, true
		} else if hasInnerW {
			known.Width, known.HasWidth = math.Max(0, innerW-cs.Margin.Horizontal()), true
		}
		if h, ok := cs.Height.Resolve(innerH, hasInnerH); ok {
			known.Height, known.HasHeight = h, true
		}
		out := t.ComputeChild(c, LayoutInput{Known: known, Available: box.innerAvl, Mode: RunComputeSize})
		items = append(items, blockItem{id: c, st: cs, size: out.Size})
		content.Width = math.Max(content.Width, out.Size.Width+cs.Margin.Horizontal())
		content.Height += out.Size.Height + cs.Margin.Vertical()
	}

	size := box.finish(st, in, content)
	if in.Mode == RunComputeSize {
		return LayoutOutput{Size: size, ContentSize: size}
	}

	var extent Size
	y := box.inset.Top
	for _, it := range items {
		y += it.st.Margin.Top
		loc := Vec2{X: box.inset.Left + it.st.Margin.Left, Y: y}
		out := t.ComputeChild(it.id, LayoutInput{
			Known:     KnownDimensions{Width: it.size.Width, HasWidth: true, Height: it.size.Height, HasHeight: true},
			Available: box.innerAvl,
			Mode:      RunPerformLayout,
		})
		t.SetComputedLayout(it.id, Layout{
			Location:    loc,
			Size:        out.Size,
			ContentSize: out.ContentSize,
			Border:      it.st.Border,
			Padding:     it.st.Padding,
		})
		extent = growExtent(extent, loc, out.Size, it.st.Margin)
		y += out.Size.Height + it.st.Margin.Bottom
	}
	return LayoutOutput{Size: size, ContentSize: contentSize(size, box.inset, extent)}
}
