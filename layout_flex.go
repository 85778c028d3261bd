package arbor

import "math"

// flexItem is the per-child working state of a single flex line.
type flexItem struct {
	id     NodeID
	style  *Style
	hidden bool

	basis    float64
	main     float64
	cross    float64
	minMain  float64
	maxMain  float64
	marginMS float64 // main-axis start margin
	marginME float64 // main-axis end margin
	marginCS float64 // cross-axis start margin
	marginCE float64 // cross-axis end margin
	crossSet bool    // cross size came from style or stretch
}

// axis picks components of sizes and edges by main/cross orientation.
type axis struct{ row bool }

func (a axis) main(s Size) float64 {
	if a.row {
		return s.Width
	}
	return s.Height
}

func (a axis) cross(s Size) float64 {
	if a.row {
		return s.Height
	}
	return s.Width
}

func (a axis) size(main, cross float64) Size {
	if a.row {
		return Size{main, cross}
	}
	return Size{cross, main}
}

func (a axis) vec(main, cross float64) Vec2 {
	if a.row {
		return Vec2{main, cross}
	}
	return Vec2{cross, main}
}

func (a axis) mainDim(s *Style) (d, lo, hi Dimension) {
	if a.row {
		return s.Width, s.MinWidth, s.MaxWidth
	}
	return s.Height, s.MinHeight, s.MaxHeight
}

func (a axis) crossDim(s *Style) (d, lo, hi Dimension) {
	if a.row {
		return s.Height, s.MinHeight, s.MaxHeight
	}
	return s.Width, s.MinWidth, s.MaxWidth
}

// edges returns (mainStart, mainEnd, crossStart, crossEnd).
func (a axis) edges(e Edges) (ms, me, cs, ce float64) {
	if a.row {
		return e.Left, e.Right, e.Top, e.Bottom
	}
	return e.Top, e.Bottom, e.Left, e.Right
}

func (a axis) known(main float64, hasMain bool, cross float64, hasCross bool) KnownDimensions {
	if a.row {
		return KnownDimensions{Width: main, HasWidth: hasMain, Height: cross, HasHeight: hasCross}
	}
	return KnownDimensions{Width: cross, HasWidth: hasCross, Height: main, HasHeight: hasMain}
}

func (a axis) space(s AvailableSize) (main, cross AvailableSpace) {
	if a.row {
		return s.Width, s.Height
	}
	return s.Height, s.Width
}

// containerBox resolves the outer size of a container (where known) and the
// space it offers its children.
type containerBox struct {
	outer    Size
	hasW     bool
	hasH     bool
	inset    Edges
	innerAvl AvailableSize
}

func resolveContainer(st *Style, in LayoutInput) containerBox {
	b := containerBox{inset: st.Padding.Add(st.Border)}
	b.outer.Width, b.hasW = in.Known.Width, in.Known.HasWidth
	if !b.hasW {
		if w, ok := resolveAgainst(st.Width, in.Available.Width); ok {
			b.outer.Width, b.hasW = clampDim(w, st.MinWidth, st.MaxWidth, in.Available.Width), true
		}
	}
	b.outer.Height, b.hasH = in.Known.Height, in.Known.HasHeight
	if !b.hasH {
		if h, ok := resolveAgainst(st.Height, in.Available.Height); ok {
			b.outer.Height, b.hasH = clampDim(h, st.MinHeight, st.MaxHeight, in.Available.Height), true
		}
	}
	b.innerAvl = AvailableSize{
		Width:  shrinkSpace(in.Available.Width, b.inset.Horizontal()),
		Height: shrinkSpace(in.Available.Height, b.inset.Vertical()),
	}
	if b.hasW {
		b.innerAvl.Width = Definite(math.Max(0, b.outer.Width-b.inset.Horizontal()))
	}
	if b.hasH {
		b.innerAvl.Height = Definite(math.Max(0, b.outer.Height-b.inset.Vertical()))
	}
	return b
}

// finish resolves auto axes from content and applies min/max bounds.
func (b containerBox) finish(st *Style, in LayoutInput, content Size) Size {
	w, h := b.outer.Width, b.outer.Height
	if !b.hasW {
		w = clampDim(content.Width+b.inset.Horizontal(), st.MinWidth, st.MaxWidth, in.Available.Width)
	}
	if !b.hasH {
		h = clampDim(content.Height+b.inset.Vertical(), st.MinHeight, st.MaxHeight, in.Available.Height)
	}
	return Size{w, h}
}

// solveFlex is the default single-line flexbox solver.
func solveFlex(t LayoutTree, id NodeID, in LayoutInput) LayoutOutput {
	st := t.StyleOf(id)
	ax := axis{row: st.Direction == Row}
	box := resolveContainer(st, in)
	availMain, availCross := ax.space(box.innerAvl)
	innerMain, hasMain := availMain.Value, availMain.IsDefinite() && ax.mainKnown(box)
	innerCross, hasCross := availCross.Value, availCross.IsDefinite() && ax.crossKnown(box)

	children := t.ChildIDs(id)
	items := make([]flexItem, 0, len(children))
	visible := 0
	for _, c := range children {
		cs := t.StyleOf(c)
		it := flexItem{id: c, style: cs, hidden: cs.Display == DisplayNone}
		if !it.hidden {
			visible++
		}
		items = append(items, it)
	}

	gaps := 0.0
	if visible > 1 {
		gaps = st.Gap * float64(visible-1)
	}

	// Hypothetical main sizes.
	used := gaps
	for i := range items {
		it := &items[i]
		if it.hidden {
			continue
		}
		cs := it.style
		it.marginMS, it.marginME, it.marginCS, it.marginCE = ax.edges(cs.Margin)
		d, lo, hi := ax.mainDim(cs)
		cd, _, _ := ax.crossDim(cs)

		crossKnown, hasCrossKnown := cd.Resolve(innerCross, hasCross)
		if b, ok := cs.FlexBasis.Resolve(innerMain, hasMain); ok {
			it.basis = b
		} else if b, ok := d.Resolve(innerMain, hasMain); ok {
			it.basis = b
		} else {
			out := t.ComputeChild(it.id, LayoutInput{
				Known:     ax.known(0, false, crossKnown, hasCrossKnown),
				Available: box.innerAvl,
				Mode:      RunComputeSize,
			})
			it.basis = ax.main(out.Size)
		}
		it.minMain = 0
		if v, ok := lo.Resolve(innerMain, hasMain); ok {
			it.minMain = v
		}
		it.maxMain = math.Inf(1)
		if v, ok := hi.Resolve(innerMain, hasMain); ok {
			it.maxMain = v
		}
		it.main = clamp(it.basis, it.minMain, it.maxMain)
		used += it.main + it.marginMS + it.marginME
	}

	// Resolve flexible lengths against the free space.
	if hasMain {
		resolveFlexibleLengths(items, innerMain-used)
	}

	// Cross sizes.
	lineCross := 0.0
	for i := range items {
		it := &items[i]
		if it.hidden {
			continue
		}
		cs := it.style
		d, lo, hi := ax.crossDim(cs)
		align := alignFor(st, cs)
		if v, ok := d.Resolve(innerCross, hasCross); ok {
			it.cross, it.crossSet = v, true
		} else if align == AlignStretch && hasCross {
			it.cross, it.crossSet = innerCross-it.marginCS-it.marginCE, true
		} else {
			out := t.ComputeChild(it.id, LayoutInput{
				Known:     ax.known(it.main, true, 0, false),
				Available: box.innerAvl,
				Mode:      RunComputeSize,
			})
			it.cross = ax.cross(out.Size)
		}
		minC, maxC := 0.0, math.Inf(1)
		if v, ok := lo.Resolve(innerCross, hasCross); ok {
			minC = v
		}
		if v, ok := hi.Resolve(innerCross, hasCross); ok {
			maxC = v
		}
		it.cross = clamp(it.cross, minC, maxC)
		lineCross = math.Max(lineCross, it.cross+it.marginCS+it.marginCE)
	}
	if hasCross {
		lineCross = innerCross
	} else {
		// An auto cross size grows to the tallest item, and stretch items
		// follow it.
		for i := range items {
			it := &items[i]
			if it.hidden || it.crossSet {
				continue
			}
			if alignFor(st, it.style) == AlignStretch {
				it.cross = math.Max(0, lineCross-it.marginCS-it.marginCE)
			}
		}
	}

	contentMain := gaps
	for i := range items {
		if !items[i].hidden {
			contentMain += items[i].main + items[i].marginMS + items[i].marginME
		}
	}
	size := box.finish(st, in, ax.size(contentMain, lineCross))
	if in.Mode == RunComputeSize {
		return LayoutOutput{Size: size, ContentSize: size}
	}

	// Position.
	insMS, _, insCS, _ := ax.edges(box.inset)
	mainSpace := ax.main(size) - ax.main(box.inset.size())
	crossSpace := ax.cross(size) - ax.cross(box.inset.size())
	lead, between := justify(st.JustifyContent, mainSpace-contentMain, visible)
	cursor := insMS + lead

	var extent Size
	for i := range items {
		it := &items[i]
		if it.hidden {
			t.ComputeChild(it.id, LayoutInput{Mode: RunPerformLayout})
			t.SetComputedLayout(it.id, Layout{})
			continue
		}
		cursor += it.marginMS
		crossPos := insCS + it.marginCS
		switch alignFor(st, it.style) {
		case AlignEnd:
			crossPos = insCS + crossSpace - it.cross - it.marginCE
		case AlignCenter:
			crossPos = insCS + it.marginCS + (crossSpace-it.marginCS-it.marginCE-it.cross)/2
		}

		out := t.ComputeChild(it.id, LayoutInput{
			Known:     ax.known(it.main, true, it.cross, true),
			Available: box.innerAvl,
			Mode:      RunPerformLayout,
		})
		loc := ax.vec(cursor, crossPos)
		t.SetComputedLayout(it.id, Layout{
			Location:    loc,
			Size:        out.Size,
			ContentSize: out.ContentSize,
			Border:      it.style.Border,
			Padding:     it.style.Padding,
		})
		extent = growExtent(extent, loc, out.Size, it.style.Margin)
		cursor += it.main + it.marginME + st.Gap + between
	}

	return LayoutOutput{Size: size, ContentSize: contentSize(size, box.inset, extent)}
}

func (a axis) mainKnown(b containerBox) bool {
	if a.row {
		return b.hasW
	}
	return b.hasH
}

func (a axis) crossKnown(b containerBox) bool {
	if a.row {
		return b.hasH
	}
	return b.hasW
}

// resolveFlexibleLengths grows or shrinks item main sizes to absorb free
// space. Items hitting a min/max bound are frozen and the remainder is
// redistributed among the others.
func resolveFlexibleLengths(items []flexItem, free float64) {
	if free == 0 {
		return
	}
	frozen := make([]bool, len(items))
	for i := range items {
		if items[i].hidden {
			frozen[i] = true
		}
	}
	for pass := 0; pass < len(items)+1 && math.Abs(free) > 1e-9; pass++ {
		total := 0.0
		for i := range items {
			if frozen[i] {
				continue
			}
			if free > 0 {
				total += items[i].style.FlexGrow
			} else {
				total += items[i].style.FlexShrink * items[i].basis
			}
		}
		if total <= 0 {
			return
		}
		remaining := 0.0
		clamped := false
		for i := range items {
			if frozen[i] {
				continue
			}
			it := &items[i]
			var share float64
			if free > 0 {
				share = free * it.style.FlexGrow / total
			} else {
				share = free * it.style.FlexShrink * it.basis / total
			}
			want := it.main + share
			got := clamp(want, it.minMain, it.maxMain)
			if got != want {
				frozen[i] = true
				clamped = true
			}
			remaining += want - got
			it.main = got
		}
		free = remaining
		if !clamped {
			return
		}
	}
}

// justify returns the leading offset and the extra space between items.
func justify(j Justify, free float64, n int) (lead, between float64) {
	if n == 0 {
		return 0, 0
	}
	if free < 0 {
		free = 0
		if j != JustifyEnd && j != JustifyCenter {
			return 0, 0
		}
	}
	switch j {
	case JustifyEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	case JustifySpaceBetween:
		if n == 1 {
			return 0, 0
		}
		return 0, free / float64(n-1)
	case JustifySpaceAround:
		each := free / float64(n)
		return each / 2, each
	case JustifySpaceEvenly:
		each := free / float64(n+1)
		return each, each
	default:
		return 0, 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func (e Edges) size() Size {
	return Size{e.Horizontal(), e.Vertical()}
}

// growExtent widens the bounding extent of children to include a child box.
func growExtent(ext Size, loc Vec2, sz Size, margin Edges) Size {
	ext.Width = math.Max(ext.Width, loc.X+sz.Width+margin.Right)
	ext.Height = math.Max(ext.Height, loc.Y+sz.Height+margin.Bottom)
	return ext
}

// contentSize measures the scrollable extent from the inner box origin. It is
// never smaller than the inner box.
func contentSize(size Size, inset Edges, extent Size) Size {
	inner := Size{
		Width:  math.Max(0, size.Width-inset.Horizontal()),
		Height: math.Max(0, size.Height-inset.Vertical()),
	}
	return Size{
		Width:  math.Max(inner.Width, extent.Width-inset.Left),
		Height: math.Max(inner.Height, extent.Height-inset.Top),
	}
}
