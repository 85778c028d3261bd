package arbor

import "math"

// solveGrid places visible children row-major into GridColumns equal-width
// tracks separated by Gap. Each row is as tall as its tallest cell.
func solveGrid(t LayoutTree, id NodeID, in LayoutInput) LayoutOutput {
	st := t.StyleOf(id)
	box := resolveContainer(st, in)
	cols := st.GridColumns
	if cols < 1 {
		cols = 1
	}

	var cells []NodeID
	for _, c := range t.ChildIDs(id) {
		if t.StyleOf(c).Display == DisplayNone {
			if in.Mode == RunPerformLayout {
				t.ComputeChild(c, LayoutInput{Mode: RunPerformLayout})
				t.SetComputedLayout(c, Layout{})
			}
			continue
		}
		cells = append(cells, c)
	}

	// Track width: definite inner width split evenly, otherwise the widest
	// max-content cell.
	colGaps := st.Gap * float64(cols-1)
	var trackW float64
	if box.innerAvl.Width.IsDefinite() && box.hasW {
		trackW = math.Max(0, (box.innerAvl.Width.Value-colGaps)/float64(cols))
	} else {
		for _, c := range cells {
			out := t.ComputeChild(c, LayoutInput{
				Available: AvailableSize{Width: MaxContent(), Height: box.innerAvl.Height},
				Mode:      RunComputeSize,
			})
			trackW = math.Max(trackW, out.Size.Width)
		}
	}

	rows := (len(cells) + cols - 1) / cols
	rowH := make([]float64, rows)
	cellAvail := AvailableSize{Width: Definite(trackW), Height: box.innerAvl.Height}
	for i, c := range cells {
		cs := t.StyleOf(c)
		known := KnownDimensions{Width: trackW, HasWidth: true}
		if h, ok := cs.Height.Resolve(box.innerAvl.Height.Value, box.innerAvl.Height.IsDefinite() && box.hasH); ok {
			known.Height, known.HasHeight = h, true
		}
		out := t.ComputeChild(c, LayoutInput{Known: known, Available: cellAvail, Mode: RunComputeSize})
		r := i / cols
		rowH[r] = math.Max(rowH[r], out.Size.Height)
	}

	content := Size{Width: trackW*float64(cols) + colGaps}
	if len(cells) < cols {
		n := float64(len(cells))
		content.Width = trackW*n + st.Gap*math.Max(0, n-1)
	}
	for r, h := range rowH {
		content.Height += h
		if r > 0 {
			content.Height += st.Gap
		}
	}

	size := box.finish(st, in, content)
	if in.Mode == RunComputeSize {
		return LayoutOutput{Size: size, ContentSize: size}
	}

	var extent Size
	y := box.inset.Top
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			i := r*cols + col
			if i >= len(cells) {
				break
			}
			c := cells[i]
			cs := t.StyleOf(c)
			loc := Vec2{X: box.inset.Left + float64(col)*(trackW+st.Gap), Y: y}
			out := t.ComputeChild(c, LayoutInput{
				Known:     KnownDimensions{Width: trackW, HasWidth: true, Height: rowH[r], HasHeight: true},
				Available: cellAvail,
				Mode:      RunPerformLayout,
			})
			t.SetComputedLayout(c, Layout{
				Location:    loc,
				Size:        out.Size,
				ContentSize: out.ContentSize,
				Border:      cs.Border,
				Padding:     cs.Padding,
			})
			extent = growExtent(extent, loc, out.Size, Edges{})
		}
		y += rowH[r] + st.Gap
	}
	return LayoutOutput{Size: size, ContentSize: contentSize(size, box.inset, extent)}
}
