package arbor

import (
	"math"
	"time"
)

// RunMode tells a solver whether to only size a node or to also position its
// children.
type RunMode uint8

const (
	RunComputeSize   RunMode = iota // size only; no SetComputedLayout calls
	RunPerformLayout                // size and position the whole subtree
	runModeCount
)

// KnownDimensions carries sizes the parent has already fixed for a node.
type KnownDimensions struct {
	Width, Height       float64
	HasWidth, HasHeight bool
}

// SpaceKind distinguishes definite available space from intrinsic probes.
type SpaceKind uint8

const (
	SpaceDefinite SpaceKind = iota
	SpaceMinContent
	SpaceMaxContent
)

// AvailableSpace is the room offered along one axis.
type AvailableSpace struct {
	Kind  SpaceKind
	Value float64
}

// Definite returns AvailableSpace of exactly v.
func Definite(v float64) AvailableSpace {
	return AvailableSpace{Kind: SpaceDefinite, Value: v}
}

// MaxContent returns an unbounded probe.
func MaxContent() AvailableSpace {
	return AvailableSpace{Kind: SpaceMaxContent}
}

// MinContent returns a shrink-to-fit probe.
func MinContent() AvailableSpace {
	return AvailableSpace{Kind: SpaceMinContent}
}

// IsDefinite reports whether a concrete length is available.
func (a AvailableSpace) IsDefinite() bool {
	return a.Kind == SpaceDefinite
}

// AvailableSize is the room offered along both axes.
type AvailableSize struct {
	Width, Height AvailableSpace
}

// DefiniteSize returns a fully definite AvailableSize.
func DefiniteSize(w, h float64) AvailableSize {
	return AvailableSize{Width: Definite(w), Height: Definite(h)}
}

// LayoutInput is what a parent hands to a child computation.
type LayoutInput struct {
	Known     KnownDimensions
	Available AvailableSize
	Mode      RunMode
}

// LayoutOutput is what a computation returns to its parent.
type LayoutOutput struct {
	Size        Size
	ContentSize Size
}

// Layout is the computed result stored per node. Location is relative to the
// parent's border box.
type Layout struct {
	Location    Vec2
	Size        Size
	ContentSize Size
	Border      Edges
	Padding     Edges
}

// LayoutStats counts cache behaviour for the most recent ComputeLayout call.
type LayoutStats struct {
	Hits     int
	Misses   int
	Duration time.Duration
}

// CacheTree exposes per-node cache storage. ComputeChild already reads and
// writes it; solvers use it directly to probe or seed a child's entry.
type CacheTree interface {
	CacheGet(id NodeID, in LayoutInput) (LayoutOutput, bool)
	CacheStore(id NodeID, in LayoutInput, out LayoutOutput)
	CacheClear(id NodeID)
}

// LayoutTree is the capability set a solver sees. ComputeChild is the only
// way to recurse; it goes through the cache.
type LayoutTree interface {
	CacheTree
	ChildIDs(id NodeID) []NodeID
	StyleOf(id NodeID) *Style
	SetComputedLayout(id NodeID, l Layout)
	ComputeChild(id NodeID, in LayoutInput) LayoutOutput
}

// Solver computes a container node. Implementations must only recurse
// through LayoutTree.ComputeChild and must only call SetComputedLayout in
// RunPerformLayout mode.
type Solver interface {
	Solve(tree LayoutTree, id NodeID, in LayoutInput) LayoutOutput
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(tree LayoutTree, id NodeID, in LayoutInput) LayoutOutput

// Solve calls f.
func (f SolverFunc) Solve(tree LayoutTree, id NodeID, in LayoutInput) LayoutOutput {
	return f(tree, id, in)
}

// MeasureFunc sizes a leaf node. It is only called for nodes without
// children. Use Tree.Context to reach per-node state such as text or fonts.
type MeasureFunc func(tree *Tree, id NodeID, known KnownDimensions, available AvailableSize) Size

// --- Cache ---

type cacheEntry struct {
	key   cacheKey
	out   LayoutOutput
	valid bool
}

type cacheKey struct {
	known     KnownDimensions
	available AvailableSize
}

// layoutCache holds one entry per run mode.
type layoutCache struct {
	entries [runModeCount]cacheEntry
}

func (c *layoutCache) get(in LayoutInput) (LayoutOutput, bool) {
	e := &c.entries[in.Mode]
	if e.valid && e.key == (cacheKey{in.Known, in.Available}) {
		return e.out, true
	}
	return LayoutOutput{}, false
}

func (c *layoutCache) store(in LayoutInput, out LayoutOutput) {
	c.entries[in.Mode] = cacheEntry{key: cacheKey{in.Known, in.Available}, out: out, valid: true}
}

// clear empties the cache and reports whether anything was there.
func (c *layoutCache) clear() bool {
	had := false
	for i := range c.entries {
		if c.entries[i].valid {
			had = true
		}
		c.entries[i] = cacheEntry{}
	}
	return had
}

func (c *layoutCache) valid() bool {
	for i := range c.entries {
		if c.entries[i].valid {
			return true
		}
	}
	return false
}

// --- Engine ---

// layoutEngine bridges the Tree to the solvers. It implements LayoutTree and
// CacheTree over the node slots.
type layoutEngine struct {
	tree    *Tree
	solvers map[Display]Solver
	measure MeasureFunc
	stats   LayoutStats
}

func (e *layoutEngine) init(t *Tree) {
	e.tree = t
	e.solvers = map[Display]Solver{
		DisplayFlex:  SolverFunc(solveFlex),
		DisplayBlock: SolverFunc(solveBlock),
		DisplayGrid:  SolverFunc(solveGrid),
	}
}

func (e *layoutEngine) ChildIDs(id NodeID) []NodeID {
	return e.tree.slot(id).children
}

func (e *layoutEngine) StyleOf(id NodeID) *Style {
	return &e.tree.slot(id).style
}

func (e *layoutEngine) SetComputedLayout(id NodeID, l Layout) {
	e.tree.slot(id).layout = l
}

func (e *layoutEngine) CacheGet(id NodeID, in LayoutInput) (LayoutOutput, bool) {
	return e.tree.slot(id).cache.get(in)
}

func (e *layoutEngine) CacheStore(id NodeID, in LayoutInput, out LayoutOutput) {
	e.tree.slot(id).cache.store(in, out)
}

func (e *layoutEngine) CacheClear(id NodeID) {
	e.tree.slot(id).cache.clear()
}

// ComputeChild is the memoized recursion step. A cache hit returns the stored
// output without descending into the subtree.
func (e *layoutEngine) ComputeChild(id NodeID, in LayoutInput) LayoutOutput {
	in = sanitizeInput(in)
	s := e.tree.slot(id)
	if out, ok := s.cache.get(in); ok {
		e.stats.Hits++
		return out
	}
	e.stats.Misses++
	s.recomputes++

	var out LayoutOutput
	switch {
	case s.style.Display == DisplayNone:
		out = e.hide(id, in)
	case len(s.children) == 0:
		out = e.leaf(id, in)
	default:
		solver := e.solvers[s.style.Display]
		if solver == nil {
			solver = SolverFunc(solveFlex)
		}
		out = solver.Solve(e, id, in)
	}
	// A solver may have grown the slot slice through a measure hook that
	// added nodes, so look the slot up again.
	e.tree.slot(id).cache.store(in, out)
	return out
}

// hide zeroes the subtree of a DisplayNone node and clears the descendants'
// caches, so showing the node again lays its whole subtree out afresh.
func (e *layoutEngine) hide(id NodeID, in LayoutInput) LayoutOutput {
	if in.Mode == RunPerformLayout {
		e.tree.Walk(id, func(n NodeID) bool {
			e.tree.slot(n).layout = Layout{}
			if n != id {
				e.CacheClear(n)
			}
			return true
		})
	}
	return LayoutOutput{}
}

// leaf sizes a childless node from its style, falling back to the measure
// hook for auto axes.
func (e *layoutEngine) leaf(id NodeID, in LayoutInput) LayoutOutput {
	st := &e.tree.slot(id).style
	inset := st.Padding.Add(st.Border)

	w, hasW := in.Known.Width, in.Known.HasWidth
	h, hasH := in.Known.Height, in.Known.HasHeight
	if !hasW {
		w, hasW = resolveAgainst(st.Width, in.Available.Width)
	}
	if !hasH {
		h, hasH = resolveAgainst(st.Height, in.Available.Height)
	}

	if (!hasW || !hasH) && e.measure != nil {
		known := KnownDimensions{HasWidth: hasW, HasHeight: hasH}
		if hasW {
			known.Width = math.Max(0, w-inset.Horizontal())
		}
		if hasH {
			known.Height = math.Max(0, h-inset.Vertical())
		}
		avail := AvailableSize{
			Width:  shrinkSpace(in.Available.Width, inset.Horizontal()),
			Height: shrinkSpace(in.Available.Height, inset.Vertical()),
		}
		m := e.measure(e.tree, id, known, avail)
		if !hasW {
			w = m.Width + inset.Horizontal()
		}
		if !hasH {
			h = m.Height + inset.Vertical()
		}
	} else {
		if !hasW {
			w = inset.Horizontal()
		}
		if !hasH {
			h = inset.Vertical()
		}
	}

	st = &e.tree.slot(id).style
	w = clampDim(w, st.MinWidth, st.MaxWidth, in.Available.Width)
	h = clampDim(h, st.MinHeight, st.MaxHeight, in.Available.Height)
	size := Size{w, h}
	return LayoutOutput{Size: size, ContentSize: contentSize(size, inset, Size{})}
}

// --- Public entry points on Tree ---

// ComputeLayout lays out the subtree at id within available. Unchanged style
// and unchanged available space make a repeat call a pure cache hit that
// performs no solver work and yields identical geometry.
func (t *Tree) ComputeLayout(id NodeID, available AvailableSize) {
	start := time.Now()
	t.engine.stats = LayoutStats{}

	st := &t.slot(id).style
	in := LayoutInput{Available: available, Mode: RunPerformLayout}
	in = sanitizeInput(in)
	if w, ok := resolveAgainst(st.Width, in.Available.Width); ok {
		in.Known.Width, in.Known.HasWidth = w, true
	} else if in.Available.Width.IsDefinite() && id == t.root {
		in.Known.Width, in.Known.HasWidth = in.Available.Width.Value, true
	}
	if h, ok := resolveAgainst(st.Height, in.Available.Height); ok {
		in.Known.Height, in.Known.HasHeight = h, true
	} else if in.Available.Height.IsDefinite() && id == t.root {
		in.Known.Height, in.Known.HasHeight = in.Available.Height.Value, true
	}

	out := t.engine.ComputeChild(id, in)
	s := t.slot(id)
	loc := s.layout.Location
	if s.parent.IsZero() {
		loc = Vec2{}
	}
	s.layout = layoutFor(s, loc, out)

	t.engine.stats.Duration = time.Since(start)
	if t.debug {
		t.log.Debug("layout computed",
			"root", t.slot(id).name,
			"hits", t.engine.stats.Hits,
			"misses", t.engine.stats.Misses,
			"took", t.engine.stats.Duration)
	}
}

// Layout returns the node's cached layout, relative to its parent.
func (t *Tree) Layout(id NodeID) Layout {
	return t.slot(id).layout
}

// LayoutValid reports whether the node currently holds a cached layout.
func (t *Tree) LayoutValid(id NodeID) bool {
	return t.slot(id).cache.valid()
}

// RecomputeCount returns how many times the node missed the cache and ran
// its solver or measure hook.
func (t *Tree) RecomputeCount(id NodeID) int {
	return t.slot(id).recomputes
}

// Stats returns cache statistics for the last ComputeLayout call.
func (t *Tree) Stats() LayoutStats {
	return t.engine.stats
}

// SetSolver replaces the algorithm used for a display mode. DisplayNone is
// always handled by the engine.
func (t *Tree) SetSolver(d Display, s Solver) {
	t.engine.solvers[d] = s
	t.markAllDirty()
}

// SetMeasureFunc installs the leaf measurement hook.
func (t *Tree) SetMeasureFunc(fn MeasureFunc) {
	t.engine.measure = fn
	t.markAllDirty()
}

func (t *Tree) markAllDirty() {
	for i := range t.slots {
		t.slots[i].cache.clear()
	}
}

// --- Helpers ---

// layoutFor builds the stored layout of a node placed at loc.
func layoutFor(s *nodeSlot, loc Vec2, out LayoutOutput) Layout {
	return Layout{
		Location:    loc,
		Size:        out.Size,
		ContentSize: out.ContentSize,
		Border:      s.style.Border,
		Padding:     s.style.Padding,
	}
}

// sanitizeInput turns degenerate definite space into zero so NaN never
// reaches the cache key (NaN != NaN would defeat memoization).
func sanitizeInput(in LayoutInput) LayoutInput {
	in.Available.Width = sanitizeSpace(in.Available.Width)
	in.Available.Height = sanitizeSpace(in.Available.Height)
	if in.Known.HasWidth {
		in.Known.Width = sanitizeLength(in.Known.Width)
	} else {
		in.Known.Width = 0
	}
	if in.Known.HasHeight {
		in.Known.Height = sanitizeLength(in.Known.Height)
	} else {
		in.Known.Height = 0
	}
	return in
}

func sanitizeSpace(a AvailableSpace) AvailableSpace {
	if a.Kind != SpaceDefinite {
		return AvailableSpace{Kind: a.Kind}
	}
	a.Value = sanitizeLength(a.Value)
	return a
}

func sanitizeLength(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

// resolveAgainst resolves d against the available space on the same axis.
func resolveAgainst(d Dimension, a AvailableSpace) (float64, bool) {
	v, ok := d.Resolve(a.Value, a.IsDefinite())
	if !ok {
		return 0, false
	}
	return sanitizeLength(v), true
}

func shrinkSpace(a AvailableSpace, by float64) AvailableSpace {
	if a.IsDefinite() {
		a.Value = math.Max(0, a.Value-by)
	}
	return a
}

// clampDim applies min/max style bounds to v.
func clampDim(v float64, lo, hi Dimension, parent AvailableSpace) float64 {
	if m, ok := resolveAgainst(hi, parent); ok && v > m {
		v = m
	}
	if m, ok := resolveAgainst(lo, parent); ok && v < m {
		v = m
	}
	return sanitizeLength(v)
}
