package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ebitenhost"
)

var (
	colorCard    = arbor.Color{R: 0.3, G: 0.7, B: 0.9, A: 1}
	colorHover   = arbor.Color{R: 0.5, G: 0.85, B: 1, A: 1}
	colorZone    = arbor.Color{R: 0.2, G: 0.2, B: 0.27, A: 1}
	colorZoneHot = arbor.Color{R: 0.3, G: 0.55, B: 0.35, A: 1}
	colorButton  = arbor.Color{R: 0.9, G: 0.55, B: 0.2, A: 1}
	colorFocus   = arbor.Color{R: 1, G: 1, B: 0.4, A: 1}
)

const cardCount = 20

// buildDemo populates the scene tree:
//
//	root (column)
//	├── title
//	├── body (row)
//	│   ├── list (column, scrolls) → cards
//	│   └── zone
//	└── footer (row) → buttons
func buildDemo(scene *arbor.Scene, logger *log.Logger) {
	tree := scene.Tree()
	root := scene.Root()
	tree.UpdateStyle(root, func(st *arbor.Style) {
		st.Direction = arbor.Column
		st.Padding = arbor.EdgeAll(8)
		st.Gap = 8
	})

	title := &ebitenhost.Label{Content: "Drag cards into the zone", Color: arbor.ColorWhite}
	titleID := add(tree, root, "title", arbor.Style{})
	tree.SetContext(titleID, title)
	scene.Register(titleID, title)

	body := add(tree, root, "body", arbor.Style{Direction: arbor.Row, FlexGrow: 1, FlexShrink: 1, Gap: 8})

	list := add(tree, body, "list", arbor.Style{
		Direction:  arbor.Column,
		Width:      arbor.Percent(50),
		Gap:        4,
		Padding:    arbor.EdgeAll(4),
		Overflow:   arbor.OverflowScroll,
		FlexShrink: 1,
	})
	for i := range cardCount {
		id := add(tree, list, fmt.Sprintf("card%d", i), arbor.Style{Height: arbor.Points(40)})
		scene.Register(id, &card{id: id, label: fmt.Sprintf("Card %d", i+1)})
	}

	zoneID := add(tree, body, "zone", arbor.Style{FlexGrow: 1, FlexShrink: 1})
	z := &zone{status: title, statusID: titleID, logger: logger}
	scene.Register(zoneID, z)

	footer := add(tree, root, "footer", arbor.Style{Direction: arbor.Row, Gap: 8, Height: arbor.Points(30)})
	actions := []struct {
		name string
		fn   func(s *arbor.Scene)
	}{
		{"Top", func(s *arbor.Scene) { s.ScrollTo(list, arbor.Vec2{}, 0.3, ease.OutCubic) }},
		{"Bottom", func(s *arbor.Scene) { s.ScrollTo(list, s.Tree().MaxScroll(list), 0.3, ease.OutCubic) }},
		{"Reset", func(s *arbor.Scene) { z.reset(s) }},
	}
	for _, a := range actions {
		id := add(tree, footer, "button"+a.name, arbor.Style{Width: arbor.Points(100)})
		scene.Register(id, &button{text: a.name, onActivate: a.fn, logger: logger})
	}
}

func add(tree *arbor.Tree, parent arbor.NodeID, name string, st arbor.Style) arbor.NodeID {
	id := tree.AddNode(st)
	tree.SetName(id, name)
	tree.AddChild(parent, id)
	return id
}

// card follows the pointer while dragged and springs back on release.
type card struct {
	arbor.BaseObject
	id      arbor.NodeID
	label   string
	hovered bool
}

func (c *card) Render(_ *arbor.Scene, rc arbor.RenderContext) {
	col := colorCard
	if c.hovered {
		col = colorHover
	}
	rc.Canvas.FillRect(rc.Placement.Rect, col)
	rc.Canvas.DrawText(c.label, rc.Placement.Rect.X+6, rc.Placement.Rect.Y+12, arbor.Color{A: 1})
}

func (c *card) MouseEnter(*arbor.Scene, arbor.Event) { c.hovered = true }
func (c *card) MouseLeave(*arbor.Scene, arbor.Event) { c.hovered = false }

func (c *card) DragMove(s *arbor.Scene, e arbor.Event) {
	off := s.Tree().Offset(c.id)
	s.Tree().SetOffset(c.id, off.Add(arbor.Vec2{X: e.DeltaX, Y: e.DeltaY}))
}

func (c *card) DragEnd(s *arbor.Scene, _ arbor.Event) {
	s.Animate(arbor.TweenOffset(s.Tree(), c.id, arbor.Vec2{}, 0.25, ease.OutQuad))
}

// zone counts cards dropped on it.
type zone struct {
	arbor.BaseObject
	hot      bool
	dropped  int
	status   *ebitenhost.Label
	statusID arbor.NodeID
	logger   *log.Logger
}

func (z *zone) Render(_ *arbor.Scene, rc arbor.RenderContext) {
	col := colorZone
	if z.hot {
		col = colorZoneHot
	}
	rc.Canvas.FillRect(rc.Placement.Rect, col)
}

func (z *zone) DragOver(*arbor.Scene, arbor.Event)  { z.hot = true }
func (z *zone) MouseLeave(*arbor.Scene, arbor.Event) { z.hot = false }

func (z *zone) Drop(s *arbor.Scene, e arbor.Event) {
	z.hot = false
	z.dropped++
	z.logger.Info("card dropped", "card", s.Tree().Name(e.Related), "total", z.dropped)
	z.status.SetText(s.Tree(), z.statusID, fmt.Sprintf("%d card(s) dropped", z.dropped))
}

func (z *zone) reset(s *arbor.Scene) {
	z.dropped = 0
	z.status.SetText(s.Tree(), z.statusID, "Drag cards into the zone")
}

// button takes focus and activates on click, Enter or Space.
type button struct {
	arbor.BaseObject
	text       string
	focused    bool
	onActivate func(s *arbor.Scene)
	logger     *log.Logger
}

func (b *button) Render(_ *arbor.Scene, rc arbor.RenderContext) {
	rc.Canvas.FillRect(rc.Placement.Rect, colorButton)
	rc.Canvas.DrawText(b.text, rc.Placement.Rect.X+8, rc.Placement.Rect.Y+8, arbor.Color{A: 1})
}

func (b *button) PostRender(_ *arbor.Scene, rc arbor.RenderContext) {
	if b.focused {
		rc.Canvas.StrokeRect(rc.Placement.Rect, 2, colorFocus)
	}
}

func (b *button) AcceptsFocus() bool                   { return true }
func (b *button) FocusGained(*arbor.Scene, arbor.Event) { b.focused = true }
func (b *button) FocusLost(*arbor.Scene, arbor.Event)   { b.focused = false }

func (b *button) MouseUp(s *arbor.Scene, e arbor.Event) {
	if e.Button == arbor.MouseButtonLeft {
		b.activate(s)
	}
}

func (b *button) KeyDown(s *arbor.Scene, e arbor.Event) {
	if e.Key == arbor.KeyEnter || e.Key == arbor.KeySpace {
		b.activate(s)
		s.StopPropagation()
	}
}

func (b *button) KeyUp(*arbor.Scene, arbor.Event) {}

func (b *button) activate(s *arbor.Scene) {
	b.logger.Info("button activated", "button", b.text)
	b.onActivate(s)
}
