package arbor

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The leading edges are inside and the trailing edges are outside, so two
// rectangles sharing an edge never both contain a point on it. Empty,
// negative or non-finite rectangles contain nothing.
func (r Rect) Contains(x, y float64) bool {
	if r.Empty() || !finite(x) || !finite(y) {
		return false
	}
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no area or holds a non-finite coordinate.
func (r Rect) Empty() bool {
	if !finite(r.X) || !finite(r.Y) || !finite(r.Width) || !finite(r.Height) {
		return true
	}
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Intersect returns the overlapping area of r and other, or an empty Rect
// when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by the given edges. The result never has a negative size.
func (r Rect) Inset(e Edges) Rect {
	out := Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  r.Width - e.Left - e.Right,
		Height: r.Height - e.Top - e.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec2) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Edges holds per-side thicknesses for padding, border and margin.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// EdgeAll returns Edges with every side set to n.
func EdgeAll(n float64) Edges {
	return Edges{n, n, n, n}
}

// EdgeSymmetric returns Edges with vertical sides v and horizontal sides h.
func EdgeSymmetric(v, h float64) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Add returns the per-side sum of e and o.
func (e Edges) Add(o Edges) Edges {
	return Edges{e.Top + o.Top, e.Right + o.Right, e.Bottom + o.Bottom, e.Left + o.Left}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventMouseDown   EventType = iota // button pressed over the hovered node
	EventMouseUp                      // button released over the hovered node
	EventMouseEnter                   // pointer became topmost over a node
	EventMouseLeave                   // pointer stopped being topmost over a node
	EventDragStart                    // press held past the drag threshold, then moved
	EventDragMove                     // pointer moved while dragging
	EventDragEnd                      // button released after dragging
	EventDragOver                     // dragged pointer is over a node other than the source
	EventDrop                         // button released over a node while dragging
	EventFocusGained                  // node received keyboard focus
	EventFocusLost                    // node lost keyboard focus
	EventKeyDown                      // key pressed while a node had focus
	EventKeyUp                        // key released while a node had focus
	EventWheel                        // wheel scrolled over a node
	eventTypeCount
)

var eventTypeNames = [...]string{
	EventMouseDown:   "MouseDown",
	EventMouseUp:     "MouseUp",
	EventMouseEnter:  "MouseEnter",
	EventMouseLeave:  "MouseLeave",
	EventDragStart:   "DragStart",
	EventDragMove:    "DragMove",
	EventDragEnd:     "DragEnd",
	EventDragOver:    "DragOver",
	EventDrop:        "Drop",
	EventFocusGained: "FocusGained",
	EventFocusLost:   "FocusLost",
	EventKeyDown:     "KeyDown",
	EventKeyUp:       "KeyUp",
	EventWheel:       "Wheel",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// WheelUnit tells whether wheel deltas are in lines or pixels.
type WheelUnit uint8

const (
	WheelLines WheelUnit = iota
	WheelPixels
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
