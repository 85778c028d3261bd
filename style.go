package arbor

// Display selects the layout algorithm used for a node.
type Display uint8

const (
	DisplayFlex  Display = iota // flexbox container (default)
	DisplayBlock                // children stacked vertically
	DisplayGrid                 // fixed column count, equal tracks
	DisplayNone                 // node and subtree take no space and are not hit
)

// Unit specifies how a Dimension is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // size determined by content or flex
	UnitPoints              // absolute pixels
	UnitPercent             // percentage of the parent's inner size
)

// Dimension is a length that can be absolute, a percentage, or auto.
type Dimension struct {
	Amount float64
	Unit   Unit
}

// Auto returns a Dimension computed from content or flex.
func Auto() Dimension {
	return Dimension{Unit: UnitAuto}
}

// Points returns an absolute Dimension.
func Points(v float64) Dimension {
	return Dimension{Amount: v, Unit: UnitPoints}
}

// Percent returns a Dimension relative to the parent's inner size.
// The value is on a 0-100 scale (50 = 50%).
func Percent(p float64) Dimension {
	return Dimension{Amount: p, Unit: UnitPercent}
}

// IsAuto reports whether d is computed from content or flex.
func (d Dimension) IsAuto() bool {
	return d.Unit == UnitAuto
}

// Resolve returns the concrete length of d against the parent length.
// ok is false for auto, and for percentages when the parent is unknown.
func (d Dimension) Resolve(parent float64, parentKnown bool) (v float64, ok bool) {
	switch d.Unit {
	case UnitPoints:
		return d.Amount, true
	case UnitPercent:
		if !parentKnown {
			return 0, false
		}
		return parent * d.Amount / 100, true
	default:
		return 0, false
	}
}

// Direction specifies the main axis of a flex container.
type Direction uint8

const (
	Row    Direction = iota // children laid out left-to-right
	Column                  // children laid out top-to-bottom
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // pack at start
	JustifyEnd                         // pack at end
	JustifyCenter                      // center children
	JustifySpaceBetween                // even space between, none at edges
	JustifySpaceAround                 // even space around each child
	JustifySpaceEvenly                 // equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignStretch Align = iota // stretch to fill the cross axis
	AlignStart                // align to start of cross axis
	AlignEnd                  // align to end of cross axis
	AlignCenter               // center on cross axis
)

// Overflow controls whether a container scrolls its content.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// Style is the solver input for a node. Everything except the solvers
// treats it as an opaque record.
type Style struct {
	Display Display

	// Sizing
	Width     Dimension
	Height    Dimension
	MinWidth  Dimension
	MinHeight Dimension
	MaxWidth  Dimension
	MaxHeight Dimension

	// Flex container
	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	Gap            float64

	// Flex item
	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Dimension
	AlignSelf  *Align // nil inherits the parent's AlignItems

	// Grid container
	GridColumns int

	// Spacing
	Padding Edges
	Border  Edges
	Margin  Edges

	Overflow Overflow
}

// DefaultStyle returns a Style with sensible defaults: an auto-sized flex row
// whose children stretch and may shrink.
func DefaultStyle() Style {
	return Style{
		Width:      Auto(),
		Height:     Auto(),
		MinWidth:   Auto(),
		MinHeight:  Auto(),
		MaxWidth:   Auto(),
		MaxHeight:  Auto(),
		FlexBasis:  Auto(),
		Direction:  Row,
		AlignItems: AlignStretch,
		FlexShrink: 1,
	}
}

// alignFor resolves the effective cross-axis alignment for a child.
func alignFor(parent, child *Style) Align {
	if child.AlignSelf != nil {
		return *child.AlignSelf
	}
	return parent.AlignItems
}
