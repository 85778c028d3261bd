package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/arbor"
)

// keyTable maps ebiten keys to arbor keys. Repeats are emitted in this order.
var keyTable = [...]struct {
	eb  ebiten.Key
	key arbor.Key
}{
	{ebiten.KeyTab, arbor.KeyTab},
	{ebiten.KeyEnter, arbor.KeyEnter},
	{ebiten.KeyEscape, arbor.KeyEscape},
	{ebiten.KeySpace, arbor.KeySpace},
	{ebiten.KeyBackspace, arbor.KeyBackspace},
	{ebiten.KeyArrowUp, arbor.KeyUp},
	{ebiten.KeyArrowDown, arbor.KeyDown},
	{ebiten.KeyArrowLeft, arbor.KeyLeft},
	{ebiten.KeyArrowRight, arbor.KeyRight},
	{ebiten.KeyPageUp, arbor.KeyPageUp},
	{ebiten.KeyPageDown, arbor.KeyPageDown},
	{ebiten.KeyHome, arbor.KeyHome},
	{ebiten.KeyEnd, arbor.KeyEnd},
}

var keyMap = func() map[ebiten.Key]arbor.Key {
	m := make(map[ebiten.Key]arbor.Key, len(keyTable))
	for _, k := range keyTable {
		m[k.eb] = k.key
	}
	return m
}()

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	ar arbor.MouseButton
}{
	{ebiten.MouseButtonLeft, arbor.MouseButtonLeft},
	{ebiten.MouseButtonRight, arbor.MouseButtonRight},
	{ebiten.MouseButtonMiddle, arbor.MouseButtonMiddle},
}

// keyRepeatDelay and keyRepeatInterval are in ticks.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 4
)

// Poller converts ebiten's per-tick input state into normalized events.
// Only changes are reported: a still cursor produces no move event.
type Poller struct {
	hasCursor bool
	cursorX   int
	cursorY   int
	focused   bool
	keys      []ebiten.Key
}

// NewPoller creates a poller that assumes the window starts focused.
func NewPoller() *Poller {
	return &Poller{focused: true}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= arbor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= arbor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= arbor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= arbor.ModMeta
	}
	return mods
}

// Poll appends the events of the current tick to buf. Call it once per
// ebiten Update.
func (p *Poller) Poll(buf []arbor.InputEvent) []arbor.InputEvent {
	mods := readModifiers()

	if focused := ebiten.IsFocused(); focused != p.focused {
		p.focused = focused
		kind := arbor.InputFocusOut
		if focused {
			kind = arbor.InputFocusIn
		}
		buf = append(buf, arbor.InputEvent{Kind: kind})
	}

	mx, my := ebiten.CursorPosition()
	if !p.hasCursor || mx != p.cursorX || my != p.cursorY {
		p.hasCursor = true
		p.cursorX, p.cursorY = mx, my
		buf = append(buf, arbor.InputEvent{Kind: arbor.InputPointerMoved, X: float64(mx), Y: float64(my), Modifiers: mods})
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			buf = append(buf, arbor.InputEvent{Kind: arbor.InputButtonDown, Button: b.ar, Modifiers: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			buf = append(buf, arbor.InputEvent{Kind: arbor.InputButtonUp, Button: b.ar, Modifiers: mods})
		}
	}

	// Ebiten reports positive Y for scrolling up; arbor scrolls content
	// down for positive deltas.
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		buf = append(buf, arbor.InputEvent{Kind: arbor.InputWheel, X: -wx, Y: -wy, Unit: arbor.WheelLines, Modifiers: mods})
	}

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if ak, ok := keyMap[k]; ok {
			buf = append(buf, arbor.InputEvent{Kind: arbor.InputKeyDown, Key: ak, Modifiers: mods})
		}
	}
	buf = appendKeyRepeats(buf, mods, inpututil.KeyPressDuration)
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if ak, ok := keyMap[k]; ok {
			buf = append(buf, arbor.InputEvent{Kind: arbor.InputKeyUp, Key: ak, Modifiers: mods})
		}
	}
	return buf
}

// appendKeyRepeats emits a repeat KeyDown for every held key whose press
// duration lands on a repeat tick, in keyTable order.
func appendKeyRepeats(buf []arbor.InputEvent, mods arbor.KeyModifiers, held func(ebiten.Key) int) []arbor.InputEvent {
	for _, k := range keyTable {
		d := held(k.eb)
		if d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0 {
			buf = append(buf, arbor.InputEvent{Kind: arbor.InputKeyDown, Key: k.key, Repeat: true, Modifiers: mods})
		}
	}
	return buf
}
