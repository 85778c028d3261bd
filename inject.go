package arbor

// Injected input is queued in frames. Scene.Update consumes one frame per
// call and feeds its events through HandleInput exactly as host input
// would be, so injected sequences exercise hover, drag promotion and focus
// the same way real input does.

func (s *Scene) injectFrame(evs ...InputEvent) {
	s.injectQueue = append(s.injectQueue, evs)
}

// InjectMove queues a pointer move to (x, y).
func (s *Scene) InjectMove(x, y float64) {
	s.injectFrame(InputEvent{Kind: InputPointerMoved, X: x, Y: y})
}

// InjectPress queues a move to (x, y) followed by a left button press.
func (s *Scene) InjectPress(x, y float64) {
	s.injectFrame(
		InputEvent{Kind: InputPointerMoved, X: x, Y: y},
		InputEvent{Kind: InputButtonDown, Button: MouseButtonLeft},
	)
}

// InjectRelease queues a move to (x, y) followed by a left button release.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectFrame(
		InputEvent{Kind: InputPointerMoved, X: x, Y: y},
		InputEvent{Kind: InputButtonUp, Button: MouseButtonLeft},
	)
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Whether the press is promoted to a drag depends on the time
// that passes between frames and the scene's drag threshold. Minimum frames
// is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press and release in one frame.
func (s *Scene) InjectKey(key Key, mods KeyModifiers) {
	s.injectFrame(
		InputEvent{Kind: InputKeyDown, Key: key, Modifiers: mods},
		InputEvent{Kind: InputKeyUp, Key: key, Modifiers: mods},
	)
}

// InjectWheel queues a wheel event at the current pointer position.
func (s *Scene) InjectWheel(dx, dy float64, unit WheelUnit) {
	s.injectFrame(InputEvent{Kind: InputWheel, X: dx, Y: dy, Unit: unit})
}

// PendingInjections returns the number of queued frames.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one frame from the inject queue and handles its
// events. Returns true if a frame was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	frame := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = nil
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	for _, ev := range frame {
		s.HandleInput(ev)
	}
	return true
}
