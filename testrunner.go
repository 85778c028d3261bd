package arbor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSteps is returned by LoadTestScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
	Lines  bool    `json:"lines,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var scriptKeys = map[string]Key{
	"tab":       KeyTab,
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"space":     KeySpace,
	"backspace": KeyBackspace,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
}

// TestRunner sequences injected input across frames for automated
// interaction testing. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
//
//	{"steps": [
//	  {"action": "move", "x": 10, "y": 10},
//	  {"action": "click", "x": 10, "y": 10},
//	  {"action": "drag", "fromX": 10, "fromY": 10, "toX": 500, "toY": 10, "frames": 12},
//	  {"action": "key", "key": "tab", "shift": true},
//	  {"action": "wheel", "y": 3, "lines": true},
//	  {"action": "wait", "frames": 5},
//	  {"action": "screenshot", "label": "after-drag"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "drag", "wheel", "wait", "screenshot":
		case "key":
			if _, ok := scriptKeys[st.Key]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before injected input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		s.InjectMove(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		var mods KeyModifiers
		if st.Shift {
			mods |= ModShift
		}
		s.InjectKey(scriptKeys[st.Key], mods)
	case "wheel":
		unit := WheelPixels
		if st.Lines {
			unit = WheelLines
		}
		s.InjectWheel(st.X, st.Y, unit)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
