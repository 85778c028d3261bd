package arbor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScreenshotQueue(t *testing.T) {
	s := NewScene()
	if got := s.TakeScreenshots(); got != nil {
		t.Fatalf("fresh queue = %v", got)
	}
	s.Screenshot("a")
	s.Screenshot("b")
	if diff := cmp.Diff([]string{"a", "b"}, s.TakeScreenshots()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if got := s.TakeScreenshots(); got != nil {
		t.Errorf("queue not emptied: %v", got)
	}
}

func TestRunnerScreenshotStep(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "initial"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.Update(1.0 / 60)

	if diff := cmp.Diff([]string{"initial"}, s.TakeScreenshots()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if !runner.Done() {
		t.Error("runner not done after its only step")
	}
}
