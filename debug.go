package arbor

import (
	"os"

	"github.com/charmbracelet/log"
)

// defaultLogger writes warnings and errors to stderr. Debug mode lowers the
// level to debug.
func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "arbor",
		Level:  log.WarnLevel,
	})
}

// debugMaxTreeDepth is the depth past which debug mode warns.
const debugMaxTreeDepth = 32

func (t *Tree) debugCheckTreeDepth(id NodeID) {
	if d := t.depth(id); d > debugMaxTreeDepth {
		t.log.Warn("tree depth exceeds threshold", "depth", d, "threshold", debugMaxTreeDepth, "node", t.slot(id).name)
	}
}

// debugMaxChildCount is the child count past which debug mode warns.
const debugMaxChildCount = 1000

func (t *Tree) debugCheckChildCount(id NodeID) {
	if n := len(t.slot(id).children); n > debugMaxChildCount {
		t.log.Warn("node has too many children", "children", n, "threshold", debugMaxChildCount, "node", t.slot(id).name)
	}
}
