package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ebitenhost"
)

// frameTime is the simulated time between frames when replaying a script.
const frameTime = time.Second / 60

func newScriptCmd(opts *options) *cobra.Command {
	var maxFrames int
	cmd := &cobra.Command{
		Use:   "script <file.json>",
		Short: "Replay an input script against the demo scene without a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := loadScript(args[0])
			if err != nil {
				return err
			}

			scene := newScene(opts)
			scene.Tree().SetMeasureFunc(ebitenhost.DefaultFont().MeasureFunc())
			now := time.Unix(0, 0)
			scene.SetClock(func() time.Time { return now })
			buildDemo(scene, opts.logger)
			scene.Resize(float64(opts.cfg.Window.Width), float64(opts.cfg.Window.Height))
			logEvents(scene, opts)
			scene.SetTestRunner(runner)

			frames := 0
			for !runner.Done() {
				if frames >= maxFrames {
					return fmt.Errorf("script did not finish within %d frames", maxFrames)
				}
				scene.Update(float32(frameTime.Seconds()))
				for _, label := range scene.TakeScreenshots() {
					opts.logger.Warn("screenshot skipped, no window", "label", label)
				}
				now = now.Add(frameTime)
				frames++
			}
			opts.logger.Info("script finished", "frames", frames, "layout", scene.Tree().Stats())
			return nil
		},
	}
	cmd.Flags().IntVar(&maxFrames, "max-frames", 10000, "abort after this many frames")
	return cmd
}

func loadScript(path string) (*arbor.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	runner, err := arbor.LoadTestScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return runner, nil
}

// logEvents logs every dispatched event at info level.
func logEvents(scene *arbor.Scene, opts *options) {
	tree := scene.Tree()
	for t := arbor.EventMouseDown; t <= arbor.EventWheel; t++ {
		scene.On(t, func(e arbor.Event) {
			name := "-"
			if !e.Node.IsZero() && tree.Contains(e.Node) {
				name = tree.Name(e.Node)
			}
			opts.logger.Info(e.Type.String(), "node", name, "x", e.X, "y", e.Y)
		})
	}
}
