package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ebitenhost"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		showFPS     bool
		watch       bool
		scriptPath  string
		screenshots string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the demo window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene := newScene(opts)
			buildDemo(scene, opts.logger)
			if scriptPath != "" {
				runner, err := loadScript(scriptPath)
				if err != nil {
					return err
				}
				scene.SetTestRunner(runner)
			}
			var onUpdate func(*arbor.Scene)
			if watch {
				if opts.configPath == "" {
					return fmt.Errorf("--watch needs --config")
				}
				w, err := newConfigWatcher(opts.configPath, opts.logger)
				if err != nil {
					return err
				}
				defer w.Close()
				go w.run(cmd.Context())
				onUpdate = func(s *arbor.Scene) { applyUpdates(s, opts, w.Updates()) }
			}
			return ebitenhost.Run(scene, ebitenhost.RunConfig{
				Title:         opts.cfg.Window.Title,
				Width:         opts.cfg.Window.Width,
				Height:        opts.cfg.Window.Height,
				Background:    arbor.Color{R: 0.137, G: 0.118, B: 0.176, A: 1},
				ShowFPS:       showFPS,
				ScreenshotDir: screenshots,
				OnUpdate:      onUpdate,
			})
		},
	}
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS overlay")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload --config when the file changes")
	cmd.Flags().StringVar(&scriptPath, "script", "", "replay an input script in the window")
	cmd.Flags().StringVar(&screenshots, "screenshots", "screenshots", "directory for script screenshots")
	return cmd
}

func newScene(opts *options) *arbor.Scene {
	scene := arbor.NewScene()
	scene.SetLogger(opts.logger)
	scene.ApplyConfig(opts.cfg)
	if opts.verbose {
		scene.SetDebugMode(true)
	}
	return scene
}
