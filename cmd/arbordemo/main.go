// Command arbordemo runs a small arbor scene: a scrollable list of draggable
// cards, a drop zone and a row of focusable buttons.
//
//	arbordemo run --config demo.toml --watch
//	arbordemo script testdata/drag.json -v
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	verbose    bool
	logger     *log.Logger
	cfg        arbor.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "arbordemo",
		Short:        "Interactive demo of the arbor scene graph",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			opts.logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
				Prefix:          "arbordemo",
			})
			opts.cfg = arbor.DefaultConfig()
			if opts.configPath == "" {
				return nil
			}
			cfg, err := arbor.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger.Debug("loaded config", "path", opts.configPath, "drag_threshold", cfg.DragThreshold, "wheel_line_height", cfg.WheelLineHeight)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newScriptCmd(opts))
	return root
}
