package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/arbor"
)

func TestConfigWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	if err := os.WriteFile(path, []byte("wheel_line_height = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := newConfigWatcher(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newConfigWatcher: %v", err)
	}
	defer w.Close()
	w.debounce = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.run(ctx)

	// An invalid file is ignored.
	if err := os.WriteFile(path, []byte("wheel_line_height = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-w.Updates():
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("wheel_line_height = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-w.Updates():
		if cfg.WheelLineHeight != 40 {
			t.Errorf("wheel_line_height = %v, want 40", cfg.WheelLineHeight)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestApplyUpdates(t *testing.T) {
	scene, _ := newDemoScene(t)
	opts := &options{cfg: arbor.DefaultConfig()}
	updates := make(chan arbor.Config, 1)

	applyUpdates(scene, opts, updates)
	if opts.cfg.WheelLineHeight != 16 {
		t.Fatal("config changed without an update")
	}

	cfg := arbor.DefaultConfig()
	cfg.WheelLineHeight = 4
	updates <- cfg
	applyUpdates(scene, opts, updates)
	if opts.cfg.WheelLineHeight != 4 {
		t.Errorf("wheel_line_height = %v, want 4", opts.cfg.WheelLineHeight)
	}
}
