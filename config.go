package arbor

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that decodes from strings such as "100ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Config holds the tunable interaction settings of a Scene and the window
// a host should open.
type Config struct {
	DragThreshold   Duration     `toml:"drag_threshold"`
	WheelLineHeight float64      `toml:"wheel_line_height"`
	Debug           bool         `toml:"debug"`
	Window          WindowConfig `toml:"window"`
}

// DefaultConfig returns the settings a new Scene starts with.
func DefaultConfig() Config {
	return Config{
		DragThreshold:   Duration{defaultDragThreshold},
		WheelLineHeight: defaultWheelLineHeight,
		Window: WindowConfig{
			Title:  "arbor",
			Width:  800,
			Height: 600,
		},
	}
}

// LoadConfig reads a TOML file. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("arbor: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("arbor: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if !finite(c.WheelLineHeight) || c.WheelLineHeight <= 0 {
		return fmt.Errorf("wheel_line_height must be positive, got %v", c.WheelLineHeight)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
