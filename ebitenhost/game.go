package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/arbor"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background arbor.Color
	// ShowFPS overlays the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// Font is used for text drawing and measurement; DefaultFont when nil.
	Font *Font
	// ScreenshotDir receives PNGs requested with Scene.Screenshot.
	// Defaults to "screenshots".
	ScreenshotDir string
	// OnUpdate, when set, runs at the start of every tick on the game
	// goroutine. Use it to hand work from other goroutines to the scene.
	OnUpdate func(*arbor.Scene)
}

// Game adapts an arbor scene to ebiten.Game.
type Game struct {
	Scene  *arbor.Scene
	Config RunConfig

	poller *Poller
	events []arbor.InputEvent
	width  int
	height int
	canvas *Canvas
}

// NewGame creates a Game for scene. The scene's measure function is set to
// the configured font.
func NewGame(scene *arbor.Scene, cfg RunConfig) *Game {
	if cfg.Font == nil {
		cfg.Font = DefaultFont()
	}
	scene.Tree().SetMeasureFunc(cfg.Font.MeasureFunc())
	return &Game{Scene: scene, Config: cfg, poller: NewPoller()}
}

// Update polls input, feeds it to the scene and advances the scene's tweens
// and injected input.
func (g *Game) Update() error {
	if g.Config.OnUpdate != nil {
		g.Config.OnUpdate(g.Scene)
	}
	g.events = g.poller.Poll(g.events[:0])
	for _, ev := range g.events {
		g.Scene.HandleInput(ev)
	}
	g.Scene.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Draw clears the screen, renders the scene and saves any screenshots
// queued during the frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.Config.Background.A > 0 {
		screen.Fill(toNRGBA(g.Config.Background))
	}
	if g.canvas == nil || g.canvas.root != screen {
		g.canvas = NewCanvas(screen, g.Config.Font)
	}
	g.Scene.Render(g.canvas)
	if g.Config.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	g.flushScreenshots(screen)
}

// Layout resizes the scene whenever the window size changes. The scene
// re-lays out before the next hit test.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.Scene.HandleInput(arbor.InputEvent{Kind: arbor.InputResize, X: float64(outsideWidth), Y: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs scene until the window closes.
func Run(scene *arbor.Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(NewGame(scene, cfg)); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}
