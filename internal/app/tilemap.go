package app

import (
	"fmt"

	"github.com/kjkrol/goktile/internal/config"
	"github.com/kjkrol/goktile/pkg/chunk"
	"github.com/kjkrol/goktile/pkg/gfx"
	"github.com/kjkrol/goktile/pkg/grid"
	"github.com/kjkrol/goktile/pkg/input"
	"github.com/sirupsen/logrus"
)

// TileMap wires a random world, its palette, the chunk window and the viewport
// and reacts to input events. Hosts feed it events and call Frame and Draw once
// per frame.
type TileMap struct {
	World   *grid.World
	Palette *gfx.Palette
	Window  *chunk.Window
	View    *grid.Viewport

	log      logrus.FieldLogger
	panSpeed int
	quit     bool
}

func New(cfg *config.Config, log logrus.FieldLogger) (*TileMap, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	palette, err := GreenPalette(cfg.World.Kinds, cfg.Map.TilePixelLength)
	if err != nil {
		return nil, err
	}
	world := grid.NewRandomWorld(cfg.Map.MapTilesWide(), cfg.Map.MapTilesHigh(), palette.Size(), cfg.World.Seed)
	if err := world.Validate(palette.Size()); err != nil {
		return nil, fmt.Errorf("world does not match palette: %w", err)
	}
	win := chunk.NewWindow(cfg.Map, world, palette)
	win.SetLogger(log)

	log.WithFields(logrus.Fields{
		"tilesWide": cfg.Map.MapTilesWide(),
		"tilesHigh": cfg.Map.MapTilesHigh(),
		"kinds":     palette.Size(),
		"seed":      cfg.World.Seed,
	}).Info("tile map created")

	return &TileMap{
		World:    world,
		Palette:  palette,
		Window:   win,
		View:     grid.NewViewport(win),
		log:      log,
		panSpeed: max(cfg.Window.PanSpeed, 1),
	}, nil
}

// GreenPalette registers kinds grass shades from dark to light.
func GreenPalette(kinds, size int) (*gfx.Palette, error) {
	if kinds <= 0 {
		return nil, fmt.Errorf("palette needs at least one kind, got %d", kinds)
	}
	palette := gfx.NewPalette()
	for i := 0; i < kinds; i++ {
		lightness := 0.0
		if kinds > 1 {
			lightness = float64(i) / float64(kinds-1)
		}
		if _, err := palette.Add(gfx.GreenTile(lightness, size)); err != nil {
			return nil, fmt.Errorf("green shade %d: %w", i, err)
		}
	}
	return palette, nil
}

// Handle applies one input event. Events other than Resize are ignored until
// the first Resize sized the window.
func (m *TileMap) Handle(event input.Event) {
	if _, ok := event.(input.Resize); !ok && !m.Window.Sized() {
		return
	}
	switch e := event.(type) {
	case input.Resize:
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		m.View.Resize(e.Width, e.Height)
		m.log.WithFields(logrus.Fields{"width": e.Width, "height": e.Height}).Debug("viewport resized")
	case input.Pan:
		m.View.Move(e.DX, e.DY)
	case input.KeyPress:
		switch e.Label {
		case "Escape", "Q", "q":
			m.quit = true
		case "Home":
			conf := m.Window.Config()
			m.View.CenterOn(conf.MapTilesWide()/2, conf.MapTilesHigh()/2)
		default:
			if pan, ok := input.KeyPan(e.Label, m.panSpeed); ok {
				m.View.Move(pan.DX, pan.DY)
			}
		}
	case input.ButtonPress:
		tx, ty := m.View.ScreenToTile(e.X, e.Y)
		if !m.Window.ContainsTile(tx, ty) {
			return
		}
		m.log.WithFields(logrus.Fields{"x": tx, "y": ty, "id": m.World.TileAt(tx, ty)}).Info("tile picked")
	}
}

func (m *TileMap) Quit() bool {
	return m.quit
}

// Frame bakes the chunks that changed since the last frame.
func (m *TileMap) Frame(device gfx.Device) int {
	if !m.Window.Sized() {
		return 0
	}
	return m.Window.Update(device)
}

func (m *TileMap) Draw(device gfx.Device) {
	if !m.Window.Sized() {
		return
	}
	m.Window.Render(device, m.View.Camera())
}

func (m *TileMap) Close() {
	if m.Window.Sized() {
		m.Window.Dispose()
	}
}
