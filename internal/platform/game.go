package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kjkrol/goktile/internal/app"
	"github.com/kjkrol/goktile/pkg/input"
)

// Game is the ebiten shell around a tile map. Update turns ebiten input into
// bus events, drains the bus and bakes dirty chunks; Draw composites them.
type Game struct {
	tiles    *app.TileMap
	device   *Device
	bus      *input.Bus
	sub      *input.Subscription
	panSpeed int

	width, height int
	dragging      bool
	lastX, lastY  int
}

func NewGame(tiles *app.TileMap, device *Device, bus *input.Bus, panSpeed int) *Game {
	return &Game{
		tiles:    tiles,
		device:   device,
		bus:      bus,
		sub:      bus.Subscribe(tiles.Handle),
		panSpeed: max(panSpeed, 1),
	}
}

func (g *Game) Update() error {
	g.pollInput()
	g.bus.Drain()
	if g.tiles.Quit() {
		g.sub.Unsubscribe()
		return ebiten.Termination
	}
	g.tiles.Frame(g.device)
	return nil
}

func (g *Game) pollInput() {
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= g.panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += g.panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= g.panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += g.panSpeed
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.dragging {
			dx += g.lastX - x
			dy += g.lastY - y
		}
		g.dragging = true
		g.lastX, g.lastY = x, y
	} else {
		g.dragging = false
	}
	if dx != 0 || dy != 0 {
		g.bus.Emit(input.Pan{DX: dx, DY: dy})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.bus.Emit(input.ButtonPress{Button: 1, X: x, Y: y})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.bus.Emit(input.KeyPress{Label: "Escape"})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.bus.Emit(input.KeyPress{Label: "Home"})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.device.SetScreen(screen)
	g.tiles.Draw(g.device)
}

// Layout follows the outside size so the viewport always matches the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.bus.Emit(input.Resize{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
