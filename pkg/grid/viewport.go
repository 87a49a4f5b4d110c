package grid

import (
	"github.com/kjkrol/gokg/pkg/geom"
	"github.com/kjkrol/goktile/pkg/chunk"
	"github.com/kjkrol/goktile/pkg/gfx"
)

// ChunkWindow is the part of chunk.Window the viewport drives.
type ChunkWindow interface {
	Config() chunk.Config
	Resize(viewportWidth, viewportHeight int)
	SetTopLeft(left, top int)
	TopLeft() geom.Vec[int]
	SceneSize() geom.Vec[int]
	PanLeft() bool
	PanRight() bool
	PanUp() bool
	PanDown() bool
	WorldTileForScenePixel(px, py int) (int, int)
}

// Viewport is the visible rectangle inside the chunk window's scene. It
// accumulates pixel deltas and pans the window whenever the view drifts a whole
// chunk away from its home position inside the pre-render margin.
type Viewport struct {
	win    ChunkWindow
	size   geom.Vec[int]
	offset geom.Vec[int]
}

func NewViewport(win ChunkWindow) *Viewport {
	if win == nil {
		panic("chunk window is required")
	}
	return &Viewport{win: win}
}

func (v *Viewport) Size() geom.Vec[int] {
	return v.size
}

// Offset is the top-left corner of the view in scene pixels, Y growing downward.
func (v *Viewport) Offset() geom.Vec[int] {
	return v.offset
}

// Origin is the top-left corner of the view in map pixels.
func (v *Viewport) Origin() geom.Vec[int] {
	length := v.win.Config().ChunkPixelLength()
	tl := v.win.TopLeft()
	return geom.NewVec(tl.X*length+v.offset.X, tl.Y*length+v.offset.Y)
}

func (v *Viewport) Resize(width, height int) {
	origin := v.Origin()
	v.size = geom.NewVec(width, height)
	// Without a pre-render margin the window ends exactly at the view, leaving
	// no room for an offset between chunk boundaries. One spare chunk per axis
	// keeps sub-chunk moves.
	slack := 0
	if conf := v.win.Config(); conf.PreRenderChunks == 0 {
		slack = conf.ChunkPixelLength()
	}
	v.win.Resize(width+slack, height+slack)
	v.moveTo(origin)
}

func (v *Viewport) Move(dx, dy int) {
	v.offset = v.offset.Add(geom.NewVec(dx, dy))
	v.settle()
}

// CenterOn jumps the view so tile (tx, ty) is in the middle of it.
func (v *Viewport) CenterOn(tx, ty int) {
	conf := v.win.Config()
	half := conf.TilePixelLength / 2
	v.jumpTo(geom.NewVec(
		tx*conf.TilePixelLength+half-v.size.X/2,
		ty*conf.TilePixelLength+half-v.size.Y/2,
	))
}

func (v *Viewport) jumpTo(origin geom.Vec[int]) {
	conf := v.win.Config()
	length := conf.ChunkPixelLength()
	left := clamp(divFloor(origin.X, length)-conf.PreRenderChunks, 0, conf.MapChunksWide-1)
	top := clamp(divFloor(origin.Y, length)-conf.PreRenderChunks, 0, conf.MapChunksHigh-1)
	v.win.SetTopLeft(left, top)
	v.moveTo(origin)
}

func (v *Viewport) moveTo(origin geom.Vec[int]) {
	length := v.win.Config().ChunkPixelLength()
	tl := v.win.TopLeft()
	v.offset = geom.NewVec(origin.X-tl.X*length, origin.Y-tl.Y*length)
	v.settle()
}

func (v *Viewport) settle() {
	conf := v.win.Config()
	length := conf.ChunkPixelLength()
	home := conf.PreRenderChunks * length
	scene := v.win.SceneSize()
	maxX := max(scene.X-v.size.X, 0)
	maxY := max(scene.Y-v.size.Y, 0)

	for (v.offset.X-home >= length || v.offset.X > maxX) && v.win.PanRight() {
		v.offset.X -= length
	}
	for (home-v.offset.X >= length || v.offset.X < 0) && v.win.PanLeft() {
		v.offset.X += length
	}
	for (v.offset.Y-home >= length || v.offset.Y > maxY) && v.win.PanDown() {
		v.offset.Y -= length
	}
	for (home-v.offset.Y >= length || v.offset.Y < 0) && v.win.PanUp() {
		v.offset.Y += length
	}
	v.offset = geom.NewVec(clamp(v.offset.X, 0, maxX), clamp(v.offset.Y, 0, maxY))
}

// Camera projects the visible part of the scene onto the whole screen.
func (v *Viewport) Camera() gfx.Camera {
	sceneHeight := v.win.SceneSize().Y
	left := float32(v.offset.X)
	top := float32(sceneHeight - v.offset.Y)
	return gfx.NewOrthoCamera(left, left+float32(v.size.X), top-float32(v.size.Y), top)
}

// ScreenToTile picks the world tile under screen pixel (x, y).
func (v *Viewport) ScreenToTile(x, y int) (int, int) {
	sceneHeight := v.win.SceneSize().Y
	return v.win.WorldTileForScenePixel(v.offset.X+x, sceneHeight-1-(v.offset.Y+y))
}
