package chunk

import (
	"fmt"
	"image/color"
	"time"

	"github.com/kjkrol/gokg/pkg/geom"
	"github.com/kjkrol/goktile/pkg/gfx"
	"github.com/sirupsen/logrus"
)

// Window is the sliding pool of chunks covering the viewport plus the pre-render
// margin. Slot (x, y) always shows world chunk (left+x, top+y).
//
// The pool is a ring: pans shift ring instead of moving chunks around, so the
// chunk objects and their textures survive every pan.
type Window struct {
	cfg     Config
	tiles   TileSource
	palette *gfx.Palette
	log     logrus.FieldLogger

	scene   *gfx.Scene
	pool    []*Chunk
	ring    geom.Vec[int]
	wide    int
	high    int
	topLeft geom.Vec[int]
	sized   bool
}

func NewWindow(conf Config, tiles TileSource, palette *gfx.Palette) *Window {
	if tiles == nil {
		panic("tile source is required")
	}
	if palette == nil {
		panic("palette is required")
	}
	conf = normalizeConfig(conf)
	width, height := tiles.Size()
	if width < conf.MapTilesWide() || height < conf.MapTilesHigh() {
		panic(fmt.Sprintf("tile source %dx%d smaller than map %dx%d",
			width, height, conf.MapTilesWide(), conf.MapTilesHigh()))
	}
	scene := gfx.NewScene()
	scene.Background = color.Black
	return &Window{
		cfg:     conf,
		tiles:   tiles,
		palette: palette,
		log:     logrus.StandardLogger(),
		scene:   scene,
	}
}

func (w *Window) SetLogger(log logrus.FieldLogger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	w.log = log
}

func (w *Window) Config() Config {
	return w.cfg
}

// Scene holds the display quads of every chunk.
func (w *Window) Scene() *gfx.Scene {
	return w.scene
}

func (w *Window) ChunksWide() int {
	return w.wide
}

func (w *Window) ChunksHigh() int {
	return w.high
}

func (w *Window) Len() int {
	return len(w.pool)
}

func (w *Window) TopLeft() geom.Vec[int] {
	return w.topLeft
}

func (w *Window) Sized() bool {
	return w.sized
}

// SceneSize is the pixel extent of the scene the chunk quads are laid out in.
func (w *Window) SceneSize() geom.Vec[int] {
	length := w.cfg.ChunkPixelLength()
	return geom.NewVec(w.wide*length, w.high*length)
}

// Chunk returns the chunk in slot i, counted row-major from the top-left slot.
func (w *Window) Chunk(i int) *Chunk {
	w.assertSized()
	return w.chunkAt(i%w.wide, i/w.wide)
}

// Chunks snapshots the pool in slot order.
func (w *Window) Chunks() []*Chunk {
	out := make([]*Chunk, len(w.pool))
	for i := range out {
		out[i] = w.Chunk(i)
	}
	return out
}

func (w *Window) chunkAt(x, y int) *Chunk {
	px := wrapInt(w.ring.X+x, w.wide)
	py := wrapInt(w.ring.Y+y, w.high)
	return w.pool[py*w.wide+px]
}

// Resize fits the pool to a viewport of the given pixel size. Shrinking disposes
// the chunks past the new pool length, growing creates new ones; every slot is
// rebound afterwards because the slot layout changed.
func (w *Window) Resize(viewportWidth, viewportHeight int) {
	if viewportWidth < 0 || viewportHeight < 0 {
		panic(fmt.Sprintf("negative viewport %dx%d", viewportWidth, viewportHeight))
	}
	wide := w.cfg.ChunksFor(viewportWidth)
	high := w.cfg.ChunksFor(viewportHeight)
	if wide == 0 || high == 0 {
		panic(fmt.Sprintf("viewport %dx%d yields an empty window", viewportWidth, viewportHeight))
	}
	if w.sized && wide == w.wide && high == w.high {
		return
	}
	start := time.Now()
	w.unrollRing()

	oldCount := len(w.pool)
	newCount := wide * high
	if newCount < oldCount {
		for i := newCount; i < oldCount; i++ {
			w.scene.Remove(w.pool[i].Quad())
			w.pool[i].Dispose()
			w.pool[i] = nil
		}
		w.pool = w.pool[:newCount]
	} else {
		for i := oldCount; i < newCount; i++ {
			chunk := NewChunk(w.cfg)
			w.pool = append(w.pool, chunk)
			w.scene.Add(chunk.Quad())
		}
	}
	w.wide = wide
	w.high = high
	w.sized = true
	w.rebindAll(w.topLeft.X, w.topLeft.Y)

	w.log.WithFields(logrus.Fields{
		"chunksWide": wide,
		"chunksHigh": high,
		"created":    max(newCount-oldCount, 0),
		"destroyed":  max(oldCount-newCount, 0),
		"elapsed":    time.Since(start),
	}).Info("chunk window resized")
}

// unrollRing moves the pool back into slot order so the ring origin is zero.
func (w *Window) unrollRing() {
	if w.ring.X == 0 && w.ring.Y == 0 {
		return
	}
	ordered := w.Chunks()
	copy(w.pool, ordered)
	w.ring = geom.NewVec(0, 0)
}

// SetTopLeft jumps the window to world chunk (left, top), clamped so the window
// stays inside the map, and rebinds every slot.
func (w *Window) SetTopLeft(left, top int) {
	w.assertSized()
	if left < 0 || left >= w.cfg.MapChunksWide || top < 0 || top >= w.cfg.MapChunksHigh {
		panic(fmt.Sprintf("top-left (%d,%d) outside map of %dx%d chunks",
			left, top, w.cfg.MapChunksWide, w.cfg.MapChunksHigh))
	}
	start := time.Now()
	w.rebindAll(left, top)
	w.log.WithFields(logrus.Fields{
		"left":    w.topLeft.X,
		"top":     w.topLeft.Y,
		"elapsed": time.Since(start),
	}).Debug("chunk window reset")
}

func (w *Window) maxLeft() int {
	return max(w.cfg.MapChunksWide-w.wide, 0)
}

func (w *Window) maxTop() int {
	return max(w.cfg.MapChunksHigh-w.high, 0)
}

func (w *Window) rebindAll(left, top int) {
	left = clamp(left, 0, w.maxLeft())
	top = clamp(top, 0, w.maxTop())
	for y := 0; y < w.high; y++ {
		for x := 0; x < w.wide; x++ {
			w.bindSlot(x, y, left+x, top+y)
		}
	}
	w.topLeft = geom.NewVec(left, top)
	w.ReorientChunks()
}

// bindSlot binds slot (x, y) to world chunk (cx, cy), or clears it when the
// window is wider or taller than the map.
func (w *Window) bindSlot(x, y, cx, cy int) {
	chunk := w.chunkAt(x, y)
	if cx >= w.cfg.MapChunksWide || cy >= w.cfg.MapChunksHigh {
		chunk.Clear()
		return
	}
	chunk.Bind(cx, cy, w.tiles, w.palette)
}

// ReorientChunks moves every display quad to the position of its slot.
func (w *Window) ReorientChunks() {
	sceneHeight := w.SceneSize().Y
	for i := range w.pool {
		w.Chunk(i).SetScenePosition(i%w.wide, i/w.wide, sceneHeight)
	}
}

// Update bakes every dirty chunk and returns how many did GPU work.
func (w *Window) Update(device gfx.Device) int {
	baked := 0
	for _, chunk := range w.pool {
		if chunk.Bake(device) {
			baked++
		}
	}
	if baked > 0 {
		w.log.WithField("baked", baked).Debug("chunks baked")
	}
	return baked
}

// Render composites the chunk quads onto the main framebuffer.
func (w *Window) Render(device gfx.Device, camera gfx.Camera) {
	device.SetRenderTarget(nil)
	device.RenderScene(w.scene, camera)
}

// RefreshTile rebakes the chunk holding world tile (tx, ty) if the grid changed
// under it. Tiles outside the window are ignored.
func (w *Window) RefreshTile(tx, ty int) bool {
	w.assertSized()
	if tx < 0 || tx >= w.cfg.MapTilesWide() || ty < 0 || ty >= w.cfg.MapTilesHigh() {
		panic(fmt.Sprintf("tile (%d,%d) outside map", tx, ty))
	}
	x := tx/w.cfg.ChunkTileLength - w.topLeft.X
	y := ty/w.cfg.ChunkTileLength - w.topLeft.Y
	if x < 0 || x >= w.wide || y < 0 || y >= w.high {
		return false
	}
	return w.chunkAt(x, y).Refresh(w.tiles, w.palette)
}

func (w *Window) Dispose() {
	for i, chunk := range w.pool {
		w.scene.Remove(chunk.Quad())
		chunk.Dispose()
		w.pool[i] = nil
	}
	w.pool = nil
	w.ring = geom.NewVec(0, 0)
	w.wide = 0
	w.high = 0
	w.sized = false
}

func (w *Window) assertSized() {
	if !w.sized {
		panic("chunk window is not sized")
	}
}
