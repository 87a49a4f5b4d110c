package chunk

import (
	"fmt"

	"github.com/kjkrol/gokg/pkg/geom"
	"github.com/kjkrol/goktile/pkg/gfx"
)

// TileSource is the read-only view of the world grid the chunks bake from.
type TileSource interface {
	Size() (width, height int)
	TileAt(x, y int) gfx.TileID
}

var unbound = geom.NewVec(-1, -1)

// Chunk is a square block of tiles baked into one offscreen texture. Instead of
// drawing every tile each frame the window draws one textured quad per chunk and
// rebakes a chunk only when the block of the map it shows changes.
//
// A chunk moves through Unbound -> Bound(dirty) <-> Bound(clean) -> Disposed.
type Chunk struct {
	cfg      Config
	tiles    []gfx.TileID
	filled   bool
	sprites  []*gfx.Sprite
	scene    *gfx.Scene
	camera   gfx.Camera
	quad     *gfx.Sprite
	target   gfx.RenderTarget
	bound    geom.Vec[int]
	slot     geom.Vec[int]
	sceneH   int
	dirty    bool
	disposed bool
}

func NewChunk(conf Config) *Chunk {
	conf = normalizeConfig(conf)
	length := conf.ChunkPixelLength()
	c := &Chunk{
		cfg:     conf,
		tiles:   make([]gfx.TileID, conf.TilesPerChunk()),
		sprites: make([]*gfx.Sprite, conf.TilesPerChunk()),
		scene:   gfx.NewScene(),
		camera:  gfx.NewOrthoCamera(0, float32(length), 0, float32(length)),
		quad:    gfx.NewSprite(geom.NewVec(length, length)),
		bound:   unbound,
		slot:    unbound,
	}
	c.fill()
	return c
}

// fill lays out one sprite per tile. Local row 0 is the top of the chunk, so it
// sits at the highest Y of the chunk's own Y-up scene.
func (c *Chunk) fill() {
	tpl := c.cfg.TilePixelLength
	ctl := c.cfg.ChunkTileLength
	half := tpl / 2
	idx := 0
	for y := 0; y < ctl; y++ {
		for x := 0; x < ctl; x++ {
			sprite := gfx.NewSprite(geom.NewVec(tpl, tpl))
			sprite.Center = geom.NewVec(x*tpl+half, (ctl-1-y)*tpl+half)
			c.scene.Add(sprite)
			c.sprites[idx] = sprite
			idx++
		}
	}
}

// Bind points the chunk at world chunk (cx, cy). Binding the coordinate it
// already shows is a no-op.
func (c *Chunk) Bind(cx, cy int, tiles TileSource, palette *gfx.Palette) {
	c.assertLive()
	if cx < 0 || cx >= c.cfg.MapChunksWide || cy < 0 || cy >= c.cfg.MapChunksHigh {
		panic(fmt.Sprintf("chunk coordinate (%d,%d) outside map of %dx%d chunks",
			cx, cy, c.cfg.MapChunksWide, c.cfg.MapChunksHigh))
	}
	if c.bound.X == cx && c.bound.Y == cy {
		return
	}
	c.load(cx, cy, tiles, palette)
	c.bound = geom.NewVec(cx, cy)
	c.quad.Hidden = false
	c.dirty = true
}

// Refresh rereads the tiles of the bound coordinate after the grid was mutated.
// It reports whether any tile id changed.
func (c *Chunk) Refresh(tiles TileSource, palette *gfx.Palette) bool {
	c.assertLive()
	if c.bound == unbound {
		return false
	}
	if c.load(c.bound.X, c.bound.Y, tiles, palette) {
		c.dirty = true
		return true
	}
	return false
}

// load copies the tile ids of world chunk (cx, cy) into the sprites. A sprite's
// swatch is replaced only when its tile id differs.
func (c *Chunk) load(cx, cy int, tiles TileSource, palette *gfx.Palette) bool {
	ctl := c.cfg.ChunkTileLength
	baseX := cx * ctl
	baseY := cy * ctl
	changed := false
	idx := 0
	for y := 0; y < ctl; y++ {
		for x := 0; x < ctl; x++ {
			id := tiles.TileAt(baseX+x, baseY+y)
			if c.filled && c.tiles[idx] == id {
				idx++
				continue
			}
			c.tiles[idx] = id
			c.sprites[idx].Swatch = palette.MustGet(id)
			changed = true
			idx++
		}
	}
	c.filled = true
	return changed
}

// Clear unbinds the chunk and hides its quad. The window uses it for slots that
// fall outside a map smaller than the viewport.
func (c *Chunk) Clear() {
	c.assertLive()
	c.bound = unbound
	c.dirty = false
	c.quad.Hidden = true
}

// Bake renders the tile scene into the chunk texture when dirty. It returns
// false when there was nothing to do.
func (c *Chunk) Bake(device gfx.Device) bool {
	c.assertLive()
	if !c.dirty {
		return false
	}
	if c.target == nil {
		length := c.cfg.ChunkPixelLength()
		c.target = device.NewRenderTarget(length, length)
		c.quad.Texture = c.target
	}
	device.SetRenderTarget(c.target)
	device.RenderScene(c.scene, c.camera)
	device.SetRenderTarget(nil)
	c.dirty = false
	return true
}

// SetScenePosition centres the display quad on slot (x, y) of a scene that is
// sceneHeight pixels high. Slot row 0 is the top of the scene.
func (c *Chunk) SetScenePosition(x, y, sceneHeight int) {
	if c.slot.X == x && c.slot.Y == y && c.sceneH == sceneHeight {
		return
	}
	length := c.cfg.ChunkPixelLength()
	half := c.cfg.HalfChunkPixelLength()
	c.quad.Center = geom.NewVec(x*length+half, sceneHeight-(y+1)*length+half)
	c.slot = geom.NewVec(x, y)
	c.sceneH = sceneHeight
}

func (c *Chunk) Dispose() {
	if c.disposed {
		panic("chunk disposed twice")
	}
	c.disposed = true
	if scene := c.quad.Scene(); scene != nil {
		scene.Remove(c.quad)
	}
	if c.target != nil {
		c.target.Dispose()
		c.target = nil
	}
	c.quad.Texture = nil
	c.scene.Clear()
	c.sprites = nil
	c.tiles = nil
}

func (c *Chunk) BoundCoord() geom.Vec[int] {
	return c.bound
}

func (c *Chunk) Bound() bool {
	return c.bound != unbound
}

func (c *Chunk) Dirty() bool {
	return c.dirty
}

func (c *Chunk) Disposed() bool {
	return c.disposed
}

// Texture is nil until the first bake.
func (c *Chunk) Texture() gfx.RenderTarget {
	return c.target
}

func (c *Chunk) Quad() *gfx.Sprite {
	return c.quad
}

func (c *Chunk) ScenePosition() geom.Vec[int] {
	return c.quad.Center
}

// TileID returns the id baked at local tile (x, y).
func (c *Chunk) TileID(x, y int) gfx.TileID {
	return c.tiles[y*c.cfg.ChunkTileLength+x]
}

func (c *Chunk) assertLive() {
	if c.disposed {
		panic("chunk is disposed")
	}
}
