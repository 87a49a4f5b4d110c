package chunk_test

import (
	"testing"

	"github.com/kjkrol/goktile/pkg/chunk"
	"github.com/kjkrol/goktile/pkg/gfx"
)

func TestChunkStartsUnbound(t *testing.T) {
	c := chunk.NewChunk(testConfig())
	if c.Bound() {
		t.Error("new chunk should be unbound")
	}
	if got := c.BoundCoord(); got.X != -1 || got.Y != -1 {
		t.Errorf("BoundCoord = (%d,%d), want (-1,-1)", got.X, got.Y)
	}
	if c.Dirty() {
		t.Error("new chunk should be clean")
	}
	if c.Bake(gfx.NewSurfaceDevice(1, 1)) {
		t.Error("baking an unbound chunk should do nothing")
	}
}

func TestChunkDirtyExactness(t *testing.T) {
	conf := testConfig()
	world := newWorld(conf)
	palette := newPalette(t, conf.TilePixelLength)
	device := gfx.NewSurfaceDevice(1, 1)
	c := chunk.NewChunk(conf)

	c.Bind(2, 3, world, palette)
	if !c.Dirty() {
		t.Fatal("first bind should mark the chunk dirty")
	}
	if !c.Bake(device) {
		t.Fatal("bake of a dirty chunk should report work")
	}
	if c.Dirty() {
		t.Fatal("bake should clear dirty")
	}
	if c.Bake(device) {
		t.Error("bake of a clean chunk should return false")
	}

	c.Bind(2, 3, world, palette)
	if c.Dirty() {
		t.Error("rebinding the same coordinate should not mark dirty")
	}

	c.Bind(3, 3, world, palette)
	if !c.Dirty() {
		t.Error("binding a new coordinate should mark dirty")
	}
	if got := c.BoundCoord(); got.X != 3 || got.Y != 3 {
		t.Errorf("BoundCoord = (%d,%d), want (3,3)", got.X, got.Y)
	}
}

func TestChunkBindCopiesTileIDs(t *testing.T) {
	conf := testConfig()
	world := newWorld(conf)
	palette := newPalette(t, conf.TilePixelLength)
	c := chunk.NewChunk(conf)
	c.Bind(5, 4, world, palette)

	ctl := conf.ChunkTileLength
	for y := 0; y < ctl; y++ {
		for x := 0; x < ctl; x++ {
			want := world.TileAt(5*ctl+x, 4*ctl+y)
			if got := c.TileID(x, y); got != want {
				t.Errorf("tile (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestChunkBakeDrawsRowZeroAtTop(t *testing.T) {
	conf := testConfig()
	world := newWorld(conf)
	palette := newPalette(t, conf.TilePixelLength)
	device := gfx.NewSurfaceDevice(1, 1)
	c := chunk.NewChunk(conf)
	c.Bind(1, 2, world, palette)
	c.Bake(device)

	img := device.Image(c.Texture())
	if img == nil {
		t.Fatal("chunk has no texture after bake")
	}
	if w, h := c.Texture().Size(); w != conf.ChunkPixelLength() || h != conf.ChunkPixelLength() {
		t.Fatalf("texture size %dx%d, want %d", w, h, conf.ChunkPixelLength())
	}
	tpl := conf.TilePixelLength
	ctl := conf.ChunkTileLength
	for y := 0; y < ctl; y++ {
		for x := 0; x < ctl; x++ {
			want := tileColor(world.TileAt(1*ctl+x, 2*ctl+y))
			got := img.RGBAAt(x*tpl+tpl/2, y*tpl+tpl/2)
			if got != want {
				t.Errorf("texel for tile (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestChunkBakeRestoresMainTarget(t *testing.T) {
	conf := testConfig()
	device := &recordingDevice{}
	c := chunk.NewChunk(conf)
	c.Bind(0, 0, newWorld(conf), newPalette(t, conf.TilePixelLength))
	c.Bake(device)

	want := []string{"new", "target", "render", "main"}
	if len(device.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", device.calls, want)
	}
	for i := range want {
		if device.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, device.calls[i], want[i])
		}
	}
}

func TestChunkRefreshDetectsGridChange(t *testing.T) {
	conf := testConfig()
	world := newWorld(conf)
	palette := newPalette(t, conf.TilePixelLength)
	device := gfx.NewSurfaceDevice(1, 1)
	c := chunk.NewChunk(conf)
	c.Bind(0, 0, world, palette)
	c.Bake(device)

	if c.Refresh(world, palette) {
		t.Error("refresh without grid change should report no change")
	}
	if c.Dirty() {
		t.Error("refresh without grid change should leave the chunk clean")
	}

	world.Set(1, 1, world.TileAt(1, 1)+1)
	if !c.Refresh(world, palette) {
		t.Error("refresh after a grid change should report a change")
	}
	if !c.Dirty() {
		t.Error("refresh after a grid change should mark dirty")
	}
}

func TestChunkScenePosition(t *testing.T) {
	conf := testConfig()
	c := chunk.NewChunk(conf)
	c.SetScenePosition(2, 1, 32)
	length := conf.ChunkPixelLength()
	half := length / 2
	got := c.ScenePosition()
	if got.X != 2*length+half || got.Y != 32-2*length+half {
		t.Errorf("scene position = (%d,%d), want (%d,%d)", got.X, got.Y, 2*length+half, 32-2*length+half)
	}
}

func TestChunkContractViolationsPanic(t *testing.T) {
	conf := testConfig()
	world := newWorld(conf)
	palette := newPalette(t, conf.TilePixelLength)

	expectPanic(t, "negative coordinate", func() {
		chunk.NewChunk(conf).Bind(-1, 0, world, palette)
	})
	expectPanic(t, "coordinate past map", func() {
		chunk.NewChunk(conf).Bind(0, conf.MapChunksHigh, world, palette)
	})
	expectPanic(t, "double dispose", func() {
		c := chunk.NewChunk(conf)
		c.Dispose()
		c.Dispose()
	})
	expectPanic(t, "bind after dispose", func() {
		c := chunk.NewChunk(conf)
		c.Dispose()
		c.Bind(0, 0, world, palette)
	})
}

func TestChunkDisposeReleasesTexture(t *testing.T) {
	conf := testConfig()
	device := gfx.NewSurfaceDevice(1, 1)
	c := chunk.NewChunk(conf)
	c.Bind(0, 0, newWorld(conf), newPalette(t, conf.TilePixelLength))
	c.Bake(device)
	if device.LiveTargets() != 1 {
		t.Fatalf("live targets = %d, want 1", device.LiveTargets())
	}
	c.Dispose()
	if device.LiveTargets() != 0 {
		t.Errorf("live targets after dispose = %d, want 0", device.LiveTargets())
	}
	if !c.Disposed() {
		t.Error("chunk should report disposed")
	}
}

type recordingDevice struct {
	calls []string
}

type recordingTarget struct{}

func (recordingTarget) Size() (int, int) { return 0, 0 }
func (recordingTarget) Dispose()         {}

func (d *recordingDevice) NewRenderTarget(width, height int) gfx.RenderTarget {
	d.calls = append(d.calls, "new")
	return recordingTarget{}
}

func (d *recordingDevice) SetRenderTarget(target gfx.RenderTarget) {
	if target == nil {
		d.calls = append(d.calls, "main")
		return
	}
	d.calls = append(d.calls, "target")
}

func (d *recordingDevice) RenderScene(scene *gfx.Scene, camera gfx.Camera) {
	d.calls = append(d.calls, "render")
}
