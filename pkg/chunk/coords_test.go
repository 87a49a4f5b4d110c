package chunk_test

import (
	"testing"

	"github.com/kjkrol/goktile/pkg/chunk"
)

func TestCoordinateRoundTrip(t *testing.T) {
	for _, tpl := range []int{1, 2, 3, 8} {
		conf := testConfig()
		conf.TilePixelLength = tpl
		win, _, _ := newWindow(t, conf)
		win.Resize(3*conf.ChunkPixelLength(), 2*conf.ChunkPixelLength())
		win.SetTopLeft(2, 1)
		win.PanDown()

		tl := win.TopLeft()
		ctl := conf.ChunkTileLength
		for ty := tl.Y * ctl; ty < (tl.Y+win.ChunksHigh())*ctl; ty++ {
			for tx := tl.X * ctl; tx < (tl.X+win.ChunksWide())*ctl; tx++ {
				if !win.ContainsTile(tx, ty) {
					t.Fatalf("tpl %d: tile (%d,%d) should be inside the window", tpl, tx, ty)
				}
				px, py := win.ScenePixelForWorldTile(tx, ty)
				gx, gy := win.WorldTileForScenePixel(px, py)
				if gx != tx || gy != ty {
					t.Fatalf("tpl %d: tile (%d,%d) -> pixel (%d,%d) -> tile (%d,%d)",
						tpl, tx, ty, px, py, gx, gy)
				}
			}
		}
	}
}

func TestScenePixelYGrowsUpward(t *testing.T) {
	conf := testConfig()
	win, _, _ := newWindow(t, conf)
	win.Resize(24, 16)
	win.SetTopLeft(0, 0)

	_, top := win.ScenePixelForWorldTile(0, 0)
	_, below := win.ScenePixelForWorldTile(0, 1)
	if below >= top {
		t.Errorf("row 1 at y=%d should be below row 0 at y=%d", below, top)
	}
	tx, ty := win.WorldTileForScenePixel(0, win.SceneSize().Y-1)
	if tx != 0 || ty != 0 {
		t.Errorf("top-left scene pixel maps to (%d,%d), want (0,0)", tx, ty)
	}
}

func TestContainsTile(t *testing.T) {
	conf := testConfig()
	win, _, _ := newWindow(t, conf)
	win.Resize(24, 16)
	win.SetTopLeft(1, 1)
	ctl := conf.ChunkTileLength

	cases := []struct {
		tx, ty int
		want   bool
	}{
		{ctl, ctl, true},
		{ctl - 1, ctl, false},
		{6*ctl - 1, 5*ctl - 1, true},
		{6 * ctl, ctl, false},
		{ctl, 5 * ctl, false},
	}
	for _, c := range cases {
		if got := win.ContainsTile(c.tx, c.ty); got != c.want {
			t.Errorf("ContainsTile(%d,%d) = %v, want %v", c.tx, c.ty, got, c.want)
		}
	}
}

func TestObjectOffsetPlacesMapPixels(t *testing.T) {
	conf := testConfig()
	conf.TilePixelLength = 3
	win, _, _ := newWindow(t, conf)
	win.Resize(24, 16)
	win.SetTopLeft(2, 1)
	win.PanRight()
	win.PanDown()

	offset := win.ObjectOffset()
	tl := win.TopLeft()
	ctl := conf.ChunkTileLength
	for _, tile := range [][2]int{
		{tl.X * ctl, tl.Y * ctl},
		{tl.X*ctl + 5, tl.Y*ctl + 2},
		{(tl.X+win.ChunksWide())*ctl - 1, (tl.Y+win.ChunksHigh())*ctl - 1},
	} {
		mp := conf.MapPixelForWorldTile(tile[0], tile[1])
		px, py := win.ScenePixelForWorldTile(tile[0], tile[1])
		if mp.X+offset.X != px || mp.Y+offset.Y != py {
			t.Errorf("tile %v: map pixel %v + offset %v != scene pixel (%d,%d)", tile, mp, offset, px, py)
		}
	}
}

func TestConfigDerivedValues(t *testing.T) {
	conf := chunk.DefaultConfig()
	if conf.ChunkPixelLength() != 512 {
		t.Errorf("ChunkPixelLength = %d, want 512", conf.ChunkPixelLength())
	}
	if conf.HalfChunkPixelLength() != 256 {
		t.Errorf("HalfChunkPixelLength = %d, want 256", conf.HalfChunkPixelLength())
	}
	if conf.TilesPerChunk() != 256 {
		t.Errorf("TilesPerChunk = %d, want 256", conf.TilesPerChunk())
	}
	if conf.MapTilesWide() != 512 || conf.MapPixelsHigh() != 16384 {
		t.Errorf("map = %d tiles wide, %d px high", conf.MapTilesWide(), conf.MapPixelsHigh())
	}
	if got := conf.ChunksFor(1024); got != 4 {
		t.Errorf("ChunksFor(1024) = %d, want 4", got)
	}
	if got := conf.ChunksFor(1025); got != 5 {
		t.Errorf("ChunksFor(1025) = %d, want 5", got)
	}
}
