package chunk_test

import (
	"image/color"
	"io"
	"testing"

	"github.com/kjkrol/goktile/pkg/chunk"
	"github.com/kjkrol/goktile/pkg/gfx"
	"github.com/kjkrol/goktile/pkg/grid"
	"github.com/sirupsen/logrus"
)

const paletteSize = 64

// testConfig gives 8px chunks on an 8x6 chunk map.
func testConfig() chunk.Config {
	return chunk.Config{
		TilePixelLength: 2,
		ChunkTileLength: 4,
		MapChunksWide:   8,
		MapChunksHigh:   6,
		PreRenderChunks: 1,
	}
}

func tileColor(id gfx.TileID) color.RGBA {
	return color.RGBA{uint8(id), 100, 50, 0xff}
}

func newPalette(t *testing.T, size int) *gfx.Palette {
	t.Helper()
	palette := gfx.NewPalette()
	for i := 0; i < paletteSize; i++ {
		if _, err := palette.Add(gfx.NewColorSwatch(tileColor(gfx.TileID(i)), size)); err != nil {
			t.Fatalf("add swatch %d: %v", i, err)
		}
	}
	return palette
}

// chunkPattern gives every tile an id derived from its chunk and its column
// inside the chunk, so neighbouring chunks never share content.
func chunkPattern(conf chunk.Config) func(x, y int) gfx.TileID {
	ctl := conf.ChunkTileLength
	return func(x, y int) gfx.TileID {
		cx, cy := x/ctl, y/ctl
		return gfx.TileID((cx*7 + cy*13 + x%ctl) % paletteSize)
	}
}

func newWorld(conf chunk.Config) *grid.World {
	world := grid.NewWorld(conf.MapTilesWide(), conf.MapTilesHigh())
	world.Fill(chunkPattern(conf))
	return world
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newWindow(t *testing.T, conf chunk.Config) (*chunk.Window, *grid.World, *gfx.Palette) {
	t.Helper()
	world := newWorld(conf)
	palette := newPalette(t, conf.TilePixelLength)
	win := chunk.NewWindow(conf, world, palette)
	win.SetLogger(quietLogger())
	return win, world, palette
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// assertBindings checks that slot i shows world chunk (left+i%w, top+i/w).
func assertBindings(t *testing.T, win *chunk.Window) {
	t.Helper()
	tl := win.TopLeft()
	wide := win.ChunksWide()
	if win.Len() != wide*win.ChunksHigh() {
		t.Fatalf("pool has %d chunks, want %d", win.Len(), wide*win.ChunksHigh())
	}
	for i := 0; i < win.Len(); i++ {
		got := win.Chunk(i).BoundCoord()
		if got.X != tl.X+i%wide || got.Y != tl.Y+i/wide {
			t.Errorf("slot %d bound to (%d,%d), want (%d,%d)", i, got.X, got.Y, tl.X+i%wide, tl.Y+i/wide)
		}
	}
}
