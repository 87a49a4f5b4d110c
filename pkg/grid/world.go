package grid

import (
	"fmt"
	"math/rand/v2"

	"github.com/kjkrol/goktile/pkg/gfx"
)

// World is the full row-major tile array. The chunk core only reads it; callers
// that mutate it tell the chunk window through RefreshTile.
type World struct {
	width  int
	height int
	tiles  []gfx.TileID
}

func NewWorld(width, height int) *World {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid world size %dx%d", width, height))
	}
	return &World{
		width:  width,
		height: height,
		tiles:  make([]gfx.TileID, width*height),
	}
}

// NewRandomWorld picks every tile uniformly from [0, kinds).
func NewRandomWorld(width, height, kinds int, seed uint64) *World {
	w := NewWorld(width, height)
	if kinds <= 0 {
		return w
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range w.tiles {
		w.tiles[i] = gfx.TileID(rng.IntN(kinds))
	}
	return w
}

func (w *World) Size() (int, int) {
	return w.width, w.height
}

func (w *World) Index(x, y int) int {
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		panic(fmt.Sprintf("tile (%d,%d) outside world %dx%d", x, y, w.width, w.height))
	}
	return y*w.width + x
}

func (w *World) TileAt(x, y int) gfx.TileID {
	return w.tiles[w.Index(x, y)]
}

func (w *World) Set(x, y int, id gfx.TileID) {
	w.tiles[w.Index(x, y)] = id
}

func (w *World) Fill(fn func(x, y int) gfx.TileID) {
	for y := 0; y < w.height; y++ {
		row := y * w.width
		for x := 0; x < w.width; x++ {
			w.tiles[row+x] = fn(x, y)
		}
	}
}

// Validate checks that every tile id indexes a palette of paletteSize entries.
func (w *World) Validate(paletteSize int) error {
	for i, id := range w.tiles {
		if int(id) >= paletteSize {
			return fmt.Errorf("tile (%d,%d) id %d: %w", i%w.width, i/w.width, id, gfx.ErrInvalidID)
		}
	}
	return nil
}
