package grid_test

import (
	"errors"
	"testing"

	"github.com/kjkrol/goktile/pkg/gfx"
	"github.com/kjkrol/goktile/pkg/grid"
)

func TestWorldSetAndTileAt(t *testing.T) {
	world := grid.NewWorld(4, 3)
	world.Set(3, 2, 7)
	if got := world.TileAt(3, 2); got != 7 {
		t.Errorf("TileAt(3,2) = %d, want 7", got)
	}
	if got := world.Index(3, 2); got != 11 {
		t.Errorf("Index(3,2) = %d, want 11", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("TileAt outside the world should panic")
		}
	}()
	world.TileAt(4, 0)
}

func TestRandomWorldIsDeterministic(t *testing.T) {
	a := grid.NewRandomWorld(16, 16, 5, 42)
	b := grid.NewRandomWorld(16, 16, 5, 42)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a.TileAt(x, y) != b.TileAt(x, y) {
				t.Fatalf("tile (%d,%d) differs between worlds with the same seed", x, y)
			}
			if a.TileAt(x, y) >= 5 {
				t.Fatalf("tile (%d,%d) = %d outside [0,5)", x, y, a.TileAt(x, y))
			}
		}
	}
}

func TestWorldValidate(t *testing.T) {
	world := grid.NewWorld(2, 2)
	world.Fill(func(x, y int) gfx.TileID { return gfx.TileID(x + y) })
	if err := world.Validate(3); err != nil {
		t.Errorf("Validate(3) = %v, want nil", err)
	}
	if err := world.Validate(2); !errors.Is(err, gfx.ErrInvalidID) {
		t.Errorf("Validate(2) = %v, want ErrInvalidID", err)
	}
}
