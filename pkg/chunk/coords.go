package chunk

import "github.com/kjkrol/gokg/pkg/geom"

func divFloor(a, b int) int {
	if b <= 0 {
		return 0
	}
	if a >= 0 {
		return a / b
	}
	return -(((-a) + b - 1) / b)
}

func divCeil(a, b int) int {
	if b <= 0 {
		return 0
	}
	if a >= 0 {
		return (a + b - 1) / b
	}
	return -((-a) / b)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func wrapInt(val, size int) int {
	if size <= 0 {
		return val
	}
	mod := val % size
	if mod < 0 {
		mod += size
	}
	return mod
}

// WorldTileForScenePixel returns the world tile under scene pixel (px, py).
// Scene Y grows upward from the bottom of the window.
func (w *Window) WorldTileForScenePixel(px, py int) (int, int) {
	tpl := w.cfg.TilePixelLength
	ctl := w.cfg.ChunkTileLength
	sceneHeight := w.SceneSize().Y
	tx := w.topLeft.X*ctl + divFloor(px, tpl)
	ty := w.topLeft.Y*ctl + divFloor(sceneHeight-1-py, tpl)
	return tx, ty
}

// ScenePixelForWorldTile returns the scene pixel at the centre of world tile (tx, ty).
func (w *Window) ScenePixelForWorldTile(tx, ty int) (int, int) {
	tpl := w.cfg.TilePixelLength
	ctl := w.cfg.ChunkTileLength
	sceneHeight := w.SceneSize().Y
	half := tpl / 2
	px := (tx-w.topLeft.X*ctl)*tpl + half
	py := sceneHeight - (ty-w.topLeft.Y*ctl+1)*tpl + half
	return px, py
}

// ContainsTile reports whether world tile (tx, ty) is covered by a bound slot.
func (w *Window) ContainsTile(tx, ty int) bool {
	ctl := w.cfg.ChunkTileLength
	left := w.topLeft.X * ctl
	top := w.topLeft.Y * ctl
	right := min(w.topLeft.X+w.wide, w.cfg.MapChunksWide) * ctl
	bottom := min(w.topLeft.Y+w.high, w.cfg.MapChunksHigh) * ctl
	return tx >= left && tx < right && ty >= top && ty < bottom
}

// ObjectOffset translates map-pixel positions (see Config.MapPixelForWorldTile)
// into the window's scene. Foreground layers apply it after every pan.
func (w *Window) ObjectOffset() geom.Vec[int] {
	length := w.cfg.ChunkPixelLength()
	bottom := w.topLeft.Y*length + w.SceneSize().Y
	return geom.NewVec(-w.topLeft.X*length, bottom-w.cfg.MapPixelsHigh())
}
