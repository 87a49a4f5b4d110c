package chunk

import "github.com/kjkrol/gokg/pkg/geom"

// The pan operations slide the window one chunk over the map. The row or column
// on the trailing edge is rebound to the world chunks entering on the leading
// edge and the ring origin moves by one, so no chunk is created or destroyed.
// A pan that would push the window past the map edge returns false and changes
// nothing.

func (w *Window) PanLeft() bool {
	w.assertSized()
	if w.topLeft.X-1 < 0 {
		return false
	}
	left := w.topLeft.X - 1
	for y := 0; y < w.high; y++ {
		w.bindSlot(w.wide-1, y, left, w.topLeft.Y+y)
	}
	w.ring.X = wrapInt(w.ring.X-1, w.wide)
	w.topLeft = geom.NewVec(left, w.topLeft.Y)
	w.ReorientChunks()
	return true
}

func (w *Window) PanRight() bool {
	w.assertSized()
	if w.topLeft.X+w.wide+1 > w.cfg.MapChunksWide {
		return false
	}
	entering := w.topLeft.X + w.wide
	for y := 0; y < w.high; y++ {
		w.bindSlot(0, y, entering, w.topLeft.Y+y)
	}
	w.ring.X = wrapInt(w.ring.X+1, w.wide)
	w.topLeft = geom.NewVec(w.topLeft.X+1, w.topLeft.Y)
	w.ReorientChunks()
	return true
}

func (w *Window) PanUp() bool {
	w.assertSized()
	if w.topLeft.Y-1 < 0 {
		return false
	}
	top := w.topLeft.Y - 1
	for x := 0; x < w.wide; x++ {
		w.bindSlot(x, w.high-1, w.topLeft.X+x, top)
	}
	w.ring.Y = wrapInt(w.ring.Y-1, w.high)
	w.topLeft = geom.NewVec(w.topLeft.X, top)
	w.ReorientChunks()
	return true
}

func (w *Window) PanDown() bool {
	w.assertSized()
	if w.topLeft.Y+w.high+1 > w.cfg.MapChunksHigh {
		return false
	}
	entering := w.topLeft.Y + w.high
	for x := 0; x < w.wide; x++ {
		w.bindSlot(x, 0, w.topLeft.X+x, entering)
	}
	w.ring.Y = wrapInt(w.ring.Y+1, w.high)
	w.topLeft = geom.NewVec(w.topLeft.X, w.topLeft.Y+1)
	w.ReorientChunks()
	return true
}
