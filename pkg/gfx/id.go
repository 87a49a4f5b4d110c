package gfx

import "sync/atomic"

var swatchKeySeq uint64

// NextSwatchKey returns a globally unique swatch key.
func NextSwatchKey() uint64 {
	return atomic.AddUint64(&swatchKeySeq, 1)
}
