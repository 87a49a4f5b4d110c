package gfx

import (
	"errors"
	"fmt"
)

const MaxPaletteSize = 65535

var (
	ErrCapacityExceeded = errors.New("palette capacity exceeded")
	ErrInvalidID        = errors.New("invalid tile id")
)

// Palette maps tile ids to swatches. It is append-only.
type Palette struct {
	swatches []*Swatch
	capacity int
}

func NewPalette() *Palette {
	return NewPaletteWithCapacity(MaxPaletteSize)
}

func NewPaletteWithCapacity(capacity int) *Palette {
	if capacity <= 0 || capacity > MaxPaletteSize {
		capacity = MaxPaletteSize
	}
	return &Palette{capacity: capacity}
}

func (p *Palette) Add(swatch *Swatch) (TileID, error) {
	if swatch == nil {
		return 0, fmt.Errorf("add swatch: swatch is required")
	}
	if len(p.swatches) >= p.capacity {
		return 0, fmt.Errorf("add swatch %d: %w", len(p.swatches), ErrCapacityExceeded)
	}
	id := TileID(len(p.swatches))
	p.swatches = append(p.swatches, swatch)
	return id, nil
}

func (p *Palette) Get(id TileID) (*Swatch, error) {
	if int(id) >= len(p.swatches) {
		return nil, fmt.Errorf("get swatch %d of %d: %w", id, len(p.swatches), ErrInvalidID)
	}
	return p.swatches[id], nil
}

// MustGet is Get for callers that already validated id.
func (p *Palette) MustGet(id TileID) *Swatch {
	swatch, err := p.Get(id)
	if err != nil {
		panic(err)
	}
	return swatch
}

func (p *Palette) Size() int {
	return len(p.swatches)
}

func (p *Palette) Capacity() int {
	return p.capacity
}
