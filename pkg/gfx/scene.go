package gfx

import (
	"image/color"

	"github.com/kjkrol/gokg/pkg/geom"
)

// Sprite is an axis-aligned quad in scene space (Y grows upward). It samples
// Texture when set, Swatch otherwise.
type Sprite struct {
	Center  geom.Vec[int]
	Size    geom.Vec[int]
	Swatch  *Swatch
	Texture RenderTarget
	Hidden  bool
	scene   *Scene
}

func NewSprite(size geom.Vec[int]) *Sprite {
	return &Sprite{Size: size}
}

// Bounds returns the min corner in TopLeft and the max corner in BottomRight.
func (s *Sprite) Bounds() geom.AABB[int] {
	lo := geom.NewVec(s.Center.X-s.Size.X/2, s.Center.Y-s.Size.Y/2)
	return geom.NewAABBAt(lo, s.Size.X, s.Size.Y)
}

func (s *Sprite) Scene() *Scene {
	return s.scene
}

type Scene struct {
	Background color.Color
	sprites    []*Sprite
}

func NewScene() *Scene {
	return &Scene{sprites: make([]*Sprite, 0)}
}

func (sc *Scene) Add(sprite *Sprite) {
	if sprite == nil {
		return
	}
	if sprite.scene == sc {
		return
	}
	if sprite.scene != nil {
		sprite.scene.Remove(sprite)
	}
	sc.sprites = append(sc.sprites, sprite)
	sprite.scene = sc
}

func (sc *Scene) Remove(sprite *Sprite) bool {
	if sprite == nil || sprite.scene != sc {
		return false
	}
	for i, existing := range sc.sprites {
		if existing == sprite {
			sc.sprites = append(sc.sprites[:i], sc.sprites[i+1:]...)
			break
		}
	}
	sprite.scene = nil
	return true
}

// Sprites exposes the live slice; callers must not retain it across Add/Remove.
func (sc *Scene) Sprites() []*Sprite {
	return sc.sprites
}

func (sc *Scene) Len() int {
	return len(sc.sprites)
}

func (sc *Scene) Clear() {
	for _, sprite := range sc.sprites {
		sprite.scene = nil
	}
	sc.sprites = sc.sprites[:0]
}
