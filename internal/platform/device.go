package platform

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kjkrol/goktile/internal/texcache"
	"github.com/kjkrol/goktile/pkg/gfx"
)

// swatchCacheBytes bounds the GPU images kept for palette swatches.
const swatchCacheBytes = 64 * 1024 * 1024

// Device renders scenes with ebiten offscreen images. Render targets are
// images of their own; the main target is the screen handed to Draw.
type Device struct {
	screen   *ebiten.Image
	current  *target
	swatches *texcache.Cache[*ebiten.Image]
	live     int
}

type target struct {
	device   *Device
	img      *ebiten.Image
	disposed bool
}

func NewDevice() (*Device, error) {
	cache, err := texcache.New(swatchCacheBytes, uploadSwatch, (*ebiten.Image).Deallocate)
	if err != nil {
		return nil, err
	}
	return &Device{swatches: cache}, nil
}

func uploadSwatch(swatch *gfx.Swatch) *ebiten.Image {
	return ebiten.NewImageFromImage(swatch.Image)
}

// SetScreen points the main target at the screen of the current frame.
func (d *Device) SetScreen(screen *ebiten.Image) {
	d.screen = screen
}

func (d *Device) NewRenderTarget(width, height int) gfx.RenderTarget {
	d.live++
	return &target{device: d, img: ebiten.NewImage(width, height)}
}

func (d *Device) SetRenderTarget(rt gfx.RenderTarget) {
	if rt == nil {
		d.current = nil
		return
	}
	t, ok := rt.(*target)
	if !ok || t.device != d {
		panic(fmt.Sprintf("render target %T does not belong to this device", rt))
	}
	if t.disposed {
		panic("render target is disposed")
	}
	d.current = t
}

func (d *Device) RenderScene(scene *gfx.Scene, camera gfx.Camera) {
	if scene == nil {
		return
	}
	dst := d.screen
	if d.current != nil {
		dst = d.current.img
	}
	if dst == nil {
		return
	}
	if scene.Background != nil {
		dst.Fill(scene.Background)
	}
	bounds := dst.Bounds()
	for _, sprite := range scene.Sprites() {
		if sprite == nil || sprite.Hidden {
			continue
		}
		src := d.spriteImage(sprite)
		if src == nil {
			continue
		}
		rect := camera.PixelRect(sprite.Bounds(), bounds.Dx(), bounds.Dy())
		if rect.Empty() || !rect.Overlaps(bounds) {
			continue
		}
		sb := src.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(rect.Dx())/float64(sb.Dx()), float64(rect.Dy())/float64(sb.Dy()))
		op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
		dst.DrawImage(src, op)
	}
}

func (d *Device) spriteImage(sprite *gfx.Sprite) *ebiten.Image {
	if sprite.Texture != nil {
		t, ok := sprite.Texture.(*target)
		if !ok || t.device != d || t.disposed {
			return nil
		}
		return t.img
	}
	if sprite.Swatch == nil {
		return nil
	}
	return d.swatches.Lookup(sprite.Swatch)
}

// LiveTargets counts render targets not yet disposed.
func (d *Device) LiveTargets() int {
	return d.live
}

func (d *Device) Close() {
	d.swatches.Close()
}

func (t *target) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *target) Dispose() {
	if t.disposed {
		panic("render target disposed twice")
	}
	t.disposed = true
	t.img.Deallocate()
	t.device.live--
	if t.device.current == t {
		t.device.current = nil
	}
}
