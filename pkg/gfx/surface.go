package gfx

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// SurfaceDevice is a software Device backed by image.RGBA surfaces. It serves
// headless rendering and tests.
type SurfaceDevice struct {
	screen  *image.RGBA
	current *surfaceTarget
	live    int
	renders int
}

type surfaceTarget struct {
	device   *SurfaceDevice
	img      *image.RGBA
	disposed bool
}

func NewSurfaceDevice(width, height int) *SurfaceDevice {
	d := &SurfaceDevice{}
	d.Resize(width, height)
	return d
}

func (d *SurfaceDevice) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	d.screen = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Screen returns the main framebuffer.
func (d *SurfaceDevice) Screen() *image.RGBA {
	return d.screen
}

// LiveTargets counts render targets created and not yet disposed.
func (d *SurfaceDevice) LiveTargets() int {
	return d.live
}

// Renders counts RenderScene calls.
func (d *SurfaceDevice) Renders() int {
	return d.renders
}

func (d *SurfaceDevice) NewRenderTarget(width, height int) RenderTarget {
	d.live++
	return &surfaceTarget{
		device: d,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (d *SurfaceDevice) SetRenderTarget(target RenderTarget) {
	if target == nil {
		d.current = nil
		return
	}
	st, ok := target.(*surfaceTarget)
	if !ok || st.device != d {
		panic(fmt.Sprintf("render target %T does not belong to this device", target))
	}
	if st.disposed {
		panic("render target is disposed")
	}
	d.current = st
}

func (d *SurfaceDevice) RenderScene(scene *Scene, camera Camera) {
	if scene == nil {
		return
	}
	d.renders++
	dst := d.screen
	if d.current != nil {
		dst = d.current.img
	}
	if scene.Background != nil {
		fillRect(dst, dst.Bounds(), scene.Background)
	}
	width, height := dst.Bounds().Dx(), dst.Bounds().Dy()
	for _, sprite := range scene.Sprites() {
		if sprite == nil || sprite.Hidden {
			continue
		}
		src := d.spriteImage(sprite)
		if src == nil {
			continue
		}
		rect := camera.PixelRect(sprite.Bounds(), width, height)
		if rect.Empty() || !rect.Overlaps(dst.Bounds()) {
			continue
		}
		xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
	}
}

func (d *SurfaceDevice) spriteImage(sprite *Sprite) image.Image {
	if sprite.Texture != nil {
		st, ok := sprite.Texture.(*surfaceTarget)
		if !ok || st.disposed {
			return nil
		}
		return st.img
	}
	if sprite.Swatch != nil {
		return sprite.Swatch.Image
	}
	return nil
}

// Image exposes the pixels of a target created by this device.
func (d *SurfaceDevice) Image(target RenderTarget) *image.RGBA {
	st, ok := target.(*surfaceTarget)
	if !ok || st.device != d {
		return nil
	}
	return st.img
}

func (t *surfaceTarget) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *surfaceTarget) Dispose() {
	if t.disposed {
		panic("render target disposed twice")
	}
	t.disposed = true
	t.img = nil
	t.device.live--
	if t.device.current == t {
		t.device.current = nil
	}
}
