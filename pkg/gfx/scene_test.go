package gfx_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/kjkrol/gokg/pkg/geom"
	"github.com/kjkrol/goktile/pkg/gfx"
)

func TestSceneAddMovesSprite(t *testing.T) {
	a := gfx.NewScene()
	b := gfx.NewScene()
	sprite := gfx.NewSprite(geom.NewVec(4, 4))

	a.Add(sprite)
	a.Add(sprite)
	if a.Len() != 1 {
		t.Fatalf("scene a has %d sprites, want 1", a.Len())
	}
	b.Add(sprite)
	if a.Len() != 0 || b.Len() != 1 {
		t.Errorf("after move: a=%d b=%d, want 0 and 1", a.Len(), b.Len())
	}
	if sprite.Scene() != b {
		t.Error("sprite should report scene b")
	}
	if a.Remove(sprite) {
		t.Error("removing from a scene that does not hold the sprite should fail")
	}
	if !b.Remove(sprite) || sprite.Scene() != nil {
		t.Error("remove should detach the sprite")
	}
}

func TestSpriteBounds(t *testing.T) {
	sprite := gfx.NewSprite(geom.NewVec(4, 6))
	sprite.Center = geom.NewVec(10, 20)
	b := sprite.Bounds()
	if b.TopLeft.X != 8 || b.TopLeft.Y != 17 || b.BottomRight.X != 12 || b.BottomRight.Y != 23 {
		t.Errorf("bounds = %v..%v, want (8,17)..(12,23)", b.TopLeft, b.BottomRight)
	}
}

func TestCameraPixelRectFlipsY(t *testing.T) {
	camera := gfx.NewOrthoCamera(0, 16, 0, 16)
	sprite := gfx.NewSprite(geom.NewVec(4, 4))
	sprite.Center = geom.NewVec(2, 14) // top-left corner of a Y-up scene
	got := camera.PixelRect(sprite.Bounds(), 16, 16)
	if want := image.Rect(0, 0, 4, 4); got != want {
		t.Errorf("PixelRect = %v, want %v", got, want)
	}
	scaled := camera.PixelRect(sprite.Bounds(), 32, 32)
	if want := image.Rect(0, 0, 8, 8); scaled != want {
		t.Errorf("scaled PixelRect = %v, want %v", scaled, want)
	}
}

func TestSurfaceDeviceRendersIntoTarget(t *testing.T) {
	device := gfx.NewSurfaceDevice(8, 8)
	target := device.NewRenderTarget(8, 8)
	if device.LiveTargets() != 1 {
		t.Fatalf("live targets = %d, want 1", device.LiveTargets())
	}

	red := color.RGBA{0xff, 0, 0, 0xff}
	scene := gfx.NewScene()
	scene.Background = color.Black
	sprite := gfx.NewSprite(geom.NewVec(4, 4))
	sprite.Center = geom.NewVec(6, 6)
	sprite.Swatch = gfx.NewColorSwatch(red, 1)
	scene.Add(sprite)

	device.SetRenderTarget(target)
	device.RenderScene(scene, gfx.NewOrthoCamera(0, 8, 0, 8))
	device.SetRenderTarget(nil)

	img := device.Image(target)
	if got := img.RGBAAt(6, 1); got != red {
		t.Errorf("top-right texel = %v, want red", got)
	}
	if got := img.RGBAAt(1, 6); got != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("bottom-left texel = %v, want black", got)
	}
	if got := device.Screen().RGBAAt(6, 1); got == red {
		t.Error("screen should be untouched while a target is bound")
	}
	if device.Renders() != 1 {
		t.Errorf("renders = %d, want 1", device.Renders())
	}

	// Textures win over swatches when a sprite has both.
	quad := gfx.NewSprite(geom.NewVec(8, 8))
	quad.Center = geom.NewVec(4, 4)
	quad.Texture = target
	quad.Swatch = gfx.NewColorSwatch(color.White, 1)
	composite := gfx.NewScene()
	composite.Add(quad)
	device.RenderScene(composite, gfx.NewOrthoCamera(0, 8, 0, 8))
	if got := device.Screen().RGBAAt(6, 1); got != red {
		t.Errorf("screen texel = %v, want red from the target", got)
	}
}

func TestSurfaceDeviceHiddenSprite(t *testing.T) {
	device := gfx.NewSurfaceDevice(4, 4)
	scene := gfx.NewScene()
	sprite := gfx.NewSprite(geom.NewVec(4, 4))
	sprite.Center = geom.NewVec(2, 2)
	sprite.Swatch = gfx.NewColorSwatch(color.White, 1)
	sprite.Hidden = true
	scene.Add(sprite)
	device.RenderScene(scene, gfx.NewOrthoCamera(0, 4, 0, 4))
	if got := device.Screen().RGBAAt(1, 1); got.A != 0 {
		t.Errorf("hidden sprite drawn: %v", got)
	}
}

func TestSurfaceTargetLifecycle(t *testing.T) {
	device := gfx.NewSurfaceDevice(1, 1)
	target := device.NewRenderTarget(4, 2)
	if w, h := target.Size(); w != 4 || h != 2 {
		t.Errorf("Size = %dx%d, want 4x2", w, h)
	}
	target.Dispose()
	if device.LiveTargets() != 0 {
		t.Errorf("live targets = %d, want 0", device.LiveTargets())
	}

	panics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	panics("double dispose", target.Dispose)
	panics("bind disposed target", func() { device.SetRenderTarget(target) })
	panics("bind foreign target", func() {
		device.SetRenderTarget(gfx.NewSurfaceDevice(1, 1).NewRenderTarget(1, 1))
	})
}
