package renderer

import (
	"image"
	"image/color"

	"github.com/kjkrol/goktile/pkg/gfx"
	xdraw "golang.org/x/image/draw"
)

// spriteRect returns the scene-space corners x0, y0, x1, y1 of a sprite.
func spriteRect(sprite *gfx.Sprite) [4]float32 {
	b := sprite.Bounds()
	return [4]float32{
		float32(b.TopLeft.X),
		float32(b.TopLeft.Y),
		float32(b.BottomRight.X),
		float32(b.BottomRight.Y),
	}
}

func colorToFloat(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, b, a := c.RGBA()
	const inv = 1.0 / 65535.0
	return [4]float32{
		float32(r) * inv,
		float32(g) * inv,
		float32(b) * inv,
		float32(a) * inv,
	}
}

// toRGBA returns img as a tightly packed RGBA image with a zero origin, ready
// for a texture upload.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba
}
