package gfx

import (
	"image"
	"image/color"
)

// TileID indexes a Palette.
type TileID uint16

// Swatch is the drawable material of one tile type. Devices upload Image once and
// cache it under Key.
type Swatch struct {
	Key   uint64
	Image image.Image
}

func NewSwatch(img image.Image) *Swatch {
	if img == nil {
		panic("swatch image is required")
	}
	return &Swatch{Key: NextSwatchKey(), Image: img}
}

// NewColorSwatch fills a size x size swatch with c.
func NewColorSwatch(c color.Color, size int) *Swatch {
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fillRect(img, img.Bounds(), c)
	return NewSwatch(img)
}

// GreenTile shades a grass swatch; lightness runs from 0 to 1.
func GreenTile(lightness float64, size int) *Swatch {
	if lightness < 0 {
		lightness = 0
	} else if lightness > 1 {
		lightness = 1
	}
	return NewColorSwatch(color.RGBA{0, uint8(100 + int(150*lightness)), 0, 0xff}, size)
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}
