package gfx

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokg/pkg/geom"
)

// RenderTarget is an offscreen texture owned by exactly one user. Dispose releases
// the GPU resources behind it.
type RenderTarget interface {
	Size() (int, int)
	Dispose()
}

// Device is the draw surface the chunk core submits work to. Only one render
// target is active at a time; nil selects the main framebuffer.
type Device interface {
	NewRenderTarget(width, height int) RenderTarget
	SetRenderTarget(target RenderTarget)
	RenderScene(scene *Scene, camera Camera)
}

type Camera struct {
	Projection mgl32.Mat4
}

// NewOrthoCamera maps the scene rectangle [left,right]x[bottom,top] onto the whole target.
func NewOrthoCamera(left, right, bottom, top float32) Camera {
	return Camera{Projection: mgl32.Ortho2D(left, right, bottom, top)}
}

// PixelRect projects scene-space bounds into pixel coordinates of a width x height
// target whose origin is the top-left corner.
func (c Camera) PixelRect(bounds geom.AABB[int], width, height int) image.Rectangle {
	x0, y0 := c.project(bounds.TopLeft, width, height)
	x1, y1 := c.project(bounds.BottomRight, width, height)
	return image.Rect(x0, y0, x1, y1)
}

func (c Camera) project(v geom.Vec[int], width, height int) (int, int) {
	ndc := c.Projection.Mul4x1(mgl32.Vec4{float32(v.X), float32(v.Y), 0, 1})
	x := (float64(ndc.X()) + 1) / 2 * float64(width)
	y := (1 - float64(ndc.Y())) / 2 * float64(height)
	return int(math.Round(x)), int(math.Round(y))
}
