//go:build !js

package renderer

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/goktile/pkg/gfx"
)

//go:embed shader.glsl
var shaderSource string

// Device draws scenes with OpenGL 3.3. Every render target is a texture with
// its own framebuffer; swatch images are uploaded once and kept by key. All
// calls must come from the thread owning the GL context.
type Device struct {
	initialized bool

	program      uint32
	quadVbo      uint32
	quadVao      uint32
	projUniform  int32
	rectUniform  int32
	flipUniform  int32
	texUniform   int32
	screenWidth  int
	screenHeight int

	current  *target
	targets  map[*target]struct{}
	swatches map[uint64]uint32
}

type target struct {
	device   *Device
	texture  uint32
	fbo      uint32
	width    int
	height   int
	disposed bool
}

func NewDevice(screenWidth, screenHeight int) *Device {
	return &Device{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		targets:      make(map[*target]struct{}),
		swatches:     make(map[uint64]uint32),
	}
}

// SetScreenSize tracks the size of the default framebuffer.
func (d *Device) SetScreenSize(width, height int) {
	d.screenWidth = width
	d.screenHeight = height
}

func (d *Device) NewRenderTarget(width, height int) gfx.RenderTarget {
	d.ensureInit()
	t := &target{device: d, width: width, height: height}
	gl.GenTextures(1, &t.texture)
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	setTextureParams()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		panic(fmt.Sprintf("framebuffer incomplete: 0x%x", status))
	}
	d.bindCurrent()
	d.targets[t] = struct{}{}
	return t
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

func (d *Device) bindCurrent() {
	if d.current == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(d.screenWidth), int32(d.screenHeight))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.current.fbo)
	gl.Viewport(0, 0, int32(d.current.width), int32(d.current.height))
}

func (d *Device) RenderScene(scene *gfx.Scene, camera gfx.Camera) {
	if scene == nil {
		return
	}
	d.ensureInit()
	d.bindCurrent()

	if scene.Background != nil {
		bg := colorToFloat(scene.Background)
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}

	gl.UseProgram(d.program)
	gl.BindVertexArray(d.quadVao)
	gl.UniformMatrix4fv(d.projUniform, 1, false, &camera.Projection[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(d.texUniform, 0)

	for _, sprite := range scene.Sprites() {
		if sprite == nil || sprite.Hidden {
			continue
		}
		texture, flip, ok := d.spriteTexture(sprite)
		if !ok {
			continue
		}
		rect := spriteRect(sprite)
		gl.Uniform4f(d.rectUniform, rect[0], rect[1], rect[2], rect[3])
		gl.Uniform1f(d.flipUniform, flip)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
}

// spriteTexture resolves the GL texture a sprite samples. Swatch images are
// stored top row first and need a flipped V; framebuffer textures do not.
func (d *Device) spriteTexture(sprite *gfx.Sprite) (uint32, float32, bool) {
	if sprite.Texture != nil {
		t, ok := sprite.Texture.(*target)
		if !ok || t.device != d || t.disposed {
			return 0, 0, false
		}
		return t.texture, 0, true
	}
	if sprite.Swatch == nil {
		return 0, 0, false
	}
	if texture, ok := d.swatches[sprite.Swatch.Key]; ok {
		return texture, 1, true
	}
	texture := uploadImage(sprite.Swatch)
	d.swatches[sprite.Swatch.Key] = texture
	return texture, 1, true
}

func uploadImage(swatch *gfx.Swatch) uint32 {
	rgba := toRGBA(swatch.Image)
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	setTextureParams()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	return texture
}

func setTextureParams() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// LiveTargets counts render targets not yet disposed.
func (d *Device) LiveTargets() int {
	return len(d.targets)
}

func (t *target) Size() (int, int) {
	return t.width, t.height
}

func (t *target) Dispose() {
	if t.disposed {
		panic("render target disposed twice")
	}
	t.disposed = true
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.texture)
	delete(t.device.targets, t)
	if t.device.current == t {
		t.device.current = nil
	}
}

// Close releases every GL object the device still owns.
func (d *Device) Close() {
	if !d.initialized {
		return
	}
	for t := range d.targets {
		t.Dispose()
	}
	for key, texture := range d.swatches {
		gl.DeleteTextures(1, &texture)
		delete(d.swatches, key)
	}
	if d.quadVbo != 0 {
		gl.DeleteBuffers(1, &d.quadVbo)
	}
	if d.quadVao != 0 {
		gl.DeleteVertexArrays(1, &d.quadVao)
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
	d.initialized = false
}

func (d *Device) ensureInit() {
	if d.initialized {
		return
	}
	if err := gl.Init(); err != nil {
		panic(fmt.Sprintf("gl.Init error: %v", err))
	}

	d.program = buildProgram()
	d.projUniform = gl.GetUniformLocation(d.program, gl.Str("uProjection\x00"))
	d.rectUniform = gl.GetUniformLocation(d.program, gl.Str("uRect\x00"))
	d.flipUniform = gl.GetUniformLocation(d.program, gl.Str("uFlipY\x00"))
	d.texUniform = gl.GetUniformLocation(d.program, gl.Str("uTex\x00"))

	d.initQuad()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	d.initialized = true
}

func (d *Device) initQuad() {
	quad := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 0,
		1, 1,
		0, 1,
	}
	gl.GenBuffers(1, &d.quadVbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.GenVertexArrays(1, &d.quadVao)
	gl.BindVertexArray(d.quadVao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
}

func buildProgram() uint32 {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, buildShaderSource("VERTEX"))
	if err != nil {
		panic(err)
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, buildShaderSource("FRAGMENT"))
	if err != nil {
		panic(err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		panic(fmt.Errorf("link error: %s", log))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program
}

func buildShaderSource(stage string) string {
	var sb strings.Builder
	sb.WriteString("#version 330 core\n")
	sb.WriteString("#define " + stage + "\n")
	sb.WriteString(shaderSource)
	if !strings.HasSuffix(shaderSource, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}
