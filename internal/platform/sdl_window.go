//go:build sdl && cgo

package platform

/*
#cgo pkg-config: sdl2
#include <stdlib.h>
#include <SDL2/SDL.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/kjkrol/goktile/pkg/input"
)

const rightButtonMask = 1 << 2

// GLWindow is an SDL window owning an OpenGL 3.3 core context. It must be
// created and used from the main goroutine.
type GLWindow struct {
	window  *C.SDL_Window
	context C.SDL_GLContext
	width   int
	height  int
}

func NewGLWindow(title string, width, height int) (*GLWindow, error) {
	runtime.LockOSThread()
	if C.SDL_Init(C.SDL_INIT_VIDEO) != 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_Init error: %s", C.GoString(C.SDL_GetError()))
	}
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MAJOR_VERSION, C.int(3))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MINOR_VERSION, C.int(3))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_PROFILE_MASK, C.int(C.SDL_GL_CONTEXT_PROFILE_CORE))
	C.SDL_GL_SetAttribute(C.SDL_GL_DOUBLEBUFFER, C.int(1))

	cTitle := C.CString(title)
	defer C.free(unsafe.Pointer(cTitle))

	window := C.SDL_CreateWindow(cTitle, C.SDL_WINDOWPOS_CENTERED, C.SDL_WINDOWPOS_CENTERED,
		C.int(width), C.int(height), C.SDL_WINDOW_OPENGL|C.SDL_WINDOW_SHOWN|C.SDL_WINDOW_RESIZABLE)
	if window == nil {
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_CreateWindow error: %s", C.GoString(C.SDL_GetError()))
	}
	context := C.SDL_GL_CreateContext(window)
	if context == nil {
		C.SDL_DestroyWindow(window)
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SDL_GL_CreateContext error: %s", C.GoString(C.SDL_GetError()))
	}
	C.SDL_GL_SetSwapInterval(1)

	return &GLWindow{window: window, context: context, width: width, height: height}, nil
}

func (w *GLWindow) Size() (int, int) {
	return w.width, w.height
}

// PollEvents forwards pending SDL events to the bus. It returns false once the
// window was asked to close.
func (w *GLWindow) PollEvents(bus *input.Bus) bool {
	var e C.SDL_Event
	for C.SDL_PollEvent(&e) != 0 {
		switch eventType := (*(*C.Uint32)(unsafe.Pointer(&e))); eventType {
		case C.SDL_QUIT:
			return false
		case C.SDL_KEYDOWN:
			keyEvent := (*C.SDL_KeyboardEvent)(unsafe.Pointer(&e))
			bus.Emit(input.KeyPress{Label: C.GoString(C.SDL_GetKeyName(keyEvent.keysym.sym))})
		case C.SDL_MOUSEBUTTONDOWN:
			mouseEvent := (*C.SDL_MouseButtonEvent)(unsafe.Pointer(&e))
			bus.Emit(input.ButtonPress{
				Button: uint32(mouseEvent.button),
				X:      int(mouseEvent.x),
				Y:      int(mouseEvent.y),
			})
		case C.SDL_MOUSEMOTION:
			motion := (*C.SDL_MouseMotionEvent)(unsafe.Pointer(&e))
			if motion.state&rightButtonMask != 0 {
				bus.Emit(input.Pan{DX: -int(motion.xrel), DY: -int(motion.yrel)})
			}
		case C.SDL_WINDOWEVENT:
			windowEvent := (*C.SDL_WindowEvent)(unsafe.Pointer(&e))
			if windowEvent.event == C.SDL_WINDOWEVENT_SIZE_CHANGED {
				w.width = int(windowEvent.data1)
				w.height = int(windowEvent.data2)
				bus.Emit(input.Resize{Width: w.width, Height: w.height})
			}
		}
	}
	return true
}

func (w *GLWindow) Swap() {
	C.SDL_GL_SwapWindow(w.window)
}

func (w *GLWindow) Close() {
	C.SDL_GL_DeleteContext(w.context)
	C.SDL_DestroyWindow(w.window)
	C.SDL_Quit()
	runtime.UnlockOSThread()
}
