package input

type Event interface{}

// Resize reports the new drawable size of the host window in pixels.
type Resize struct {
	Width, Height int
}

// Pan asks to move the view by DX, DY map pixels.
type Pan struct {
	DX, DY int
}

type KeyPress struct {
	Label string
}

type ButtonPress struct {
	Button uint32
	X, Y   int
}
