package input

// KeyPan maps an arrow or WASD key label to a pan of speed pixels.
func KeyPan(label string, speed int) (Pan, bool) {
	switch label {
	case "Left", "A", "a":
		return Pan{DX: -speed}, true
	case "Right", "D", "d":
		return Pan{DX: speed}, true
	case "Up", "W", "w":
		return Pan{DY: -speed}, true
	case "Down", "S", "s":
		return Pan{DY: speed}, true
	}
	return Pan{}, false
}
