package component

// Camera follows the head horizontally and stays at FixedY, in pixels.
type Camera struct {
	FixedY float64
}

var CameraComponent = NewComponent[Camera]()
