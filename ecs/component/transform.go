package component

// Transform is the rendered placement in pixels, y up. It is written by the
// physics system after every step.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
