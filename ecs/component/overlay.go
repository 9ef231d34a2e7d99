package component

import "github.com/tanema/gween"

// Overlay dims the level behind the Lost and Finished buttons.
type Overlay struct {
	Alpha float64
	Fade  *gween.Tween
}

var OverlayComponent = NewComponent[Overlay]()
