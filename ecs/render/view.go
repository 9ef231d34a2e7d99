package render

import (
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// View maps world pixels (y up) to screen pixels (y down) around the camera.
type View struct {
	CamX, CamY float64
}

// CameraView reads the camera entity. Without a camera the view is centered
// on the world origin at the default height.
func CameraView(w *ecs.World) View {
	v := View{CamY: common.CameraY}
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
		v.CamX, v.CamY = t.X, t.Y
	}
	return v
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	return x - v.CamX + common.BaseWidth/2, v.CamY - y + common.BaseHeight/2
}
