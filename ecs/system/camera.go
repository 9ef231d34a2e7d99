package system

import (
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// CameraSystem keeps the camera on the head's x at a fixed height.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	head, ok := single(w, component.HeadTagComponent.Kind(), "head")
	if !ok {
		return
	}
	headTransform, ok := ecs.Get(w, head, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.Camera, t *component.Transform) {
		t.X = headTransform.X
		t.Y = cam.FixedY
	})
}
