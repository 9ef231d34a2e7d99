package entity

import (
	"fmt"

	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// NewCamera returns the camera entity, creating it on first use.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		return e, nil
	}
	camera, err := BuildEntity(w, "camera",
		with(component.CameraTagComponent.Kind(), &component.CameraTag{}),
		transformAt(0, common.CameraY, 0),
		with(component.CameraComponent.Kind(), &component.Camera{FixedY: common.CameraY}),
	)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return camera, nil
}
