package entity

import (
	"fmt"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	overlayAlpha        = 0.6
	overlayFadeDuration = 0.4
)

// SpawnOverlay creates the single overlay button and the backdrop that fades
// in behind it.
func SpawnOverlay(w *ecs.World, kind component.ButtonKind) (ecs.Entity, error) {
	DespawnOverlay(w)
	button, err := BuildEntity(w, "overlay button",
		with(component.ButtonComponent.Kind(), &component.Button{
			Kind:     kind,
			Label:    kind.Label(),
			Material: component.ButtonNormal,
		}),
		with(component.OverlayComponent.Kind(), &component.Overlay{
			Fade: gween.New(0, overlayAlpha, overlayFadeDuration, ease.OutQuad),
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("overlay: %w", err)
	}
	return button, nil
}

// DespawnOverlay removes the overlay button and backdrop.
func DespawnOverlay(w *ecs.World) {
	ecs.ForEach(w, component.ButtonComponent.Kind(), func(e ecs.Entity, _ *component.Button) {
		ecs.DestroyEntity(w, e)
	})
	ecs.ForEach(w, component.OverlayComponent.Kind(), func(e ecs.Entity, _ *component.Overlay) {
		ecs.DestroyEntity(w, e)
	})
}
