package entity

import (
	"fmt"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity) error

// with adds value under kind when the entity is built.
func with[T any](kind component.ComponentKind[T], value *T) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, value)
	}
}

// BuildEntity creates an entity from a list of component builders. The entity
// is destroyed again if any builder fails.
func BuildEntity(w *ecs.World, what string, builders ...componentBuildFn) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build %s: world is nil", what)
	}
	e := ecs.CreateEntity(w)
	for i, build := range builders {
		if err := build(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build %s: component %d: %w", what, i, err)
		}
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func forLevel() componentBuildFn {
	return with(component.ForLevelTagComponent.Kind(), &component.ForLevelTag{})
}

func transformAt(x, y, rotation float64) componentBuildFn {
	return with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1, Rotation: rotation})
}
