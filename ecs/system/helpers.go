package system

import (
	"log"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// singleton returns the only value of kind, creating an entity for it when
// none exists yet.
func singleton[T any](w *ecs.World, kind component.ComponentKind[T]) *T {
	if e, ok := ecs.First(w, kind); ok {
		if v, ok := ecs.Get(w, e, kind); ok {
			return v
		}
	}
	e := ecs.CreateEntity(w)
	v := new(T)
	if err := ecs.Add(w, e, kind, v); err != nil {
		log.Printf("system: create singleton: %v", err)
	}
	return v
}

// single returns the entity carrying kind and reports false, with a warning,
// when there is not exactly one.
func single[T any](w *ecs.World, kind component.ComponentKind[T], what string) (ecs.Entity, bool) {
	switch n := ecs.Count(w, kind); n {
	case 1:
		return ecs.First(w, kind)
	case 0:
		return 0, false
	default:
		log.Printf("system: expected one %s, found %d; skipping frame", what, n)
		return 0, false
	}
}

// rigBody returns the physics body of the single entity tagged with kind.
func rigBody[T any](w *ecs.World, kind component.ComponentKind[T], what string) (*component.PhysicsBody, bool) {
	e, ok := single(w, kind, what)
	if !ok {
		return nil, false
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return nil, false
	}
	return pb, true
}

// requestSound queues a one-shot sound for the audio system.
func requestSound(w *ecs.World, effect component.SoundEffect) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SoundRequestComponent.Kind(), &component.SoundRequest{Effect: effect}); err != nil {
		log.Printf("system: request sound %s: %v", effect, err)
	}
}

func tuning(w *ecs.World) component.RigTuning {
	if e, ok := ecs.First(w, component.RigTuningComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.RigTuningComponent.Kind()); ok {
			return *t
		}
	}
	return component.DefaultRigTuning()
}
