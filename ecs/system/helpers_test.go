package system

import (
	"testing"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/entity"
	"github.com/milk9111/unicycle/levels"
)

type rigWorld struct {
	w       *ecs.World
	physics *PhysicsSystem
	rig     entity.Rig
}

func newRigWorld(t *testing.T, level levels.Level) *rigWorld {
	t.Helper()
	w := ecs.NewWorld()
	current := singleton(w, component.CurrentLevelComponent.Kind())
	current.Level = level
	current.Initial = level

	if err := entity.SpawnLevel(w, level); err != nil {
		t.Fatalf("spawn level: %v", err)
	}
	rig, err := entity.SpawnRig(w, level)
	if err != nil {
		t.Fatalf("spawn rig: %v", err)
	}
	ps := NewPhysicsSystem()
	ps.Reset(w, tuning(w).Gravity)
	ps.Sync(w)
	return &rigWorld{w: w, physics: ps, rig: rig}
}

func (rw *rigWorld) body(t *testing.T, e ecs.Entity) *component.PhysicsBody {
	t.Helper()
	pb, ok := ecs.Get(rw.w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		t.Fatalf("entity %v has no physics body", e)
	}
	return pb
}

func soundRequests(w *ecs.World) []component.SoundEffect {
	var out []component.SoundEffect
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(_ ecs.Entity, r *component.SoundRequest) {
		out = append(out, r.Effect)
	})
	return out
}

func ptr(v float64) *float64 {
	return &v
}
