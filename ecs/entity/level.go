package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
)

// wallHalfHeight is half the height of the side walls in physics units.
const wallHalfHeight = 300.0 / common.PhysicsScale

// SpawnLevel builds the static geometry of a level: ground segments between
// the holes, side walls and obstacles.
func SpawnLevel(w *ecs.World, level levels.Level) error {
	friction := component.DefaultRigTuning().Friction
	if e, ok := ecs.First(w, component.RigTuningComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.RigTuningComponent.Kind()); ok {
			friction = t.Friction
		}
	}

	for i, seg := range levels.GroundSegments(level) {
		if _, err := spawnPlatform(w, seg.Center(), 0, 0, seg.HalfWidth(), 0.5*common.PathHeight, friction); err != nil {
			return fmt.Errorf("level %s: ground %d: %w", level, i, err)
		}
	}

	for i, c := range level.Colliders() {
		if _, err := spawnPlatform(w, c.X, c.Y, c.Rotation, c.HalfWidth, c.HalfHeight, friction); err != nil {
			return fmt.Errorf("level %s: obstacle %d: %w", level, i, err)
		}
	}

	left, right := levels.WallXs(level)
	for _, x := range []float64{left, right} {
		// a horizontal box turned upright
		_, err := BuildEntity(w, "wall",
			forLevel(),
			transformAt(common.ToPixels(x), common.CameraY, math.Pi/2),
			with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Kind:       component.ShapeBox,
				HalfWidth:  wallHalfHeight,
				HalfHeight: common.PathHeight,
				Friction:   friction,
				Static:     true,
			}),
		)
		if err != nil {
			return fmt.Errorf("level %s: wall: %w", level, err)
		}
	}
	return nil
}

func spawnPlatform(w *ecs.World, x, y, rotation, halfWidth, halfHeight, friction float64) (ecs.Entity, error) {
	return BuildEntity(w, "platform",
		with(component.PlatformTagComponent.Kind(), &component.PlatformTag{}),
		forLevel(),
		transformAt(common.ToPixels(x), common.ToPixels(y), rotation),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:       component.ShapeBox,
			HalfWidth:  halfWidth,
			HalfHeight: halfHeight,
			Friction:   friction,
			Static:     true,
		}),
	)
}

// DespawnLevel destroys every level-scoped entity. The physics system drops
// the matching bodies on its next sync.
func DespawnLevel(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.ForLevelTagComponent.Kind(), func(e ecs.Entity, _ *component.ForLevelTag) {
		if ecs.DestroyEntity(w, e) {
			n++
		}
	})
	return n
}
