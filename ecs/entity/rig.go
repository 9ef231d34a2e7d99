package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
)

// rigGroup keeps the rig's own shapes from colliding with each other.
const rigGroup uint = 1

const (
	TextureWheel = "wheel"
	TextureBody  = "body"
	TextureHead  = "head"
)

// Rig holds the entities of one spawned player rig.
type Rig struct {
	Wheel     ecs.Entity
	Body      ecs.Entity
	Head      ecs.Entity
	WheelBody ecs.Entity
	BodyHead  ecs.Entity
}

// WheelAnchors returns the local anchors of the wheel-body joint.
func WheelAnchors() (cp.Vector, cp.Vector) {
	return cp.Vector{}, cp.Vector{Y: -0.5*common.BodyLength - common.BodyRadius - common.WheelRadius - 0.1}
}

// HeadAnchors returns the local anchors of the body-head joint.
func HeadAnchors() (cp.Vector, cp.Vector) {
	return cp.Vector{Y: 0.5*common.BodyLength + common.BodyRadius}, cp.Vector{Y: -0.5 * common.HeadRadius}
}

// SpawnRig creates wheel, body and head at the level's starting points and
// joins them with two ball joints. Tuning comes from the RigTuning singleton.
func SpawnRig(w *ecs.World, level levels.Level) (Rig, error) {
	t := component.DefaultRigTuning()
	if e, ok := ecs.First(w, component.RigTuningComponent.Kind()); ok {
		if v, ok := ecs.Get(w, e, component.RigTuningComponent.Kind()); ok {
			t = *v
		}
	}
	sp := level.StartingPoints()

	var rig Rig
	var err error
	rig.Wheel, err = BuildEntity(w, "wheel",
		with(component.WheelTagComponent.Kind(), &component.WheelTag{}),
		forLevel(),
		transformAt(common.ToPixels(sp.Wheel.X), common.ToPixels(sp.Wheel.Y), 0),
		with(component.SpriteComponent.Kind(), &component.Sprite{Texture: TextureWheel, Layer: 2}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:           component.ShapeBall,
			Radius:         common.WheelRadius,
			Mass:           t.Density * ballArea(common.WheelRadius),
			Friction:       t.Friction,
			AngularDamping: t.WheelAngularDamping,
			ContactEvents:  true,
			Group:          rigGroup,
		}),
	)
	if err != nil {
		return Rig{}, fmt.Errorf("rig: %w", err)
	}

	rig.Body, err = BuildEntity(w, "body",
		with(component.BodyTagComponent.Kind(), &component.BodyTag{}),
		forLevel(),
		transformAt(common.ToPixels(sp.Body.X), common.ToPixels(sp.Body.Y), 0),
		with(component.SpriteComponent.Kind(), &component.Sprite{Texture: TextureBody, Layer: 2}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:         component.ShapeCapsule,
			Radius:       common.BodyRadius,
			HalfLength:   common.BodyHalfLength,
			Mass:         t.Density * capsuleArea(common.BodyHalfLength, common.BodyRadius),
			Friction:     t.Friction,
			GravityScale: t.BodyGravityScale,
			Group:        rigGroup,
		}),
	)
	if err != nil {
		DespawnLevel(w)
		return Rig{}, fmt.Errorf("rig: %w", err)
	}

	rig.Head, err = BuildEntity(w, "head",
		with(component.HeadTagComponent.Kind(), &component.HeadTag{}),
		forLevel(),
		transformAt(common.ToPixels(sp.Head.X), common.ToPixels(sp.Head.Y), 0),
		with(component.SpriteComponent.Kind(), &component.Sprite{Texture: TextureHead, Layer: 2}),
		with(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:     component.ShapeBall,
			Radius:   common.HeadRadius,
			Mass:     t.Density * ballArea(common.HeadRadius),
			Friction: t.Friction,
			Group:    rigGroup,
		}),
	)
	if err != nil {
		DespawnLevel(w)
		return Rig{}, fmt.Errorf("rig: %w", err)
	}

	wa, wb := WheelAnchors()
	rig.WheelBody, err = BuildEntity(w, "wheel joint",
		forLevel(),
		with(component.RigJointComponent.Kind(), &component.RigJoint{A: uint64(rig.Wheel), B: uint64(rig.Body), AnchorA: wa, AnchorB: wb}),
	)
	if err != nil {
		DespawnLevel(w)
		return Rig{}, fmt.Errorf("rig: %w", err)
	}

	ha, hb := HeadAnchors()
	rig.BodyHead, err = BuildEntity(w, "head joint",
		forLevel(),
		with(component.RigJointComponent.Kind(), &component.RigJoint{A: uint64(rig.Body), B: uint64(rig.Head), AnchorA: ha, AnchorB: hb}),
	)
	if err != nil {
		DespawnLevel(w)
		return Rig{}, fmt.Errorf("rig: %w", err)
	}

	return rig, nil
}

// ResetRig zeroes velocities and rotation and moves every rig part, and its
// rendered transform, back to the starting points.
func ResetRig(w *ecs.World, level levels.Level) {
	sp := level.StartingPoints()
	reset := func(e ecs.Entity, p levels.Point) {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X = common.ToPixels(p.X)
			t.Y = common.ToPixels(p.Y)
			t.Rotation = 0
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || pb.Body == nil {
			return
		}
		pb.Body.SetVelocity(0, 0)
		pb.Body.SetAngularVelocity(0)
		pb.Body.SetForce(cp.Vector{})
		pb.Body.SetTorque(0)
		pb.Body.SetAngle(0)
		pb.Body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	}
	ecs.ForEach(w, component.WheelTagComponent.Kind(), func(e ecs.Entity, _ *component.WheelTag) { reset(e, sp.Wheel) })
	ecs.ForEach(w, component.BodyTagComponent.Kind(), func(e ecs.Entity, _ *component.BodyTag) { reset(e, sp.Body) })
	ecs.ForEach(w, component.HeadTagComponent.Kind(), func(e ecs.Entity, _ *component.HeadTag) { reset(e, sp.Head) })
}

func ballArea(r float64) float64 {
	return math.Pi * r * r
}

func capsuleArea(halfLength, r float64) float64 {
	return 4*halfLength*r + ballArea(r)
}
