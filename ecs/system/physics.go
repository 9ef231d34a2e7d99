package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

const (
	collisionTypeDefault cp.CollisionType = iota
	collisionTypeContactEvents
)

const physicsIterations = 20

// PhysicsSystem owns the Chipmunk2D space. It creates bodies, shapes and
// joints for new ECS components, steps the space, writes transforms back and
// resolves rig contacts.
type PhysicsSystem struct {
	space *cp.Space
	world *ecs.World

	entities map[ecs.Entity]*bodyInfo
	joints   map[ecs.Entity]*jointInfo
}

type jointInfo struct {
	constraint *cp.Constraint
	a, b       ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{}
	ps.Reset(nil, common.Gravity)
	return ps
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset replaces the space. Handles held by components of w are cleared so
// they are rebuilt on the next sync.
func (ps *PhysicsSystem) Reset(w *ecs.World, gravity float64) {
	ps.space = cp.NewSpace()
	ps.space.Iterations = physicsIterations
	ps.space.SetGravity(cp.Vector{X: 0, Y: gravity})
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.joints = make(map[ecs.Entity]*jointInfo)

	handler := ps.space.NewWildcardCollisionHandler(collisionTypeContactEvents)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.world == nil {
			return true
		}
		a, b := arb.Bodies()
		ea, _ := a.UserData.(ecs.Entity)
		eb, _ := b.UserData.(ecs.Entity)
		sys.world.Events().Push(ecs.Event{
			Type: ecs.EventContactStarted,
			Data: ecs.ContactStarted{A: ea, B: eb},
		})
		return true
	}

	if w == nil {
		return
	}
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody) {
		pb.Body = nil
		pb.Shape = nil
	})
	ecs.ForEach(w, component.RigJointComponent.Kind(), func(_ ecs.Entity, j *component.RigJoint) {
		j.Constraint = nil
	})
}

// Update runs one fixed step.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Sync(w)

	// contact events nobody consumed last frame are stale
	w.Events().Take(ecs.EventContactStarted)

	ps.world = w
	ps.space.Step(common.FixedStep)

	ps.syncTransforms(w)
	ps.resolveContacts(w)
}

// Sync removes handles of destroyed entities and creates bodies and joints
// for new ones.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanup(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if info, ok := ps.entities[e]; ok {
			pb.Body = info.body
			pb.Shape = info.shape
			return
		}
		info := ps.createBody(e, pb, t)
		if info == nil {
			return
		}
		ps.entities[e] = info
		pb.Body = info.body
		pb.Shape = info.shape
	})

	ecs.ForEach(w, component.RigJointComponent.Kind(), func(e ecs.Entity, j *component.RigJoint) {
		if _, ok := ps.joints[e]; ok {
			return
		}
		a, okA := ps.entities[ecs.Entity(j.A)]
		b, okB := ps.entities[ecs.Entity(j.B)]
		if !okA || !okB {
			log.Printf("physics: joint %v references entities without bodies", e)
			return
		}
		c := cp.NewPivotJoint2(a.body, b.body, j.AnchorA, j.AnchorB)
		c.SetCollideBodies(false)
		ps.space.AddConstraint(c)
		ps.joints[e] = &jointInfo{constraint: c, a: ecs.Entity(j.A), b: ecs.Entity(j.B)}
		j.Constraint = c
	})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	pos := cp.Vector{X: common.ToPhysics(t.X), Y: common.ToPhysics(t.Y)}

	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		body = cp.NewBody(mass, moment(pb, mass))
	}
	body.UserData = e
	body.SetPosition(pos)
	body.SetAngle(t.Rotation)
	ps.space.AddBody(body)

	var shape *cp.Shape
	switch pb.Kind {
	case component.ShapeBall:
		shape = cp.NewCircle(body, pb.Radius, cp.Vector{})
	case component.ShapeCapsule:
		shape = cp.NewSegment(body, cp.Vector{Y: -pb.HalfLength}, cp.Vector{Y: pb.HalfLength}, pb.Radius)
	case component.ShapeBox:
		shape = cp.NewBox(body, 2*pb.HalfWidth, 2*pb.HalfHeight, 0)
	default:
		log.Printf("physics: unknown shape kind %d for %v", pb.Kind, e)
		ps.space.RemoveBody(body)
		return nil
	}
	shape.UserData = e
	shape.SetFriction(pb.Friction)
	if pb.Group != 0 {
		shape.SetFilter(cp.NewShapeFilter(pb.Group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	}
	if pb.ContactEvents {
		shape.SetCollisionType(collisionTypeContactEvents)
	}
	ps.space.AddShape(shape)

	if !pb.Static {
		gravityScale := pb.GravityScale
		if gravityScale == 0 {
			gravityScale = 1
		}
		angularDamping := pb.AngularDamping
		if gravityScale != 1 || angularDamping != 0 {
			body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
				cp.BodyUpdateVelocity(b, gravity.Mult(gravityScale), damping, dt)
				if angularDamping != 0 {
					b.SetAngularVelocity(b.AngularVelocity() / (1 + dt*angularDamping))
				}
			})
		}
	}

	return &bodyInfo{body: body, shape: shape, static: pb.Static}
}

func moment(pb *component.PhysicsBody, mass float64) float64 {
	switch pb.Kind {
	case component.ShapeBall:
		return cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{})
	case component.ShapeCapsule:
		return cp.MomentForSegment(mass, cp.Vector{Y: -pb.HalfLength}, cp.Vector{Y: pb.HalfLength}, pb.Radius)
	default:
		return cp.MomentForBox(mass, 2*pb.HalfWidth, 2*pb.HalfHeight)
	}
}

func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for e, j := range ps.joints {
		if ecs.Has(w, e, component.RigJointComponent.Kind()) &&
			ecs.Has(w, j.a, component.PhysicsBodyComponent.Kind()) &&
			ecs.Has(w, j.b, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveConstraint(j.constraint)
		delete(ps.joints, e)
	}

	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && ps.space.ContainsBody(info.body) {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Static {
			return
		}
		pos := pb.Body.Position()
		t.X = common.ToPixels(pos.X)
		t.Y = common.ToPixels(pos.Y)
		t.Rotation = pb.Body.Angle()
	})
}

// resolveContacts sets the Contacts singleton from the arbiters touching the
// wheel and the head.
func (ps *PhysicsSystem) resolveContacts(w *ecs.World) {
	contacts := singleton(w, component.ContactsComponent.Kind())
	contacts.WheelOnPlatform = false
	contacts.HeadOnPlatform = false

	if wheel, ok := rigBody(w, component.WheelTagComponent.Kind(), "wheel"); ok {
		contacts.WheelOnPlatform = touchesPlatform(w, wheel.Body)
	}
	if head, ok := rigBody(w, component.HeadTagComponent.Kind(), "head"); ok {
		contacts.HeadOnPlatform = touchesPlatform(w, head.Body)
	}
}

func touchesPlatform(w *ecs.World, body *cp.Body) bool {
	found := false
	body.EachArbiter(func(arb *cp.Arbiter) {
		if found || arb.Count() == 0 {
			return
		}
		_, other := arb.Bodies()
		e, ok := other.UserData.(ecs.Entity)
		if ok && ecs.Has(w, e, component.PlatformTagComponent.Kind()) {
			found = true
		}
	})
	return found
}
