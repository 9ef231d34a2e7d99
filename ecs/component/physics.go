package component

import "github.com/jakecoffman/cp"

type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapeCapsule
	ShapeBox
)

// PhysicsBody describes a collider in physics units and holds the Chipmunk2D
// handles once the physics system has created them. The initial position is
// taken from the entity's Transform.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind       ShapeKind
	Radius     float64
	HalfLength float64
	HalfWidth  float64
	HalfHeight float64

	Mass     float64
	Friction float64
	Static   bool

	// GravityScale multiplies world gravity for this body. Zero means 1.
	GravityScale   float64
	AngularDamping float64

	// ContactEvents makes the body report contact-started events.
	ContactEvents bool
	// Group disables collisions between shapes sharing a non-zero group.
	Group uint
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
