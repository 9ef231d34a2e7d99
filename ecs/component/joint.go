package component

import "github.com/jakecoffman/cp"

// RigJoint is a ball joint between two entities (ecs.Entity is uint64).
// Anchors are local offsets in physics units.
type RigJoint struct {
	A, B       uint64
	AnchorA    cp.Vector
	AnchorB    cp.Vector
	Constraint *cp.Constraint
}

var RigJointComponent = NewComponent[RigJoint]()
