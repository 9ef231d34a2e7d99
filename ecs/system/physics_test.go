package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
)

func TestPhysicsRigSettlesOnGround(t *testing.T) {
	rw := newRigWorld(t, levels.Tutorial)
	landed := false
	for i := 0; i < 30; i++ {
		rw.physics.Update(rw.w)
		if singleton(rw.w, component.ContactsComponent.Kind()).WheelOnPlatform {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatalf("wheel never touched the ground")
	}
	wheel := rw.body(t, rw.rig.Wheel).Body
	if y := wheel.Position().Y; y < common.PathHeight {
		t.Fatalf("wheel sank into the ground: y=%v", y)
	}
}

func TestPhysicsWritesTransforms(t *testing.T) {
	rw := newRigWorld(t, levels.Tutorial)
	head := rw.body(t, rw.rig.Head).Body
	head.SetVelocity(3, 0)
	rw.physics.Update(rw.w)

	tr, _ := ecs.Get(rw.w, rw.rig.Head, component.TransformComponent.Kind())
	pos := head.Position()
	if tr.X != common.ToPixels(pos.X) || tr.Y != common.ToPixels(pos.Y) {
		t.Fatalf("transform %+v does not match body %+v", tr, pos)
	}
}

func TestPhysicsDropsStaleContactEvents(t *testing.T) {
	rw := newRigWorld(t, levels.Tutorial)
	rw.w.Events().Push(ecs.Event{Type: ecs.EventContactStarted, Data: ecs.ContactStarted{}})
	rw.w.Events().Push(ecs.Event{Type: "keep"})

	// lift the wheel so the step itself starts no contact
	wheel := rw.body(t, rw.rig.Wheel).Body
	wheel.SetPosition(wheel.Position().Add(cp.Vector{Y: 2}))
	rw.physics.Update(rw.w)

	if got := rw.w.Events().Take(ecs.EventContactStarted); len(got) != 0 {
		t.Fatalf("expected stale contact events to be dropped, got %d", len(got))
	}
	if rw.w.Events().Len() != 1 {
		t.Fatalf("unrelated events should survive")
	}
}

func TestPhysicsResetClearsHandles(t *testing.T) {
	rw := newRigWorld(t, levels.Tutorial)
	rw.physics.Reset(rw.w, common.Gravity)
	pb, _ := ecs.Get(rw.w, rw.rig.Wheel, component.PhysicsBodyComponent.Kind())
	if pb.Body != nil {
		t.Fatalf("reset kept the old body handle")
	}
	rw.physics.Sync(rw.w)
	if pb.Body == nil || !rw.physics.Space().ContainsBody(pb.Body) {
		t.Fatalf("sync did not rebuild the body")
	}
}
