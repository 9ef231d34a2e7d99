package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
	"github.com/milk9111/unicycle/prefabs"
)

func TestSpawnRig(t *testing.T) {
	w := ecs.NewWorld()
	rig, err := SpawnRig(w, levels.Tutorial)
	if err != nil {
		t.Fatalf("spawn rig: %v", err)
	}

	sp := levels.Tutorial.StartingPoints()
	parts := []struct {
		name    string
		e       ecs.Entity
		at      levels.Point
		texture string
	}{
		{"wheel", rig.Wheel, sp.Wheel, TextureWheel},
		{"body", rig.Body, sp.Body, TextureBody},
		{"head", rig.Head, sp.Head, TextureHead},
	}
	for _, p := range parts {
		t.Run(p.name, func(t *testing.T) {
			tr, ok := ecs.Get(w, p.e, component.TransformComponent.Kind())
			if !ok {
				t.Fatalf("no transform")
			}
			if tr.X != common.ToPixels(p.at.X) || tr.Y != common.ToPixels(p.at.Y) {
				t.Fatalf("expected (%v, %v) px, got (%v, %v)", common.ToPixels(p.at.X), common.ToPixels(p.at.Y), tr.X, tr.Y)
			}
			pb, ok := ecs.Get(w, p.e, component.PhysicsBodyComponent.Kind())
			if !ok || pb.Mass <= 0 || pb.Group != rigGroup {
				t.Fatalf("bad physics body %+v", pb)
			}
			s, ok := ecs.Get(w, p.e, component.SpriteComponent.Kind())
			if !ok || s.Texture != p.texture {
				t.Fatalf("expected texture %q, got %+v", p.texture, s)
			}
			if !ecs.Has(w, p.e, component.ForLevelTagComponent.Kind()) {
				t.Fatalf("not level scoped")
			}
		})
	}

	wheel, _ := ecs.Get(w, rig.Wheel, component.PhysicsBodyComponent.Kind())
	if !wheel.ContactEvents {
		t.Fatalf("wheel must report contacts")
	}

	joints := []struct {
		e    ecs.Entity
		a, b ecs.Entity
	}{
		{rig.WheelBody, rig.Wheel, rig.Body},
		{rig.BodyHead, rig.Body, rig.Head},
	}
	for i, j := range joints {
		rj, ok := ecs.Get(w, j.e, component.RigJointComponent.Kind())
		if !ok {
			t.Fatalf("joint %d missing", i)
		}
		if rj.A != uint64(j.a) || rj.B != uint64(j.b) {
			t.Fatalf("joint %d joins %d and %d", i, rj.A, rj.B)
		}
	}
}

func TestSpawnRigUsesTuning(t *testing.T) {
	w := ecs.NewWorld()
	tuning := component.DefaultRigTuning()
	tuning.Density = 2 * tuning.Density
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.RigTuningComponent.Kind(), &tuning); err != nil {
		t.Fatal(err)
	}

	rig, err := SpawnRig(w, levels.Tutorial)
	if err != nil {
		t.Fatal(err)
	}
	pb, _ := ecs.Get(w, rig.Head, component.PhysicsBodyComponent.Kind())
	if want := tuning.Density * ballArea(common.HeadRadius); pb.Mass != want {
		t.Fatalf("expected mass %v, got %v", want, pb.Mass)
	}
}

func TestSpawnLevel(t *testing.T) {
	tests := []struct {
		level     levels.Level
		platforms int
	}{
		{levels.Tutorial, 3},
		{levels.First, 4},
		{levels.Second, 3},
		{levels.Third, 5},
	}
	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			if err := SpawnLevel(w, tc.level); err != nil {
				t.Fatal(err)
			}
			if n := ecs.Count(w, component.PlatformTagComponent.Kind()); n != tc.platforms {
				t.Fatalf("expected %d platforms, got %d", tc.platforms, n)
			}
			// platforms plus the two walls
			if n := ecs.Count(w, component.ForLevelTagComponent.Kind()); n != tc.platforms+2 {
				t.Fatalf("expected %d level entities, got %d", tc.platforms+2, n)
			}
		})
	}
}

func TestGroundTopIsHalfPath(t *testing.T) {
	w := ecs.NewWorld()
	if err := SpawnLevel(w, levels.Tutorial); err != nil {
		t.Fatal(err)
	}
	ecs.ForEach2(w, component.PlatformTagComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, _ *component.PlatformTag, pb *component.PhysicsBody) {
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.Y != 0 {
				return
			}
			if top := common.ToPhysics(tr.Y) + pb.HalfHeight; top != 0.5*common.PathHeight {
				t.Fatalf("ground top at %v", top)
			}
		})
}

func TestDespawnLevel(t *testing.T) {
	w := ecs.NewWorld()
	if err := SpawnLevel(w, levels.Tutorial); err != nil {
		t.Fatal(err)
	}
	if _, err := SpawnRig(w, levels.Tutorial); err != nil {
		t.Fatal(err)
	}
	camera, err := NewCamera(w)
	if err != nil {
		t.Fatal(err)
	}

	want := ecs.Count(w, component.ForLevelTagComponent.Kind())
	if n := DespawnLevel(w); n != want {
		t.Fatalf("expected %d despawned, got %d", want, n)
	}
	if n := ecs.Count(w, component.ForLevelTagComponent.Kind()); n != 0 {
		t.Fatalf("%d level entities left", n)
	}
	if !ecs.IsAlive(w, camera) {
		t.Fatalf("camera is not level scoped")
	}
	if n := DespawnLevel(w); n != 0 {
		t.Fatalf("second despawn removed %d", n)
	}
}

func TestResetRig(t *testing.T) {
	w := ecs.NewWorld()
	rig, err := SpawnRig(w, levels.First)
	if err != nil {
		t.Fatal(err)
	}
	if err := SetEntityTransform(w, rig.Head, 500, 20, 1.2); err != nil {
		t.Fatal(err)
	}
	ResetRig(w, levels.First)

	tr, _ := ecs.Get(w, rig.Head, component.TransformComponent.Kind())
	head := levels.First.StartingPoints().Head
	if tr.X != common.ToPixels(head.X) || tr.Y != common.ToPixels(head.Y) || tr.Rotation != 0 {
		t.Fatalf("head not reset: %+v", tr)
	}
}

func TestOverlay(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := SpawnOverlay(w, component.ButtonAgain); err != nil {
		t.Fatal(err)
	}
	e, err := SpawnOverlay(w, component.ButtonNext)
	if err != nil {
		t.Fatal(err)
	}
	if n := ecs.Count(w, component.ButtonComponent.Kind()); n != 1 {
		t.Fatalf("expected a single button, got %d", n)
	}
	b, _ := ecs.Get(w, e, component.ButtonComponent.Kind())
	if b.Kind != component.ButtonNext || b.Label != component.ButtonNext.Label() || b.Material != component.ButtonNormal {
		t.Fatalf("unexpected button %+v", b)
	}
	o, _ := ecs.Get(w, e, component.OverlayComponent.Kind())
	if o.Fade == nil || o.Alpha != 0 {
		t.Fatalf("overlay should start transparent with a fade: %+v", o)
	}

	DespawnOverlay(w)
	if ecs.Count(w, component.ButtonComponent.Kind())+ecs.Count(w, component.OverlayComponent.Kind()) != 0 {
		t.Fatalf("overlay left behind")
	}
}

func TestNewCameraOnce(t *testing.T) {
	w := ecs.NewWorld()
	a, err := NewCamera(w)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewCamera(w)
	if a != b {
		t.Fatalf("expected the same camera, got %v and %v", a, b)
	}
	c, _ := ecs.Get(w, a, component.CameraComponent.Kind())
	if c.FixedY != common.CameraY {
		t.Fatalf("camera y %v", c.FixedY)
	}
}

func TestDecorLayout(t *testing.T) {
	script, err := prefabs.LoadScript("decor.tengo")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		level    levels.Level
		items    int
		tutorial bool
	}{
		{levels.Tutorial, 7, true},
		{levels.First, 6, false},
		{levels.Third, 6, false},
	}
	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			items, err := DecorLayout(script, tc.level)
			if err != nil {
				t.Fatal(err)
			}
			if len(items) != tc.items {
				t.Fatalf("expected %d items, got %d", tc.items, len(items))
			}
			sawTutorial := false
			for _, it := range items {
				switch it.Texture {
				case "tutorial":
					sawTutorial = true
					if it.Scale != 0.5 {
						t.Fatalf("tutorial scale %v", it.Scale)
					}
				case "finish":
					if it.X != tc.level.FinishLine() {
						t.Fatalf("finish flag at %v", it.X)
					}
				case "background":
					if it.Scale != 1 || it.Layer != 0 {
						t.Fatalf("background defaults not applied: %+v", it)
					}
				}
			}
			if sawTutorial != tc.tutorial {
				t.Fatalf("tutorial sign present=%v", sawTutorial)
			}
		})
	}
}

func TestDecorLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"no_decor", `x := 1`, errNoDecor},
		{"not_a_map", `decor := [1]`, nil},
		{"no_texture", `decor := [{x: 1}]`, nil},
		{"no_x", `decor := [{texture: "finish", y: 1}]`, nil},
		{"string_y", `decor := [{texture: "finish", x: 1, y: "top"}]`, nil},
		{"syntax", `decor := [`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecorLayout([]byte(tc.src), levels.Tutorial)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
		})
	}
}

func TestSpawnDecor(t *testing.T) {
	w := ecs.NewWorld()
	src := []byte(`decor := [{texture: "finish", x: 10, y: 20.5, scale: 2, layer: 1}]`)
	if err := SpawnDecor(w, levels.Tutorial, src); err != nil {
		t.Fatal(err)
	}
	e, ok := ecs.First(w, component.DecorTagComponent.Kind())
	if !ok {
		t.Fatalf("no decor spawned")
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 10 || tr.Y != 20.5 || tr.ScaleX != 2 {
		t.Fatalf("unexpected transform %+v", tr)
	}
	if !ecs.Has(w, e, component.ForLevelTagComponent.Kind()) {
		t.Fatalf("decor is not level scoped")
	}
}
