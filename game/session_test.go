package game

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/system"
	"github.com/milk9111/unicycle/gamestate"
	"github.com/milk9111/unicycle/levels"
	"github.com/milk9111/unicycle/prefabs"
)

type keyboard struct {
	pressed, justPressed map[system.Key]bool
}

func newKeyboard() *keyboard {
	return &keyboard{pressed: map[system.Key]bool{}, justPressed: map[system.Key]bool{}}
}

func (k *keyboard) Pressed(key system.Key) bool     { return k.pressed[key] }
func (k *keyboard) JustPressed(key system.Key) bool { return k.justPressed[key] }
func (k *keyboard) JustReleased(system.Key) bool    { return false }

func (k *keyboard) tap(key system.Key) {
	k.pressed[key] = true
	k.justPressed[key] = true
}

func (k *keyboard) release() {
	k.pressed = map[system.Key]bool{}
	k.justPressed = map[system.Key]bool{}
}

type recorder struct {
	played []component.SoundEffect
	looped []component.SoundEffect
}

func (r *recorder) Variants(component.SoundEffect) int { return 2 }

func (r *recorder) Play(effect component.SoundEffect, _ int) {
	r.played = append(r.played, effect)
}

func (r *recorder) PlayLooped(effect component.SoundEffect, _ int) {
	r.looped = append(r.looped, effect)
}

func (r *recorder) count(effect component.SoundEffect) int {
	n := 0
	for _, e := range r.played {
		if e == effect {
			n++
		}
	}
	return n
}

type memoryStore struct {
	level levels.Level
	saved bool
}

func (m *memoryStore) LoadProgress() (levels.Level, bool) { return m.level, m.saved }

func (m *memoryStore) SaveProgress(l levels.Level) error {
	m.level, m.saved = l, true
	return nil
}

type harness struct {
	s     *Session
	keys  *keyboard
	mixer *recorder
	store *memoryStore
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{keys: newKeyboard(), mixer: &recorder{}, store: &memoryStore{}}
	cfg.Keys = h.keys
	cfg.Mixer = h.mixer
	if cfg.Progress == nil {
		cfg.Progress = h.store
	}
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	h.s = s
	return h
}

// boot runs frames until the level is playable.
func (h *harness) boot(t *testing.T) {
	t.Helper()
	for i := 0; i < 10; i++ {
		h.s.Update()
		if h.s.Machine().Current() == gamestate.InLevel {
			return
		}
	}
	t.Fatalf("never reached InLevel, stuck in %v", h.s.Machine().Stack().States())
}

func (h *harness) rigBody(t *testing.T, tag func(*ecs.World) (ecs.Entity, bool)) *cp.Body {
	t.Helper()
	e, ok := tag(h.s.World())
	if !ok {
		t.Fatalf("rig part missing")
	}
	pb, ok := ecs.Get(h.s.World(), e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		t.Fatalf("rig part %v has no body", e)
	}
	return pb.Body
}

func wheelOf(w *ecs.World) (ecs.Entity, bool) { return ecs.First(w, component.WheelTagComponent.Kind()) }
func bodyOf(w *ecs.World) (ecs.Entity, bool)  { return ecs.First(w, component.BodyTagComponent.Kind()) }
func headOf(w *ecs.World) (ecs.Entity, bool)  { return ecs.First(w, component.HeadTagComponent.Kind()) }

// moveRig shifts the whole rig so the joints stay satisfied.
func (h *harness) moveRig(t *testing.T, dx, dy float64) {
	t.Helper()
	for _, part := range []func(*ecs.World) (ecs.Entity, bool){wheelOf, bodyOf, headOf} {
		b := h.rigBody(t, part)
		b.SetPosition(b.Position().Add(cp.Vector{X: dx, Y: dy}))
	}
}

func (h *harness) states() []gamestate.State {
	return h.s.Machine().Stack().States()
}

func sameStates(got []gamestate.State, want ...gamestate.State) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSessionBoot(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	h.boot(t)

	w := h.s.World()
	for name, n := range map[string]int{
		"wheel": ecs.Count(w, component.WheelTagComponent.Kind()),
		"body":  ecs.Count(w, component.BodyTagComponent.Kind()),
		"head":  ecs.Count(w, component.HeadTagComponent.Kind()),
	} {
		if n != 1 {
			t.Fatalf("expected one %s, got %d", name, n)
		}
	}
	if n := ecs.Count(w, component.CameraComponent.Kind()); n != 1 {
		t.Fatalf("expected one camera, got %d", n)
	}
	if len(h.mixer.looped) != 1 || h.mixer.looped[0] != component.SoundBackground {
		t.Fatalf("expected background music once, got %v", h.mixer.looped)
	}
	if !sameStates(h.states(), gamestate.InLevel) {
		t.Fatalf("unexpected stack %v", h.states())
	}
}

func TestSessionWaitsForAssets(t *testing.T) {
	ready := false
	h := newHarness(t, Config{Level: levels.Tutorial, Ready: func() bool { return ready }})
	for i := 0; i < 5; i++ {
		h.s.Update()
	}
	if got := h.s.Machine().Current(); got != gamestate.Loading {
		t.Fatalf("expected Loading, got %s", got)
	}
	ready = true
	h.boot(t)
}

func TestSessionRejectsUnknownLevel(t *testing.T) {
	_, err := NewSession(Config{Level: levels.Level(42)})
	if !errors.Is(err, levels.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestSessionResume(t *testing.T) {
	store := &memoryStore{level: levels.Second, saved: true}
	tests := []struct {
		name   string
		resume bool
		want   levels.Level
	}{
		{"resume", true, levels.Second},
		{"fresh", false, levels.Tutorial},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Config{Level: levels.Tutorial, Resume: tc.resume, Progress: store})
			if got := h.s.CurrentLevel(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSessionFinishAndAdvance(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	h.boot(t)

	target := common.ToPhysics(levels.Tutorial.FinishLine() + 100)
	h.moveRig(t, target, 0)
	h.s.Update()

	if !sameStates(h.states(), gamestate.InLevel, gamestate.Finished) {
		t.Fatalf("expected [InLevel Finished], got %v", h.states())
	}
	if h.mixer.count(component.SoundWon) != 1 {
		t.Fatalf("expected one win sound, got %v", h.mixer.played)
	}
	if !h.store.saved || h.store.level != levels.First {
		t.Fatalf("expected progress First saved, got %+v", h.store)
	}

	for i := 0; i < 10; i++ {
		h.s.Update()
		if d := h.s.Machine().Stack().Depth(); d != 2 {
			t.Fatalf("frame %d: depth %d", i, d)
		}
	}

	w := h.s.World()
	button, ok := ecs.First(w, component.ButtonComponent.Kind())
	if !ok {
		t.Fatalf("no overlay button")
	}
	b, _ := ecs.Get(w, button, component.ButtonComponent.Kind())
	if b.Kind != component.ButtonNext {
		t.Fatalf("expected Next button, got %v", b.Label)
	}
	b.Interaction = component.InteractionClicked
	h.s.Update()

	if !sameStates(h.states(), gamestate.PrepareLevel) {
		t.Fatalf("expected [PrepareLevel], got %v", h.states())
	}
	if got := h.s.CurrentLevel(); got != levels.First {
		t.Fatalf("expected First, got %s", got)
	}
	if n := ecs.Count(w, component.ButtonComponent.Kind()); n != 0 {
		t.Fatalf("overlay not removed")
	}
	h.boot(t)

	wheel := h.rigBody(t, wheelOf).Position()
	if math.Abs(wheel.X) > 0.1 {
		t.Fatalf("rig not back at the start: %+v", wheel)
	}
	if n := ecs.Count(w, component.WheelTagComponent.Kind()); n != 1 {
		t.Fatalf("expected one wheel after respawn, got %d", n)
	}
}

func TestSessionFallAndRetry(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	h.boot(t)

	hole := levels.Tutorial.Holes()[0]
	h.moveRig(t, common.ToPhysics((hole.Start+hole.End)/2), -3)
	h.s.Update()

	if !sameStates(h.states(), gamestate.InLevel, gamestate.Lost) {
		t.Fatalf("expected [InLevel Lost], got %v", h.states())
	}
	if h.mixer.count(component.SoundFall) != 1 {
		t.Fatalf("expected one fall sound, got %v", h.mixer.played)
	}
	button, _ := ecs.First(h.s.World(), component.ButtonComponent.Kind())
	if b, _ := ecs.Get(h.s.World(), button, component.ButtonComponent.Kind()); b == nil || b.Kind != component.ButtonAgain {
		t.Fatalf("expected Again button")
	}

	h.keys.tap(system.KeyRestart)
	h.s.Update()
	h.keys.release()

	if !sameStates(h.states(), gamestate.PrepareLevel) {
		t.Fatalf("expected [PrepareLevel], got %v", h.states())
	}
	if got := h.s.CurrentLevel(); got != levels.Tutorial {
		t.Fatalf("retry changed the level to %s", got)
	}
	h.boot(t)
}

func TestSessionRestartInLevel(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	h.boot(t)

	h.moveRig(t, 5, 0)
	h.keys.tap(system.KeyRestart)
	h.s.Update()
	h.keys.release()

	if got := h.s.Machine().Current(); got != gamestate.InLevel {
		t.Fatalf("restart should stay in level, got %s", got)
	}
	if x := h.rigBody(t, wheelOf).Position().X; math.Abs(x) > 0.1 {
		t.Fatalf("wheel not reset, x=%v", x)
	}
}

func TestSessionPaddleMovesForward(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	h.boot(t)

	h.keys.tap(system.KeyPaddleForward)
	h.s.Update()
	h.keys.justPressed = map[system.Key]bool{}
	for i := 0; i < 30; i++ {
		h.s.Update()
	}
	if x := h.rigBody(t, wheelOf).Position().X; x <= 0 {
		t.Fatalf("wheel did not roll forward, x=%v", x)
	}
}

func TestSessionDecor(t *testing.T) {
	script, err := prefabs.LoadScript("decor.tengo")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		level levels.Level
		want  int
	}{
		{levels.Tutorial, 7},
		{levels.Second, 6},
	}
	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			h := newHarness(t, Config{Level: tc.level, DecorScript: script})
			h.boot(t)
			if n := ecs.Count(h.s.World(), component.DecorTagComponent.Kind()); n != tc.want {
				t.Fatalf("expected %d decor sprites, got %d", tc.want, n)
			}
		})
	}
}

func TestSessionTuningAppliesNextLevel(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	h.boot(t)

	tuning := component.DefaultRigTuning()
	tuning.PaddleSpeed = 40
	h.s.SetTuning(tuning)
	if got := h.s.tuning().PaddleSpeed; got != 40 {
		t.Fatalf("expected paddle speed 40, got %v", got)
	}
}

func TestLevelSystemsOrder(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	want := []string{
		"*system.RestartSystem",
		"*system.PaddleSystem",
		"*system.HeadBalanceSystem",
		"*system.PhysicsSystem",
		"*system.JumpSystem",
		"*system.LandingSystem",
		"*system.FinishLineSystem",
		"*system.HeadLossSystem",
		"*system.FallSystem",
	}
	got := h.s.LevelSystems()
	if len(got) != len(want) {
		t.Fatalf("expected %d systems, got %d", len(want), len(got))
	}
	for i, sys := range got {
		if name := fmt.Sprintf("%T", sys); name != want[i] {
			t.Fatalf("system %d: expected %s, got %s", i, want[i], name)
		}
	}
	if got[3] != h.s.Physics() {
		t.Fatalf("level frame steps a different physics system")
	}
}

func TestSessionDropsStaleEvents(t *testing.T) {
	h := newHarness(t, Config{Level: levels.Tutorial})
	q := h.s.World().Events()
	q.Push(ecs.Event{Type: ecs.EventContactStarted, Data: ecs.ContactStarted{A: 1, B: 2}})
	q.Push(ecs.Event{Type: "other"})

	h.boot(t)
	if n := q.Len(); n != 0 {
		t.Fatalf("expected no events carried into the level, got %d", n)
	}
}
