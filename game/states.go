package game

import (
	"log"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/entity"
	"github.com/milk9111/unicycle/ecs/system"
	"github.com/milk9111/unicycle/gamestate"
)

func (s *Session) register(cfg Config) {
	m := s.machine
	stack := m.Stack()

	m.OnUpdate(gamestate.Loading, ecs.SystemFunc(func(w *ecs.World) {
		if s.ready != nil && !s.ready() {
			return
		}
		advance(stack, gamestate.Menu)
	}))

	m.OnEnter(gamestate.Menu,
		system.NewBackgroundMusicSystem(),
		ecs.SystemFunc(func(*ecs.World) { advance(stack, gamestate.Prepare) }),
	)

	m.OnEnter(gamestate.Prepare, ecs.SystemFunc(s.prepare))
	m.OnUpdate(gamestate.Prepare, ecs.SystemFunc(func(*ecs.World) { advance(stack, gamestate.PrepareLevel) }))

	m.OnEnter(gamestate.PrepareLevel, ecs.SystemFunc(s.prepareLevel))
	m.OnUpdate(gamestate.PrepareLevel, ecs.SystemFunc(func(*ecs.World) { advance(stack, gamestate.InLevel) }))

	s.level = ecs.NewScheduler(
		system.NewRestartSystem(),
		system.NewPaddleSystem(),
		system.NewHeadBalanceSystem(),
		s.physics,
		system.NewJumpSystem(),
		system.NewLandingSystem(),
		system.NewFinishLineSystem(stack),
		system.NewHeadLossSystem(stack),
		system.NewFallSystem(stack),
	)
	m.OnUpdate(gamestate.InLevel, s.level)
	m.OnInStackUpdate(gamestate.InLevel, system.NewCameraSystem())
	m.OnExit(gamestate.InLevel, ecs.SystemFunc(func(w *ecs.World) {
		n := entity.DespawnLevel(w)
		if m.Debug {
			log.Printf("session: despawned %d level entities", n)
		}
	}))

	fade := system.NewOverlayFadeSystem()
	despawnOverlay := ecs.SystemFunc(entity.DespawnOverlay)

	m.OnEnter(gamestate.Lost, system.NewShowLostSystem())
	m.OnUpdate(gamestate.Lost, s.physics, system.NewLostButtonSystem(stack), fade)
	m.OnExit(gamestate.Lost, despawnOverlay)

	m.OnEnter(gamestate.Finished, system.NewShowFinishedSystem(), system.NewProgressSystem(cfg.Progress))
	m.OnUpdate(gamestate.Finished, s.physics, system.NewFinishedButtonSystem(stack), fade)
	m.OnExit(gamestate.Finished, despawnOverlay)
}

// prepare builds the session-wide pieces: a fresh physics space and the camera.
func (s *Session) prepare(w *ecs.World) {
	s.physics.Reset(w, s.tuning().Gravity)
	if _, err := entity.NewCamera(w); err != nil {
		log.Printf("session: %v", err)
	}
}

// prepareLevel spawns the current level, its decor and the rig.
func (s *Session) prepareLevel(w *ecs.World) {
	level := s.CurrentLevel()
	entity.DespawnLevel(w)

	if err := entity.SpawnLevel(w, level); err != nil {
		log.Printf("session: %v", err)
	}
	if len(s.decor) > 0 {
		if err := entity.SpawnDecor(w, level, s.decor); err != nil {
			log.Printf("session: %v", err)
		}
	}
	if _, err := entity.SpawnRig(w, level); err != nil {
		log.Printf("session: %v", err)
	}

	clearSingleton(w, component.DebounceComponent.Kind())
	clearSingleton(w, component.ContactsComponent.Kind())
	if stale := w.Events().Drain(); len(stale) > 0 && s.machine.Debug {
		log.Printf("session: dropped %d stale events", len(stale))
	}

	// bodies and joints must exist before the first input of the level
	s.physics.Sync(w)
}

func (s *Session) tuning() component.RigTuning {
	if e, ok := ecs.First(s.world, component.RigTuningComponent.Kind()); ok {
		if t, ok := ecs.Get(s.world, e, component.RigTuningComponent.Kind()); ok {
			return *t
		}
	}
	return component.DefaultRigTuning()
}

func advance(stack *gamestate.Stack, next gamestate.State) {
	if err := stack.Set(next); err != nil {
		log.Printf("session: %v", err)
	}
}

func clearSingleton[T any](w *ecs.World, kind component.ComponentKind[T]) {
	ecs.ForEach(w, kind, func(_ ecs.Entity, v *T) {
		var zero T
		*v = zero
	})
}
