// Package game wires the world, the state machine and the systems into one
// headless session. Rendering and input devices live in package main.
package game

import (
	"fmt"
	"log"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/system"
	"github.com/milk9111/unicycle/gamestate"
	"github.com/milk9111/unicycle/levels"
)

type Config struct {
	Level   levels.Level
	Bounded bool
	// Resume starts at the saved level when Progress has one.
	Resume bool
	Debug  bool
	Seed   uint64
	Tuning component.RigTuning

	DecorScript []byte
	Keys        system.KeySource
	Mixer       system.Mixer
	Progress    system.ProgressStore
	// Ready reports whether assets have finished loading. Nil means ready.
	Ready func() bool
}

type Session struct {
	world   *ecs.World
	machine *gamestate.Machine
	physics *system.PhysicsSystem
	// level is the fixed InLevel frame order.
	level *ecs.Scheduler

	input *system.InputSystem
	audio *system.AudioSystem

	decor []byte
	ready func() bool
}

func NewSession(cfg Config) (*Session, error) {
	if !cfg.Level.Valid() {
		return nil, fmt.Errorf("session: %w: %d", levels.ErrUnknownLevel, int(cfg.Level))
	}
	if cfg.Tuning == (component.RigTuning{}) {
		cfg.Tuning = component.DefaultRigTuning()
	}

	start := cfg.Level
	if cfg.Resume && cfg.Progress != nil {
		if saved, ok := cfg.Progress.LoadProgress(); ok {
			log.Printf("session: resuming at %s", saved)
			start = saved
		}
	}

	s := &Session{
		world:   ecs.NewWorld(),
		machine: gamestate.NewMachine(gamestate.Loading),
		physics: system.NewPhysicsSystem(),
		input:   system.NewInputSystem(cfg.Keys),
		audio:   system.NewAudioSystem(cfg.Mixer, cfg.Seed),
		decor:   cfg.DecorScript,
		ready:   cfg.Ready,
	}
	s.machine.Debug = cfg.Debug

	e := ecs.CreateEntity(s.world)
	if err := ecs.Add(s.world, e, component.CurrentLevelComponent.Kind(), &component.CurrentLevel{
		Level:   start,
		Initial: cfg.Level,
		Bounded: cfg.Bounded,
	}); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := ecs.Add(s.world, e, component.RigTuningComponent.Kind(), &cfg.Tuning); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s.register(cfg)
	return s, nil
}

func (s *Session) World() *ecs.World {
	return s.world
}

func (s *Session) Machine() *gamestate.Machine {
	return s.machine
}

func (s *Session) Physics() *system.PhysicsSystem {
	return s.physics
}

// LevelSystems returns the systems run each InLevel frame, in order.
func (s *Session) LevelSystems() []ecs.System {
	return s.level.Systems()
}

// CurrentLevel returns the level being played.
func (s *Session) CurrentLevel() levels.Level {
	if e, ok := ecs.First(s.world, component.CurrentLevelComponent.Kind()); ok {
		if cur, ok := ecs.Get(s.world, e, component.CurrentLevelComponent.Kind()); ok {
			return cur.Level
		}
	}
	return levels.Tutorial
}

// SetTuning replaces the rig tuning. It applies from the next level start.
func (s *Session) SetTuning(t component.RigTuning) {
	if e, ok := ecs.First(s.world, component.RigTuningComponent.Kind()); ok {
		if cur, ok := ecs.Get(s.world, e, component.RigTuningComponent.Kind()); ok {
			*cur = t
		}
	}
}

// SetDecorScript replaces the decor script used from the next level start.
func (s *Session) SetDecorScript(src []byte) {
	s.decor = src
}

// Update runs one fixed frame: input, the state machine, then audio.
func (s *Session) Update() {
	s.input.Update(s.world)
	s.machine.Update(s.world)
	s.audio.Update(s.world)
}
