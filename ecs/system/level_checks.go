package system

import (
	"log"

	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/gamestate"
)

// FinishLineSystem pushes Finished once the body crosses the finish line. It
// runs before the loss checks so a win in the same frame takes precedence.
type FinishLineSystem struct {
	stack *gamestate.Stack
}

func NewFinishLineSystem(stack *gamestate.Stack) *FinishLineSystem {
	return &FinishLineSystem{stack: stack}
}

func (s *FinishLineSystem) Update(w *ecs.World) {
	body, ok := rigBody(w, component.BodyTagComponent.Kind(), "body")
	if !ok {
		return
	}
	level := singleton(w, component.CurrentLevelComponent.Kind()).Level
	if common.ToPixels(body.Body.Position().X) <= level.FinishLine() {
		return
	}
	if err := s.stack.Push(gamestate.Finished); err != nil {
		log.Printf("level: finish %s: %v", level, err)
		return
	}
	requestSound(w, component.SoundWon)
}

// HeadLossSystem pushes Lost when the head touches a platform.
type HeadLossSystem struct {
	stack *gamestate.Stack
}

func NewHeadLossSystem(stack *gamestate.Stack) *HeadLossSystem {
	return &HeadLossSystem{stack: stack}
}

func (s *HeadLossSystem) Update(w *ecs.World) {
	if s.stack.Pending() {
		return
	}
	if !singleton(w, component.ContactsComponent.Kind()).HeadOnPlatform {
		return
	}
	if err := s.stack.Push(gamestate.Lost); err != nil {
		log.Printf("level: head loss: %v", err)
		return
	}
	requestSound(w, component.SoundLoose)
}

// FallSystem pushes Lost when the body drops below the ground top.
type FallSystem struct {
	stack *gamestate.Stack
}

func NewFallSystem(stack *gamestate.Stack) *FallSystem {
	return &FallSystem{stack: stack}
}

func (s *FallSystem) Update(w *ecs.World) {
	if s.stack.Pending() {
		return
	}
	body, ok := rigBody(w, component.BodyTagComponent.Kind(), "body")
	if !ok {
		return
	}
	if body.Body.Position().Y >= common.PathHeight {
		return
	}
	if err := s.stack.Push(gamestate.Lost); err != nil {
		log.Printf("level: fall: %v", err)
		return
	}
	requestSound(w, component.SoundFall)
}
