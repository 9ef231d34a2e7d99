package system

import (
	"log"

	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/entity"
	"github.com/milk9111/unicycle/gamestate"
	"github.com/milk9111/unicycle/levels"
)

// OverlayButtonSystem handles the Lost and Finished buttons. A click, or the
// restart key, replaces the stack with PrepareLevel. On the Finished overlay
// a click also advances the level.
type OverlayButtonSystem struct {
	stack   *gamestate.Stack
	advance bool
}

func NewLostButtonSystem(stack *gamestate.Stack) *OverlayButtonSystem {
	return &OverlayButtonSystem{stack: stack}
}

func NewFinishedButtonSystem(stack *gamestate.Stack) *OverlayButtonSystem {
	return &OverlayButtonSystem{stack: stack, advance: true}
}

func (s *OverlayButtonSystem) Update(w *ecs.World) {
	restart := singleton(w, component.ActionsComponent.Kind()).Restart

	var clicked bool
	ecs.ForEach(w, component.ButtonComponent.Kind(), func(_ ecs.Entity, b *component.Button) {
		switch b.Interaction {
		case component.InteractionClicked:
			clicked = true
		case component.InteractionHovered:
			b.Material = component.ButtonHovered
		default:
			b.Material = component.ButtonNormal
		}
	})
	if !clicked && !restart {
		return
	}
	if ecs.Count(w, component.ButtonComponent.Kind()) == 0 {
		return
	}

	current := singleton(w, component.CurrentLevelComponent.Kind())
	if s.advance && !restart {
		current.Level = NextLevel(current)
	}
	entity.DespawnOverlay(w)
	if err := s.stack.Replace(gamestate.PrepareLevel); err != nil {
		log.Printf("overlay: %v", err)
	}
	entity.ResetRig(w, current.Level)
}

// NextLevel returns the level following the current one. A bounded
// progression that has run out goes back to the initial level.
func NextLevel(current *component.CurrentLevel) levels.Level {
	if !current.Bounded {
		return current.Level.Next()
	}
	next, ok := current.Level.NextBounded()
	if !ok {
		log.Printf("levels: no more levels after %s, back to %s", current.Level, current.Initial)
		return current.Initial
	}
	return next
}

// ShowOverlaySystem spawns the button and the fading backdrop on entering an
// overlay state.
type ShowOverlaySystem struct {
	kind func(w *ecs.World) component.ButtonKind
}

func NewShowLostSystem() *ShowOverlaySystem {
	return &ShowOverlaySystem{kind: func(*ecs.World) component.ButtonKind { return component.ButtonAgain }}
}

func NewShowFinishedSystem() *ShowOverlaySystem {
	return &ShowOverlaySystem{kind: func(w *ecs.World) component.ButtonKind {
		if singleton(w, component.CurrentLevelComponent.Kind()).Level.IsLast() {
			return component.ButtonRestart
		}
		return component.ButtonNext
	}}
}

func (s *ShowOverlaySystem) Update(w *ecs.World) {
	if _, err := entity.SpawnOverlay(w, s.kind(w)); err != nil {
		log.Printf("overlay: %v", err)
	}
}

// OverlayFadeSystem advances the backdrop tween.
type OverlayFadeSystem struct{}

func NewOverlayFadeSystem() *OverlayFadeSystem {
	return &OverlayFadeSystem{}
}

func (s *OverlayFadeSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.OverlayComponent.Kind(), func(_ ecs.Entity, o *component.Overlay) {
		if o.Fade == nil {
			return
		}
		alpha, done := o.Fade.Update(float32(common.FixedStep))
		o.Alpha = common.Clamp(float64(alpha), 0, 1)
		if done {
			o.Fade = nil
		}
	})
}
