package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/unicycle/common"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/ecs/entity"
)

// RestartSystem puts the rig back on its starting points when restart is
// pressed during a level.
type RestartSystem struct{}

func NewRestartSystem() *RestartSystem {
	return &RestartSystem{}
}

func (s *RestartSystem) Update(w *ecs.World) {
	actions := singleton(w, component.ActionsComponent.Kind())
	if !actions.Restart {
		return
	}
	level := singleton(w, component.CurrentLevelComponent.Kind())
	entity.ResetRig(w, level.Level)
}

// PaddleSystem spins the wheel. Positive paddling rolls the rig forward,
// which is clockwise in a y-up space.
type PaddleSystem struct{}

func NewPaddleSystem() *PaddleSystem {
	return &PaddleSystem{}
}

func (s *PaddleSystem) Update(w *ecs.World) {
	actions := singleton(w, component.ActionsComponent.Kind())
	if actions.Paddling == nil || actions.Restart {
		return
	}
	wheel, ok := rigBody(w, component.WheelTagComponent.Kind(), "wheel")
	if !ok {
		return
	}
	speed := tuning(w).PaddleSpeed
	wheel.Body.SetAngularVelocity(wheel.Body.AngularVelocity() - *actions.Paddling*speed*common.FixedStep)
}

// HeadBalanceSystem pushes the head sideways.
type HeadBalanceSystem struct{}

func NewHeadBalanceSystem() *HeadBalanceSystem {
	return &HeadBalanceSystem{}
}

func (s *HeadBalanceSystem) Update(w *ecs.World) {
	actions := singleton(w, component.ActionsComponent.Kind())
	if actions.HeadBalance == nil || actions.Restart {
		return
	}
	head, ok := rigBody(w, component.HeadTagComponent.Kind(), "head")
	if !ok {
		return
	}
	speed := tuning(w).BalanceSpeed
	v := head.Body.Velocity()
	head.Body.SetVelocity(v.X+*actions.HeadBalance*speed*common.FixedStep, v.Y)
}

// JumpSystem kicks the wheel along the wheel-to-body axis while it touches a
// platform. The frame after a jump is always skipped.
type JumpSystem struct{}

func NewJumpSystem() *JumpSystem {
	return &JumpSystem{}
}

func (s *JumpSystem) Update(w *ecs.World) {
	debounce := singleton(w, component.DebounceComponent.Kind())
	if debounce.JumpBlock {
		debounce.JumpBlock = false
		return
	}
	actions := singleton(w, component.ActionsComponent.Kind())
	if !actions.Jump || actions.Restart {
		return
	}
	if !singleton(w, component.ContactsComponent.Kind()).WheelOnPlatform {
		return
	}
	wheel, ok := rigBody(w, component.WheelTagComponent.Kind(), "wheel")
	if !ok {
		return
	}
	body, ok := rigBody(w, component.BodyTagComponent.Kind(), "body")
	if !ok {
		return
	}

	dir := body.Body.Position().Sub(wheel.Body.Position())
	if dir.Length() == 0 {
		return
	}
	impulse := dir.Normalize().Mult(tuning(w).JumpScale * JumpReach(w))
	wheel.Body.SetVelocityVector(wheel.Body.Velocity().Add(impulse))

	debounce.JumpBlock = true
	requestSound(w, component.SoundJump)
}

// JumpReach is the resting wheel-to-body distance of the current level in
// pixels.
func JumpReach(w *ecs.World) float64 {
	sp := singleton(w, component.CurrentLevelComponent.Kind()).Level.StartingPoints()
	d := cp.Vector{X: sp.Body.X - sp.Wheel.X, Y: sp.Body.Y - sp.Wheel.Y}
	return common.ToPixels(d.Length())
}

// LandingSystem plays the landing sound once per contact onset.
type LandingSystem struct{}

func NewLandingSystem() *LandingSystem {
	return &LandingSystem{}
}

func (s *LandingSystem) Update(w *ecs.World) {
	started := w.Events().Take(ecs.EventContactStarted)
	debounce := singleton(w, component.DebounceComponent.Kind())
	if debounce.LandBlock {
		debounce.LandBlock = false
		return
	}
	if len(started) == 0 {
		return
	}
	debounce.LandBlock = true
	requestSound(w, component.SoundLand)
}
