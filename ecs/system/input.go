package system

import (
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// Key is a logical game control.
type Key int

const (
	KeyPaddleForward Key = iota
	KeyPaddleBackward
	KeyBalanceForward
	KeyBalanceBackward
	KeyJump
	KeyRestart
)

// KeySource reports raw key state for the current frame.
type KeySource interface {
	Pressed(k Key) bool
	JustPressed(k Key) bool
	JustReleased(k Key) bool
}

// InputSystem maps raw key state to the Actions singleton.
type InputSystem struct {
	keys KeySource
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.keys == nil || w == nil {
		return
	}
	actions := singleton(w, component.ActionsComponent.Kind())
	actions.Paddling = i.axis(actions.Paddling, KeyPaddleForward, KeyPaddleBackward)
	actions.HeadBalance = i.axis(actions.HeadBalance, KeyBalanceForward, KeyBalanceBackward)
	actions.Jump = i.keys.JustPressed(KeyJump)
	actions.Restart = i.keys.JustPressed(KeyRestart)
}

// axis resolves a forward/backward key pair. A release resolves to whichever
// key is still held; otherwise the latest press wins and the previous value
// is kept while keys stay held.
func (i *InputSystem) axis(prev *float64, forward, backward Key) *float64 {
	k := i.keys
	released := k.JustReleased(forward) || k.JustReleased(backward)
	if !released && !k.Pressed(forward) && !k.Pressed(backward) {
		return nil
	}

	v := 0.0
	if prev != nil {
		v = *prev
	}
	switch {
	case released:
		switch {
		case k.Pressed(forward):
			v = 1
		case k.Pressed(backward):
			v = -1
		default:
			v = 0
		}
	case k.JustPressed(forward):
		v = 1
	case k.JustPressed(backward):
		v = -1
	}
	return &v
}
