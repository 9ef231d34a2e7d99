package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/unicycle/ecs/system"
)

var keyBindings = map[system.Key][]ebiten.Key{
	system.KeyPaddleForward:   {ebiten.KeyD},
	system.KeyPaddleBackward:  {ebiten.KeyA},
	system.KeyBalanceForward:  {ebiten.KeyRight},
	system.KeyBalanceBackward: {ebiten.KeyLeft},
	system.KeyJump:            {ebiten.KeySpace},
	system.KeyRestart:         {ebiten.KeyR},
}

// keyboard reads the bound ebiten keys for the current tick.
type keyboard struct{}

func (keyboard) Pressed(k system.Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (keyboard) JustPressed(k system.Key) bool {
	for _, key := range keyBindings[k] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

func (keyboard) JustReleased(k system.Key) bool {
	for _, key := range keyBindings[k] {
		if inpututil.IsKeyJustReleased(key) {
			return true
		}
	}
	return false
}
