package assets

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/unicycle/ecs/render"
	"github.com/milk9111/unicycle/prefabs"
)

var defaultSky = color.NRGBA{R: 0x9f, G: 0xd3, B: 0xe6, A: 0xff}

// Library holds everything the Loading state waits for.
type Library struct {
	Textures map[string]*ebiten.Image
	Mixer    *Mixer
}

// Load draws the textures, registers them for rendering and renders the
// sound clips.
func Load(game *prefabs.GameSpec, sounds *prefabs.SoundsSpec) (*Library, error) {
	if game == nil {
		return nil, fmt.Errorf("assets: no game spec")
	}
	mixer, err := NewMixer(sounds, game.SfxVolume, game.MusicVolume, game.Seed)
	if err != nil {
		return nil, err
	}
	lib := &Library{
		Textures: newTextures(game.Colors.Clear.Or(defaultSky)),
		Mixer:    mixer,
	}
	for key, img := range lib.Textures {
		render.RegisterImage(key, img)
	}
	return lib, nil
}
