package system

import (
	"log"
	"math/rand/v2"

	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
)

// Mixer plays sound effects. Each effect has Variants clips.
type Mixer interface {
	Variants(effect component.SoundEffect) int
	Play(effect component.SoundEffect, variant int)
	PlayLooped(effect component.SoundEffect, variant int)
}

// AudioSystem drains sound requests and picks a variant uniformly at random.
type AudioSystem struct {
	mixer Mixer
	rng   *rand.Rand
}

func NewAudioSystem(mixer Mixer, seed uint64) *AudioSystem {
	return &AudioSystem{
		mixer: mixer,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(e ecs.Entity, req *component.SoundRequest) {
		ecs.DestroyEntity(w, e)
		if a.mixer == nil {
			return
		}
		n := a.mixer.Variants(req.Effect)
		if n <= 0 {
			return
		}
		variant := a.rng.IntN(n)
		if req.Loop {
			a.mixer.PlayLooped(req.Effect, variant)
			return
		}
		a.mixer.Play(req.Effect, variant)
	})
}

// BackgroundMusicSystem requests the looped background track once.
type BackgroundMusicSystem struct {
	started bool
}

func NewBackgroundMusicSystem() *BackgroundMusicSystem {
	return &BackgroundMusicSystem{}
}

func (b *BackgroundMusicSystem) Update(w *ecs.World) {
	if b.started {
		return
	}
	b.started = true
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SoundRequestComponent.Kind(), &component.SoundRequest{Effect: component.SoundBackground, Loop: true}); err != nil {
		log.Printf("audio: request background: %v", err)
		ecs.DestroyEntity(w, e)
	}
}
