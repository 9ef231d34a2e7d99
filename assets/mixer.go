package assets

import (
	"bytes"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/unicycle/assets/synth"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/prefabs"
)

var effectNames = map[string]component.SoundEffect{
	component.SoundJump.String():       component.SoundJump,
	component.SoundLand.String():       component.SoundLand,
	component.SoundFall.String():       component.SoundFall,
	component.SoundWon.String():        component.SoundWon,
	component.SoundLoose.String():      component.SoundLoose,
	component.SoundBackground.String(): component.SoundBackground,
}

// Mixer plays synthesized clips through ebiten's audio context. The context
// is created on first playback.
type Mixer struct {
	sampleRate  int
	clips       map[component.SoundEffect][][]byte
	sfxVolume   float64
	musicVolume float64

	ctx     *audio.Context
	playing []*audio.Player
	music   *audio.Player
}

// NewMixer renders every clip of spec up front.
func NewMixer(spec *prefabs.SoundsSpec, sfxVolume, musicVolume float64, seed uint64) (*Mixer, error) {
	if spec == nil {
		return nil, fmt.Errorf("assets: no sounds spec")
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))
	m := &Mixer{
		sampleRate:  spec.SampleRate,
		clips:       make(map[component.SoundEffect][][]byte),
		sfxVolume:   sfxVolume,
		musicVolume: musicVolume,
	}
	for name, effect := range spec.Effects {
		id, ok := effectNames[name]
		if !ok {
			log.Printf("assets: unknown sound effect %q", name)
			continue
		}
		for i, v := range effect.Variants {
			wave, err := synth.ParseWave(v.Wave)
			if err != nil {
				return nil, fmt.Errorf("assets: %s variant %d: %w", name, i, err)
			}
			pcm := synth.Render(synth.Tone{
				Wave:       wave,
				Freq:       v.Freq,
				FreqEnd:    v.FreqEnd,
				Duration:   v.Duration,
				Volume:     v.Volume,
				Notes:      v.Notes,
				NoteLength: v.NoteLength,
			}, spec.SampleRate, rng)
			if len(pcm) == 0 {
				return nil, fmt.Errorf("assets: %s variant %d is empty", name, i)
			}
			m.clips[id] = append(m.clips[id], pcm)
		}
	}
	return m, nil
}

func (m *Mixer) Variants(effect component.SoundEffect) int {
	if m == nil {
		return 0
	}
	return len(m.clips[effect])
}

func (m *Mixer) Play(effect component.SoundEffect, variant int) {
	clip, ok := m.clip(effect, variant)
	if !ok {
		return
	}
	m.prune()
	p := m.context().NewPlayerFromBytes(clip)
	p.SetVolume(m.sfxVolume)
	p.Play()
	m.playing = append(m.playing, p)
}

// PlayLooped replaces the current music track.
func (m *Mixer) PlayLooped(effect component.SoundEffect, variant int) {
	clip, ok := m.clip(effect, variant)
	if !ok {
		return
	}
	if m.music != nil {
		m.music.Pause()
		_ = m.music.Close()
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(clip), int64(len(clip)))
	p, err := m.context().NewPlayer(loop)
	if err != nil {
		log.Printf("assets: music: %v", err)
		return
	}
	p.SetVolume(m.musicVolume)
	p.Play()
	m.music = p
}

func (m *Mixer) clip(effect component.SoundEffect, variant int) ([]byte, bool) {
	if m == nil {
		return nil, false
	}
	clips := m.clips[effect]
	if variant < 0 || variant >= len(clips) {
		return nil, false
	}
	return clips[variant], true
}

func (m *Mixer) context() *audio.Context {
	if m.ctx == nil {
		if ctx := audio.CurrentContext(); ctx != nil {
			m.ctx = ctx
		} else {
			m.ctx = audio.NewContext(m.sampleRate)
		}
	}
	return m.ctx
}

func (m *Mixer) prune() {
	kept := m.playing[:0]
	for _, p := range m.playing {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	m.playing = kept
}

// Ready reports whether the audio device can play. Browsers only allow it
// after the first user gesture.
func (m *Mixer) Ready() bool {
	return m.context().IsReady()
}
