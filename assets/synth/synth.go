// Package synth renders the game's sound effects as 16-bit stereo PCM.
package synth

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

var ErrUnknownWave = errors.New("synth: unknown wave")

type Wave int

const (
	Sine Wave = iota
	Square
	Triangle
	Noise
)

func ParseWave(s string) (Wave, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	case "noise":
		return Noise, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownWave, s)
	}
}

// Tone is a single clip: a sweep from Freq to FreqEnd over Duration, or a
// melody when Notes is set.
type Tone struct {
	Wave       Wave
	Freq       float64
	FreqEnd    float64
	Duration   float64
	Volume     float64
	Notes      []float64
	NoteLength float64
}

const (
	bytesPerFrame = 4
	fadeSeconds   = 0.005
)

// Render returns little-endian signed 16-bit stereo samples.
func Render(t Tone, sampleRate int, rng *rand.Rand) []byte {
	if sampleRate <= 0 {
		return nil
	}
	if len(t.Notes) > 0 {
		var out []byte
		for _, f := range t.Notes {
			note := t
			note.Notes = nil
			note.Freq, note.FreqEnd = f, f
			note.Duration = t.NoteLength
			out = append(out, Render(note, sampleRate, rng)...)
		}
		return out
	}

	n := int(t.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	end := t.FreqEnd
	if end == 0 {
		end = t.Freq
	}
	fade := int(fadeSeconds * float64(sampleRate))

	out := make([]byte, n*bytesPerFrame)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Freq + (end-t.Freq)*progress
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		v := sample(t.Wave, phase, rng) * t.Volume * envelope(i, n, fade)
		s := int16(clamp(v, -1, 1) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+2:], uint16(s))
	}
	return out
}

func sample(w Wave, phase float64, rng *rand.Rand) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 4*math.Abs(phase-0.5) - 1
	case Noise:
		if rng == nil {
			return 0
		}
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope fades in over the first fade samples and decays linearly to zero
// at the end of the clip.
func envelope(i, n, fade int) float64 {
	if fade > 0 && i < fade {
		return float64(i) / float64(fade)
	}
	return 1 - float64(i)/float64(n)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
