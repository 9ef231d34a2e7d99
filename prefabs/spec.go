package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
	"gopkg.in/yaml.v3"
)

const (
	ProgressionCyclic  = "cyclic"
	ProgressionBounded = "bounded"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is game.yaml.
type GameSpec struct {
	StartLevel  string     `yaml:"start_level"`
	Progression string     `yaml:"progression"`
	Resume      bool       `yaml:"resume"`
	Seed        uint64     `yaml:"seed"`
	DebugDraw   bool       `yaml:"debug_draw"`
	MusicVolume float64    `yaml:"music_volume"`
	SfxVolume   float64    `yaml:"sfx_volume"`
	Colors      ColorsSpec `yaml:"colors"`
}

type ColorsSpec struct {
	Clear    *YAMLColor `yaml:"clear"`
	Platform *YAMLColor `yaml:"platform"`
	Overlay  *YAMLColor `yaml:"overlay"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GameSpec) Validate() error {
	if _, err := s.Level(); err != nil {
		return fmt.Errorf("%w: start_level: %v", ErrInvalidSpec, err)
	}
	switch s.Progression {
	case "", ProgressionCyclic, ProgressionBounded:
	default:
		return fmt.Errorf("%w: progression %q", ErrInvalidSpec, s.Progression)
	}
	if s.MusicVolume < 0 || s.MusicVolume > 1 || s.SfxVolume < 0 || s.SfxVolume > 1 {
		return fmt.Errorf("%w: volumes must be within [0, 1]", ErrInvalidSpec)
	}
	return nil
}

// Level returns the start level. An empty name means the tutorial.
func (s *GameSpec) Level() (levels.Level, error) {
	if strings.TrimSpace(s.StartLevel) == "" {
		return levels.Tutorial, nil
	}
	return levels.ParseLevel(s.StartLevel)
}

func (s *GameSpec) Bounded() bool {
	return s.Progression == ProgressionBounded
}

// PlayerSpec is player.yaml, the rig tuning.
type PlayerSpec struct {
	Name                string  `yaml:"name"`
	PaddleSpeed         float64 `yaml:"paddle_speed"`
	BalanceSpeed        float64 `yaml:"balance_speed"`
	JumpScale           float64 `yaml:"jump_scale"`
	BodyGravityScale    float64 `yaml:"body_gravity_scale"`
	WheelAngularDamping float64 `yaml:"wheel_angular_damping"`
	Friction            float64 `yaml:"friction"`
	Gravity             float64 `yaml:"gravity"`
	Density             float64 `yaml:"density"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning fills unset fields from the defaults.
func (s *PlayerSpec) Tuning() component.RigTuning {
	t := component.DefaultRigTuning()
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&t.PaddleSpeed, s.PaddleSpeed)
	set(&t.BalanceSpeed, s.BalanceSpeed)
	set(&t.JumpScale, s.JumpScale)
	set(&t.BodyGravityScale, s.BodyGravityScale)
	set(&t.WheelAngularDamping, s.WheelAngularDamping)
	set(&t.Friction, s.Friction)
	set(&t.Gravity, s.Gravity)
	set(&t.Density, s.Density)
	return t
}

// SoundsSpec is sounds.yaml: every effect is synthesized from tones.
type SoundsSpec struct {
	SampleRate int                  `yaml:"sample_rate"`
	Effects    map[string]SoundSpec `yaml:"effects"`
}

type SoundSpec struct {
	Variants []ToneSpec `yaml:"variants"`
}

// ToneSpec is one clip. A sweep runs from Freq to FreqEnd; Notes, when set,
// plays a melody of NoteLength seconds per note instead.
type ToneSpec struct {
	Wave       string    `yaml:"wave"`
	Freq       float64   `yaml:"freq"`
	FreqEnd    float64   `yaml:"freq_end"`
	Duration   float64   `yaml:"duration"`
	Volume     float64   `yaml:"volume"`
	Notes      []float64 `yaml:"notes"`
	NoteLength float64   `yaml:"note_length"`
}

func LoadSoundsSpec() (*SoundsSpec, error) {
	spec, err := LoadSpec[SoundsSpec]("sounds.yaml")
	if err != nil {
		return nil, err
	}
	if spec.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample_rate %d", ErrInvalidSpec, spec.SampleRate)
	}
	for name, effect := range spec.Effects {
		if len(effect.Variants) == 0 {
			return nil, fmt.Errorf("%w: effect %s has no variants", ErrInvalidSpec, name)
		}
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
