package levels

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/unicycle/common"
)

var ErrUnknownLevel = errors.New("levels: unknown level")

// Level identifies one of the fixed levels. The zero value is Tutorial.
type Level int

const (
	Tutorial Level = iota
	First
	Second
	Third
)

var all = []Level{Tutorial, First, Second, Third}

var names = map[Level]string{
	Tutorial: "tutorial",
	First:    "first",
	Second:   "second",
	Third:    "third",
}

var layouts = mustLoadLayouts()

func mustLoadLayouts() map[Level]*Layout {
	out := make(map[Level]*Layout, len(all))
	for _, l := range all {
		layout, err := LoadLayoutFromFS(names[l] + ".yaml")
		if err != nil {
			panic(err)
		}
		out[l] = layout
	}
	return out
}

// All returns every level in progression order.
func All() []Level {
	return append([]Level(nil), all...)
}

// Last returns the terminal level of the progression.
func Last() Level {
	return all[len(all)-1]
}

func (l Level) Valid() bool {
	_, ok := names[l]
	return ok
}

func (l Level) String() string {
	if name, ok := names[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts the level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range all {
		if names[l] == s {
			return l, nil
		}
	}
	return Tutorial, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Next returns the following level, wrapping from the last to the first.
func (l Level) Next() Level {
	for i, candidate := range all {
		if candidate == l {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// NextBounded returns the following level, or false at the last level.
func (l Level) NextBounded() (Level, bool) {
	if l.IsLast() {
		return l, false
	}
	return l.Next(), true
}

func (l Level) IsLast() bool {
	return l == Last()
}

// Point is a position in physics units.
type Point struct {
	X, Y float64
}

// StartingPoints holds the rig part centers in physics units. The wheel rests
// on the ground top and body and head are stacked above it.
type StartingPoints struct {
	Wheel Point
	Body  Point
	Head  Point
}

func (l Level) StartingPoints() StartingPoints {
	ground := 0.5 * common.PathHeight
	return StartingPoints{
		Wheel: Point{X: 0, Y: ground + common.WheelRadius},
		Body:  Point{X: 0, Y: ground + 2*common.WheelRadius + 0.5*common.BodyLength + common.BodyRadius},
		Head:  Point{X: 0, Y: ground + 2*common.WheelRadius + common.BodyLength + 2*common.BodyRadius + common.HeadRadius},
	}
}

// FinishLine returns the finish x coordinate in pixels.
func (l Level) FinishLine() float64 {
	layout, ok := layouts[l]
	if !ok {
		return 0
	}
	return layout.FinishLine
}

// Hole is a gap in the ground, in pixels.
type Hole struct {
	Start, End float64
}

func (l Level) Holes() []Hole {
	layout, ok := layouts[l]
	if !ok {
		return nil
	}
	holes := make([]Hole, 0, len(layout.Holes))
	for _, h := range layout.Holes {
		holes = append(holes, Hole{Start: h[0], End: h[1]})
	}
	return holes
}

// Collider is a static obstacle box in physics units. Rotation is radians.
type Collider struct {
	X, Y       float64
	Rotation   float64
	HalfWidth  float64
	HalfHeight float64
}

func (l Level) Colliders() []Collider {
	layout, ok := layouts[l]
	if !ok {
		return nil
	}
	colliders := make([]Collider, 0, len(layout.Colliders))
	for _, c := range layout.Colliders {
		colliders = append(colliders, Collider{
			X:          c.X,
			Y:          c.Y,
			Rotation:   c.RotationDeg * math.Pi / 180,
			HalfWidth:  c.HalfWidth,
			HalfHeight: c.HalfHeight,
		})
	}
	return colliders
}
