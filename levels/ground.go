package levels

import "github.com/milk9111/unicycle/common"

// Segment is one solid stretch of ground in physics units.
type Segment struct {
	Start, End float64
}

func (s Segment) Center() float64 {
	return 0.5 * (s.Start + s.End)
}

func (s Segment) HalfWidth() float64 {
	return 0.5 * (s.End - s.Start)
}

// GroundSegments splits the span from LevelMargin before the start to
// LevelMargin past the finish at every hole. Boundaries at even indices start
// a segment and odd ones end it.
func GroundSegments(l Level) []Segment {
	holes := l.Holes()
	bounds := make([]float64, 0, 2+2*len(holes))
	bounds = append(bounds, -common.LevelMargin)
	for _, h := range holes {
		bounds = append(bounds, h.Start, h.End)
	}
	bounds = append(bounds, l.FinishLine()+common.LevelMargin)

	var starts, ends []float64
	for i, b := range bounds {
		if i%2 == 0 {
			starts = append(starts, common.ToPhysics(b))
		} else {
			ends = append(ends, common.ToPhysics(b))
		}
	}

	segments := make([]Segment, 0, len(ends))
	for i := range ends {
		segments = append(segments, Segment{Start: starts[i], End: ends[i]})
	}
	return segments
}

// WallXs returns the x positions in physics units of the leading and trailing
// side walls.
func WallXs(l Level) (float64, float64) {
	return common.ToPhysics(-common.LevelMargin), common.ToPhysics(l.FinishLine() + common.LevelMargin)
}
