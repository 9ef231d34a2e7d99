package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Layout is the on-disk description of one level. Positions in holes and the
// finish line are pixels; colliders are physics units.
type Layout struct {
	Name       string         `yaml:"name"`
	FinishLine float64        `yaml:"finish_line"`
	Holes      [][2]float64   `yaml:"holes"`
	Colliders  []ColliderSpec `yaml:"colliders"`
}

type ColliderSpec struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	RotationDeg float64 `yaml:"rotation_deg"`
	HalfWidth   float64 `yaml:"half_width"`
	HalfHeight  float64 `yaml:"half_height"`
}

func LoadLayoutFromFS(name string) (*Layout, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if layout.FinishLine <= 0 {
		return nil, fmt.Errorf("level %s: finish_line must be positive", name)
	}
	for i, h := range layout.Holes {
		if h[1] <= h[0] {
			return nil, fmt.Errorf("level %s: hole %d ends before it starts", name, i)
		}
		if i > 0 && h[0] < layout.Holes[i-1][1] {
			return nil, fmt.Errorf("level %s: hole %d overlaps hole %d", name, i, i-1)
		}
	}
	return &layout, nil
}
