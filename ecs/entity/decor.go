package entity

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/unicycle/ecs"
	"github.com/milk9111/unicycle/ecs/component"
	"github.com/milk9111/unicycle/levels"
)

var errNoDecor = errors.New("decor script does not define 'decor'")

// DecorItem is one background sprite placed by the decor script, in pixels.
type DecorItem struct {
	Texture string
	X       float64
	Y       float64
	Scale   float64
	Layer   int
}

// DecorLayout runs the decor script for a level and returns its placements.
// The script sees `level` and `finish_line` and must define a `decor` array
// of maps with texture, x, y and optional scale and layer.
func DecorLayout(src []byte, level levels.Level) ([]DecorItem, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("level", level.String()); err != nil {
		return nil, err
	}
	if err := script.Add("finish_line", level.FinishLine()); err != nil {
		return nil, err
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("decor: run script: %w", err)
	}
	if !compiled.IsDefined("decor") {
		return nil, errNoDecor
	}

	raw := compiled.Get("decor").Array()
	items := make([]DecorItem, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("decor: item %d is not a map", i)
		}
		texture, _ := m["texture"].(string)
		if texture == "" {
			return nil, fmt.Errorf("decor: item %d has no texture", i)
		}
		item := DecorItem{Texture: texture, Scale: 1}
		var okX, okY bool
		item.X, okX = toFloat(m["x"])
		item.Y, okY = toFloat(m["y"])
		if !okX || !okY {
			return nil, fmt.Errorf("decor: item %d (%s) needs numeric x and y", i, texture)
		}
		if s, ok := toFloat(m["scale"]); ok {
			item.Scale = s
		}
		if l, ok := toFloat(m["layer"]); ok {
			item.Layer = int(l)
		}
		items = append(items, item)
	}
	return items, nil
}

// SpawnDecor creates the level-scoped decor sprites.
func SpawnDecor(w *ecs.World, level levels.Level, src []byte) error {
	items, err := DecorLayout(src, level)
	if err != nil {
		return err
	}
	for _, item := range items {
		_, err := BuildEntity(w, "decor",
			with(component.DecorTagComponent.Kind(), &component.DecorTag{}),
			forLevel(),
			with(component.TransformComponent.Kind(), &component.Transform{X: item.X, Y: item.Y, ScaleX: item.Scale, ScaleY: item.Scale}),
			with(component.SpriteComponent.Kind(), &component.Sprite{Texture: item.Texture, Layer: item.Layer}),
		)
		if err != nil {
			return fmt.Errorf("decor: %w", err)
		}
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
