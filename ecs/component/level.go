package component

import "github.com/milk9111/unicycle/levels"

// CurrentLevel is the level being played. Initial is restored when a bounded
// progression runs out.
type CurrentLevel struct {
	Level   levels.Level
	Initial levels.Level
	Bounded bool
}

var CurrentLevelComponent = NewComponent[CurrentLevel]()
