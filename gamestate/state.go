package gamestate

import "fmt"

type State int

const (
	Loading State = iota
	Menu
	Prepare
	PrepareLevel
	InLevel
	Lost
	Finished
)

func (s State) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Menu:
		return "Menu"
	case Prepare:
		return "Prepare"
	case PrepareLevel:
		return "PrepareLevel"
	case InLevel:
		return "InLevel"
	case Lost:
		return "Lost"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
