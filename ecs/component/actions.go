package component

// Actions is the per-frame input snapshot. A nil axis means no key of the pair
// is involved this frame; zero is the neutral frame after a full release.
type Actions struct {
	Jump        bool
	Paddling    *float64
	HeadBalance *float64
	Restart     bool
}

var ActionsComponent = NewComponent[Actions]()
