package component

type SoundEffect int

const (
	SoundJump SoundEffect = iota
	SoundLand
	SoundFall
	SoundWon
	SoundLoose
	SoundBackground
)

func (s SoundEffect) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundLand:
		return "land"
	case SoundFall:
		return "fall"
	case SoundWon:
		return "won"
	case SoundLoose:
		return "loose"
	case SoundBackground:
		return "background"
	default:
		return "unknown"
	}
}

// SoundRequest is a one-shot request consumed and destroyed by the audio system.
type SoundRequest struct {
	Effect SoundEffect
	Loop   bool
}

var SoundRequestComponent = NewComponent[SoundRequest]()
