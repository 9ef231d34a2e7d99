package component

// Debounce blocks the frame following a jump or a landing sound.
type Debounce struct {
	JumpBlock bool
	LandBlock bool
}

var DebounceComponent = NewComponent[Debounce]()
