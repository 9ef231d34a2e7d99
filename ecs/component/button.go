package component

type Interaction int

const (
	InteractionNone Interaction = iota
	InteractionHovered
	InteractionClicked
)

type ButtonKind int

const (
	ButtonAgain ButtonKind = iota
	ButtonNext
	ButtonRestart
)

func (k ButtonKind) Label() string {
	switch k {
	case ButtonNext:
		return "Next!"
	case ButtonRestart:
		return "Restart"
	default:
		return "Again!"
	}
}

// ButtonMaterial is the grey level of the button background.
type ButtonMaterial struct {
	Grey float64
}

var (
	ButtonNormal  = ButtonMaterial{Grey: 0.15}
	ButtonHovered = ButtonMaterial{Grey: 0.25}
)

// Button is the overlay button. Interaction is written by the UI layer each
// frame; Material is chosen by the core.
type Button struct {
	Kind        ButtonKind
	Label       string
	Interaction Interaction
	Material    ButtonMaterial
}

var ButtonComponent = NewComponent[Button]()
