package component

// Contacts is recomputed after every physics step.
type Contacts struct {
	WheelOnPlatform bool
	HeadOnPlatform  bool
}

var ContactsComponent = NewComponent[Contacts]()
