package component

type WheelTag struct{}

var WheelTagComponent = NewComponent[WheelTag]()

type BodyTag struct{}

var BodyTagComponent = NewComponent[BodyTag]()

type HeadTag struct{}

var HeadTagComponent = NewComponent[HeadTag]()

// PlatformTag marks static colliders the rig can stand on or hit its head on.
type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

// ForLevelTag marks everything despawned when a level is torn down.
type ForLevelTag struct{}

var ForLevelTagComponent = NewComponent[ForLevelTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type DecorTag struct{}

var DecorTagComponent = NewComponent[DecorTag]()
