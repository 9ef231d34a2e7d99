package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// PhysicsScale converts physics units to pixels.
	PhysicsScale = 32.0

	TPS       = 60
	FixedStep = 1.0 / TPS

	Gravity = -9.81

	WheelRadius = 1.0
	BodyRadius  = 0.5
	// BodyHalfLength is half the length of the body capsule's segment.
	BodyHalfLength = 0.5
	BodyLength     = 2 * BodyHalfLength
	HeadRadius     = 0.5

	// PathHeight is the thickness of the ground boxes. Their top sits at
	// 0.5*PathHeight.
	PathHeight = 1.0

	// CameraY is the fixed camera height in pixels.
	CameraY = 300.0

	// LevelMargin extends the ground before the start and past the finish, in pixels.
	LevelMargin = 400.0
)
