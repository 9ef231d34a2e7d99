package component

// RigTuning holds the player rig parameters loaded from player.yaml.
type RigTuning struct {
	PaddleSpeed         float64
	BalanceSpeed        float64
	JumpScale           float64
	BodyGravityScale    float64
	WheelAngularDamping float64
	Friction            float64
	Gravity             float64
	Density             float64
}

var RigTuningComponent = NewComponent[RigTuning]()

// DefaultRigTuning matches the shipped player.yaml.
func DefaultRigTuning() RigTuning {
	return RigTuning{
		PaddleSpeed:         20,
		BalanceSpeed:        20,
		JumpScale:           0.15,
		BodyGravityScale:    0.3,
		WheelAngularDamping: 0.2,
		Friction:            0.7,
		Gravity:             -9.81,
		Density:             1,
	}
}
