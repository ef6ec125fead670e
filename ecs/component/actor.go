package component

import "github.com/jakecoffman/cp"

const (
	DefaultStepSpeed          = 2.0
	DefaultActivationDistance = 4.0
	DefaultDeadZone           = 2.0
	DefaultWalkClip           = "walk"
)

type MoveState uint8

const (
	MoveIdle MoveState = iota
	MoveWalking
)

func (s MoveState) String() string {
	if s == MoveWalking {
		return "walking"
	}
	return "idle"
}

// Facing is the sign applied to the sprite's horizontal scale.
type Facing int8

const (
	FacingNormal   Facing = 1
	FacingMirrored Facing = -1
)

func (f Facing) Sign() float64 {
	if f == FacingMirrored {
		return -1
	}
	return 1
}

// Actor is a sprite that walks toward the last pointer position. The target
// is sticky: reaching it only idles the actor.
type Actor struct {
	Target *cp.Vector
	State  MoveState
	Facing Facing

	StepSpeed          float64
	ActivationDistance float64
	DeadZone           float64
	WalkClip           string
}

// NewActor returns an idle actor with the stock slug tuning.
func NewActor() *Actor {
	return &Actor{
		Facing:             FacingNormal,
		StepSpeed:          DefaultStepSpeed,
		ActivationDistance: DefaultActivationDistance,
		DeadZone:           DefaultDeadZone,
		WalkClip:           DefaultWalkClip,
	}
}

func (a *Actor) SetTarget(p cp.Vector) {
	a.Target = &p
}

var ActorComponent = NewComponent[Actor]()
