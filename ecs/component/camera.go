package component

// Camera keeps its entity's transform on the target every tick.
type Camera struct {
	TargetName string
	Zoom       float64
}

var CameraComponent = NewComponent[Camera]()
