package component

import "github.com/jakecoffman/cp"

// Transform places an entity in scene coordinates: origin at the centre of
// the screen, Y pointing up. A negative ScaleX mirrors the sprite.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(v cp.Vector) {
	t.X = v.X
	t.Y = v.Y
}

var TransformComponent = NewComponent[Transform]()
