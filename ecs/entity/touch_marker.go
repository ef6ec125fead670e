package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
)

// NewTouchMarker drops the short-lived marker shown where the pointer went
// down.
func NewTouchMarker(w *ecs.World, prefab string, at cp.Vector) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, at.X, at.Y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
