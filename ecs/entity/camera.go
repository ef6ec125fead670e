package entity

import (
	"fmt"

	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

func NewCamera(w *ecs.World, prefab string) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.CameraComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefab)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		if err := SetEntityTransform(w, e, 0, 0); err != nil {
			return 0, fmt.Errorf("camera: add transform: %w", err)
		}
	}
	return e, nil
}
