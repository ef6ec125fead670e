package system

import (
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update moves the camera onto its target's position.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	if !w.IsAlive(cs.targetEntity) {
		camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		camTransform.X = target.X
		camTransform.Y = target.Y
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	switch name {
	case "slug", "player", "":
		if e, ok := w.First(component.SlugTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

// CameraView returns the camera position and zoom, or the origin at zoom 1
// when the scene has no camera.
func CameraView(w *ecs.World) (x, y, zoom float64) {
	zoom = 1
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 0, 0, zoom
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	return x, y, zoom
}
