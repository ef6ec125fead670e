package entity

import (
	"fmt"

	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

// NewSlug builds the player slug. The prefab must carry an actor and a
// transform; the walk atlas is loaded eagerly so a missing atlas fails here.
func NewSlug(w *ecs.World, prefab string) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.ActorComponent.Kind()) || !ecs.Has(w, e, component.TransformComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("slug: prefab %q needs actor and transform", prefab)
	}
	return e, nil
}
