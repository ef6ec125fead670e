package entity

import (
	"fmt"

	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

// NewSalt builds one salt particle from its prefab and puts it on its
// trajectory start.
func NewSalt(w *ecs.World, prefab string, p component.Particle) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, p.Start.X, p.Start.Y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("salt: set transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleComponent.Kind(), &p); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("salt: add particle: %w", err)
	}
	return e, nil
}
