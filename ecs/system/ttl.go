package system

import (
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

// TTLSystem counts TTL components down, fading sprites that ask for it, and
// destroys entities whose time ran out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Remaining -= w.Delta()
		if ttl.Remaining <= 0 {
			ecs.DestroyEntity(w, e)
			return
		}

		if !ttl.Fade || ttl.Total <= 0 {
			return
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Fade = 1 - float64(ttl.Remaining)/float64(ttl.Total)
		}
	})
}
