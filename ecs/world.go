package ecs

import (
	"time"

	"github.com/saltyslugs/saltyslugs/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// KindID is satisfied by every component.ComponentKind.
type KindID interface {
	ID() component.ComponentID
}

// World owns entities, their components and the per-tick clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	delta   time.Duration
	elapsed time.Duration
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and frees its slot. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(e.slot())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	set, ok := w.stores[id]
	if !ok && create {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}

// AddComponent attaches or replaces a component value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(id, true).Set(e.slot(), value)
	return nil
}

// RemoveComponent detaches a component and reports whether it was present.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Remove(e.slot())
}

// GetComponent returns the raw component value.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(id, false).Get(e.slot())
	return v, v != nil
}

// HasComponent reports whether e carries the component.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	return w.entities.isAlive(e) && w.store(id, false).Has(e.slot())
}

// First returns the first live entity with the given component.
func (w *World) First(kind KindID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, slot := range w.store(kind.ID(), false).Entities() {
		if e, ok := w.entities.entityAt(slot); ok {
			return e, true
		}
	}
	return 0, false
}

// Query returns the live entities carrying every listed component, ordered by
// slot of the smallest set.
func (w *World) Query(kinds ...KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.store(k.ID(), false)
		if set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	smallest := sets[0]
	for _, set := range sets[1:] {
		if set.Len() < smallest.Len() {
			smallest = set
		}
	}

	var out []Entity
	for _, slot := range smallest.Entities() {
		match := true
		for _, set := range sets {
			if !set.Has(slot) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.entityAt(slot); ok {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entities carry the component.
func (w *World) Count(kind KindID) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}

// Advance moves the world clock forward; systems read it through Delta.
func (w *World) Advance(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.elapsed += dt
}

// Delta is the duration of the current tick.
func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

// Elapsed is the total simulated time.
func (w *World) Elapsed() time.Duration {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
