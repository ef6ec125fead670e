package ecs

import "time"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventParticleSpawned = "particle_spawned"

// SpawnEvent is pushed whenever a spawner creates a particle.
type SpawnEvent struct {
	Entity  Entity
	Spawner Entity
	At      time.Duration
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
