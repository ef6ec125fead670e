package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

type SpawnerMode string

const (
	// SpawnerModeRain drops one particle per interval around the actor.
	SpawnerModeRain SpawnerMode = "rain"
	// SpawnerModeFall drops a single particle above the scene origin.
	SpawnerModeFall SpawnerMode = "fall"
)

// OffsetRange is a uniform draw in [Min, Max). Draws inside (-Band, Band)
// are pushed out by Band.
type OffsetRange struct {
	Min  float64
	Max  float64
	Band float64
}

type Spawner struct {
	Key  string
	Mode SpawnerMode

	Interval time.Duration
	OffsetX  OffsetRange
	OffsetY  OffsetRange

	// Origin is where fall mode drops its particle.
	Origin       cp.Vector
	Displacement cp.Vector
	Travel       time.Duration
	// TravelMin and TravelMax bound the random travel time in fall mode.
	TravelMin time.Duration
	TravelMax time.Duration
	Linger    time.Duration

	ParticlePrefab  string
	PlacementScript string

	Timer   Timer
	running bool
	oneShot bool
}

// Start schedules spawning. A running spawner is left untouched so the
// repeat is never doubled.
func (s *Spawner) Start() bool {
	if s == nil || s.running {
		return false
	}
	s.running = true
	switch s.Mode {
	case SpawnerModeFall:
		s.oneShot = true
	default:
		s.Timer = NewTimer(s.Interval, TimerModeRepeating)
	}
	return true
}

// Stop removes the schedule. Stopping an idle spawner does nothing.
func (s *Spawner) Stop() bool {
	if s == nil || !s.running {
		return false
	}
	s.running = false
	s.oneShot = false
	s.Timer.Reset()
	return true
}

func (s *Spawner) Running() bool {
	return s != nil && s.running
}

// TakeOneShot consumes the pending fall-mode spawn, if any. The spawner is
// idle afterwards.
func (s *Spawner) TakeOneShot() bool {
	if s == nil || !s.oneShot {
		return false
	}
	s.oneShot = false
	s.running = false
	return true
}

var SpawnerComponent = NewComponent[Spawner]()
