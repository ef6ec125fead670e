package system

import (
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

// SpawnFunc creates the particle entity for one spawn.
type SpawnFunc func(w *ecs.World, prefab string, p component.Particle) (ecs.Entity, error)

// SpawnerSystem runs every started spawner. Rain spawners fire once per
// elapsed interval around the actor; fall spawners fire once and go idle.
type SpawnerSystem struct {
	rng     *rand.Rand
	spawn   SpawnFunc
	scripts map[string]scriptEntry
	logger  *slog.Logger
}

type scriptEntry struct {
	script *placementScript
	err    error
}

func NewSpawnerSystem(rng *rand.Rand, spawn SpawnFunc) *SpawnerSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SpawnerSystem{
		rng:     rng,
		spawn:   spawn,
		scripts: map[string]scriptEntry{},
		logger:  slog.Default().With("system", "spawner"),
	}
}

// ForgetScript drops a cached placement script so the next spawn reloads it.
// Paths are compared by file name, so "scripts/x.tengo" and "x.tengo" match.
func (s *SpawnerSystem) ForgetScript(path string) {
	name := filepath.Base(filepath.ToSlash(path))
	for key := range s.scripts {
		if filepath.Base(filepath.ToSlash(key)) == name {
			delete(s.scripts, key)
		}
	}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if w == nil || s.spawn == nil {
		return
	}
	dt := w.Delta()
	anchor := actorPosition(w)

	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
		if !sp.Running() {
			return
		}

		switch sp.Mode {
		case component.SpawnerModeFall:
			if sp.TakeOneShot() {
				s.emit(w, e, sp, FallParticle(s.rng, sp))
			}
		default:
			n := sp.Timer.Tick(dt).TimesFinishedThisTick()
			for i := 0; i < n; i++ {
				s.emit(w, e, sp, component.Particle{
					Start:        anchor.Add(s.offset(sp, anchor)),
					Displacement: sp.Displacement,
					Travel:       sp.Travel,
					Linger:       sp.Linger,
				})
			}
		}
	})
}

func (s *SpawnerSystem) emit(w *ecs.World, spawner ecs.Entity, sp *component.Spawner, p component.Particle) {
	e, err := s.spawn(w, sp.ParticlePrefab, p)
	if err != nil {
		s.logger.Warn("spawn particle", "key", sp.Key, "prefab", sp.ParticlePrefab, "err", err)
		return
	}
	w.Events().Push(ecs.Event{
		Type: ecs.EventParticleSpawned,
		Data: ecs.SpawnEvent{Entity: e, Spawner: spawner, At: w.Elapsed()},
	})
}

func (s *SpawnerSystem) offset(sp *component.Spawner, anchor cp.Vector) cp.Vector {
	if sp.PlacementScript == "" {
		return RainOffset(s.rng, sp)
	}

	entry, ok := s.scripts[sp.PlacementScript]
	if !ok {
		script, err := loadPlacementScript(sp.PlacementScript)
		entry = scriptEntry{script: script, err: err}
		s.scripts[sp.PlacementScript] = entry
		if err != nil {
			s.logger.Error("load placement script", "key", sp.Key, "script", sp.PlacementScript, "err", err)
		}
	}
	if entry.err != nil {
		return RainOffset(s.rng, sp)
	}

	off, err := entry.script.place(placementEngine(s.rng, sp, anchor))
	if err != nil {
		s.logger.Warn("placement script failed, using default rule", "key", sp.Key, "err", err)
		return RainOffset(s.rng, sp)
	}
	return off
}

// RainOffset draws an offset from the spawner ranges and pushes it out of
// the exclusion bands.
func RainOffset(rng *rand.Rand, sp *component.Spawner) cp.Vector {
	return cp.Vector{
		X: ExcludeOffset(randomIn(rng, sp.OffsetX.Min, sp.OffsetX.Max), sp.OffsetX.Band),
		Y: ExcludeOffset(randomIn(rng, sp.OffsetY.Min, sp.OffsetY.Max), sp.OffsetY.Band),
	}
}

// ExcludeOffset moves v out of [-band, band): values in [-band, 0) move down
// by band, values in [0, band) move up by band.
func ExcludeOffset(v, band float64) float64 {
	if band <= 0 {
		return v
	}
	switch {
	case v >= -band && v < 0:
		return v - band
	case v >= 0 && v < band:
		return v + band
	}
	return v
}

// FallParticle builds the single fall-mode particle with a travel time drawn
// from [TravelMin, TravelMax).
func FallParticle(rng *rand.Rand, sp *component.Spawner) component.Particle {
	travel := time.Duration(randomIn(rng, float64(sp.TravelMin), float64(sp.TravelMax)))
	return component.Particle{
		Start:        sp.Origin,
		Displacement: sp.Displacement,
		Travel:       travel,
		Linger:       sp.Linger,
	}
}

// randomIn samples [lo, hi) uniformly.
func randomIn(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// actorPosition is the slug's position, or the origin without one.
func actorPosition(w *ecs.World) cp.Vector {
	e, ok := w.First(component.SlugTagComponent.Kind())
	if !ok {
		e, ok = w.First(component.ActorComponent.Kind())
	}
	if !ok {
		return cp.Vector{}
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return t.Position()
}
