package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/saltyslugs/saltyslugs/prefabs"
)

// NewSpawner builds a spawner entity from a prefab. The spawner is not
// started.
func NewSpawner(w *ecs.World, prefab string) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.SpawnerComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("spawner: prefab %q has no spawner component", prefab)
	}
	return e, nil
}

// SpawnerFromSpec validates a spawner prefab and converts it.
func SpawnerFromSpec(spec prefabs.SpawnerComponentSpec) (*component.Spawner, error) {
	sp := &component.Spawner{
		Key:             spec.Key,
		Mode:            component.SpawnerMode(spec.Mode),
		Interval:        prefabs.Seconds(spec.Interval),
		OffsetX:         component.OffsetRange(spec.OffsetX),
		OffsetY:         component.OffsetRange(spec.OffsetY),
		Origin:          cp.Vector{X: spec.Origin.X, Y: spec.Origin.Y},
		Displacement:    cp.Vector{X: spec.Travel.DX, Y: spec.Travel.DY},
		Travel:          prefabs.Seconds(spec.Travel.Duration),
		TravelMin:       prefabs.Seconds(spec.Travel.DurationMin),
		TravelMax:       prefabs.Seconds(spec.Travel.DurationMax),
		Linger:          prefabs.Seconds(spec.Travel.Linger),
		ParticlePrefab:  spec.Particle,
		PlacementScript: spec.PlacementScript,
	}
	if sp.Mode == "" {
		sp.Mode = component.SpawnerModeRain
	}

	switch sp.Mode {
	case component.SpawnerModeRain:
		if sp.Interval <= 0 {
			return nil, fmt.Errorf("spawner %q: rain interval must be positive", spec.Key)
		}
		if sp.OffsetX.Max < sp.OffsetX.Min || sp.OffsetY.Max < sp.OffsetY.Min {
			return nil, fmt.Errorf("spawner %q: offset range max below min", spec.Key)
		}
	case component.SpawnerModeFall:
		if sp.TravelMin <= 0 || sp.TravelMax <= sp.TravelMin {
			return nil, fmt.Errorf("spawner %q: fall needs 0 < duration_min < duration_max", spec.Key)
		}
	default:
		return nil, fmt.Errorf("spawner %q: unknown mode %q", spec.Key, spec.Mode)
	}
	if sp.Linger < 0 {
		return nil, fmt.Errorf("spawner %q: linger must not be negative", spec.Key)
	}
	return sp, nil
}
