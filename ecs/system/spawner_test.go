package system

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/stretchr/testify/require"
)

const tick = 100 * time.Millisecond

func rainSpawner() *component.Spawner {
	return &component.Spawner{
		Key:          "salt_rain",
		Mode:         component.SpawnerModeRain,
		Interval:     time.Second,
		OffsetX:      component.OffsetRange{Min: -400, Max: 400, Band: 100},
		OffsetY:      component.OffsetRange{Min: -200, Max: 400, Band: 130},
		Displacement: cp.Vector{Y: -500},
		Travel:       3 * time.Second,
		Linger:       500 * time.Millisecond,
	}
}

func fallSpawner() *component.Spawner {
	return &component.Spawner{
		Key:          "salt_fall",
		Mode:         component.SpawnerModeFall,
		Origin:       cp.Vector{Y: 300},
		Displacement: cp.Vector{Y: -300},
		TravelMin:    700 * time.Millisecond,
		TravelMax:    4 * time.Second,
	}
}

type spawnRecorder struct {
	particles []component.Particle
	err       error
}

func (r *spawnRecorder) spawn(w *ecs.World, _ string, p component.Particle) (ecs.Entity, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.particles = append(r.particles, p)
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ParticleComponent.Kind(), &p); err != nil {
		return 0, err
	}
	return e, nil
}

func newSpawnerWorld(t *testing.T, sp *component.Spawner) (*ecs.World, *component.Spawner) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.SpawnerComponent.Kind(), sp))
	return w, sp
}

func runTicks(w *ecs.World, sys ecs.System, n int) {
	for i := 0; i < n; i++ {
		w.Advance(tick)
		sys.Update(w)
	}
}

func TestRainSpawnsOncePerInterval(t *testing.T) {
	w, sp := newSpawnerWorld(t, rainSpawner())
	rec := &spawnRecorder{}
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(3, 4)), rec.spawn)

	require.True(t, sp.Start())
	runTicks(w, sys, 9)
	require.Empty(t, rec.particles, "nothing before the first interval")

	runTicks(w, sys, 26)
	require.Len(t, rec.particles, 3)

	for _, p := range rec.particles {
		require.Equal(t, cp.Vector{Y: -500}, p.Displacement)
		require.Equal(t, 3*time.Second, p.Travel)
		require.Equal(t, 500*time.Millisecond, p.Linger)
	}
	require.Equal(t, 3, len(w.Events().Drain()))
}

func TestRainSpawnsAroundActor(t *testing.T) {
	w, sp := newSpawnerWorld(t, rainSpawner())
	slug := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, slug, component.SlugTagComponent.Kind(), &component.SlugTag{}))
	require.NoError(t, ecs.Add(w, slug, component.TransformComponent.Kind(), &component.Transform{X: 1000, Y: -1000}))

	rec := &spawnRecorder{}
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(5, 6)), rec.spawn)
	sp.Start()
	runTicks(w, sys, 50)

	require.Len(t, rec.particles, 5)
	for _, p := range rec.particles {
		off := p.Start.Sub(cp.Vector{X: 1000, Y: -1000})
		requireOutsideBands(t, off)
	}
}

func TestStopAfterStartSpawnsNothing(t *testing.T) {
	w, sp := newSpawnerWorld(t, rainSpawner())
	rec := &spawnRecorder{}
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(1, 1)), rec.spawn)

	require.True(t, sp.Start())
	runTicks(w, sys, 3)
	require.True(t, sp.Stop())
	runTicks(w, sys, 50)

	require.Empty(t, rec.particles)
	require.False(t, sp.Stop(), "stopping a stopped spawner is a no-op")
}

func TestStartTwiceKeepsOneSchedule(t *testing.T) {
	w, sp := newSpawnerWorld(t, rainSpawner())
	rec := &spawnRecorder{}
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(1, 1)), rec.spawn)

	require.True(t, sp.Start())
	runTicks(w, sys, 5)
	require.False(t, sp.Start())
	runTicks(w, sys, 5)

	require.Len(t, rec.particles, 1, "restarting must neither double nor reset the schedule")
}

func TestFallEmitsExactlyOne(t *testing.T) {
	w, sp := newSpawnerWorld(t, fallSpawner())
	rec := &spawnRecorder{}
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(7, 8)), rec.spawn)

	require.True(t, sp.Start())
	runTicks(w, sys, 100)

	require.Len(t, rec.particles, 1)
	p := rec.particles[0]
	require.Equal(t, cp.Vector{Y: 300}, p.Start)
	require.Equal(t, cp.Vector{Y: -300}, p.Displacement)
	require.GreaterOrEqual(t, p.Travel, 700*time.Millisecond)
	require.Less(t, p.Travel, 4*time.Second)
	require.Zero(t, p.Linger)
	require.False(t, sp.Running())
}

// Rain and fall are separate configurations, not one behaviour: over the same
// span rain keeps producing while fall stops after its single drop.
func TestRainAndFallDiverge(t *testing.T) {
	counts := map[component.SpawnerMode]int{}
	for _, sp := range []*component.Spawner{rainSpawner(), fallSpawner()} {
		w, sp := newSpawnerWorld(t, sp)
		rec := &spawnRecorder{}
		sys := NewSpawnerSystem(rand.New(rand.NewPCG(9, 9)), rec.spawn)
		sp.Start()
		runTicks(w, sys, 50)
		counts[sp.Mode] = len(rec.particles)
	}
	require.Equal(t, 5, counts[component.SpawnerModeRain])
	require.Equal(t, 1, counts[component.SpawnerModeFall])
}

func TestSpawnFailureIsLogged(t *testing.T) {
	w, sp := newSpawnerWorld(t, rainSpawner())
	rec := &spawnRecorder{err: errors.New("no prefab")}
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(1, 1)), rec.spawn)

	sp.Start()
	runTicks(w, sys, 20)
	require.Zero(t, w.Events().Len())
	require.True(t, sp.Running())
}

func TestExcludeOffset(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		band float64
		want float64
	}{
		{"negative inside band", -50, 100, -150},
		{"band lower edge", -100, 100, -200},
		{"zero", 0, 100, 100},
		{"positive inside band", 99, 100, 199},
		{"band upper edge", 100, 100, 100},
		{"far negative", -300, 100, -300},
		{"far positive", 350, 100, 350},
		{"y band", -129, 130, -259},
		{"no band", 10, 0, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ExcludeOffset(c.v, c.band))
		})
	}
}

func TestRainOffsetAvoidsBands(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	sp := rainSpawner()
	for i := 0; i < 5000; i++ {
		off := RainOffset(rng, sp)
		requireOutsideBands(t, off)
		require.GreaterOrEqual(t, off.X, -400.0)
		require.Less(t, off.X, 400.0)
		require.GreaterOrEqual(t, off.Y, -260.0)
		require.Less(t, off.Y, 400.0)
	}
}

func TestPlacementScriptOffsets(t *testing.T) {
	sp := rainSpawner()
	sp.PlacementScript = "salt_ring.tengo"
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(13, 14)), nil)

	for i := 0; i < 200; i++ {
		off := sys.offset(sp, cp.Vector{})
		requireOutsideBands(t, off)
		require.LessOrEqual(t, math.Abs(off.X), 450+100.0)
		require.LessOrEqual(t, math.Abs(off.Y), 450+100+130.0)
	}
	require.NoError(t, sys.scripts["salt_ring.tengo"].err)

	sys.ForgetScript("scripts/salt_ring.tengo")
	require.Empty(t, sys.scripts)
}

func TestPlacementScriptFallback(t *testing.T) {
	sp := rainSpawner()
	sp.PlacementScript = "does_not_exist.tengo"
	sys := NewSpawnerSystem(rand.New(rand.NewPCG(15, 16)), nil)

	for i := 0; i < 50; i++ {
		off := sys.offset(sp, cp.Vector{})
		requireOutsideBands(t, off)
	}
	require.Error(t, sys.scripts["does_not_exist.tengo"].err)
}

func requireOutsideBands(t *testing.T, off cp.Vector) {
	t.Helper()
	require.GreaterOrEqual(t, math.Abs(off.X), 100.0, "x offset %v inside band", off.X)
	require.GreaterOrEqual(t, math.Abs(off.Y), 130.0, "y offset %v inside band", off.Y)
}
