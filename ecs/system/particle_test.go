package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/stretchr/testify/require"
)

func TestParticleTravelsThenLingers(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{
		Start:        cp.Vector{X: 10, Y: 100},
		Displacement: cp.Vector{Y: -500},
		Travel:       3 * time.Second,
		Linger:       500 * time.Millisecond,
	}))

	sys := NewParticleSystem()
	step := func(d time.Duration) {
		w.Advance(d)
		sys.Update(w)
	}

	step(1500 * time.Millisecond)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	require.InDelta(t, 10, tr.X, 1e-9)
	require.InDelta(t, -150, tr.Y, 1e-9)

	step(1500 * time.Millisecond)
	require.InDelta(t, -400, tr.Y, 1e-9)

	step(400 * time.Millisecond)
	require.True(t, ecs.IsAlive(w, e), "still lingering")
	require.InDelta(t, -400, tr.Y, 1e-9)

	step(100 * time.Millisecond)
	require.False(t, ecs.IsAlive(w, e))
}

func TestParticleWithoutLingerIsRemovedOnArrival(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{
		Displacement: cp.Vector{Y: -300},
		Travel:       time.Second,
	}))

	sys := NewParticleSystem()
	for i := 0; i < 9; i++ {
		w.Advance(tick)
		sys.Update(w)
	}
	require.True(t, ecs.IsAlive(w, e))

	w.Advance(tick)
	sys.Update(w)
	require.False(t, ecs.IsAlive(w, e))
}
