package component

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

func TestParticlePosition(t *testing.T) {
	cases := []struct {
		name    string
		p       Particle
		want    cp.Vector
		wantEnd bool
	}{
		{
			name: "start",
			p:    Particle{Start: cp.Vector{X: 5, Y: 5}, Displacement: cp.Vector{Y: -500}, Travel: 3 * time.Second},
			want: cp.Vector{X: 5, Y: 5},
		},
		{
			name: "midway",
			p:    Particle{Displacement: cp.Vector{X: 10, Y: -500}, Travel: 2 * time.Second, Elapsed: time.Second},
			want: cp.Vector{X: 5, Y: -250},
		},
		{
			name: "lingering",
			p:    Particle{Displacement: cp.Vector{Y: -500}, Travel: time.Second, Linger: time.Second, Elapsed: 1500 * time.Millisecond},
			want: cp.Vector{Y: -500},
		},
		{
			name:    "done",
			p:       Particle{Displacement: cp.Vector{Y: -300}, Travel: time.Second, Elapsed: time.Second},
			want:    cp.Vector{Y: -300},
			wantEnd: true,
		},
		{
			name:    "zero travel",
			p:       Particle{Start: cp.Vector{X: 1}, Displacement: cp.Vector{X: 2}},
			want:    cp.Vector{X: 3},
			wantEnd: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.p.Position())
			require.Equal(t, c.wantEnd, c.p.Done())
		})
	}
}

func TestSpawnerStartStop(t *testing.T) {
	rain := &Spawner{Mode: SpawnerModeRain, Interval: time.Second}
	require.True(t, rain.Start())
	require.False(t, rain.Start())
	require.True(t, rain.Running())
	require.Equal(t, time.Second, rain.Timer.Duration())
	require.False(t, rain.TakeOneShot())
	require.True(t, rain.Stop())
	require.False(t, rain.Stop())
	require.False(t, rain.Running())

	fall := &Spawner{Mode: SpawnerModeFall}
	require.True(t, fall.Start())
	require.True(t, fall.TakeOneShot())
	require.False(t, fall.TakeOneShot())
	require.False(t, fall.Running())

	// A stopped fall spawner can be armed again.
	require.True(t, fall.Start())
	require.True(t, fall.Stop())
	require.False(t, fall.TakeOneShot())
}
