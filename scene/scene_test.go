package scene

import (
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/saltyslugs/saltyslugs/prefabs"
	"github.com/stretchr/testify/require"
)

// Prefabs without images, so the scene runs without a graphics context.
var headlessPrefabs = map[string]string{
	"test_scene.yaml": `
name: test
background: "#102030"
width: 400
height: 600
slug: bare_slug.yaml
spawner: bare_rain.yaml
`,
	"bare_slug.yaml": `
name: bare_slug
components:
  slug_tag: {}
  transform: {scale_x: 1, scale_y: 1}
  actor: {}
`,
	"bare_salt.yaml": `
name: bare_salt
components:
  salt_tag: {}
`,
	"bare_rain.yaml": `
name: bare_rain
components:
  spawner:
    key: bare_rain
    mode: rain
    interval: 1.0
    offset_x: {min: -400, max: 400, band: 100}
    offset_y: {min: -200, max: 400, band: 130}
    travel: {dy: -500, duration: 3.0, linger: 0.5}
    particle: bare_salt.yaml
`,
	"bare_fall.yaml": `
name: bare_fall
components:
  spawner:
    key: bare_fall
    mode: fall
    origin: {x: 0, y: 300}
    travel: {dy: -300, duration_min: 0.7, duration_max: 4.0}
    particle: bare_salt.yaml
`,
	"no_atlas_slug.yaml": `
name: no_atlas_slug
components:
  slug_tag: {}
  transform: {}
  animation:
    clips:
      walk: {atlas: nowhere, time_per_frame: 0.15, loop: true}
    current: walk
  actor: {}
`,
	"no_atlas_scene.yaml": `
name: broken
slug: no_atlas_slug.yaml
`,
}

func usePrefabDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range headlessPrefabs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	old := prefabs.DiskDir
	prefabs.DiskDir = dir
	t.Cleanup(func() { prefabs.DiskDir = old })
	return dir
}

func newTestScene(t *testing.T, cfg Config) *Scene {
	t.Helper()
	if cfg.SceneFile == "" {
		cfg.SceneFile = "test_scene.yaml"
	}
	cfg.Rand = rand.New(rand.NewPCG(21, 22))
	s := New(cfg)
	require.NoError(t, s.OnActivate())
	return s
}

func tickFor(s *Scene, d time.Duration) {
	const dt = 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += dt {
		s.OnTick(dt)
	}
}

func TestActivateBuildsScene(t *testing.T) {
	usePrefabDir(t)
	s := newTestScene(t, Config{})

	require.Equal(t, color.Color(color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}), s.Background())
	w, h := s.Size()
	require.Equal(t, []int{400, 600}, []int{w, h})

	require.Equal(t, 1, s.World().Count(component.ActorComponent.Kind()))
	require.Equal(t, 1, s.World().Count(component.SpawnerComponent.Kind()))
	require.Zero(t, s.World().Count(component.CameraComponent.Kind()))
	require.False(t, s.StartSpawner(), "spawner already running after activation")
}

func TestActivateMissingAtlas(t *testing.T) {
	usePrefabDir(t)
	s := New(Config{SceneFile: "no_atlas_scene.yaml"})
	err := s.OnActivate()
	require.Error(t, err)
	require.True(t, IsMissingAsset(err), "got %v", err)
}

func TestSceneRainsAndWalks(t *testing.T) {
	usePrefabDir(t)
	s := newTestScene(t, Config{})

	s.OnInputDown(cp.Vector{X: 100})
	s.OnTick(100 * time.Millisecond)
	st := s.Stats()
	require.Equal(t, component.MoveWalking, st.State)
	require.Equal(t, component.FacingMirrored, st.Facing)
	require.InDelta(t, 2, st.Position.X, 1e-9)

	s.OnInputUp(cp.Vector{})
	tickFor(s, 3*time.Second)
	st = s.Stats()
	require.Equal(t, 3, st.Spawned)
	require.Equal(t, 3, st.Particles)
	require.Greater(t, st.Position.X, 2.0, "target survives pointer up")
}

func TestSceneStopSpawner(t *testing.T) {
	usePrefabDir(t)
	s := newTestScene(t, Config{})

	require.True(t, s.StopSpawner())
	require.False(t, s.StopSpawner())
	tickFor(s, 5*time.Second)
	require.Zero(t, s.Stats().Spawned)

	require.True(t, s.StartSpawner())
	tickFor(s, time.Second)
	require.Equal(t, 1, s.Stats().Spawned)
}

func TestSceneFallOverride(t *testing.T) {
	usePrefabDir(t)
	s := newTestScene(t, Config{Spawner: "bare_fall.yaml"})

	tickFor(s, 5*time.Second)
	st := s.Stats()
	require.Equal(t, 1, st.Spawned)
	require.Zero(t, st.Particles, "the fall particle is gone after at most 4s")
}

func TestSceneCameraFlag(t *testing.T) {
	usePrefabDir(t)
	s := newTestScene(t, Config{Camera: true})
	require.Equal(t, 1, s.World().Count(component.CameraComponent.Kind()))
}

func TestSceneReloadSpawner(t *testing.T) {
	dir := usePrefabDir(t)
	s := newTestScene(t, Config{})
	before, ok := s.spawnerComponent()
	require.True(t, ok)
	require.Equal(t, time.Second, before.Interval)

	faster := `
name: bare_rain
components:
  spawner:
    key: bare_rain
    mode: rain
    interval: 0.5
    travel: {dy: -500, duration: 3.0}
    particle: bare_salt.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bare_rain.yaml"), []byte(faster), 0o644))
	require.NoError(t, s.Reload("bare_rain.yaml"))

	after, ok := s.spawnerComponent()
	require.True(t, ok)
	require.Equal(t, 500*time.Millisecond, after.Interval)
	require.True(t, after.Running())
	require.Equal(t, 1, s.World().Count(component.SpawnerComponent.Kind()))

	broken := `
name: bare_rain
components:
  spawner:
    mode: rain
    interval: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bare_rain.yaml"), []byte(broken), 0o644))
	require.Error(t, s.Reload("bare_rain.yaml"))
	kept, ok := s.spawnerComponent()
	require.True(t, ok, "a bad edit keeps the running spawner")
	require.Equal(t, 500*time.Millisecond, kept.Interval)

	require.NoError(t, s.Reload("unrelated.yaml"))
	require.NoError(t, s.Reload("scripts/salt_ring.tengo"))
}

func TestSpawnerPrefab(t *testing.T) {
	require.Equal(t, "salt_rain.yaml", SpawnerPrefab("rain"))
	require.Equal(t, "salt_fall.yaml", SpawnerPrefab("fall"))
	require.Equal(t, "custom.yaml", SpawnerPrefab("custom.yaml"))
}

func TestInactiveSceneIgnoresInput(t *testing.T) {
	s := New(Config{})
	require.NotPanics(t, func() {
		s.OnInputDown(cp.Vector{X: 1})
		s.OnInputMoved(cp.Vector{X: 1})
		s.OnTick(time.Second)
	})
	require.Equal(t, Stats{}, s.Stats())
	require.Nil(t, s.World())
}
