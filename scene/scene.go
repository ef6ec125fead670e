package scene

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/assets"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/saltyslugs/saltyslugs/ecs/entity"
	"github.com/saltyslugs/saltyslugs/ecs/system"
	"github.com/saltyslugs/saltyslugs/prefabs"
	"golang.org/x/image/colornames"
)

const (
	DefaultSceneFile   = "scene.yaml"
	DefaultCameraFile  = "camera.yaml"
	defaultSceneWidth  = 750
	defaultSceneHeight = 1334
)

// Config selects the prefabs a Scene is built from.
type Config struct {
	// SceneFile defaults to scene.yaml.
	SceneFile string
	// Spawner overrides the spawner prefab named in the scene file. A bare
	// mode ("rain", "fall") maps to salt_<mode>.yaml.
	Spawner string
	// Camera adds a following camera even when the scene file has none.
	Camera bool
	Rand   *rand.Rand
	Logger *slog.Logger
}

// SpawnerPrefab resolves a spawner mode or prefab name to a prefab file.
func SpawnerPrefab(v string) string {
	switch component.SpawnerMode(v) {
	case component.SpawnerModeRain, component.SpawnerModeFall:
		return fmt.Sprintf("salt_%s.yaml", v)
	}
	return v
}

// Scene is the single slug scene: one actor following the pointer while a
// spawner drops salt around it.
type Scene struct {
	cfg    Config
	spec   *prefabs.SceneSpec
	logger *slog.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	spawners  *system.SpawnerSystem
	render    *system.RenderSystem

	slug          ecs.Entity
	spawner       ecs.Entity
	spawnerPrefab string
	background    color.Color
	spawned       int
	active        bool
}

func New(cfg Config) *Scene {
	if cfg.SceneFile == "" {
		cfg.SceneFile = DefaultSceneFile
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scene{
		cfg:        cfg,
		logger:     logger.With("scene", cfg.SceneFile),
		render:     system.NewRenderSystem(),
		background: colornames.White,
	}
	s.spawners = system.NewSpawnerSystem(cfg.Rand, entity.NewSalt)
	s.scheduler = ecs.NewScheduler(
		s.spawners,
		system.NewParticleSystem(),
		system.NewMovementSystem(),
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
		system.NewTTLSystem(),
	)
	return s
}

// OnActivate builds the world. A missing walk atlas surfaces as
// *assets.MissingAssetError.
func (s *Scene) OnActivate() error {
	spec, err := prefabs.LoadSceneSpec(s.cfg.SceneFile)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.spec = spec
	if spec.Background != nil && spec.Background.Color != nil {
		s.background = spec.Background.Color
	}

	s.world = ecs.NewWorld()
	s.spawned = 0

	if s.slug, err = entity.NewSlug(s.world, spec.Slug); err != nil {
		return fmt.Errorf("scene: build slug: %w", err)
	}

	cameraPrefab := spec.Camera
	if cameraPrefab == "" && s.cfg.Camera {
		cameraPrefab = DefaultCameraFile
	}
	if cameraPrefab != "" {
		if _, err := entity.NewCamera(s.world, cameraPrefab); err != nil {
			return fmt.Errorf("scene: build camera: %w", err)
		}
	}

	s.spawnerPrefab = spec.Spawner
	if s.cfg.Spawner != "" {
		s.spawnerPrefab = SpawnerPrefab(s.cfg.Spawner)
	}
	if s.spawnerPrefab != "" {
		if err := s.buildSpawner(); err != nil {
			return err
		}
	}

	s.active = true
	s.logger.Info("scene activated",
		"slug", spec.Slug,
		"spawner", s.spawnerPrefab,
		"camera", cameraPrefab != "",
	)
	return nil
}

func (s *Scene) buildSpawner() error {
	e, err := entity.NewSpawner(s.world, s.spawnerPrefab)
	if err != nil {
		return fmt.Errorf("scene: build spawner: %w", err)
	}
	s.spawner = e
	s.StartSpawner()
	return nil
}

// OnTick runs spawner, particles, movement, animation, camera and TTL in
// that order.
func (s *Scene) OnTick(dt time.Duration) {
	if !s.active {
		return
	}
	s.scheduler.Tick(s.world, dt)

	for _, evt := range s.world.Events().Drain() {
		if evt.Type != ecs.EventParticleSpawned {
			continue
		}
		s.spawned++
		if spawn, ok := evt.Data.(ecs.SpawnEvent); ok {
			s.logger.Debug("particle spawned", "entity", spawn.Entity, "at", spawn.At)
		}
	}
}

func (s *Scene) OnInputDown(p cp.Vector) {
	if !s.active {
		return
	}
	system.SetTarget(s.world, p)
	if s.spec.TouchMarker == "" {
		return
	}
	if _, err := entity.NewTouchMarker(s.world, s.spec.TouchMarker, p); err != nil {
		s.logger.Warn("touch marker", "err", err)
	}
}

func (s *Scene) OnInputMoved(p cp.Vector) {
	if !s.active {
		return
	}
	system.SetTarget(s.world, p)
}

// OnInputUp keeps the last target; the slug walks on until it arrives.
func (s *Scene) OnInputUp(cp.Vector) {}

// StartSpawner starts the scene spawner. It reports false when there is no
// spawner or it was already running.
func (s *Scene) StartSpawner() bool {
	sp, ok := s.spawnerComponent()
	if !ok || !sp.Start() {
		return false
	}
	s.logger.Info("spawner started", "key", sp.Key, "mode", sp.Mode)
	return true
}

// StopSpawner cancels the spawner schedule. Particles already in flight
// finish their motion.
func (s *Scene) StopSpawner() bool {
	sp, ok := s.spawnerComponent()
	if !ok || !sp.Stop() {
		return false
	}
	s.logger.Info("spawner stopped", "key", sp.Key)
	return true
}

func (s *Scene) spawnerComponent() (*component.Spawner, bool) {
	if s.world == nil || !s.world.IsAlive(s.spawner) {
		return nil, false
	}
	return ecs.Get(s.world, s.spawner, component.SpawnerComponent.Kind())
}

// Reload reacts to an edited prefab or placement script. Editing the active
// spawner prefab rebuilds and restarts the spawner; other prefabs are read
// again on next use.
func (s *Scene) Reload(name string) error {
	if !s.active {
		return nil
	}
	if filepath.Ext(name) == ".tengo" {
		s.spawners.ForgetScript(name)
		s.logger.Info("placement script reloaded", "script", name)
		return nil
	}
	if filepath.Base(name) != filepath.Base(s.spawnerPrefab) {
		return nil
	}

	// Validate before dropping the running spawner so a bad edit keeps the
	// old one alive.
	spec, err := prefabs.LoadEntityBuildSpec(s.spawnerPrefab)
	if err != nil {
		return fmt.Errorf("scene: reload %s: %w", name, err)
	}
	raw, ok := spec.Components["spawner"]
	if !ok {
		return fmt.Errorf("scene: reload %s: no spawner component", name)
	}
	spawnerSpec, err := prefabs.DecodeComponentSpec[prefabs.SpawnerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("scene: reload %s: %w", name, err)
	}
	if _, err := entity.SpawnerFromSpec(spawnerSpec); err != nil {
		return fmt.Errorf("scene: reload %s: %w", name, err)
	}

	s.StopSpawner()
	ecs.DestroyEntity(s.world, s.spawner)
	s.spawner = 0
	if err := s.buildSpawner(); err != nil {
		return err
	}
	s.logger.Info("spawner reloaded", "prefab", s.spawnerPrefab)
	return nil
}

// Draw renders the world; the caller fills the background.
func (s *Scene) Draw(screen *ebiten.Image) {
	if !s.active {
		return
	}
	s.render.Draw(s.world, screen)
}

func (s *Scene) Background() color.Color {
	return s.background
}

func (s *Scene) World() *ecs.World {
	return s.world
}

// Size is the logical screen size from the scene file.
func (s *Scene) Size() (int, int) {
	w, h := defaultSceneWidth, defaultSceneHeight
	if s.spec != nil && s.spec.Width > 0 && s.spec.Height > 0 {
		w, h = s.spec.Width, s.spec.Height
	}
	return w, h
}

// Stats is a snapshot for the debug overlay.
type Stats struct {
	Particles int
	Spawned   int
	Position  cp.Vector
	State     component.MoveState
	Facing    component.Facing
}

func (s *Scene) Stats() Stats {
	if !s.active {
		return Stats{}
	}
	st := Stats{
		Particles: s.world.Count(component.ParticleComponent.Kind()),
		Spawned:   s.spawned,
	}
	if t, ok := ecs.Get(s.world, s.slug, component.TransformComponent.Kind()); ok {
		st.Position = t.Position()
	}
	if a, ok := ecs.Get(s.world, s.slug, component.ActorComponent.Kind()); ok {
		st.State = a.State
		st.Facing = a.Facing
	}
	return st
}

// IsMissingAsset reports whether err is caused by a missing asset.
func IsMissingAsset(err error) bool {
	var missing *assets.MissingAssetError
	return errors.As(err, &missing)
}
