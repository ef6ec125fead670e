package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/saltyslugs/saltyslugs/assets"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/saltyslugs/saltyslugs/prefabs"
	"golang.org/x/image/colornames"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"slug_tag":         addSlugTag,
	"salt_tag":         addSaltTag,
	"camera_tag":       addCameraTag,
	"touch_marker_tag": addTouchMarkerTag,
	"transform":        addTransform,
	"animation":        addAnimation,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"actor":            addActor,
	"camera":           addCamera,
	"ttl":              addTTL,
	"spawner":          addSpawner,
}

// Sprites read the first animation frame, so animation builds before sprite.
var componentBuildOrder = []string{
	"slug_tag",
	"salt_tag",
	"camera_tag",
	"touch_marker_tag",
	"transform",
	"animation",
	"sprite",
	"render_layer",
	"actor",
	"camera",
	"ttl",
	"spawner",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	unknown := make([]string, 0, len(remaining))
	for name := range remaining {
		unknown = append(unknown, name)
	}
	sort.Strings(unknown)
	if len(unknown) > 0 {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addSlugTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SlugTagComponent.Kind(), &component.SlugTag{})
}

func addSaltTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SaltTagComponent.Kind(), &component.SaltTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addTouchMarkerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TouchMarkerTagComponent.Kind(), &component.TouchMarkerTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	switch {
	case spec.Image != "":
		img, err := assets.LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	case spec.Fill != nil:
		img, err := fillImage(spec.Fill)
		if err != nil {
			return err
		}
		sprite.Image = img
	default:
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			sprite.Image = anim.Image()
		}
	}

	sprite.Width = spec.Width
	sprite.Height = spec.Height
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		b := sprite.Image.Bounds()
		sprite.OriginX = float64(b.Dx()) / 2
		sprite.OriginY = float64(b.Dy()) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func fillImage(spec *prefabs.FillSpec) (*ebiten.Image, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("fill size must be positive, got %dx%d", spec.Width, spec.Height)
	}
	var c color.Color = colornames.White
	if spec.Color != "" {
		parsed, err := prefabs.ParseColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("fill color: %w", err)
		}
		c = parsed
	}
	img := ebiten.NewImage(spec.Width, spec.Height)
	img.Fill(c)
	return img, nil
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	clips := make(map[string]component.AnimationClip, len(spec.Clips))
	for name, clip := range spec.Clips {
		frames, err := assets.LoadAtlas(clip.Atlas)
		if err != nil {
			return fmt.Errorf("load animation %q: %w", name, err)
		}
		clips[name] = component.AnimationClip{
			Name:         name,
			Frames:       frames,
			TimePerFrame: prefabs.Seconds(clip.TimePerFrame),
			Loop:         clip.Loop,
			Restore:      clip.Restore,
		}
	}

	anim := &component.Animation{Clips: clips, Current: spec.Current}
	if spec.Playing {
		anim.Start(spec.Current)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

type actorSpec = prefabs.ActorComponentSpec

func addActor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	return ecs.Add(w, e, component.ActorComponent.Kind(), ActorFromSpec(spec))
}

// ActorFromSpec fills unset tuning with the stock slug values.
func ActorFromSpec(spec prefabs.ActorComponentSpec) *component.Actor {
	actor := component.NewActor()
	if spec.StepSpeed > 0 {
		actor.StepSpeed = spec.StepSpeed
	}
	if spec.ActivationDistance > 0 {
		actor.ActivationDistance = spec.ActivationDistance
	}
	if spec.DeadZone > 0 {
		actor.DeadZone = spec.DeadZone
	}
	if spec.WalkClip != "" {
		actor.WalkClip = spec.WalkClip
	}
	return actor
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       zoom,
	})
}

type ttlSpec = prefabs.TTLComponentSpec

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	d := prefabs.Seconds(spec.Seconds)
	if d <= 0 {
		return fmt.Errorf("ttl must be positive, got %v", spec.Seconds)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: d, Total: d, Fade: spec.Fade})
}

type spawnerSpec = prefabs.SpawnerComponentSpec

func addSpawner(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spawnerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawner spec: %w", err)
	}
	sp, err := SpawnerFromSpec(spec)
	if err != nil {
		return err
	}
	if sp.Key == "" && ctx != nil {
		sp.Key = ctx.PrefabPath
	}
	return ecs.Add(w, e, component.SpawnerComponent.Kind(), sp)
}
