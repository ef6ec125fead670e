package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// FillSpec describes a generated solid image, used when no image file is
// given.
type FillSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  string `yaml:"color"`
}

type SpriteComponentSpec struct {
	Image              string    `yaml:"image"`
	Fill               *FillSpec `yaml:"fill"`
	Width              float64   `yaml:"width"`
	Height             float64   `yaml:"height"`
	OriginX            float64   `yaml:"origin_x"`
	OriginY            float64   `yaml:"origin_y"`
	CenterOriginIfZero bool      `yaml:"center_origin_if_zero"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationClipComponentSpec struct {
	Atlas        string  `yaml:"atlas"`
	TimePerFrame float64 `yaml:"time_per_frame"`
	Loop         bool    `yaml:"loop"`
	Restore      bool    `yaml:"restore"`
}

type AnimationComponentSpec struct {
	Clips   map[string]AnimationClipComponentSpec `yaml:"clips"`
	Current string                                `yaml:"current"`
	Playing bool                                  `yaml:"playing"`
}

type ActorComponentSpec struct {
	StepSpeed          float64 `yaml:"step_speed"`
	ActivationDistance float64 `yaml:"activation_distance"`
	DeadZone           float64 `yaml:"dead_zone"`
	WalkClip           string  `yaml:"walk_clip"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
	Fade    bool    `yaml:"fade"`
}

type OffsetRangeSpec struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Band float64 `yaml:"band"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TravelSpec struct {
	DX          float64 `yaml:"dx"`
	DY          float64 `yaml:"dy"`
	Duration    float64 `yaml:"duration"`
	DurationMin float64 `yaml:"duration_min"`
	DurationMax float64 `yaml:"duration_max"`
	Linger      float64 `yaml:"linger"`
}

type SpawnerComponentSpec struct {
	Key             string          `yaml:"key"`
	Mode            string          `yaml:"mode"`
	Interval        float64         `yaml:"interval"`
	OffsetX         OffsetRangeSpec `yaml:"offset_x"`
	OffsetY         OffsetRangeSpec `yaml:"offset_y"`
	Origin          PointSpec       `yaml:"origin"`
	Travel          TravelSpec      `yaml:"travel"`
	Particle        string          `yaml:"particle"`
	PlacementScript string          `yaml:"placement_script"`
}
