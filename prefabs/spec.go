package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec configures the whole scene; see scene.yaml.
type SceneSpec struct {
	Name        string     `yaml:"name"`
	Background  *YAMLColor `yaml:"background"`
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Slug        string     `yaml:"slug"`
	Camera      string     `yaml:"camera"`
	Spawner     string     `yaml:"spawner"`
	TouchMarker string     `yaml:"touch_marker"`
}

func LoadSceneSpec(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Slug == "" {
		return nil, fmt.Errorf("prefabs: %s: slug prefab is required", name)
	}
	return &spec, nil
}

// Seconds converts a YAML float number of seconds.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor reads #RRGGBB or #RRGGBBAA.
func ParseColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var out color.NRGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.NRGBA{}, err
	}
	if out.G, err = parse(2); err != nil {
		return color.NRGBA{}, err
	}
	if out.B, err = parse(4); err != nil {
		return color.NRGBA{}, err
	}
	out.A = 255
	if len(s) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.NRGBA{}, err
		}
	}
	return out, nil
}
