package system

import (
	"fmt"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/saltyslugs/saltyslugs/prefabs"
)

// Placement scripts define `place(engine)` returning [x, y], an offset from
// the actor.
const placementDispatchScript = `
__offset := place(__engine)
`

type placementScript struct {
	path     string
	compiled *tengo.Compiled
}

func loadPlacementScript(path string) (*placementScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	script := tengo.NewScript(append(src, []byte(placementDispatchScript)...))
	if err := script.Add("__engine", map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &placementScript{path: path, compiled: compiled}, nil
}

func (p *placementScript) place(engine *tengo.ImmutableMap) (cp.Vector, error) {
	if err := p.compiled.Set("__engine", engine); err != nil {
		return cp.Vector{}, err
	}
	if err := p.compiled.Run(); err != nil {
		return cp.Vector{}, fmt.Errorf("run %s: %w", p.path, err)
	}

	out := p.compiled.Get("__offset").Array()
	if len(out) != 2 {
		return cp.Vector{}, fmt.Errorf("%s: place must return [x, y], got %d values", p.path, len(out))
	}
	x, okX := asFloat(out[0])
	y, okY := asFloat(out[1])
	if !okX || !okY {
		return cp.Vector{}, fmt.Errorf("%s: place returned non-numeric offset %v", p.path, out)
	}
	return cp.Vector{X: x, Y: y}, nil
}

func placementEngine(rng *rand.Rand, sp *component.Spawner, anchor cp.Vector) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"band_x": &tengo.Float{Value: sp.OffsetX.Band},
		"band_y": &tengo.Float{Value: sp.OffsetY.Band},
	}

	values["random"] = &tengo.UserFunction{Name: "random", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		lo, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "min", Expected: "float", Found: args[0].TypeName()}
		}
		hi, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "max", Expected: "float", Found: args[1].TypeName()}
		}
		return &tengo.Float{Value: randomIn(rng, lo, hi)}, nil
	}}

	values["exclude"] = &tengo.UserFunction{Name: "exclude", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "value", Expected: "float", Found: args[0].TypeName()}
		}
		band, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "band", Expected: "float", Found: args[1].TypeName()}
		}
		return &tengo.Float{Value: ExcludeOffset(v, band)}, nil
	}}

	values["actor_position"] = &tengo.UserFunction{Name: "actor_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: anchor.X}, &tengo.Float{Value: anchor.Y}}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
