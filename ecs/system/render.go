package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := CameraView(w)
	bounds := screen.Bounds()
	screenW, screenH := float64(bounds.Dx()), float64(bounds.Dy())

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := renderLayer(w, entities[i]), renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil || s.Fade >= 1 {
			continue
		}

		img := s.Image
		b := img.Bounds()

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		if s.Width > 0 && b.Dx() > 0 {
			sx *= s.Width / float64(b.Dx())
		}
		if s.Height > 0 && b.Dy() > 0 {
			sy *= s.Height / float64(b.Dy())
		}

		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx, sy)
		// Scene rotation is counter-clockwise with Y up.
		op.GeoM.Rotate(-t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(SceneToScreen(t.X, t.Y, screenW, screenH, camX, camY, zoom))
		if s.Fade > 0 {
			op.ColorScale.ScaleAlpha(float32(1 - s.Fade))
		}

		screen.DrawImage(img, op)
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}
