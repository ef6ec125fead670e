package system

import (
	"time"

	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		Advance(anim, dt)

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			if img := anim.Image(); img != nil {
				sprite.Image = img
			}
		}
	})
}

// Advance moves a playing clip forward by dt. A starting clip shows frame 0
// for this tick and becomes playing.
func Advance(anim *component.Animation, dt time.Duration) {
	switch anim.Phase {
	case component.AnimationStopped:
		return
	case component.AnimationStarting:
		anim.Phase = component.AnimationPlaying
		return
	}

	clip, ok := anim.Clips[anim.Current]
	if !ok || len(clip.Frames) == 0 || clip.TimePerFrame <= 0 {
		return
	}

	anim.Elapsed += dt
	for anim.Elapsed >= clip.TimePerFrame {
		anim.Elapsed -= clip.TimePerFrame
		anim.Frame++
		if anim.Frame < len(clip.Frames) {
			continue
		}
		if clip.Loop {
			anim.Frame = 0
			continue
		}
		anim.Frame = len(clip.Frames) - 1
		anim.Stop()
		return
	}
}
