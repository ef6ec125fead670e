package system

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/saltyslugs/saltyslugs/ecs/component"
	"github.com/stretchr/testify/require"
)

func walkAnimation(frames int) *component.Animation {
	return &component.Animation{
		Clips: map[string]component.AnimationClip{
			component.DefaultWalkClip: {
				Name:         component.DefaultWalkClip,
				Frames:       make([]*ebiten.Image, frames),
				TimePerFrame: 150 * time.Millisecond,
				Loop:         true,
				Restore:      true,
			},
		},
		Current: component.DefaultWalkClip,
	}
}

func TestAnimationStartIsIdempotent(t *testing.T) {
	anim := walkAnimation(4)

	require.True(t, anim.Start("walk"))
	require.Equal(t, component.AnimationStarting, anim.Phase)
	require.False(t, anim.Start("walk"), "second start while starting")

	Advance(anim, 16*time.Millisecond)
	require.Equal(t, component.AnimationPlaying, anim.Phase)
	require.Equal(t, 0, anim.Frame)

	Advance(anim, 300*time.Millisecond)
	require.Equal(t, 2, anim.Frame)

	require.False(t, anim.Start("walk"), "start while playing")
	require.Equal(t, 2, anim.Frame, "frame index is never reset by a repeated start")
}

func TestAnimationLoopsAndRestores(t *testing.T) {
	anim := walkAnimation(4)
	anim.Start("walk")
	Advance(anim, 0)

	Advance(anim, 5*150*time.Millisecond)
	require.Equal(t, 1, anim.Frame)

	require.True(t, anim.Stop())
	require.Equal(t, component.AnimationStopped, anim.Phase)
	require.Equal(t, 0, anim.Frame, "restore shows the rest frame")
	require.False(t, anim.Stop(), "stopping a stopped clip")

	Advance(anim, time.Second)
	require.Equal(t, 0, anim.Frame)
}

func TestAnimationNonLoopingStops(t *testing.T) {
	anim := walkAnimation(3)
	clip := anim.Clips["walk"]
	clip.Loop = false
	clip.Restore = false
	anim.Clips["walk"] = clip

	anim.Start("walk")
	Advance(anim, 0)
	Advance(anim, time.Second)
	require.Equal(t, component.AnimationStopped, anim.Phase)
	require.Equal(t, 2, anim.Frame)
}

func TestAnimationStartUnknownClip(t *testing.T) {
	anim := walkAnimation(2)
	require.False(t, anim.Start("run"))
	require.Equal(t, component.AnimationStopped, anim.Phase)
}
