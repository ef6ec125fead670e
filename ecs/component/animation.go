package component

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationPhase guards clip restarts: Start only acts on a stopped clip, so
// a clip that is starting or playing keeps its frame index.
type AnimationPhase uint8

const (
	AnimationStopped AnimationPhase = iota
	AnimationStarting
	AnimationPlaying
)

func (p AnimationPhase) String() string {
	switch p {
	case AnimationStarting:
		return "starting"
	case AnimationPlaying:
		return "playing"
	default:
		return "stopped"
	}
}

type AnimationClip struct {
	Name         string
	Frames       []*ebiten.Image
	TimePerFrame time.Duration
	Loop         bool
	// Restore shows frame 0 again once the clip is stopped.
	Restore bool
}

type Animation struct {
	Clips   map[string]AnimationClip
	Current string
	Frame   int
	Elapsed time.Duration
	Phase   AnimationPhase
}

// Start begins the named clip from frame 0 unless it is already starting or
// playing. It reports whether anything changed.
func (a *Animation) Start(name string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Clips[name]; !ok {
		return false
	}
	if a.Phase != AnimationStopped && a.Current == name {
		return false
	}
	a.Current = name
	a.Frame = 0
	a.Elapsed = 0
	a.Phase = AnimationStarting
	return true
}

// Stop halts the current clip. Stopping a stopped clip is a no-op.
func (a *Animation) Stop() bool {
	if a == nil || a.Phase == AnimationStopped {
		return false
	}
	a.Phase = AnimationStopped
	a.Elapsed = 0
	if clip, ok := a.Clips[a.Current]; ok && clip.Restore {
		a.Frame = 0
	}
	return true
}

// Image returns the frame to display, or nil without a current clip.
func (a *Animation) Image() *ebiten.Image {
	if a == nil {
		return nil
	}
	clip, ok := a.Clips[a.Current]
	if !ok || len(clip.Frames) == 0 {
		return nil
	}
	frame := a.Frame
	if frame < 0 || frame >= len(clip.Frames) {
		frame = 0
	}
	return clip.Frames[frame]
}

var AnimationComponent = NewComponent[Animation]()
