package system

import (
	"github.com/jakecoffman/cp"
	"github.com/saltyslugs/saltyslugs/ecs"
	"github.com/saltyslugs/saltyslugs/ecs/component"
)

// Command is the animation side effect of one movement step.
type Command uint8

const (
	CommandNone Command = iota
	CommandStartWalking
	CommandStopWalking
)

// Step advances an actor one tick toward its target and returns the new
// position. Each axis moves only when its delta is outside the dead-zone,
// which keeps the actor from jittering once it is aligned on one axis.
func Step(a *component.Actor, pos cp.Vector) (cp.Vector, Command) {
	if a == nil || a.Target == nil {
		return pos, CommandNone
	}

	delta := a.Target.Sub(pos)
	dist := delta.Length()

	if dist <= a.ActivationDistance {
		if a.State == component.MoveWalking {
			a.State = component.MoveIdle
			return pos, CommandStopWalking
		}
		return pos, CommandNone
	}

	cmd := CommandNone
	if a.State != component.MoveWalking {
		a.State = component.MoveWalking
		cmd = CommandStartWalking
	}

	step := a.StepSpeed / dist
	switch {
	case delta.X < -a.DeadZone:
		pos.X += delta.X * step
		a.Facing = component.FacingNormal
	case delta.X > a.DeadZone:
		pos.X += delta.X * step
		// Sprite art faces left, so walking right mirrors it.
		a.Facing = component.FacingMirrored
	}
	if delta.Y < -a.DeadZone || delta.Y > a.DeadZone {
		pos.Y += delta.Y * step
	}
	return pos, cmd
}

// SetTarget points every actor at p.
func SetTarget(w *ecs.World, p cp.Vector) {
	ecs.ForEach(w, component.ActorComponent.Kind(), func(_ ecs.Entity, a *component.Actor) {
		a.SetTarget(p)
	})
}

type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, actor *component.Actor, t *component.Transform) {
		pos, cmd := Step(actor, t.Position())
		t.SetPosition(pos)

		scale := t.ScaleX
		if scale < 0 {
			scale = -scale
		}
		if scale == 0 {
			scale = 1
		}
		t.ScaleX = scale * actor.Facing.Sign()

		if cmd == CommandNone {
			return
		}
		anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
		if !ok {
			return
		}
		switch cmd {
		case CommandStartWalking:
			anim.Start(actor.WalkClip)
		case CommandStopWalking:
			anim.Stop()
		}
	})
}
