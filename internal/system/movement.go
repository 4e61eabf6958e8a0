package system

import (
	"math"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
)

const maxPitch = math.Pi/2 - 0.01

// MovementSystem turns input into player look direction and velocity. Only
// the horizontal velocity is set here; vertical motion belongs to physics
// except for the jump impulse.
type MovementSystem struct {
	sensitivity float64
}

func NewMovementSystem(sensitivity float64) *MovementSystem {
	return &MovementSystem{sensitivity: sensitivity}
}

func (s *MovementSystem) Name() string           { return NameMovement }
func (s *MovementSystem) Dependencies() []string { return []string{NameInput} }

func (s *MovementSystem) Update(w *ecs.World, _, _ float64) {
	_, in, ok := ecs.First(w, component.InputKey)
	if !ok {
		return
	}

	ecs.Each3(w, component.PlayerKey, component.TransformKey, component.PhysicsKey,
		func(_ *ecs.Entity, p *component.Player, t *component.Transform, ph *component.Physics) {
			if p.Dead {
				ph.Velocity.X, ph.Velocity.Z = 0, 0
				return
			}

			t.Rotation.Y -= in.MouseDX * s.sensitivity
			t.Rotation.X -= in.MouseDY * s.sensitivity
			t.Rotation.X = math.Max(-maxPitch, math.Min(maxPitch, t.Rotation.X))

			var dir component.Vec3
			if in.Pressed(component.KeyForward) {
				dir = dir.Add(component.Forward(t.Rotation.Y))
			}
			if in.Pressed(component.KeyBack) {
				dir = dir.Sub(component.Forward(t.Rotation.Y))
			}
			if in.Pressed(component.KeyRight) {
				dir = dir.Add(component.Right(t.Rotation.Y))
			}
			if in.Pressed(component.KeyLeft) {
				dir = dir.Sub(component.Right(t.Rotation.Y))
			}
			move := dir.Normalize().Scale(p.Speed)
			ph.Velocity.X, ph.Velocity.Z = move.X, move.Z

			if in.Pressed(component.KeyJump) && ph.Grounded && !p.Jumping {
				ph.Velocity.Y = p.JumpForce
				ph.Grounded = false
				p.Jumping = true
			}
		})
}
