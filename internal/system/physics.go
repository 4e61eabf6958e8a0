package system

import (
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/physics"
)

// PhysicsSystem integrates every non-static body. Solid bodies are resolved
// against static geometry and the ground plane; triggers move freely.
type PhysicsSystem struct {
	gravity     float64
	groundLevel float64
	bus         *event.Bus

	grid   *physics.Grid
	nearby []physics.Obstacle
}

func NewPhysicsSystem(gravity, groundLevel float64, bus *event.Bus) *PhysicsSystem {
	return &PhysicsSystem{
		gravity:     gravity,
		groundLevel: groundLevel,
		bus:         bus,
		grid:        physics.NewGrid(physics.DefaultCellSize),
	}
}

func (s *PhysicsSystem) Name() string           { return NamePhysics }
func (s *PhysicsSystem) Dependencies() []string { return []string{NameMovement, NameEnemyAI} }

func (s *PhysicsSystem) Update(w *ecs.World, delta, _ float64) {
	var obstacles []physics.Obstacle
	s.grid.Reset()
	ecs.Each2(w, component.TransformKey, component.PhysicsKey,
		func(e *ecs.Entity, t *component.Transform, ph *component.Physics) {
			if ph.Static {
				box := physics.FromTransform(t)
				s.grid.Insert(len(obstacles), box)
				obstacles = append(obstacles, physics.Obstacle{ID: e.ID(), Box: box})
			}
		})

	ecs.Each2(w, component.TransformKey, component.PhysicsKey,
		func(e *ecs.Entity, t *component.Transform, ph *component.Physics) {
			if ph.Static {
				return
			}
			if ph.Mass > 0 {
				ph.Velocity.Y -= s.gravity * delta
			}
			step := ph.Velocity.Scale(delta)

			if !ph.Solid() {
				t.Position = t.Position.Add(step)
				return
			}

			ph.Grounded = false
			box := physics.FromTransform(t)
			s.nearby = s.nearby[:0]
			for _, i := range s.grid.Query(physics.Union(box, box.Translate(step))) {
				s.nearby = append(s.nearby, obstacles[i])
			}
			moved, hit := physics.MoveAndSlide(box, step, s.nearby)
			t.Position = t.Position.Add(moved)
			if hit.X {
				ph.Velocity.X = 0
			}
			if hit.Z {
				ph.Velocity.Z = 0
			}
			if hit.Y {
				if ph.Velocity.Y < 0 {
					ph.Grounded = true
				}
				ph.Velocity.Y = 0
			}
			for _, o := range hit.Obstacles {
				event.Emit(s.bus, event.Collision{Body: e.ID(), Obstacle: o})
			}

			half := t.Scale.Y / 2
			if t.Position.Y-half <= s.groundLevel {
				t.Position.Y = s.groundLevel + half
				if ph.Velocity.Y < 0 {
					ph.Velocity.Y = 0
				}
				ph.Grounded = true
			}

			if ph.Grounded {
				if p, ok := component.PlayerKey.Get(e); ok {
					p.Jumping = false
				}
			}
		})
}
