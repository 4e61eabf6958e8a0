package system

import (
	"math"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/scripting"
)

// waypointReach is how close a patrolling enemy must get to a waypoint
// before moving on to the next.
const waypointReach = 0.5

// EnemyAISystem drives the idle/patrol/chase/attack state machine. Targets
// are held as weak refs and dropped once the player is gone or dead.
type EnemyAISystem struct {
	damage DamageModel
	bus    *event.Bus
}

func NewEnemyAISystem(damage DamageModel, bus *event.Bus) *EnemyAISystem {
	if damage == nil {
		damage = flatDamage{}
	}
	return &EnemyAISystem{damage: damage, bus: bus}
}

func (s *EnemyAISystem) Name() string           { return NameEnemyAI }
func (s *EnemyAISystem) Dependencies() []string { return []string{NameMovement} }

func (s *EnemyAISystem) Update(w *ecs.World, _, elapsed float64) {
	ecs.Each3(w, component.EnemyKey, component.TransformKey, component.PhysicsKey,
		func(e *ecs.Entity, en *component.Enemy, t *component.Transform, ph *component.Physics) {
			if en.State == component.EnemyDead || en.Health <= 0 {
				ph.Velocity.X, ph.Velocity.Z = 0, 0
				return
			}

			target, player := s.acquire(w, en, t)
			if target == nil {
				s.wander(en, t, ph)
				return
			}

			tt, _ := component.TransformKey.Get(target)
			dist := t.Position.Flat().DistanceTo(tt.Position.Flat())
			toward := tt.Position.Sub(t.Position).Flat().Normalize()
			face(t, toward)

			if dist <= en.AttackRadius {
				en.State = component.EnemyAttack
				ph.Velocity.X, ph.Velocity.Z = 0, 0
				if elapsed-en.LastAttack >= en.AttackCooldown {
					s.strike(e, en, target, player, dist)
					en.LastAttack = elapsed
				}
				return
			}

			en.State = component.EnemyChase
			v := toward.Scale(en.Speed)
			ph.Velocity.X, ph.Velocity.Z = v.X, v.Z
		})
}

// acquire resolves the current target or picks up a live player inside the
// detection radius. A target that leaves the radius is dropped.
func (s *EnemyAISystem) acquire(w *ecs.World, en *component.Enemy, t *component.Transform) (*ecs.Entity, *component.Player) {
	var target *ecs.Entity
	if en.Target.IsSet() {
		if e, ok := en.Target.Resolve(w); ok {
			target = e
		}
	} else if e, _, ok := ecs.First(w, component.PlayerKey); ok {
		target = e
	}
	if target == nil {
		en.Target = ecs.Ref{}
		return nil, nil
	}

	p, okP := component.PlayerKey.Get(target)
	tt, okT := component.TransformKey.Get(target)
	if !okP || !okT || p.Dead || t.Position.Flat().DistanceTo(tt.Position.Flat()) > en.DetectionRadius {
		en.Target = ecs.Ref{}
		return nil, nil
	}
	en.Target = ecs.RefTo(target.ID())
	return target, p
}

func (s *EnemyAISystem) wander(en *component.Enemy, t *component.Transform, ph *component.Physics) {
	if len(en.Waypoints) == 0 {
		en.State = component.EnemyIdle
		ph.Velocity.X, ph.Velocity.Z = 0, 0
		return
	}

	en.State = component.EnemyPatrol
	if en.Waypoint >= len(en.Waypoints) {
		en.Waypoint = 0
	}
	goal := en.Waypoints[en.Waypoint].Flat()
	if t.Position.Flat().DistanceTo(goal) <= waypointReach {
		en.Waypoint = (en.Waypoint + 1) % len(en.Waypoints)
		goal = en.Waypoints[en.Waypoint].Flat()
	}
	toward := goal.Sub(t.Position.Flat()).Normalize()
	face(t, toward)
	v := toward.Scale(en.Speed)
	ph.Velocity.X, ph.Velocity.Z = v.X, v.Z
}

func (s *EnemyAISystem) strike(e *ecs.Entity, en *component.Enemy, target *ecs.Entity, p *component.Player, dist float64) {
	amount := s.damage.CalcDamage(scripting.DamageContext{
		Base:       en.Damage,
		Kind:       "melee",
		Distance:   dist,
		TargetKind: "player",
		TargetHP:   p.Health,
	})
	if amount <= 0 {
		return
	}
	p.Health = max(p.Health-amount, 0)
	p.LastHitBy = e.ID()
	event.Emit(s.bus, event.Damaged{Target: target.ID(), Source: e.ID(), Amount: amount, Player: true})
}

// face turns t so that component.Forward of its yaw points along dir.
func face(t *component.Transform, dir component.Vec3) {
	if dir.X == 0 && dir.Z == 0 {
		return
	}
	t.Rotation.Y = math.Atan2(-dir.X, -dir.Z)
}
