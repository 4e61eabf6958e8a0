package system

import (
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"go.uber.org/zap"
)

// HealthSystem applies death transitions once health reaches zero. Dead
// enemies are queued for destruction; a dead player stays in the world.
type HealthSystem struct {
	bus *event.Bus
	log *zap.Logger
}

func NewHealthSystem(bus *event.Bus, log *zap.Logger) *HealthSystem {
	return &HealthSystem{bus: bus, log: log}
}

func (s *HealthSystem) Name() string           { return NameHealth }
func (s *HealthSystem) Dependencies() []string { return []string{NameProjectile, NameEnemyAI} }

func (s *HealthSystem) Update(w *ecs.World, _, _ float64) {
	ecs.Each1(w, component.EnemyKey, func(e *ecs.Entity, en *component.Enemy) {
		if en.Health > 0 || en.State == component.EnemyDead {
			return
		}
		en.Health = 0
		en.State = component.EnemyDead
		en.Target = ecs.Ref{}
		if ph, ok := component.PhysicsKey.Get(e); ok {
			ph.Velocity = component.Vec3{}
		}
		w.MarkForDestruction(e.ID())
		event.Emit(s.bus, event.Killed{Target: e.ID(), Killer: en.LastHitBy, EnemyType: en.Type})
		s.log.Debug("enemy killed", zap.String("type", en.Type), zap.Uint64("entity", uint64(e.ID())))
	})

	ecs.Each1(w, component.PlayerKey, func(e *ecs.Entity, p *component.Player) {
		if p.Health > 0 || p.Dead {
			return
		}
		p.Health = 0
		p.Dead = true
		if ph, ok := component.PhysicsKey.Get(e); ok {
			ph.Velocity.X, ph.Velocity.Z = 0, 0
		}
		event.Emit(s.bus, event.Killed{Target: e.ID(), Killer: p.LastHitBy})
		s.log.Info("player died", zap.Uint64("killer", uint64(p.LastHitBy)))
	})
}
