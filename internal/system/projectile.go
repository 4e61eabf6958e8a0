package system

import (
	"math"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/physics"
	"github.com/strikezone/server/internal/scripting"
)

// ProjectileSystem expires projectiles and resolves their hits along the path
// travelled this tick. A projectile never hits the entity that fired it and
// is destroyed by the first thing on its path.
// Destruction is deferred to the cleanup system.
type ProjectileSystem struct {
	damage      DamageModel
	groundLevel float64
	bus         *event.Bus

	geometryGrid *physics.Grid
	enemyGrid    *physics.Grid
}

func NewProjectileSystem(damage DamageModel, groundLevel float64, bus *event.Bus) *ProjectileSystem {
	if damage == nil {
		damage = flatDamage{}
	}
	return &ProjectileSystem{
		damage:       damage,
		groundLevel:  groundLevel,
		bus:          bus,
		geometryGrid: physics.NewGrid(physics.DefaultCellSize),
		enemyGrid:    physics.NewGrid(physics.DefaultCellSize),
	}
}

func (s *ProjectileSystem) Name() string           { return NameProjectile }
func (s *ProjectileSystem) Dependencies() []string { return []string{NamePhysics, NameWeapon} }

func (s *ProjectileSystem) Update(w *ecs.World, delta, elapsed float64) {
	geometry := w.Query(ecs.With(component.GeometryKey.Name(), component.TransformKey.Name()))
	enemies := w.Query(ecs.With(component.EnemyKey.Name(), component.TransformKey.Name()))
	players := w.Query(ecs.With(component.PlayerKey.Name(), component.TransformKey.Name()))
	index(s.geometryGrid, geometry)
	index(s.enemyGrid, enemies)

	ecs.Each2(w, component.ProjectileKey, component.TransformKey,
		func(e *ecs.Entity, pr *component.Projectile, t *component.Transform) {
			if w.PendingDestruction(e.ID()) {
				return
			}
			if elapsed-pr.CreatedAt >= pr.Lifetime {
				w.MarkForDestruction(e.ID())
				return
			}

			// Test the whole path covered this tick, not just the end point.
			box := physics.FromTransform(t)
			var travel component.Vec3
			if ph, ok := component.PhysicsKey.Get(e); ok {
				travel = ph.Velocity.Scale(delta)
			}
			from := box.Translate(travel.Scale(-1))
			swept := physics.Union(from, box)

			var target *ecs.Entity
			first := math.Inf(1)
			consider := func(candidate *ecs.Entity, tt *component.Transform) {
				if at, ok := physics.Sweep(from, travel, physics.FromTransform(tt)); ok && at < first {
					first, target = at, candidate
				}
			}

			for _, i := range s.geometryGrid.Query(swept) {
				gt, _ := component.TransformKey.Get(geometry[i])
				consider(geometry[i], gt)
			}
			for _, i := range s.enemyGrid.Query(swept) {
				cand := enemies[i]
				if cand.ID() == pr.Source.ID() || w.PendingDestruction(cand.ID()) {
					continue
				}
				en, _ := component.EnemyKey.Get(cand)
				if en.State == component.EnemyDead || en.Health <= 0 {
					continue
				}
				tt, _ := component.TransformKey.Get(cand)
				consider(cand, tt)
			}
			for _, cand := range players {
				if cand.ID() == pr.Source.ID() {
					continue
				}
				if p, _ := component.PlayerKey.Get(cand); p.Dead {
					continue
				}
				tt, _ := component.TransformKey.Get(cand)
				consider(cand, tt)
			}

			if target == nil {
				if t.Position.Y <= s.groundLevel {
					w.MarkForDestruction(e.ID())
				}
				return
			}
			w.MarkForDestruction(e.ID())
			impact := from.Center().Add(travel.Scale(first))

			if en, ok := component.EnemyKey.Get(target); ok {
				amount := s.damage.CalcDamage(s.context(w, pr, impact, en.Type, en.Health))
				en.Health = max(en.Health-amount, 0)
				en.LastHitBy = pr.Source.ID()
				event.Emit(s.bus, event.Damaged{Target: target.ID(), Source: pr.Source.ID(), Amount: amount})
				return
			}
			if p, ok := component.PlayerKey.Get(target); ok {
				amount := s.damage.CalcDamage(s.context(w, pr, impact, "player", p.Health))
				p.Health = max(p.Health-amount, 0)
				p.LastHitBy = pr.Source.ID()
				event.Emit(s.bus, event.Damaged{Target: target.ID(), Source: pr.Source.ID(), Amount: amount, Player: true})
			}
		})
}

// index rebuilds grid from the transforms of es; handles are indices into es.
func index(grid *physics.Grid, es []*ecs.Entity) {
	grid.Reset()
	for i, e := range es {
		if t, ok := component.TransformKey.Get(e); ok {
			grid.Insert(i, physics.FromTransform(t))
		}
	}
}

// context packs a hit for the damage model. Distance runs from the shooter's
// current position to the impact point, or is -1 once the shooter is gone.
func (s *ProjectileSystem) context(w *ecs.World, pr *component.Projectile, impact component.Vec3, kind string, hp int) scripting.DamageContext {
	dist := -1.0
	if src, ok := pr.Source.Resolve(w); ok {
		if st, ok := component.TransformKey.Get(src); ok {
			dist = st.Position.DistanceTo(impact)
		}
	}
	return scripting.DamageContext{
		Base:       pr.Damage,
		Kind:       "projectile",
		Projectile: pr.Kind,
		Distance:   dist,
		TargetKind: kind,
		TargetHP:   hp,
	}
}
