// Package factory assembles gameplay entities from data tables.
package factory

import (
	"fmt"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/engine"
	"github.com/strikezone/server/internal/data"
)

// Projectile box edge lengths by kind.
var projectileSize = map[string]float64{
	"bullet": 0.2,
	"rocket": 0.4,
}

func vec(v data.Vec) component.Vec3 {
	return component.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// SpawnInput creates the entity holding the input singleton.
func SpawnInput(g *engine.Engine) ecs.EntityID {
	e := g.CreateEntity(component.InputKey.Of(&component.Input{Keys: map[string]bool{}}))
	return e.ID()
}

// NewWeapon builds a loaded weapon from its template.
func NewWeapon(t *data.WeaponTemplate) *component.Weapon {
	return &component.Weapon{
		Name:            t.Name,
		Damage:          t.Damage,
		FireRate:        t.FireRate,
		Ammo:            t.MaxAmmo,
		MaxAmmo:         t.MaxAmmo,
		ReloadTime:      t.ReloadTime,
		LastFired:       -1e9,
		Projectile:      t.Projectile,
		ProjectileSpeed: t.ProjectileSpeed,
		ProjectileLife:  t.ProjectileLife,
	}
}

// SpawnPlayer creates the player and one weapon entity per loadout entry.
// The first loadout entry is equipped.
func SpawnPlayer(g *engine.Engine, spawn data.PlayerSpawn, weapons *data.WeaponTable) (ecs.EntityID, error) {
	owned := make([]ecs.EntityID, 0, len(spawn.Loadout))
	for _, name := range spawn.Loadout {
		tmpl := weapons.Get(name)
		if tmpl == nil {
			return ecs.NilEntity, fmt.Errorf("player loadout: unknown weapon %q", name)
		}
		owned = append(owned, g.CreateEntity(component.WeaponKey.Of(NewWeapon(tmpl))).ID())
	}

	p := &component.Player{
		Health:    spawn.Health,
		MaxHealth: spawn.Health,
		Speed:     spawn.Speed,
		JumpForce: spawn.JumpForce,
		Weapons:   owned,
	}
	if len(owned) > 0 {
		p.CurrentWeapon = owned[0]
	}

	e := g.CreateEntity(
		component.TransformKey.Of(&component.Transform{
			Position: vec(spawn.Position),
			Rotation: component.Vec3{Y: spawn.Yaw},
			Scale:    vec(spawn.Size),
		}),
		component.PhysicsKey.Of(&component.Physics{Mass: 1, Collider: component.ColliderCapsule}),
		component.PlayerKey.Of(p),
	)
	return e.ID(), nil
}

// SpawnEnemy creates an enemy from its template. Enemies with waypoints
// start patrolling; others idle.
func SpawnEnemy(g *engine.Engine, spawn data.EnemySpawn, tmpl *data.EnemyTemplate) ecs.EntityID {
	en := &component.Enemy{
		Type:            tmpl.Type,
		Health:          tmpl.Health,
		Damage:          tmpl.Damage,
		Speed:           tmpl.Speed,
		State:           component.EnemyIdle,
		DetectionRadius: tmpl.DetectionRadius,
		AttackRadius:    tmpl.AttackRadius,
		AttackCooldown:  tmpl.AttackCooldown,
		LastAttack:      -1e9,
	}
	for _, wp := range spawn.Waypoints {
		en.Waypoints = append(en.Waypoints, vec(wp))
	}
	if len(en.Waypoints) > 0 {
		en.State = component.EnemyPatrol
	}

	e := g.CreateEntity(
		component.TransformKey.Of(&component.Transform{
			Position: vec(spawn.Position),
			Scale:    component.Vec3{X: tmpl.Size, Y: tmpl.Size, Z: tmpl.Size},
		}),
		component.PhysicsKey.Of(&component.Physics{Mass: 1, Collider: component.ColliderCapsule}),
		component.EnemyKey.Of(en),
	)
	return e.ID()
}

// SpawnGeometry creates one static level brush.
func SpawnGeometry(g *engine.Engine, b data.Brush) ecs.EntityID {
	e := g.CreateEntity(
		component.TransformKey.Of(&component.Transform{
			Position: vec(b.Position),
			Scale:    vec(b.Size),
		}),
		component.PhysicsKey.Of(&component.Physics{Collider: component.ColliderBox, Static: true}),
		component.GeometryKey.Of(&component.Geometry{Name: b.Name}),
	)
	return e.ID()
}

// SpawnProjectile fires one round from origin along dir, which need not be
// normalized. Projectiles are weightless triggers.
func SpawnProjectile(g *engine.Engine, shooter ecs.EntityID, origin, dir component.Vec3, w *component.Weapon, now float64) ecs.EntityID {
	size, ok := projectileSize[w.Projectile]
	if !ok {
		size = projectileSize["bullet"]
	}
	e := g.CreateEntity(
		component.TransformKey.Of(&component.Transform{
			Position: origin,
			Scale:    component.Vec3{X: size, Y: size, Z: size},
		}),
		component.PhysicsKey.Of(&component.Physics{
			Velocity: dir.Normalize().Scale(w.ProjectileSpeed),
			Collider: component.ColliderTrigger,
		}),
		component.ProjectileKey.Of(&component.Projectile{
			Kind:      w.Projectile,
			Damage:    w.Damage,
			Speed:     w.ProjectileSpeed,
			Source:    ecs.RefTo(shooter),
			Lifetime:  w.ProjectileLife,
			CreatedAt: now,
		}),
	)
	return e.ID()
}

// SpawnLevel populates the world with a level's geometry, enemies and
// player, and returns the player id.
func SpawnLevel(g *engine.Engine, lvl *data.Level, weapons *data.WeaponTable, enemies *data.EnemyTable) (ecs.EntityID, error) {
	for _, b := range lvl.Geometry {
		SpawnGeometry(g, b)
	}
	for i, s := range lvl.Enemies {
		tmpl := enemies.Get(s.Type)
		if tmpl == nil {
			return ecs.NilEntity, fmt.Errorf("level %q: enemy #%d has unknown type %q", lvl.Name, i, s.Type)
		}
		SpawnEnemy(g, s, tmpl)
	}
	return SpawnPlayer(g, lvl.Player, weapons)
}
