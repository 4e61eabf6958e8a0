package system

import (
	"math"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/engine"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/factory"
	"go.uber.org/zap"
)

// eyeHeight is the muzzle height as a fraction of the player's box height,
// measured from its center.
const eyeHeight = 0.4

// WeaponSystem handles weapon switching, reloading and firing for the
// player. Projectiles are created through the engine so they enter the world
// immediately.
type WeaponSystem struct {
	g   *engine.Engine
	bus *event.Bus
	log *zap.Logger
}

func NewWeaponSystem(g *engine.Engine, bus *event.Bus, log *zap.Logger) *WeaponSystem {
	return &WeaponSystem{g: g, bus: bus, log: log}
}

func (s *WeaponSystem) Name() string           { return NameWeapon }
func (s *WeaponSystem) Dependencies() []string { return []string{NameInput} }

func (s *WeaponSystem) Update(w *ecs.World, _, elapsed float64) {
	_, in, ok := ecs.First(w, component.InputKey)
	if !ok {
		return
	}

	ecs.Each2(w, component.PlayerKey, component.TransformKey,
		func(e *ecs.Entity, p *component.Player, t *component.Transform) {
			if p.Dead {
				return
			}
			s.switchWeapon(w, p, in)

			we, ok := w.Find(p.CurrentWeapon)
			if !ok {
				return
			}
			wpn, ok := component.WeaponKey.Get(we)
			if !ok {
				return
			}

			if wpn.Reloading && elapsed-wpn.ReloadStartedAt >= wpn.ReloadTime {
				wpn.Reloading = false
				wpn.Ammo = wpn.MaxAmmo
				event.Emit(s.bus, event.WeaponReloaded{Shooter: e.ID(), Weapon: wpn.Name})
			}

			if in.Pressed(component.KeyReload) {
				startReload(wpn, elapsed)
			}

			if in.PrimaryDown {
				s.fire(e, t, wpn, elapsed)
			}
		})
}

func (s *WeaponSystem) switchWeapon(w *ecs.World, p *component.Player, in *component.Input) {
	slot, ok := in.WeaponSlot()
	if !ok || slot >= len(p.Weapons) || p.Weapons[slot] == p.CurrentWeapon {
		return
	}
	// Switching away cancels a reload in progress.
	if old, ok := w.Find(p.CurrentWeapon); ok {
		if wpn, ok := component.WeaponKey.Get(old); ok {
			wpn.Reloading = false
		}
	}
	p.CurrentWeapon = p.Weapons[slot]
}

func startReload(wpn *component.Weapon, elapsed float64) {
	if wpn.Reloading || wpn.Ammo >= wpn.MaxAmmo {
		return
	}
	wpn.Reloading = true
	wpn.ReloadStartedAt = elapsed
}

func (s *WeaponSystem) fire(e *ecs.Entity, t *component.Transform, wpn *component.Weapon, elapsed float64) {
	if wpn.Reloading || wpn.FireRate <= 0 || elapsed-wpn.LastFired < 1/wpn.FireRate {
		return
	}
	if wpn.Ammo <= 0 {
		startReload(wpn, elapsed)
		return
	}

	wpn.Ammo--
	wpn.LastFired = elapsed

	dir := Aim(t.Rotation)
	origin := t.Position.Add(component.Vec3{Y: t.Scale.Y * eyeHeight})
	id := factory.SpawnProjectile(s.g, e.ID(), origin, dir, wpn, elapsed)
	s.log.Debug("weapon fired",
		zap.String("weapon", wpn.Name),
		zap.Int("ammo", wpn.Ammo),
		zap.Uint64("projectile", uint64(id)),
	)
	event.Emit(s.bus, event.WeaponFired{Shooter: e.ID(), Weapon: wpn.Name, Ammo: wpn.Ammo})
}

// Aim is the unit look vector for a rotation with pitch in X and yaw in Y.
func Aim(rot component.Vec3) component.Vec3 {
	cp := math.Cos(rot.X)
	return component.Vec3{
		X: -math.Sin(rot.Y) * cp,
		Y: math.Sin(rot.X),
		Z: -math.Cos(rot.Y) * cp,
	}
}
