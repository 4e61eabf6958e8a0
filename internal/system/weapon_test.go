package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/engine"
	"github.com/strikezone/server/internal/core/event"
	"go.uber.org/zap"
)

type armory struct {
	g      *engine.Engine
	bus    *event.Bus
	in     *component.Input
	player *ecs.Entity
	p      *component.Player
	pistol *component.Weapon
	rifle  *component.Weapon
	sys    *WeaponSystem
}

func newArmory(t *testing.T) *armory {
	t.Helper()
	g := engine.New(zap.NewNop())
	bus := event.NewBus()
	a := &armory{g: g, bus: bus, in: spawnInput(g.World())}

	pistol := g.CreateEntity(component.WeaponKey.Of(&component.Weapon{
		Name: "pistol", Damage: 20, FireRate: 2, Ammo: 2, MaxAmmo: 2, ReloadTime: 1,
		LastFired: -1e9, Projectile: "bullet", ProjectileSpeed: 60, ProjectileLife: 2,
	}))
	rifle := g.CreateEntity(component.WeaponKey.Of(&component.Weapon{
		Name: "rifle", Damage: 10, FireRate: 10, Ammo: 30, MaxAmmo: 30, ReloadTime: 2,
		LastFired: -1e9, Projectile: "bullet", ProjectileSpeed: 90, ProjectileLife: 2,
	}))
	a.pistol, _ = component.WeaponKey.Get(pistol)
	a.rifle, _ = component.WeaponKey.Get(rifle)

	a.player, a.p = spawnPlayer(g.World(), component.Vec3{Y: 0.9})
	a.p.Weapons = []ecs.EntityID{pistol.ID(), rifle.ID()}
	a.p.CurrentWeapon = pistol.ID()

	a.sys = NewWeaponSystem(g, bus, zap.NewNop())
	return a
}

func (a *armory) projectiles() []*ecs.Entity {
	return a.g.World().Query(ecs.With(component.ProjectileKey.Name()))
}

func TestWeaponFiresAtFireRate(t *testing.T) {
	a := newArmory(t)
	fired := collect[event.WeaponFired](a.bus)
	a.in.PrimaryDown = true

	a.sys.Update(a.g.World(), step, 1.0)
	assert.Equal(t, 1, a.pistol.Ammo)
	require.Len(t, a.projectiles(), 1)

	a.sys.Update(a.g.World(), step, 1.2)
	assert.Equal(t, 1, a.pistol.Ammo, "fire rate gates the second shot")

	a.sys.Update(a.g.World(), step, 1.5)
	assert.Equal(t, 0, a.pistol.Ammo)
	assert.Len(t, a.projectiles(), 2)

	deliver(a.bus)
	require.Len(t, *fired, 2)
	assert.Equal(t, event.WeaponFired{Shooter: a.player.ID(), Weapon: "pistol", Ammo: 0}, (*fired)[1])

	pr, _ := component.ProjectileKey.Get(a.projectiles()[0])
	assert.Equal(t, a.player.ID(), pr.Source.ID())
	assert.Equal(t, 1.0, pr.CreatedAt)
	ph, _ := component.PhysicsKey.Get(a.projectiles()[0])
	assert.InDelta(t, -60, ph.Velocity.Z, 1e-9)
	tr, _ := component.TransformKey.Get(a.projectiles()[0])
	assert.InDelta(t, 0.9+1.8*eyeHeight, tr.Position.Y, 1e-9)
}

func TestEmptyWeaponReloads(t *testing.T) {
	a := newArmory(t)
	reloaded := collect[event.WeaponReloaded](a.bus)
	a.pistol.Ammo = 0
	a.in.PrimaryDown = true

	a.sys.Update(a.g.World(), step, 1.0)
	assert.True(t, a.pistol.Reloading)
	assert.Empty(t, a.projectiles())

	a.sys.Update(a.g.World(), step, 1.5)
	assert.True(t, a.pistol.Reloading)
	assert.Zero(t, a.pistol.Ammo)

	a.in.PrimaryDown = false
	a.sys.Update(a.g.World(), step, 2.0)
	assert.False(t, a.pistol.Reloading)
	assert.Equal(t, 2, a.pistol.Ammo)

	deliver(a.bus)
	assert.Equal(t, []event.WeaponReloaded{{Shooter: a.player.ID(), Weapon: "pistol"}}, *reloaded)
}

func TestManualReloadOnlyWhenNotFull(t *testing.T) {
	a := newArmory(t)
	a.in.Keys[component.KeyReload] = true

	a.sys.Update(a.g.World(), step, 1)
	assert.False(t, a.pistol.Reloading, "full magazine")

	a.pistol.Ammo = 1
	a.sys.Update(a.g.World(), step, 2)
	assert.True(t, a.pistol.Reloading)
	assert.Equal(t, 2.0, a.pistol.ReloadStartedAt)
}

func TestSwitchWeaponCancelsReload(t *testing.T) {
	a := newArmory(t)
	a.pistol.Ammo = 0
	a.pistol.Reloading = true
	a.pistol.ReloadStartedAt = 0.5

	a.in.Keys["Digit2"] = true
	a.sys.Update(a.g.World(), step, 1)
	assert.Equal(t, a.p.Weapons[1], a.p.CurrentWeapon)
	assert.False(t, a.pistol.Reloading)

	delete(a.in.Keys, "Digit2")
	a.in.Keys["Digit9"] = true
	a.sys.Update(a.g.World(), step, 2)
	assert.Equal(t, a.p.Weapons[1], a.p.CurrentWeapon, "empty slot is ignored")

	a.in.PrimaryDown = true
	a.sys.Update(a.g.World(), step, 3)
	assert.Equal(t, 29, a.rifle.Ammo)
}

func TestDeadPlayerCannotFire(t *testing.T) {
	a := newArmory(t)
	a.p.Dead = true
	a.in.PrimaryDown = true
	a.sys.Update(a.g.World(), step, 1)
	assert.Equal(t, 2, a.pistol.Ammo)
}

func TestAim(t *testing.T) {
	assert.InDelta(t, -1, Aim(component.Vec3{}).Z, 1e-12)
	up := Aim(component.Vec3{X: math.Pi / 4})
	assert.InDelta(t, math.Sqrt2/2, up.Y, 1e-12)
	assert.InDelta(t, 1, up.Len(), 1e-12)
}
