package component

import "github.com/strikezone/server/internal/core/ecs"

// Weapon is per-instance firearm state. Times are simulation seconds.
type Weapon struct {
	Name            string
	Damage          int
	FireRate        float64 // shots per second
	Ammo            int
	MaxAmmo         int
	ReloadTime      float64
	Reloading       bool
	ReloadStartedAt float64
	LastFired       float64
	Projectile      string
	ProjectileSpeed float64
	ProjectileLife  float64
}

var WeaponKey = ecs.NewKey[Weapon]("weapon")
