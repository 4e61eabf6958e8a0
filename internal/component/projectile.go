package component

import "github.com/strikezone/server/internal/core/ecs"

// Projectile is a fired round. Source is a weak reference to the shooter.
type Projectile struct {
	Kind      string
	Damage    int
	Speed     float64
	Source    ecs.Ref
	Lifetime  float64 // seconds
	CreatedAt float64 // simulation seconds
}

var ProjectileKey = ecs.NewKey[Projectile]("projectile")
