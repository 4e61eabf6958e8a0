package component

import "github.com/strikezone/server/internal/core/ecs"

// Player is the locally controlled actor. Weapons are weapon entities owned
// by the player; CurrentWeapon is one of them.
type Player struct {
	Health        int
	MaxHealth     int
	Speed         float64
	JumpForce     float64
	Jumping       bool
	Dead          bool
	LastHitBy     ecs.EntityID
	Weapons       []ecs.EntityID
	CurrentWeapon ecs.EntityID
}

var PlayerKey = ecs.NewKey[Player]("player")
