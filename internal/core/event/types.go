package event

import "github.com/strikezone/server/internal/core/ecs"

// Collision reports a solid body hitting static geometry.
type Collision struct {
	Body     ecs.EntityID
	Obstacle ecs.EntityID
}

// Damaged reports health taken from Target. Source may no longer exist by
// the time the event is delivered.
type Damaged struct {
	Target ecs.EntityID
	Source ecs.EntityID
	Amount int
	Player bool // target is the player
}

// Killed reports a player or enemy whose health reached zero.
type Killed struct {
	Target    ecs.EntityID
	Killer    ecs.EntityID
	EnemyType string // empty for the player
}

type WeaponFired struct {
	Shooter ecs.EntityID
	Weapon  string
	Ammo    int
}

type WeaponReloaded struct {
	Shooter ecs.EntityID
	Weapon  string
}
