package component

import "github.com/strikezone/server/internal/core/ecs"

// EnemyState is the AI behavior state.
type EnemyState string

const (
	EnemyIdle   EnemyState = "idle"
	EnemyPatrol EnemyState = "patrol"
	EnemyChase  EnemyState = "chase"
	EnemyAttack EnemyState = "attack"
	EnemyDead   EnemyState = "dead"
)

// Enemy is hostile actor state. Target is a weak reference: the player it
// points at may be gone.
type Enemy struct {
	Type            string
	Health          int
	Damage          int
	Speed           float64
	State           EnemyState
	DetectionRadius float64
	AttackRadius    float64
	AttackCooldown  float64
	LastAttack      float64
	Target          ecs.Ref
	LastHitBy       ecs.EntityID
	Waypoints       []Vec3
	Waypoint        int
}

var EnemyKey = ecs.NewKey[Enemy]("enemy")
