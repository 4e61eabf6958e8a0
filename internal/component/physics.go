package component

import "github.com/strikezone/server/internal/core/ecs"

// ColliderKind tags how a body takes part in collision.
type ColliderKind string

const (
	ColliderBox     ColliderKind = "box"     // solid, blocked by static geometry
	ColliderCapsule ColliderKind = "capsule" // solid, used by actors
	ColliderTrigger ColliderKind = "trigger" // moves freely, overlap tests only
)

// Physics holds integration state. Static bodies are never integrated or
// pulled by gravity but still block solid bodies. Bodies with zero mass
// ignore gravity.
type Physics struct {
	Velocity Vec3
	Mass     float64
	Collider ColliderKind
	Static   bool
	Grounded bool
}

var PhysicsKey = ecs.NewKey[Physics]("physics")

// Solid reports whether the body is resolved against static geometry.
func (p *Physics) Solid() bool {
	return p.Collider != ColliderTrigger
}
