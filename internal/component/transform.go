package component

import "github.com/strikezone/server/internal/core/ecs"

// Transform places an entity in the world. Rotation is Euler radians
// (X pitch, Y yaw, Z roll). Scale doubles as the collision box size.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

var TransformKey = ecs.NewKey[Transform]("transform")
