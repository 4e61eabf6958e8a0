package component

import "github.com/strikezone/server/internal/core/ecs"

// Geometry tags a static level brush.
type Geometry struct {
	Name string
}

var GeometryKey = ecs.NewKey[Geometry]("geometry")
