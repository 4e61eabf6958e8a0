// Package physics is the collision authority: axis-aligned boxes derived
// from transforms, resolved one axis at a time against static geometry.
package physics

import (
	"math"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
)

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min, Max component.Vec3
}

// FromTransform builds the box centered on the transform position with the
// transform scale as its size.
func FromTransform(t *component.Transform) AABB {
	half := t.Scale.Scale(0.5)
	return AABB{
		Min: t.Position.Sub(half),
		Max: t.Position.Add(half),
	}
}

// Intersects reports overlap with positive volume; touching faces do not
// count.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// Translate moves the box by d.
func (a AABB) Translate(d component.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Center is the box midpoint.
func (a AABB) Center() component.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Contains reports whether p lies inside or on the box.
func (a AABB) Contains(p component.Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Obstacle is a static box tagged with the entity it belongs to.
type Obstacle struct {
	ID  ecs.EntityID
	Box AABB
}

// Hit records which axes were blocked during a move.
type Hit struct {
	X, Y, Z   bool
	Obstacles []ecs.EntityID
}

// Blocked reports whether any axis was stopped.
func (h Hit) Blocked() bool { return h.X || h.Y || h.Z }

// Skin is the gap left between a blocked box and the face it stopped at.
const Skin = 1e-6

// MoveAndSlide moves box by delta one axis at a time. An axis whose move
// would overlap an obstacle is stopped Skin short of it, so a body pressed
// into a wall keeps sliding along the other axes. It returns the displacement
// actually applied.
func MoveAndSlide(box AABB, delta component.Vec3, obstacles []Obstacle) (component.Vec3, Hit) {
	var applied component.Vec3
	var hit Hit
	seen := make(map[ecs.EntityID]bool)

	axes := []struct {
		get     func(component.Vec3) float64
		set     func(*component.Vec3, float64)
		blocked *bool
	}{
		{func(v component.Vec3) float64 { return v.X }, func(v *component.Vec3, f float64) { v.X = f }, &hit.X},
		{func(v component.Vec3) float64 { return v.Y }, func(v *component.Vec3, f float64) { v.Y = f }, &hit.Y},
		{func(v component.Vec3) float64 { return v.Z }, func(v *component.Vec3, f float64) { v.Z = f }, &hit.Z},
	}

	for _, ax := range axes {
		d := ax.get(delta)
		if d == 0 {
			continue
		}
		var step component.Vec3
		ax.set(&step, d)
		moved := box.Translate(step)

		for _, o := range obstacles {
			if !moved.Intersects(o.Box) {
				continue
			}
			// Only clip obstacles we were not already inside of.
			if box.Intersects(o.Box) {
				continue
			}
			if d > 0 {
				d = math.Min(d, ax.get(o.Box.Min)-ax.get(box.Max)-Skin)
			} else {
				d = math.Max(d, ax.get(o.Box.Max)-ax.get(box.Min)+Skin)
			}
			*ax.blocked = true
			if !seen[o.ID] {
				seen[o.ID] = true
				hit.Obstacles = append(hit.Obstacles, o.ID)
			}
			step = component.Vec3{}
			ax.set(&step, d)
			moved = box.Translate(step)
		}

		ax.set(&applied, d)
		box = moved
	}
	return applied, hit
}

// Sweep moves box by d and reports the fraction of d at which it first
// overlaps target. A box already overlapping target hits at 0. Touching
// faces do not count, as with Intersects.
func Sweep(box AABB, d component.Vec3, target AABB) (float64, bool) {
	half := box.Max.Sub(box.Min).Scale(0.5)
	c := box.Center()
	lo := target.Min.Sub(half)
	hi := target.Max.Add(half)

	enter, exit := 0.0, 1.0
	for _, ax := range [3][4]float64{
		{c.X, d.X, lo.X, hi.X},
		{c.Y, d.Y, lo.Y, hi.Y},
		{c.Z, d.Z, lo.Z, hi.Z},
	} {
		p, v, mn, mx := ax[0], ax[1], ax[2], ax[3]
		if v == 0 {
			if p <= mn || p >= mx {
				return 0, false
			}
			continue
		}
		t1, t2 := (mn-p)/v, (mx-p)/v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		enter = math.Max(enter, t1)
		exit = math.Min(exit, t2)
		if enter >= exit {
			return 0, false
		}
	}
	return enter, true
}
