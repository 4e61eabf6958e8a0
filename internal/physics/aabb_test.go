package physics

import (
	"testing"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(x, y, z, size float64) AABB {
	return FromTransform(&component.Transform{
		Position: component.Vec3{X: x, Y: y, Z: z},
		Scale:    component.Vec3{X: size, Y: size, Z: size},
	})
}

func TestFromTransformAndIntersects(t *testing.T) {
	a := box(0, 0, 0, 2)
	assert.Equal(t, component.Vec3{X: -1, Y: -1, Z: -1}, a.Min)
	assert.Equal(t, component.Vec3{X: 1, Y: 1, Z: 1}, a.Max)

	assert.True(t, a.Intersects(box(1.5, 0, 0, 2)))
	assert.False(t, a.Intersects(box(2, 0, 0, 2)), "touching faces do not overlap")
	assert.False(t, a.Intersects(box(0, 5, 0, 2)))
	assert.True(t, a.Contains(component.Vec3{X: 1}))
	assert.Equal(t, component.Vec3{}, a.Center())
}

func TestMoveAndSlideFreeMove(t *testing.T) {
	d, hit := MoveAndSlide(box(0, 0, 0, 1), component.Vec3{X: 1, Z: -2}, nil)
	assert.Equal(t, component.Vec3{X: 1, Z: -2}, d)
	assert.False(t, hit.Blocked())
}

func TestMoveAndSlideStopsAtWall(t *testing.T) {
	wall := Obstacle{ID: ecs.EntityID(9), Box: box(3, 0, 0, 2)} // spans x 2..4
	d, hit := MoveAndSlide(box(0, 0, 0, 2), component.Vec3{X: 2, Z: 1}, []Obstacle{wall})

	assert.InDelta(t, 1.0-Skin, d.X, 1e-12, "stopped just short of the wall")
	assert.InDelta(t, 1.0, d.Z, 1e-12, "slides along the wall")
	assert.True(t, hit.X)
	assert.False(t, hit.Z)
	require.Len(t, hit.Obstacles, 1)
	assert.Equal(t, ecs.EntityID(9), hit.Obstacles[0])
}

func TestMoveAndSlideNegativeAxis(t *testing.T) {
	floor := Obstacle{ID: 1, Box: AABB{
		Min: component.Vec3{X: -10, Y: -1, Z: -10},
		Max: component.Vec3{X: 10, Y: 0, Z: 10},
	}}
	d, hit := MoveAndSlide(box(0, 1, 0, 1), component.Vec3{Y: -1}, []Obstacle{floor})
	assert.InDelta(t, -0.5+Skin, d.Y, 1e-12)
	assert.True(t, hit.Y)
}

func TestMoveAndSlideRestsAgainstFace(t *testing.T) {
	wall := Obstacle{ID: 1, Box: box(3, 0, 0, 2)}
	b := box(0, 0, 0, 2)
	for i := 0; i < 10; i++ {
		d, _ := MoveAndSlide(b, component.Vec3{X: 0.3}, []Obstacle{wall})
		b = b.Translate(d)
	}
	assert.LessOrEqual(t, b.Max.X, 2.0)
	assert.False(t, b.Intersects(wall.Box))

	// Sliding along the face is not mistaken for a hit on another axis.
	d, hit := MoveAndSlide(b, component.Vec3{Y: -0.5}, []Obstacle{wall})
	assert.Equal(t, -0.5, d.Y)
	assert.False(t, hit.Blocked())
}

func TestMoveAndSlideIgnoresObstaclesAlreadyOverlapping(t *testing.T) {
	inside := Obstacle{ID: 1, Box: box(0, 0, 0, 4)}
	d, hit := MoveAndSlide(box(0, 0, 0, 1), component.Vec3{X: 1}, []Obstacle{inside})
	assert.Equal(t, 1.0, d.X)
	assert.False(t, hit.Blocked())
}

func TestSweep(t *testing.T) {
	bullet := box(0, 0, 0, 0.2)
	target := box(0, 0, -5, 1) // z -5.5..-4.5

	tests := []struct {
		name  string
		d     component.Vec3
		hit   bool
		enter float64
	}{
		{"passes through in one step", component.Vec3{Z: -10}, true, 0.44},
		{"stops short", component.Vec3{Z: -4}, false, 0},
		{"moving away", component.Vec3{Z: 10}, false, 0},
		{"misses sideways", component.Vec3{X: 2, Z: -10}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enter, hit := Sweep(bullet, tt.d, target)
			assert.Equal(t, tt.hit, hit)
			assert.InDelta(t, tt.enter, enter, 1e-9)
		})
	}

	enter, hit := Sweep(box(0, 0, -5, 0.2), component.Vec3{}, target)
	assert.True(t, hit, "a resting box inside the target hits at once")
	assert.Zero(t, enter)

	_, hit = Sweep(box(0, 0, -4.4, 0.2), component.Vec3{}, target)
	assert.False(t, hit, "touching faces do not count")
}
