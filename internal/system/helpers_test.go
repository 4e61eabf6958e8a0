package system

import (
	"context"

	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/net"
	"github.com/strikezone/server/internal/persist"
	"github.com/strikezone/server/internal/scripting"
)

const step = 1.0 / 60

type fakeSource struct {
	batches [][]net.ClientMessage
	repeat  *net.ClientMessage
}

func (f *fakeSource) Poll() []net.ClientMessage {
	if f.repeat != nil {
		return []net.ClientMessage{*f.repeat}
	}
	if len(f.batches) == 0 {
		return nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b
}

type fakeBroadcaster struct {
	frames []any
}

func (f *fakeBroadcaster) Broadcast(v any) error {
	f.frames = append(f.frames, v)
	return nil
}

type doubleDamage struct {
	calls []scripting.DamageContext
}

func (d *doubleDamage) CalcDamage(ctx scripting.DamageContext) int {
	d.calls = append(d.calls, ctx)
	return ctx.Base * 2
}

type fixedScore map[string]int

func (f fixedScore) KillScore(t string) int { return f[t] }

type fakeRecorder struct {
	saved []persist.MatchRecord
}

func (f *fakeRecorder) SaveMatch(_ context.Context, m persist.MatchRecord) error {
	f.saved = append(f.saved, m)
	return nil
}

// collect subscribes to T and returns the slice events are appended to.
func collect[T any](bus *event.Bus) *[]T {
	var got []T
	event.Subscribe(bus, func(ev T) { got = append(got, ev) })
	return &got
}

// deliver moves events emitted so far to their handlers.
func deliver(bus *event.Bus) {
	bus.SwapBuffers()
	bus.DispatchAll()
}

func spawn(w *ecs.World, attachments ...ecs.Attachment) *ecs.Entity {
	e := ecs.NewEntity(w.NewID(), attachments...)
	w.Add(e)
	return e
}

func spawnInput(w *ecs.World) *component.Input {
	e := spawn(w, component.InputKey.Of(&component.Input{Keys: map[string]bool{}}))
	in, _ := component.InputKey.Get(e)
	return in
}

func spawnPlayer(w *ecs.World, pos component.Vec3) (*ecs.Entity, *component.Player) {
	p := &component.Player{Health: 100, MaxHealth: 100, Speed: 6, JumpForce: 5}
	e := spawn(w,
		component.TransformKey.Of(&component.Transform{Position: pos, Scale: component.Vec3{X: 0.8, Y: 1.8, Z: 0.8}}),
		component.PhysicsKey.Of(&component.Physics{Mass: 1, Collider: component.ColliderCapsule}),
		component.PlayerKey.Of(p),
	)
	return e, p
}

func spawnEnemy(w *ecs.World, pos component.Vec3, en *component.Enemy) *ecs.Entity {
	return spawn(w,
		component.TransformKey.Of(&component.Transform{Position: pos, Scale: component.Vec3{X: 1, Y: 1, Z: 1}}),
		component.PhysicsKey.Of(&component.Physics{Mass: 1, Collider: component.ColliderCapsule}),
		component.EnemyKey.Of(en),
	)
}

func spawnWall(w *ecs.World, pos, size component.Vec3) *ecs.Entity {
	return spawn(w,
		component.TransformKey.Of(&component.Transform{Position: pos, Scale: size}),
		component.PhysicsKey.Of(&component.Physics{Collider: component.ColliderBox, Static: true}),
		component.GeometryKey.Of(&component.Geometry{Name: "wall"}),
	)
}

func grunt() *component.Enemy {
	return &component.Enemy{
		Type:            "grunt",
		Health:          60,
		Damage:          8,
		Speed:           3,
		State:           component.EnemyIdle,
		DetectionRadius: 15,
		AttackRadius:    1.8,
		AttackCooldown:  1,
		LastAttack:      -1e9,
	}
}
