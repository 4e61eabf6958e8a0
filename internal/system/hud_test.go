package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/net"
	"go.uber.org/zap"
)

func TestHUDBroadcastsEveryInterval(t *testing.T) {
	w := ecs.NewWorld()
	_, p := spawnPlayer(w, component.Vec3{Y: 0.9})
	wpn := spawn(w, component.WeaponKey.Of(&component.Weapon{Name: "rifle", Ammo: 7, MaxAmmo: 30, Reloading: true}))
	p.CurrentWeapon = wpn.ID()
	p.Health = 55
	spawnEnemy(w, component.Vec3{Z: -5}, grunt())
	dead := grunt()
	dead.State = component.EnemyDead
	spawnEnemy(w, component.Vec3{Z: -8}, dead)

	bus := event.NewBus()
	stats := NewStatsSystem(bus, fixedScore{"grunt": 100}, nil, "x", zap.NewNop())
	stats.Init(w)
	event.Emit(bus, event.Killed{EnemyType: "grunt"})
	deliver(bus)

	out := &fakeBroadcaster{}
	s := NewHUDSystem(out, stats, 3, zap.NewNop())
	for i := 1; i <= 7; i++ {
		s.Update(w, step, float64(i)*step)
	}

	require.Len(t, out.frames, 2)
	hud, ok := out.frames[1].(net.HUD)
	require.True(t, ok)
	assert.Equal(t, net.TypeHUD, hud.Type)
	assert.EqualValues(t, 6, hud.Tick)
	assert.Equal(t, 55, hud.Health)
	assert.Equal(t, 100, hud.MaxHealth)
	assert.Equal(t, "rifle", hud.Weapon)
	assert.Equal(t, 7, hud.Ammo)
	assert.True(t, hud.Reloading)
	assert.Equal(t, 1, hud.Enemies)
	assert.Equal(t, 100, hud.Score)
	assert.Equal(t, 1, hud.Kills)
}

func TestHUDWithoutOutput(t *testing.T) {
	s := NewHUDSystem(nil, nil, 0, zap.NewNop())
	assert.NotPanics(t, func() { s.Update(ecs.NewWorld(), step, step) })
	hud := s.Build(ecs.NewWorld(), 0)
	assert.Zero(t, hud.Health)
	assert.Empty(t, hud.Weapon)
}
