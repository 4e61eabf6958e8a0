package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"go.uber.org/zap"
)

func TestEnemyDeath(t *testing.T) {
	w := ecs.NewWorld()
	bus := event.NewBus()
	killed := collect[event.Killed](bus)
	shooter, _ := spawnPlayer(w, component.Vec3{Y: 0.9})

	g := grunt()
	g.Health = -5
	g.LastHitBy = shooter.ID()
	e := spawnEnemy(w, component.Vec3{Y: 0.5}, g)
	alive := spawnEnemy(w, component.Vec3{Y: 0.5}, grunt())
	s := NewHealthSystem(bus, zap.NewNop())

	s.Update(w, step, step)
	s.Update(w, step, 2*step)

	en, _ := component.EnemyKey.Get(e)
	assert.Equal(t, component.EnemyDead, en.State)
	assert.Zero(t, en.Health)
	assert.True(t, w.PendingDestruction(e.ID()))
	assert.False(t, w.PendingDestruction(alive.ID()))

	deliver(bus)
	require.Len(t, *killed, 1, "death is reported once")
	assert.Equal(t, event.Killed{Target: e.ID(), Killer: shooter.ID(), EnemyType: "grunt"}, (*killed)[0])
}

func TestPlayerDeath(t *testing.T) {
	w := ecs.NewWorld()
	bus := event.NewBus()
	killed := collect[event.Killed](bus)
	e, p := spawnPlayer(w, component.Vec3{Y: 0.9})
	p.Health = 0

	NewHealthSystem(bus, zap.NewNop()).Update(w, step, step)
	assert.True(t, p.Dead)
	assert.False(t, w.PendingDestruction(e.ID()), "the player stays in the world")

	deliver(bus)
	require.Len(t, *killed, 1)
	assert.Empty(t, (*killed)[0].EnemyType)
}
