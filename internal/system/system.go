// Package system holds the gameplay systems. Each one declares the systems
// it must run after; the scheduler derives the tick order from that.
package system

import (
	"context"

	"github.com/strikezone/server/internal/net"
	"github.com/strikezone/server/internal/persist"
	"github.com/strikezone/server/internal/scripting"
)

const (
	NameEvents     = "events"
	NameInput      = "input"
	NameMovement   = "movement"
	NameEnemyAI    = "enemy_ai"
	NameWeapon     = "weapon"
	NamePhysics    = "physics"
	NameProjectile = "projectile"
	NameHealth     = "health"
	NameStats      = "stats"
	NameHUD        = "hud"
	NameCleanup    = "cleanup"
)

// InputSource yields the client messages received since the last call.
type InputSource interface {
	Poll() []net.ClientMessage
}

// Broadcaster pushes a frame to every connected client.
type Broadcaster interface {
	Broadcast(v any) error
}

// DamageModel turns a hit into health lost.
type DamageModel interface {
	CalcDamage(ctx scripting.DamageContext) int
}

// ScoreModel values a kill.
type ScoreModel interface {
	KillScore(enemyType string) int
}

// MatchRecorder stores the summary of a finished run.
type MatchRecorder interface {
	SaveMatch(ctx context.Context, m persist.MatchRecord) error
}

// flatDamage is used when no scripting engine is wired.
type flatDamage struct{}

func (flatDamage) CalcDamage(ctx scripting.DamageContext) int { return ctx.Base }
