package system

import (
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/net"
	"go.uber.org/zap"
)

// HUDSystem broadcasts the player's status every interval ticks.
type HUDSystem struct {
	out      Broadcaster
	stats    *StatsSystem
	interval uint64
	ticks    uint64
	log      *zap.Logger
}

func NewHUDSystem(out Broadcaster, stats *StatsSystem, interval int, log *zap.Logger) *HUDSystem {
	if interval <= 0 {
		interval = 1
	}
	return &HUDSystem{out: out, stats: stats, interval: uint64(interval), log: log}
}

func (s *HUDSystem) Name() string           { return NameHUD }
func (s *HUDSystem) Dependencies() []string { return []string{NameHealth} }

func (s *HUDSystem) Update(w *ecs.World, _, elapsed float64) {
	s.ticks++
	if s.out == nil || s.ticks%s.interval != 0 {
		return
	}
	if err := s.out.Broadcast(s.Build(w, elapsed)); err != nil {
		s.log.Error("hud broadcast", zap.Error(err))
	}
}

// Build assembles the HUD frame for the current world state.
func (s *HUDSystem) Build(w *ecs.World, elapsed float64) net.HUD {
	hud := net.HUD{Type: net.TypeHUD, Tick: s.ticks, Elapsed: elapsed}

	if _, p, ok := ecs.First(w, component.PlayerKey); ok {
		hud.Health = p.Health
		hud.MaxHealth = p.MaxHealth
		hud.Dead = p.Dead
		if we, ok := w.Find(p.CurrentWeapon); ok {
			if wpn, ok := component.WeaponKey.Get(we); ok {
				hud.Weapon = wpn.Name
				hud.Ammo = wpn.Ammo
				hud.MaxAmmo = wpn.MaxAmmo
				hud.Reloading = wpn.Reloading
			}
		}
	}

	ecs.Each1(w, component.EnemyKey, func(_ *ecs.Entity, en *component.Enemy) {
		if en.State != component.EnemyDead {
			hud.Enemies++
		}
	})

	if s.stats != nil {
		m := s.stats.Snapshot()
		hud.Score = m.Score
		hud.Kills = m.TotalKills()
	}
	return hud
}
