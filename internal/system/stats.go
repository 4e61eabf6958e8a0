package system

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
	"github.com/strikezone/server/internal/persist"
	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// StatsSystem tallies the run from events and stores the match record on
// shutdown. A nil recorder only logs the summary.
type StatsSystem struct {
	bus      *event.Bus
	score    ScoreModel
	recorder MatchRecorder
	now      func() time.Time
	log      *zap.Logger
	level    string

	subscribed bool
	record     persist.MatchRecord
}

func NewStatsSystem(bus *event.Bus, score ScoreModel, recorder MatchRecorder, level string, log *zap.Logger) *StatsSystem {
	return &StatsSystem{
		bus:      bus,
		score:    score,
		recorder: recorder,
		now:      time.Now,
		log:      log,
		level:    level,
		record:   persist.MatchRecord{Level: level, Kills: map[string]int{}},
	}
}

func (s *StatsSystem) Name() string { return NameStats }

// Init starts a new match record. Handlers are subscribed on the first Init
// only, so a restarted simulation counts every event once.
func (s *StatsSystem) Init(_ *ecs.World) {
	s.record = persist.MatchRecord{
		ID:        uuid.New(),
		Level:     s.level,
		StartedAt: s.now(),
		Kills:     map[string]int{},
	}
	if s.subscribed {
		return
	}
	s.subscribed = true

	event.Subscribe(s.bus, func(ev event.Killed) {
		if ev.EnemyType == "" {
			s.record.PlayerDied = true
			return
		}
		s.record.Kills[ev.EnemyType]++
		if s.score != nil {
			s.record.Score += s.score.KillScore(ev.EnemyType)
		}
	})
	event.Subscribe(s.bus, func(ev event.Damaged) {
		if ev.Player {
			s.record.DamageTaken += ev.Amount
		} else {
			s.record.DamageDealt += ev.Amount
		}
	})
	event.Subscribe(s.bus, func(ev event.WeaponFired) {
		s.record.ShotsFired++
	})
}

func (s *StatsSystem) Update(_ *ecs.World, _, elapsed float64) {
	s.record.Ticks++
	s.record.SimSeconds = elapsed
}

func (s *StatsSystem) Cleanup(_ *ecs.World) {
	// Events from the final tick are still buffered.
	s.bus.SwapBuffers()
	s.bus.DispatchAll()

	s.record.EndedAt = s.now()
	m := s.Snapshot()
	s.log.Info("match finished",
		zap.Stringer("match", m.ID),
		zap.Uint64("ticks", m.Ticks),
		zap.Int("score", m.Score),
		zap.Int("kills", m.TotalKills()),
		zap.Int("shots", m.ShotsFired),
	)
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.recorder.SaveMatch(ctx, m); err != nil {
		s.log.Error("save match", zap.Stringer("match", m.ID), zap.Error(err))
	}
}

// Snapshot returns a copy of the running tally.
func (s *StatsSystem) Snapshot() persist.MatchRecord {
	m := s.record
	m.Kills = maps.Clone(s.record.Kills)
	return m
}
