package system

import (
	"github.com/strikezone/server/internal/core/ecs"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) Name() string           { return NameCleanup }
func (s *CleanupSystem) Dependencies() []string { return []string{NameHUD} }

func (s *CleanupSystem) Update(w *ecs.World, _, _ float64) {
	if n := w.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n))
	}
}
