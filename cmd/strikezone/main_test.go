package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/strikezone/server/internal/config"
	"github.com/strikezone/server/internal/persist"
)

func TestMatchHistory(t *testing.T) {
	end := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	lines := matchHistory([]persist.MatchRecord{
		{Level: "warehouse", EndedAt: end, Score: 450, SimSeconds: 92.4},
		{Level: "yard", EndedAt: end.Add(-time.Hour), Score: 0, SimSeconds: 10, PlayerDied: true},
	})

	assert.Equal(t, []string{
		"2024-05-01 12:30  warehouse    score 450    survived after 1m32s",
		"2024-05-01 11:30  yard         score 0      died after 10s",
	}, lines)
	assert.Empty(t, matchHistory(nil))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.NoError(t, err)
	assert.True(t, log.Core().Enabled(0))
	assert.False(t, log.Core().Enabled(-1))
}
