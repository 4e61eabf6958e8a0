package persist

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strikezone/server/internal/config"
	"go.uber.org/zap"
)

func TestOpenWithoutDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestOpenRejectsMalformedDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{DSN: "postgres://%zz"}, zap.NewNop())
	assert.ErrorContains(t, err, "parse dsn")
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		raw, err := fs.ReadFile(migrations, name)
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.Contains(body, "-- +goose Up"), name)
		assert.True(t, strings.Contains(body, "-- +goose Down"), name)
	}
}

func TestTotalKills(t *testing.T) {
	m := MatchRecord{Kills: map[string]int{"grunt": 3, "brute": 1}}
	assert.Equal(t, 4, m.TotalKills())
	assert.Zero(t, (&MatchRecord{}).TotalKills())
}

func TestRecentMatchesWithoutLimitSkipsQuery(t *testing.T) {
	repo := NewMatchRepo(&DB{})
	got, err := repo.RecentMatches(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
