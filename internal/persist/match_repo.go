package persist

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MatchRecord is the summary of one simulation run.
type MatchRecord struct {
	ID          uuid.UUID
	Level       string
	StartedAt   time.Time
	EndedAt     time.Time
	Ticks       uint64
	SimSeconds  float64
	Score       int
	Kills       map[string]int // by enemy type
	ShotsFired  int
	DamageDealt int
	DamageTaken int
	PlayerDied  bool
}

// TotalKills sums kills over all enemy types.
func (m *MatchRecord) TotalKills() int {
	n := 0
	for _, c := range m.Kills {
		n += c
	}
	return n
}

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// SaveMatch writes the record and its per-type kill counts in one transaction.
func (r *MatchRepo) SaveMatch(ctx context.Context, m MatchRecord) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("match begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO matches (id, level, started_at, ended_at, ticks, sim_seconds, score,
		                      kills, shots_fired, damage_dealt, damage_taken, player_died)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.Level, m.StartedAt, m.EndedAt, int64(m.Ticks), m.SimSeconds, m.Score,
		m.TotalKills(), m.ShotsFired, m.DamageDealt, m.DamageTaken, m.PlayerDied,
	); err != nil {
		return fmt.Errorf("match insert: %w", err)
	}

	types := make([]string, 0, len(m.Kills))
	for t := range m.Kills {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_kills (match_id, enemy_type, count) VALUES ($1, $2, $3)`,
			m.ID, t, m.Kills[t],
		); err != nil {
			return fmt.Errorf("match kills insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// RecentMatches returns the latest records, newest first, without kill
// breakdowns. A non-positive limit returns nothing.
func (r *MatchRepo) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, level, started_at, ended_at, ticks, sim_seconds, score,
		        shots_fired, damage_dealt, damage_taken, player_died
		   FROM matches ORDER BY ended_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var ticks int64
		if err := rows.Scan(&m.ID, &m.Level, &m.StartedAt, &m.EndedAt, &ticks, &m.SimSeconds, &m.Score,
			&m.ShotsFired, &m.DamageDealt, &m.DamageTaken, &m.PlayerDied); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Ticks = uint64(ticks)
		out = append(out, m)
	}
	return out, rows.Err()
}
