package score

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultMinInterval is the shortest time allowed between two submissions of
// the same player
const DefaultMinInterval = 10 * time.Second

// SQLiteStore keeps the leaderboard in a local SQLite database
type SQLiteStore struct {
	db          *sql.DB
	minInterval time.Duration
	now         func() time.Time
}

// OpenSQLite opens (creating if needed) the leaderboard database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: SQLite serializes writers anyway, and :memory: databases
	// are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return &SQLiteStore{db: db, minInterval: DefaultMinInterval, now: time.Now}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			run_id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			mission TEXT NOT NULL,
			result TEXT NOT NULL,
			created_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player_id, created_ms);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// SetMinInterval changes the per-player rate limit. Zero disables it.
func (s *SQLiteStore) SetMinInterval(d time.Duration) {
	s.minInterval = d
}

// Submit stores a submission. A player who submitted less than the minimum
// interval ago gets ErrRateLimited.
func (s *SQLiteStore) Submit(ctx context.Context, sub Submission) error {
	if CleanName(sub.Name) == "" {
		return ErrInvalidName
	}
	if sub.RunID == "" || sub.PlayerID == "" {
		return ErrInvalidSubmission
	}

	now := s.now()
	if s.minInterval > 0 {
		var last sql.NullInt64
		err := s.db.QueryRowContext(ctx,
			`SELECT MAX(created_ms) FROM scores WHERE player_id = ?`, sub.PlayerID).Scan(&last)
		if err != nil {
			return fmt.Errorf("failed to check rate limit: %w", err)
		}
		if last.Valid && now.Sub(time.UnixMilli(last.Int64)) < s.minInterval {
			return ErrRateLimited
		}
	}

	ts := sub.Timestamp
	if ts.IsZero() {
		ts = now
	}
	query := `
		INSERT INTO scores (run_id, player_id, name, score, mission, result, created_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		sub.RunID, sub.PlayerID, CleanName(sub.Name), sub.Score, sub.Mission, sub.Result, ts.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to store score: %w", err)
	}
	return nil
}

// Top returns the n best scores, oldest first among ties
func (s *SQLiteStore) Top(ctx context.Context, n int) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, player_id, name, score, mission, result, created_ms
		FROM scores ORDER BY score DESC, created_ms ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		var ms int64
		if err := rows.Scan(&sub.RunID, &sub.PlayerID, &sub.Name, &sub.Score, &sub.Mission, &sub.Result, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		sub.Timestamp = time.UnixMilli(ms).UTC()
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
