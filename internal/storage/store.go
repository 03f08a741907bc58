// Package storage persists game scores in SQL. Two dialects share one Store:
// SQLite through the pure-Go modernc.org/sqlite driver (no CGO) for local
// play, and PostgreSQL through pgx for shared servers. Schemas are applied
// with goose migrations embedded in the binary.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/arcadeloop/internal/score"
)

type dialect struct {
	name        string
	goose       string
	dir         string
	positionals bool // $1, $2 placeholders instead of ?
}

var (
	dialectSQLite   = dialect{name: "sqlite", goose: "sqlite3", dir: "migrations/sqlite"}
	dialectPostgres = dialect{name: "postgres", goose: "postgres", dir: "migrations/postgres", positionals: true}
)

// Store manages the database connection for score persistence.
// It implements score.Service.
type Store struct {
	db      *sql.DB
	dialect dialect
	closers []func()
}

var _ score.Service = (*Store)(nil)

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	UserID    string
	GameID    string
	Score     int
	CreatedAt time.Time
}

func newStore(ctx context.Context, db *sql.DB, d dialect) (*Store, error) {
	s := &Store{db: db, dialect: d}
	if err := migrate(ctx, db, d); err != nil {
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

// Dialect returns "sqlite" or "postgres".
func (s *Store) Dialect() string {
	return s.dialect.name
}

// Close closes the database connection.
func (s *Store) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
	return err
}

// rebind rewrites ? placeholders for dialects that use $n.
func (s *Store) rebind(q string) string {
	if !s.dialect.positionals {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Record inserts a run into the history and, when it strictly improves on
// the user's stored best for that game, updates the record. Whether lower
// or higher is better comes from score.OrderFor.
func (s *Store) Record(ctx context.Context, userID, gameID string, value int) (ScoreEntry, error) {
	e := ScoreEntry{
		RunID:     uuid.NewString(),
		UserID:    userID,
		GameID:    gameID,
		Score:     value,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return e, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	row := tx.QueryRowContext(ctx, s.rebind(
		`INSERT INTO scores (run_id, user_id, game_id, score, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		e.RunID, userID, gameID, value, e.CreatedAt,
	)
	if err := row.Scan(&e.ID); err != nil {
		return e, fmt.Errorf("storage: cannot save score: %w", err)
	}

	order := score.OrderFor(gameID)
	if order == score.HigherIsBetter || value > 0 {
		cmp := ">"
		if order == score.LowerIsBetter {
			cmp = "<"
		}
		_, err := tx.ExecContext(ctx, s.rebind(
			`INSERT INTO records (user_id, game_id, best, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT (user_id, game_id) DO UPDATE
			 SET best = excluded.best, updated_at = excluded.updated_at
			 WHERE excluded.best `+cmp+` records.best`),
			userID, gameID, value, e.CreatedAt,
		)
		if err != nil {
			return e, fmt.Errorf("storage: cannot update record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return e, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return e, nil
}

// SaveScore implements score.Service.
func (s *Store) SaveScore(ctx context.Context, userID, gameID string, value int) error {
	_, err := s.Record(ctx, userID, gameID, value)
	return err
}

// HighScore implements score.Service. It returns 0 if the user has no record.
func (s *Store) HighScore(ctx context.Context, userID, gameID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT best FROM records WHERE user_id = ? AND game_id = ?`),
		userID, gameID,
	).Scan(&best)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	return int(best.Int64), nil
}

func orderClause(gameID string) string {
	if score.OrderFor(gameID) == score.LowerIsBetter {
		return "score ASC, created_at ASC"
	}
	return "score DESC, created_at ASC"
}

// TopScores returns the best runs for a game across all users.
// Time-trial games list the fastest first and skip zero times.
func (s *Store) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	q := `SELECT id, run_id, user_id, game_id, score, created_at
		 FROM scores WHERE game_id = ?`
	if score.OrderFor(gameID) == score.LowerIsBetter {
		q += ` AND score > 0`
	}
	q += ` ORDER BY ` + orderClause(gameID) + ` LIMIT ?`
	return s.query(ctx, q, gameID, limit)
}

// UserScores returns one user's best runs for a game.
func (s *Store) UserScores(ctx context.Context, userID, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(ctx,
		`SELECT id, run_id, user_id, game_id, score, created_at
		 FROM scores WHERE user_id = ? AND game_id = ?
		 ORDER BY `+orderClause(gameID)+` LIMIT ?`,
		userID, gameID, limit,
	)
}

// AllScores returns every run for a game.
func (s *Store) AllScores(ctx context.Context, gameID string) ([]ScoreEntry, error) {
	return s.query(ctx,
		`SELECT id, run_id, user_id, game_id, score, created_at
		 FROM scores WHERE game_id = ?
		 ORDER BY `+orderClause(gameID),
		gameID,
	)
}

// ClearScores removes the history and records of one game.
func (s *Store) ClearScores(ctx context.Context, gameID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, table := range []string{"scores", "records"} {
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM "+table+" WHERE game_id = ?"), gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.UserID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// parseTime accepts the driver's native time or its text form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
