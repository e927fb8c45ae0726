package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
	"github.com/kpauljoseph/hashcards/pkg/logger"
)

// SQLite stores records in a single database file, normally hashcards.db at
// the collection root.
type SQLite struct {
	db  *sql.DB
	log *logger.Logger
}

func OpenSQLite(ctx context.Context, path string, log *logger.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db, log: log}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	log.Debug("Opened performance database: %s", path)
	return s, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cards (
			card_hash        TEXT PRIMARY KEY,
			added_at         TEXT NOT NULL,
			last_reviewed_at TEXT,
			stability        REAL,
			difficulty       REAL,
			interval_raw     REAL,
			interval_days    INTEGER,
			due_date         TEXT,
			review_count     INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reviews (
			review_id     INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id    TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
			card_hash     TEXT NOT NULL,
			reviewed_at   TEXT NOT NULL,
			grade         TEXT NOT NULL,
			stability     REAL NOT NULL,
			difficulty    REAL NOT NULL,
			interval_raw  REAL NOT NULL,
			interval_days INTEGER NOT NULL,
			due_date      TEXT NOT NULL,
			review_count  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_cards_due ON cards(due_date);
		CREATE INDEX IF NOT EXISTS idx_reviews_session ON reviews(session_id);
	`)
	if err == nil {
		s.log.Trace("Performance schema is up to date")
	}
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLite) Get(ctx context.Context, h hash.Hash) (performance.Performance, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT last_reviewed_at, stability, difficulty, interval_raw, interval_days, due_date, review_count
		FROM cards WHERE card_hash = ?`, h.Hex())
	p, err := scanPerformance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return performance.New, nil
	}
	if err != nil {
		return performance.New, fmt.Errorf("get performance %s: %w", h, err)
	}
	return p, nil
}

func (s *SQLite) Set(ctx context.Context, h hash.Hash, p performance.Performance) error {
	if err := upsert(ctx, s.db, h, p); err != nil {
		return fmt.Errorf("set performance %s: %w", h, err)
	}
	return nil
}

func upsert(ctx context.Context, db execer, h hash.Hash, p performance.Performance) error {
	args := []any{h.Hex(), datetime.Now().String(), nil, nil, nil, nil, nil, nil, 0}
	if r, ok := p.Reviewed(); ok {
		args = []any{
			h.Hex(), r.LastReviewedAt.String(),
			r.LastReviewedAt.String(), r.Stability, r.Difficulty,
			r.IntervalRaw, r.IntervalDays, r.DueDate.String(), r.ReviewCount,
		}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO cards (card_hash, added_at, last_reviewed_at, stability, difficulty,
			interval_raw, interval_days, due_date, review_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(card_hash) DO UPDATE SET
			last_reviewed_at = excluded.last_reviewed_at,
			stability        = excluded.stability,
			difficulty       = excluded.difficulty,
			interval_raw     = excluded.interval_raw,
			interval_days    = excluded.interval_days,
			due_date         = excluded.due_date,
			review_count     = excluded.review_count`, args...)
	return err
}

func (s *SQLite) Insert(ctx context.Context, h hash.Hash, addedAt datetime.Timestamp) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO cards (card_hash, added_at) VALUES (?, ?)`,
		h.Hex(), addedAt.String())
	if err != nil {
		return fmt.Errorf("insert card %s: %w", h, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, h hash.Hash) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE card_hash = ?`, h.Hex()); err != nil {
		return fmt.Errorf("delete card %s: %w", h, err)
	}
	return nil
}

func (s *SQLite) Hashes(ctx context.Context) ([]hash.Hash, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT card_hash FROM cards ORDER BY card_hash`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var hashes []hash.Hash
	for rows.Next() {
		h, err := scanHash(rows)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}

// Due returns cards never reviewed or due on or before today. Dates are
// stored as YYYY-MM-DD, so text comparison orders them.
func (s *SQLite) Due(ctx context.Context, today datetime.Date) (HashSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT card_hash FROM cards WHERE due_date IS NULL OR due_date <= ?`, today.String())
	if err != nil {
		return nil, fmt.Errorf("query due cards: %w", err)
	}
	defer rows.Close()

	due := make(HashSet)
	for rows.Next() {
		h, err := scanHash(rows)
		if err != nil {
			return nil, err
		}
		due[h] = struct{}{}
	}
	return due, rows.Err()
}

func (s *SQLite) Export(ctx context.Context) (Records, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT card_hash, last_reviewed_at, stability, difficulty, interval_raw, interval_days, due_date, review_count
		FROM cards`)
	if err != nil {
		return nil, fmt.Errorf("export performance: %w", err)
	}
	defer rows.Close()

	records := make(Records)
	for rows.Next() {
		var hexHash string
		var nullable nullableReviewed
		if err := rows.Scan(&hexHash, &nullable.lastReviewedAt, &nullable.stability, &nullable.difficulty,
			&nullable.intervalRaw, &nullable.intervalDays, &nullable.dueDate, &nullable.reviewCount); err != nil {
			return nil, fmt.Errorf("export performance: %w", err)
		}
		h, err := hash.ParseHex(hexHash)
		if err != nil {
			return nil, err
		}
		p, err := nullable.performance()
		if err != nil {
			return nil, fmt.Errorf("export performance %s: %w", h, err)
		}
		records[h] = p
	}
	return records, rows.Err()
}

func (s *SQLite) Import(ctx context.Context, records Records) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import: begin tx: %w", err)
	}
	defer tx.Rollback()

	for h, p := range records {
		if err := upsert(ctx, tx, h, p); err != nil {
			return fmt.Errorf("import %s: %w", h, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import: commit: %w", err)
	}
	s.log.Debug("Imported %d performance records", len(records))
	return nil
}

func (s *SQLite) SaveSession(ctx context.Context, session SessionLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save session: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (session_id, started_at, ended_at) VALUES (?, ?, ?)`,
		session.ID, session.StartedAt.String(), session.EndedAt.String()); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	for _, r := range session.Reviews {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reviews (session_id, card_hash, reviewed_at, grade, stability, difficulty,
				interval_raw, interval_days, due_date, review_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, r.Hash.Hex(), r.ReviewedAt.String(), r.Grade.String(),
			r.Result.Stability, r.Result.Difficulty, r.Result.IntervalRaw,
			r.Result.IntervalDays, r.Result.DueDate.String(), r.Result.ReviewCount); err != nil {
			return fmt.Errorf("save review of %s: %w", r.Hash, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save session: commit: %w", err)
	}
	s.log.Debug("Saved session %s with %d reviews", session.ID, len(session.Reviews))
	return nil
}

func (s *SQLite) Sessions(ctx context.Context) ([]SessionLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, started_at, ended_at FROM sessions ORDER BY started_at`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionLog
	for rows.Next() {
		var id, started, ended string
		if err := rows.Scan(&id, &started, &ended); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		session := SessionLog{ID: id}
		if session.StartedAt, err = datetime.ParseTimestamp(started); err != nil {
			return nil, err
		}
		if session.EndedAt, err = datetime.ParseTimestamp(ended); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		reviews, err := s.sessionReviews(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Reviews = reviews
	}
	return sessions, nil
}

func (s *SQLite) sessionReviews(ctx context.Context, sessionID string) ([]ReviewLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT card_hash, reviewed_at, grade, stability, difficulty, interval_raw, interval_days, due_date, review_count
		FROM reviews WHERE session_id = ? ORDER BY review_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of %s: %w", sessionID, err)
	}
	defer rows.Close()

	var reviews []ReviewLog
	for rows.Next() {
		var hexHash, reviewedAt, grade, dueDate string
		var r ReviewLog
		if err := rows.Scan(&hexHash, &reviewedAt, &grade, &r.Result.Stability, &r.Result.Difficulty,
			&r.Result.IntervalRaw, &r.Result.IntervalDays, &dueDate, &r.Result.ReviewCount); err != nil {
			return nil, fmt.Errorf("list reviews of %s: %w", sessionID, err)
		}
		if r.Hash, err = hash.ParseHex(hexHash); err != nil {
			return nil, err
		}
		if r.ReviewedAt, err = datetime.ParseTimestamp(reviewedAt); err != nil {
			return nil, err
		}
		if err := r.Grade.UnmarshalText([]byte(grade)); err != nil {
			return nil, err
		}
		if r.Result.DueDate, err = datetime.ParseDate(dueDate); err != nil {
			return nil, err
		}
		r.Result.LastReviewedAt = r.ReviewedAt
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHash(row scanner) (hash.Hash, error) {
	var hexHash string
	if err := row.Scan(&hexHash); err != nil {
		return hash.Hash{}, err
	}
	return hash.ParseHex(hexHash)
}

type nullableReviewed struct {
	lastReviewedAt sql.NullString
	stability      sql.NullFloat64
	difficulty     sql.NullFloat64
	intervalRaw    sql.NullFloat64
	intervalDays   sql.NullInt64
	dueDate        sql.NullString
	reviewCount    int
}

func scanPerformance(row scanner) (performance.Performance, error) {
	var n nullableReviewed
	if err := row.Scan(&n.lastReviewedAt, &n.stability, &n.difficulty,
		&n.intervalRaw, &n.intervalDays, &n.dueDate, &n.reviewCount); err != nil {
		return performance.New, err
	}
	return n.performance()
}

func (n nullableReviewed) performance() (performance.Performance, error) {
	if !n.lastReviewedAt.Valid {
		return performance.New, nil
	}
	last, err := datetime.ParseTimestamp(n.lastReviewedAt.String)
	if err != nil {
		return performance.New, err
	}
	due, err := datetime.ParseDate(n.dueDate.String)
	if err != nil {
		return performance.New, err
	}
	return performance.FromReviewed(performance.Reviewed{
		LastReviewedAt: last,
		Stability:      n.stability.Float64,
		Difficulty:     n.difficulty.Float64,
		IntervalRaw:    n.intervalRaw.Float64,
		IntervalDays:   int(n.intervalDays.Int64),
		DueDate:        due,
		ReviewCount:    n.reviewCount,
	}), nil
}
