package repository

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/okian/fitfuzz/internal/domain/model"
	"github.com/okian/fitfuzz/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS activity (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	id      TEXT NOT NULL UNIQUE,
	age     REAL NOT NULL,
	bmi     REAL NOT NULL,
	minutes REAL NOT NULL,
	status  TEXT NOT NULL,
	profile TEXT NOT NULL,
	ts      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_ts ON activity(ts);
`

type activityRow struct {
	ID      string  `db:"id"`
	Age     float64 `db:"age"`
	BMI     float64 `db:"bmi"`
	Minutes float64 `db:"minutes"`
	Status  string  `db:"status"`
	Profile string  `db:"profile"`
	TS      int64   `db:"ts"`
}

func toRow(a model.Activity) activityRow {
	return activityRow{
		ID: a.ID, Age: a.Age, BMI: a.BMI, Minutes: a.Minutes,
		Status: string(a.Status), Profile: a.Profile, TS: a.TS.UnixNano(),
	}
}

func (r activityRow) activity() model.Activity {
	return model.Activity{
		ID: r.ID, Age: r.Age, BMI: r.BMI, Minutes: r.Minutes,
		Status: model.Status(r.Status), Profile: r.Profile, TS: time.Unix(0, r.TS).UTC(),
	}
}

// SQLiteStore persists activity in a SQLite database.
type SQLiteStore struct {
	conn   *sqlx.DB
	closed atomic.Bool
}

// OpenSQLite opens or creates the database at path and migrates the schema.
func OpenSQLite(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	set := sqliteSettings{busyTimeoutMs: 5000, wal: true}
	for _, opt := range opts {
		opt(&set)
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", set.busyTimeoutMs))
	if set.wal {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	conn, err := sqlx.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	// One writer keeps concurrent workers from tripping SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: migrate: %w", ErrOpen, err)
	}
	s := &SQLiteStore{conn: conn}
	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateStoreRecords(n)
	}
	return s, nil
}

// Append inserts a.
func (s *SQLiteStore) Append(ctx context.Context, a model.Activity) error {
	if s.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	_, err := s.conn.NamedExecContext(ctx, `
		INSERT INTO activity (id, age, bmi, minutes, status, profile, ts)
		VALUES (:id, :age, :bmi, :minutes, :status, :profile, :ts)`, toRow(a))
	metrics.RecordStoreAppendLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "append")
		return fmt.Errorf("append activity %s: %w", a.ID, err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]model.Activity, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	if s.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	var rows []activityRow
	err := s.conn.SelectContext(ctx, &rows, `
		SELECT id, age, bmi, minutes, status, profile, ts
		FROM activity ORDER BY seq DESC LIMIT ?`, n)
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	out := make([]model.Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.activity())
	}
	return out, nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	var n int
	if err := s.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM activity"); err != nil {
		return 0, fmt.Errorf("count activity: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.conn.Close()
}
