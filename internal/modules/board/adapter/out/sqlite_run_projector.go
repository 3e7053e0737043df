package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"runsheet/internal/modules/board/domain"
	boardout "runsheet/internal/modules/board/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRunProjector struct {
	db *sql.DB
}

func NewSQLiteRunProjector(dbPath string) (boardout.RunProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRunProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteRunProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
  archive_index INTEGER PRIMARY KEY,
  origin_session_id TEXT NOT NULL,
  completed_at TEXT NOT NULL,
  entry_count INTEGER NOT NULL,
  planned_minutes INTEGER NOT NULL,
  actual_seconds INTEGER NOT NULL,
  reflection TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

func (s *SQLiteRunProjector) UpsertRun(ctx context.Context, index int, record domain.RunRecord) error {
	const stmt = `
INSERT INTO runs (archive_index, origin_session_id, completed_at, entry_count, planned_minutes, actual_seconds, reflection)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(archive_index) DO UPDATE SET
  origin_session_id=excluded.origin_session_id,
  completed_at=excluded.completed_at,
  entry_count=excluded.entry_count,
  planned_minutes=excluded.planned_minutes,
  actual_seconds=excluded.actual_seconds,
  reflection=excluded.reflection;
`
	actual := 0
	for _, e := range record.Entries {
		if e.ActualSeconds != nil {
			actual += *e.ActualSeconds
		}
	}
	_, err := s.db.ExecContext(ctx, stmt,
		index,
		record.OriginSessionID,
		record.CompletedAt,
		len(record.Entries),
		domain.PlannedMinutes(record.Entries),
		actual,
		record.ReflectionNotes,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

func (s *SQLiteRunProjector) ListRuns(ctx context.Context) ([]boardout.RunSummary, error) {
	const stmt = `
SELECT origin_session_id, completed_at, entry_count, planned_minutes, actual_seconds, reflection
FROM runs ORDER BY completed_at DESC;
`
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []boardout.RunSummary{}
	for rows.Next() {
		var summary boardout.RunSummary
		if err := rows.Scan(
			&summary.OriginSessionID,
			&summary.CompletedAt,
			&summary.EntryCount,
			&summary.PlannedMinutes,
			&summary.ActualSeconds,
			&summary.ReflectionNotes,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (s *SQLiteRunProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("reset runs: %w", err)
	}
	return nil
}
