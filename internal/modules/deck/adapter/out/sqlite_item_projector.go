package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"runsheet/internal/modules/deck/domain"
	deckout "runsheet/internal/modules/deck/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteItemProjector struct {
	db *sql.DB
}

func NewSQLiteItemProjector(dbPath string) (deckout.ItemIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteItemProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteItemProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  origin TEXT NOT NULL,
  tags TEXT NOT NULL,
  default_minutes INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func (s *SQLiteItemProjector) UpsertItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, name, slug, origin, tags, default_minutes)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  slug=excluded.slug,
  origin=excluded.origin,
  tags=excluded.tags,
  default_minutes=excluded.default_minutes;
`
	_, err := s.db.ExecContext(ctx, stmt,
		item.ID,
		item.Name,
		item.Slug,
		string(item.Origin),
		strings.Join(item.Tags, ","),
		item.DefaultMinutes,
	)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

func (s *SQLiteItemProjector) Search(ctx context.Context, query, tag string) ([]string, error) {
	const stmt = `
SELECT id, tags FROM items
WHERE (? = '' OR lower(name) LIKE '%' || ? || '%' OR tags LIKE '%' || ? || '%')
ORDER BY name;
`
	rows, err := s.db.QueryContext(ctx, stmt, query, query, query)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id, tags string
		if err := rows.Scan(&id, &tags); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		if tag != "" && !hasTag(tags, tag) {
			continue
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteItemProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("reset items: %w", err)
	}
	return nil
}

func hasTag(joined, tag string) bool {
	for _, candidate := range strings.Split(joined, ",") {
		if candidate == tag {
			return true
		}
	}
	return false
}
