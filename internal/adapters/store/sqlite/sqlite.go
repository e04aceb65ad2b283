// Package sqlite implements the record store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/reelo/internal/adapters/store"
	"github.com/okian/reelo/internal/domain/model"
)

// schema mirrors the column layout of the original spreadsheet export.
// Safe to apply repeatedly.
const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	released     TEXT DEFAULT '',
	date_viewed  TEXT DEFAULT '',
	year_viewed  TEXT DEFAULT '',
	title        TEXT NOT NULL DEFAULT '',
	tconst       TEXT DEFAULT '',
	platform     TEXT DEFAULT '',
	rewatch      TEXT DEFAULT '',
	type         TEXT DEFAULT '',
	genres       TEXT DEFAULT '',
	rating       TEXT DEFAULT '',
	votes        TEXT DEFAULT '',
	runtime      TEXT DEFAULT '',
	director     TEXT DEFAULT '',
	poster_url   TEXT DEFAULT '',
	elo          INTEGER NOT NULL DEFAULT 1500
);
CREATE INDEX IF NOT EXISTS idx_movies_title ON movies (title);
`

// Store implements store.Store on a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", store.ErrLoad, path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: apply schema: %w", store.ErrLoad, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// LoadAll reads every row in insertion order. Columns are mapped generically
// so metadata columns survive as passthrough fields.
func (s *Store) LoadAll(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT * FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query rows: %w", store.ErrLoad, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: read columns: %w", store.ErrLoad, err)
	}

	var records []model.Record
	values := make([]sql.NullString, len(cols))
	scan := make([]any, len(cols))
	for i := range values {
		scan[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", store.ErrLoad, err)
		}
		fields := make(map[string]string, len(cols))
		for i, col := range cols {
			if col == "id" {
				continue
			}
			fields[col] = values[i].String
		}
		records = append(records, store.RecordFromFields(len(records), fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", store.ErrLoad, err)
	}
	return records, nil
}

// SaveRating writes rating to every row whose normalized title matches. One
// statement covers all duplicate rows of the entity.
func (s *Store) SaveRating(ctx context.Context, title string, rating int) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE movies SET elo = ? WHERE lower(trim(title)) = ?`,
		rating, model.NormalizeTitle(title),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: update %q: %w", store.ErrPersist, title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected: %w", store.ErrPersist, err)
	}
	return int(n), nil
}

// Insert appends a row. Used by the seeding tool; the rating engine itself
// never creates or deletes rows.
func (s *Store) Insert(ctx context.Context, rec model.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO movies (title, director, genres, poster_url, elo) VALUES (?, ?, ?, ?, ?)`,
		rec.Title, rec.Director, rec.Genres, rec.PosterURL, rec.Rating,
	)
	if err != nil {
		return fmt.Errorf("%w: insert %q: %w", store.ErrPersist, rec.Title, err)
	}
	return nil
}
