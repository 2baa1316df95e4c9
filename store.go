package ogcard

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested font does not exist.
var ErrNotFound = errors.New("not found")

// FontStore wraps a SQLite database holding the fonts the server renders
// with.
type FontStore struct {
	db *sql.DB
}

// NewFontStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewFontStore(path string) (*FontStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &FontStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *FontStore) Close() error {
	return s.db.Close()
}

func (s *FontStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS fonts (
    name TEXT NOT NULL,
    weight INTEGER NOT NULL DEFAULT 400,
    style TEXT NOT NULL DEFAULT 'normal',
    url TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (name, weight, style)
);
`)
	return err
}

// ListFonts returns registered fonts in registration order. The first font
// is the engine's fallback face.
func (s *FontStore) ListFonts() ([]FontDescriptor, error) {
	rows, err := s.db.Query(`SELECT name, weight, style, url FROM fonts ORDER BY position, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fonts []FontDescriptor
	for rows.Next() {
		var f FontDescriptor
		var style string
		if err := rows.Scan(&f.Name, &f.Weight, &style, &f.URL); err != nil {
			return nil, err
		}
		f.Style = FontStyle(style)
		fonts = append(fonts, f)
	}
	return fonts, rows.Err()
}

// SaveFont upserts a font. Weight and style default to 400 and normal.
func (s *FontStore) SaveFont(f FontDescriptor) error {
	if f.Weight == 0 {
		f.Weight = 400
	}
	if f.Style == "" {
		f.Style = FontStyleNormal
	}
	_, err := s.db.Exec(`
INSERT INTO fonts (name, weight, style, url, position)
VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM fonts))
ON CONFLICT (name, weight, style) DO UPDATE SET url = excluded.url`,
		f.Name, f.Weight, string(f.Style), f.URL)
	return err
}

// DeleteFont removes every face registered under name.
func (s *FontStore) DeleteFont(name string) error {
	res, err := s.db.Exec(`DELETE FROM fonts WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
