package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the database created inside SQLiteStore.Dir.
const SQLiteFileName = "cardlist.sqlite"

// SQLiteStore keeps the item list as rows ordered by position.
// Save replaces every row in a single transaction, so readers see either the old or the new list.
type SQLiteStore struct {
	Dir    string
	Logger *slog.Logger

	db *sql.DB
}

func (s *SQLiteStore) Location() string {
	return filepath.Join(s.Dir, SQLiteFileName)
}

func (s *SQLiteStore) logger() *slog.Logger {
	if s.Logger == nil {
		return discardLogger()
	}
	return s.Logger
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Location())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateItems(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.db = db
	return db, nil
}

func migrateItems(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			pos  INTEGER PRIMARY KEY,
			text TEXT NOT NULL
		);`,
		// A single row marks that the list was saved at least once,
		// which keeps "saved empty" apart from "never saved".
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Load() ([]string, error) {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	var saved string
	err = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'saved'`).Scan(&saved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNoData
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT text FROM items ORDER BY pos ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		items = append(items, text)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Save(items []string) error {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items(pos, text) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, text := range items {
		if _, err := stmt.ExecContext(ctx, i, text); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta(k, v) VALUES('saved', '1') ON CONFLICT(k) DO NOTHING`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Read() []string {
	return readOrEmpty(s.logger(), s.Location(), s.Load)
}

func (s *SQLiteStore) Write(items []string) {
	if err := s.Save(items); err != nil {
		s.logger().Error("persist item list", "location", s.Location(), "error", err)
	}
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
