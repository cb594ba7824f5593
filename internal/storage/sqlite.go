package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/pathmarks/internal/model"
)

const currentSchemaVersion = 2

var errColorOutOfRange = errors.New("color component out of byte range")

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema: ordered paths only.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			position INTEGER PRIMARY KEY NOT NULL,
			path TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_path ON bookmarks(path);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds color columns. Existing rows become white.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE bookmarks ADD COLUMN r INTEGER NOT NULL DEFAULT 255;
		ALTER TABLE bookmarks ADD COLUMN g INTEGER NOT NULL DEFAULT 255;
		ALTER TABLE bookmarks ADD COLUMN b INTEGER NOT NULL DEFAULT 255;
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database, ordered by position.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT position, path, r, g, b
		FROM bookmarks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var position int
		var path string
		var r, g, b int

		if err := rows.Scan(&position, &path, &r, &g, &b); err != nil {
			return nil, err
		}

		for _, v := range []int{r, g, b} {
			if v < 0 || v > 255 {
				return nil, &ParseError{
					Line: position + 1,
					Text: path,
					Err:  fmt.Errorf("%w: %d", errColorOutOfRange, v),
				}
			}
		}

		store.Bookmarks = append(store.Bookmarks, model.Bookmark{
			Path:  path,
			Color: model.RGB(uint8(r), uint8(g), uint8(b)),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save replaces all rows in one transaction, after snapshotting the current
// database into the .bak sibling.
func (s *SQLiteStorage) Save(store *model.Store) error {
	if err := s.backup(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bookmarks (position, path, r, g, b)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range store.Bookmarks {
		if _, err := stmt.Exec(i, b.Path, b.Color.R, b.Color.G, b.Color.B); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// backup writes a consistent copy of the database with VACUUM INTO.
// VACUUM INTO refuses to overwrite, so the old backup is removed first.
func (s *SQLiteStorage) backup() error {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	bak := BackupPath(s.path)
	if err := os.Remove(bak); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove old backup: %w", err)
	}

	quoted := strings.ReplaceAll(bak, "'", "''")
	if _, err := s.db.Exec("VACUUM INTO '" + quoted + "'"); err != nil {
		return fmt.Errorf("backup to %s: %w", bak, err)
	}
	return nil
}
