package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"

	"github.com/oskarlind/dayqueue/internal/migration"
	"github.com/oskarlind/dayqueue/internal/models"
)

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

// SQLiteStore persists the task collection to a local SQLite database via
// modernc.org/sqlite (no cgo), with its schema brought up to date by the
// shared migration.Runner.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at
// path and brings its schema up to date.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers anyway

	sub, err := fs.Sub(sqliteMigrations, "migrations/sqlite")
	if err != nil {
		return nil, err
	}
	runner := migration.NewRunner(db, sub)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]*models.Task, error) {
	rows, err := s.db.Query(`SELECT id, type, description, status, start_time, end_time, duration, locked, priority, est_duration, rank FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var r record
		if err := rows.Scan(&r.ID, &r.Type, &r.Description, &r.Status, &r.StartTime, &r.EndTime, &r.Duration, &r.Locked, &r.Priority, &r.EstDuration, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, fromRecord(r))
	}
	return tasks, rows.Err()
}

// Save implements clear_all_then_bulk_put: the whole table is rewritten in
// one transaction.
func (s *SQLiteStore) Save(tasks []*models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (id, type, description, status, start_time, end_time, duration, locked, priority, est_duration, rank) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		r := toRecord(t)
		if _, err := stmt.Exec(r.ID, r.Type, r.Description, r.Status, r.StartTime, r.EndTime, r.Duration, r.Locked, r.Priority, r.EstDuration, r.Rank); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
