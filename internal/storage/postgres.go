package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/lib/pq"

	"github.com/oskarlind/dayqueue/internal/migration"
	"github.com/oskarlind/dayqueue/internal/models"
)

// ErrEmbeddedCredentials is returned by ValidateConnString when dsn embeds
// a password, which main.go rejects unless dsn came from an environment
// variable or the OS keyring rather than a command-line flag.
var ErrEmbeddedCredentials = errors.New("connection string must not contain a password")

// ErrInvalidConnectionString is returned by ValidateConnString for a
// malformed dsn.
var ErrInvalidConnectionString = errors.New("invalid connection string")

// ValidateConnString reports whether dsn is a well-formed Postgres
// connection string (URI or key=value DSN) that does not embed a password.
func ValidateConnString(dsn string) error {
	if strings.TrimSpace(dsn) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(dsn); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		return nil
	}

	for _, pair := range strings.Fields(dsn) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

// PostgresStore persists the task collection to a Postgres database via
// lib/pq, scoped to its own schema (via search_path) so multiple dayqueue
// installs can share one database.
type PostgresStore struct {
	db     *sql.DB
	schema string
}

// NewPostgresStore opens dsn (a standard libpq connection string) and
// brings the given schema's tasks table up to date. schema defaults to
// "dayqueue" when empty.
func NewPostgresStore(dsn, schema string) (*PostgresStore, error) {
	if schema == "" {
		schema = "dayqueue"
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q`, schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema %s: %w", schema, err)
	}
	if _, err := db.Exec(fmt.Sprintf(`SET search_path TO %q`, schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set search_path: %w", err)
	}

	sub, err := fs.Sub(postgresMigrations, "migrations/postgres")
	if err != nil {
		return nil, err
	}
	runner := migration.NewRunner(db, sub)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &PostgresStore{db: db, schema: schema}, nil
}

func (s *PostgresStore) Load() ([]*models.Task, error) {
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

// Save implements clear_all_then_bulk_put in one transaction.
func (s *PostgresStore) Save(tasks []*models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (id, type, description, status, start_time, end_time, duration, locked, priority, est_duration, rank) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
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

func (s *PostgresStore) Close() error { return s.db.Close() }
