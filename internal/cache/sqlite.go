// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// SQLiteStore keeps findings in a local SQLite database.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
	logger  *zap.Logger
}

// OpenSQLite opens or creates the SQLite findings database, creating the
// schema if it does not exist.
func OpenSQLite(cfg types.CacheConfig, logger *zap.Logger) (*SQLiteStore, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = "insight.db"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db, timeout: opTimeout(cfg), logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS findings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT NOT NULL,
			domain TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('pro', 'con')),
			content TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_subject ON findings(subject, domain)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Lookup returns the stored records for subject and domain in insertion order.
func (s *SQLiteStore) Lookup(ctx context.Context, subject string, domain types.Domain) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, content FROM findings WHERE subject = ? AND domain = ? ORDER BY rowid`,
		subject, string(domain))
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Type, &r.Content); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces the stored records for subject and domain in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, subject string, domain types.Domain, records []Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM findings WHERE subject = ? AND domain = ?`,
		subject, string(domain)); err != nil {
		return fmt.Errorf("clearing previous findings: %w", err)
	}

	for _, r := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO findings (subject, domain, type, content) VALUES (?, ?, ?, ?)`,
			subject, string(domain), string(r.Type), r.Content); err != nil {
			return fmt.Errorf("inserting finding: %w", err)
		}
	}

	return tx.Commit()
}
