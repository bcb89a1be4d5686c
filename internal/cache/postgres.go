// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// PostgresStore keeps findings in a shared Postgres database.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  *zap.Logger
}

// OpenPostgres connects to the database URL and creates the schema if it
// does not exist.
func OpenPostgres(cfg types.CacheConfig, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opTimeout(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &PostgresStore{pool: pool, timeout: timeout, logger: logger}
	if err := s.createSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) createSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS findings (
			id BIGSERIAL PRIMARY KEY,
			subject TEXT NOT NULL,
			domain TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('pro', 'con')),
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_findings_subject ON findings(subject, domain);
	`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Lookup returns the stored records for subject and domain in insertion order.
func (s *PostgresStore) Lookup(ctx context.Context, subject string, domain types.Domain) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT type, content FROM findings WHERE subject = $1 AND domain = $2 ORDER BY id`,
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
func (s *PostgresStore) Save(ctx context.Context, subject string, domain types.Domain, records []Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM findings WHERE subject = $1 AND domain = $2`,
			subject, string(domain)); err != nil {
			return fmt.Errorf("clearing previous findings: %w", err)
		}

		for _, r := range records {
			if _, err := tx.Exec(ctx,
				`INSERT INTO findings (subject, domain, type, content) VALUES ($1, $2, $3, $4)`,
				subject, string(domain), string(r.Type), r.Content); err != nil {
				return fmt.Errorf("inserting finding: %w", err)
			}
		}
		return nil
	})
}
