// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists extracted findings keyed by subject and domain so
// repeat analyses skip the crawl entirely. Keys are exact strings: the
// store does no fuzzy or semantic matching.
//
// Two backends exist: Postgres (shared deployments) and SQLite (local,
// zero-setup). Open picks one from the configuration.
package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// RecordType classifies a stored finding.
type RecordType string

const (
	TypePro RecordType = "pro"
	TypeCon RecordType = "con"
)

// Record is one stored finding. Provenance is not retained: cached results
// carry statements only, which is why cache-served FinalResults have no
// sources.
type Record struct {
	Type    RecordType
	Content string
}

// Store reads and writes findings for a subject.
type Store interface {
	// Lookup returns the stored records for an exact subject and domain
	// match. A miss is an empty slice with a nil error.
	Lookup(ctx context.Context, subject string, domain types.Domain) ([]Record, error)

	// Save stores records for a subject, replacing any previous entry.
	Save(ctx context.Context, subject string, domain types.Domain, records []Record) error

	Close() error
}

// Open returns the configured Store: Postgres when a database URL is set,
// SQLite otherwise.
func Open(cfg types.CacheConfig, logger *zap.Logger) (Store, error) {
	if cfg.DatabaseURL != "" {
		return OpenPostgres(cfg, logger)
	}
	return OpenSQLite(cfg, logger)
}

// opTimeout returns the per-operation timeout with its default applied.
func opTimeout(cfg types.CacheConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return 5 * time.Second
	}
	return cfg.Timeout
}

// ToResult assembles a cache-served FinalResult from stored records,
// preserving stored order within each list.
func ToResult(subject string, domain types.Domain, records []Record) types.FinalResult {
	result := types.FinalResult{
		Subject: subject,
		Domain:  domain,
		Method:  types.MethodCache,
	}
	for _, r := range records {
		switch r.Type {
		case TypePro:
			result.Pros = append(result.Pros, r.Content)
		case TypeCon:
			result.Cons = append(result.Cons, r.Content)
		}
	}
	return result
}

// FromResult flattens a FinalResult into storable records, pros first.
func FromResult(result types.FinalResult) []Record {
	records := make([]Record, 0, len(result.Pros)+len(result.Cons))
	for _, p := range result.Pros {
		records = append(records, Record{Type: TypePro, Content: p})
	}
	for _, c := range result.Cons {
		records = append(records, Record{Type: TypeCon, Content: c})
	}
	return records
}
