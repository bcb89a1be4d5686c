// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the analysis stages for one subject: cache
// lookup, then on a miss the search, extraction, and deduplication stages,
// and finally a best-effort cache write-back.
//
// Stages run sequentially within one invocation; pacing lives inside the
// search stage. Concurrent invocations for the same subject are collapsed
// into a single run so redundant completion spend cannot pile up.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/insight-engine/internal/cache"
	"github.com/pdiddy/insight-engine/internal/dedupe"
	"github.com/pdiddy/insight-engine/pkg/types"
)

const (
	// softCap bounds accumulation during extraction: once both lists
	// reach it, remaining documents are skipped to bound completion
	// spend. Deduplication trims further afterwards.
	softCap = 20

	// maxSources caps the citation list on a fetch result.
	maxSources = 10

	// writeBackTimeout bounds the asynchronous cache write at DONE.
	writeBackTimeout = 10 * time.Second
)

// ErrNoFindings marks a run that completed without extracting anything.
// Callers surface it as a "nothing found" outcome, not a failure.
var ErrNoFindings = errors.New("no findings for subject")

// Searcher produces candidate documents for a subject.
type Searcher interface {
	Fetch(ctx context.Context, subject string, domain types.Domain, w io.Writer) []types.Document
}

// Extractor turns one document's text into findings.
type Extractor interface {
	Extract(ctx context.Context, subject string, domain types.Domain, docText string) (types.ExtractionResult, bool)
}

// Stats counts per-run stage outcomes.
type Stats struct {
	// Documents is the number of documents the search stage produced.
	Documents int

	// Contributed is the number of documents that yielded findings.
	Contributed int

	// Skipped is the number of documents that yielded nothing, whether
	// too short, rejected by the model, or failed outright.
	Skipped int
}

// Pipeline runs the analysis for subjects. Safe for concurrent use.
type Pipeline struct {
	store     cache.Store // nil disables the cache stages
	searcher  Searcher
	extractor Extractor
	logger    *zap.Logger

	runs   singleflight.Group
	writes sync.WaitGroup
}

// New assembles a Pipeline. store may be nil, which disables both the
// lookup and the write-back.
func New(store cache.Store, searcher Searcher, extractor Extractor, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		store:     store,
		searcher:  searcher,
		extractor: extractor,
		logger:    logger,
	}
}

// Run analyzes one subject and returns its FinalResult. Progress lines are
// written to w. Concurrent calls for the same subject and domain share a
// single underlying run. A run that finds nothing returns ErrNoFindings.
func (p *Pipeline) Run(ctx context.Context, subject string, domain types.Domain, w io.Writer) (types.FinalResult, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return types.FinalResult{}, fmt.Errorf("subject must not be empty")
	}
	if !domain.Valid() {
		return types.FinalResult{}, fmt.Errorf("unknown domain %q", domain)
	}

	key := string(domain) + "\x00" + subject
	v, err, shared := p.runs.Do(key, func() (any, error) {
		return p.run(ctx, subject, domain, w)
	})
	if shared {
		p.logger.Debug("joined in-flight run", zap.String("subject", subject))
	}
	if err != nil {
		return types.FinalResult{}, err
	}
	return v.(types.FinalResult), nil
}

// Wait blocks until pending cache write-backs finish. Call before shutdown
// so background writes are not abandoned mid-flight.
func (p *Pipeline) Wait() {
	p.writes.Wait()
}

func (p *Pipeline) run(ctx context.Context, subject string, domain types.Domain, w io.Writer) (types.FinalResult, error) {
	runID := uuid.NewString()
	logger := p.logger.With(
		zap.String("run_id", runID),
		zap.String("subject", subject),
		zap.String("domain", string(domain)),
	)

	// Cache lookup. A store error is treated like a miss so the fetch
	// path always remains available: fail open, not closed.
	if p.store != nil {
		records, err := p.store.Lookup(ctx, subject, domain)
		if err != nil {
			logger.Warn("cache lookup failed, proceeding to fetch", zap.Error(err))
		} else if len(records) > 0 {
			fmt.Fprintf(w, "cache hit: %d stored findings\n", len(records))
			logger.Info("served from cache", zap.Int("records", len(records)))
			return cache.ToResult(subject, domain, records), nil
		}
	}

	docs := p.searcher.Fetch(ctx, subject, domain, w)
	fmt.Fprintf(w, "fetched %d documents\n", len(docs))

	var (
		allPros []string
		allCons []string
		sources []types.SourceCitation
		stats   Stats
	)
	stats.Documents = len(docs)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled during extraction", zap.Error(err))
			break
		}
		if len(allPros) >= softCap && len(allCons) >= softCap {
			logger.Info("accumulation cap reached, skipping remaining documents")
			break
		}

		fmt.Fprintf(w, "analyzing: %s\n", truncateTitle(doc.Title))

		result, ok := p.extractor.Extract(ctx, subject, domain, doc.RawBody)
		if !ok {
			stats.Skipped++
			continue
		}

		allPros = append(allPros, result.Pros...)
		allCons = append(allCons, result.Cons...)
		sources = append(sources, types.SourceCitation{
			Title: doc.Title,
			URL:   doc.URL,
			Date:  doc.PostDate,
		})
		stats.Contributed++
		fmt.Fprintf(w, "  extracted %d pros, %d cons\n", len(result.Pros), len(result.Cons))
	}

	// A cancelled run is abandoned outright. Whatever accumulated so far
	// is incomplete and must not be returned or written to the cache,
	// where it would shadow every later run for this subject.
	if err := ctx.Err(); err != nil {
		return types.FinalResult{}, fmt.Errorf("run cancelled: %w", err)
	}

	final := types.FinalResult{
		Subject: subject,
		Domain:  domain,
		Pros:    dedupe.Points(allPros),
		Cons:    dedupe.Points(allCons),
		Sources: sources,
		Method:  types.MethodFetch,
	}
	if len(final.Sources) > maxSources {
		final.Sources = final.Sources[:maxSources]
	}

	logger.Info("run finished",
		zap.Int("documents", stats.Documents),
		zap.Int("contributed", stats.Contributed),
		zap.Int("skipped", stats.Skipped),
		zap.Int("pros", len(final.Pros)),
		zap.Int("cons", len(final.Cons)))

	if len(final.Pros) == 0 && len(final.Cons) == 0 {
		return types.FinalResult{}, ErrNoFindings
	}

	p.writeBack(final, logger)
	return final, nil
}

// writeBack stores a fetch result asynchronously. Failures are logged and
// never surfaced: persistence is an optimization, not a requirement.
func (p *Pipeline) writeBack(result types.FinalResult, logger *zap.Logger) {
	if p.store == nil {
		return
	}

	p.writes.Add(1)
	go func() {
		defer p.writes.Done()

		// Detached from the request context: the caller already has its
		// result and must not wait on, or cancel, the write.
		ctx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
		defer cancel()

		if err := p.store.Save(ctx, result.Subject, result.Domain, cache.FromResult(result)); err != nil {
			logger.Warn("cache write-back failed", zap.Error(err))
			return
		}
		logger.Info("cached findings",
			zap.Int("records", len(result.Pros)+len(result.Cons)))
	}()
}

// truncateTitle shortens a document title for progress output.
func truncateTitle(title string) string {
	const max = 40
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}
