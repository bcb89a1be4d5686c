// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns unstructured review text into labeled pro and con
// statements by prompting a completion model and parsing its free-text
// reply.
package extract

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/pkg/types"
)

const (
	// minDocChars is the shortest document worth sending to the model.
	// Anything below carries too little signal to pay for a completion.
	minDocChars = 200

	// promptBudget is the number of leading characters of a document
	// included in the prompt. Long documents are truncated, not
	// summarized, so extraction quality depends on pros and cons
	// appearing early in the text. Known limitation, kept deliberately:
	// summarizing first would change what gets extracted.
	promptBudget = 1500
)

// Completer abstracts the completion API so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Extractor prompts a Completer and parses the response into findings.
type Extractor struct {
	completer Completer
	cfg       types.ExtractionConfig
	logger    *zap.Logger
}

// NewExtractor builds an Extractor, applying config defaults.
func NewExtractor(completer Completer, cfg types.ExtractionConfig, logger *zap.Logger) *Extractor {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{completer: completer, cfg: cfg, logger: logger}
}

// Extract sends docText to the model and returns the parsed findings.
// Documents under the minimum length are skipped without a call. The second
// return value is false when the document was skipped, the call failed
// after retries, or the response carried no usable findings; all three are
// non-fatal to the caller.
func (e *Extractor) Extract(ctx context.Context, subject string, domain types.Domain, docText string) (types.ExtractionResult, bool) {
	runes := []rune(docText)
	if len(runes) < minDocChars {
		return types.ExtractionResult{}, false
	}
	if len(runes) > promptBudget {
		docText = string(runes[:promptBudget])
	}

	userPrompt, err := renderPrompt(subject, domain, docText)
	if err != nil {
		e.logger.Error("rendering prompt", zap.Error(err))
		return types.ExtractionResult{}, false
	}

	raw, err := e.completeWithRetry(ctx, systemPromptFor(domain), userPrompt)
	if err != nil {
		e.logger.Warn("completion failed", zap.String("subject", subject), zap.Error(err))
		return types.ExtractionResult{}, false
	}

	return Parse(raw)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// completeWithRetry calls the completion API with exponential backoff.
// Rate-limit errors from the provider are the common transient case.
func (e *Extractor) completeWithRetry(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		raw, err := e.completer.Complete(callCtx, systemPrompt, userPrompt)
		cancel()
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", e.cfg.MaxRetries, lastErr)
}
