// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/internal/cache"
	"github.com/pdiddy/insight-engine/internal/extract"
	"github.com/pdiddy/insight-engine/internal/pipeline"
	"github.com/pdiddy/insight-engine/internal/search"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <subject>",
	Short: "Run the full pros/cons pipeline for a subject",
	Long: `Analyze checks the findings cache for the subject and, on a miss,
searches blog posts, fetches their bodies, extracts pros and cons with a
completion model, deduplicates the findings, and writes them back to the
cache. The subject is a product model name or an occupation title,
selected with --domain.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("domain", string(types.DomainProduct), "subject category: product or career")
	analyzeCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	analyzeCmd.Flags().String("model", "", "completion model identifier")
	analyzeCmd.Flags().Bool("no-cache", false, "skip the cache lookup and write-back")
	analyzeCmd.Flags().Duration("timeout", 0, "overall pipeline deadline (default 10m)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	subject := strings.TrimSpace(args[0])
	if subject == "" {
		return fmt.Errorf("subject must not be empty")
	}

	domainFlag, _ := cmd.Flags().GetString("domain")
	domain, err := parseDomain(domainFlag)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q: use text, json, or yaml", format)
	}

	cfg := pipelineConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Extraction.Model = model
	}
	if cfg.Extraction.APIKey == "" {
		return fmt.Errorf("no completion API key configured: put it in .secrets/openai-api-key or set extraction.api_key")
	}

	var store cache.Store
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		store, err = cache.Open(cfg.Cache, logger)
		if err != nil {
			// The pipeline works without a cache; don't fail the run.
			fmt.Fprintf(os.Stderr, "warning: cache unavailable: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	fetcher := search.NewFetcher(&search.NaverProvider{}, cfg.Search, logger)
	extractor := extract.NewExtractor(extract.NewOpenAIBackend(cfg.Extraction), cfg.Extraction, logger)

	p := pipeline.New(store, fetcher, extractor, logger)
	defer p.Wait()

	progress := io.Writer(os.Stderr)
	if format != "text" {
		progress = io.Discard
	}

	result, err := p.Run(ctx, subject, domain, progress)
	if errors.Is(err, pipeline.ErrNoFindings) {
		fmt.Fprintf(os.Stderr, "no findings for %q\n", subject)
		return err
	}
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, result, format)
}

// writeResult renders a FinalResult in the requested format.
func writeResult(w io.Writer, result types.FinalResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		formatText(w, result)
		return nil
	}
}

// formatText writes a human-readable result to w.
func formatText(w io.Writer, result types.FinalResult) {
	fmt.Fprintf(w, "%s (%s, via %s)\n", result.Subject, result.Domain, result.Method)

	fmt.Fprintf(w, "\nPros (%d):\n", len(result.Pros))
	for _, p := range result.Pros {
		fmt.Fprintf(w, "  + %s\n", p)
	}

	fmt.Fprintf(w, "\nCons (%d):\n", len(result.Cons))
	for _, c := range result.Cons {
		fmt.Fprintf(w, "  - %s\n", c)
	}

	if len(result.Sources) > 0 {
		fmt.Fprintf(w, "\nSources (%d):\n", len(result.Sources))
		for _, s := range result.Sources {
			fmt.Fprintf(w, "  %s\n    %s\n", s.Title, s.URL)
		}
	}
}
