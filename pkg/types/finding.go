// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the insight-engine pipeline.
package types

import "time"

// Domain selects the subject category being analyzed. The category decides
// which search query templates and prompt wording the pipeline uses.
type Domain string

const (
	DomainProduct Domain = "product"
	DomainCareer  Domain = "career"
)

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	return d == DomainProduct || d == DomainCareer
}

// Method records how a FinalResult was produced.
type Method string

const (
	// MethodCache marks a result served from the findings cache.
	MethodCache Method = "cache"

	// MethodFetch marks a result assembled from a live search-and-extract run.
	MethodFetch Method = "fetch"
)

// Document is one search hit with its fetched body. RawBody is empty when
// the full-page fetch failed or the page was too short to keep; such
// documents are skipped by the extraction stage.
type Document struct {
	// URL is the document location from the search result.
	URL string `json:"url" yaml:"url"`

	// Title is the search-result title with markup stripped.
	Title string `json:"title" yaml:"title"`

	// Snippet is the search-result description with markup stripped.
	Snippet string `json:"snippet" yaml:"snippet"`

	// RawBody is the stripped plain text of the full page, if fetched.
	RawBody string `json:"raw_body,omitempty" yaml:"raw_body,omitempty"`

	// PostDate is the publication date string reported by the search API,
	// when present (e.g. "20250813").
	PostDate string `json:"post_date,omitempty" yaml:"post_date,omitempty"`

	// FetchedAt records when the full body was retrieved.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// ExtractionResult holds the parsed findings for a single document: ordered
// pro and con statements as the model produced them. A document yields at
// most one ExtractionResult.
type ExtractionResult struct {
	Pros []string `json:"pros" yaml:"pros"`
	Cons []string `json:"cons" yaml:"cons"`
}

// Empty reports whether the result carries no findings at all.
func (r ExtractionResult) Empty() bool {
	return len(r.Pros) == 0 && len(r.Cons) == 0
}

// SourceCitation records where findings were extracted from.
type SourceCitation struct {
	// Title is the source document's title.
	Title string `json:"title" yaml:"title"`

	// URL is the source document's location.
	URL string `json:"url" yaml:"url"`

	// Date is the source's publication date string, when known.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

// FinalResult is the pipeline's output for one subject: deduplicated pro and
// con lists in first-seen order, the contributing sources, and how the
// result was produced. Cache-served results carry no sources because the
// store only retains extracted statements, not provenance.
type FinalResult struct {
	// Subject is the analyzed product or career name, trimmed.
	Subject string `json:"subject" yaml:"subject"`

	// Domain is the subject category.
	Domain Domain `json:"domain" yaml:"domain"`

	// Pros lists deduplicated favorable findings, at most ten.
	Pros []string `json:"pros" yaml:"pros"`

	// Cons lists deduplicated unfavorable findings, at most ten.
	Cons []string `json:"cons" yaml:"cons"`

	// Sources lists the documents that contributed findings, at most ten.
	Sources []SourceCitation `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Method is "cache" or "fetch".
	Method Method `json:"method" yaml:"method"`
}
