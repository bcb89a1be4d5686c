// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedupe collapses near-duplicate findings with a keyword-overlap
// heuristic. Two statements count as duplicates when at least half of the
// later statement's keywords were already seen in accepted statements.
//
// This is a deliberately cheap bag-of-words measure, not semantic
// deduplication: near-synonyms phrased in different words are kept. The
// tradeoff is documented behavior, not a gap to upgrade away.
package dedupe

import "strings"

const (
	// minKeywordLen is the shortest token (exclusive) that counts as a
	// keyword. Particles and short function words are ignored.
	minKeywordLen = 2

	// maxUnique caps the deduplicated output length.
	maxUnique = 10

	// overlapRatio is the fraction of an item's own keywords that must be
	// unseen for the item to be accepted.
	overlapRatio = 0.5
)

// Points returns items with near-duplicates removed, preserving first-seen
// order and stopping at ten accepted entries. An item with no keywords at
// all (only short tokens) is always accepted: the overlap test is vacuous
// for it, and it contributes nothing to the seen set.
func Points(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var unique []string

	for _, item := range items {
		keywords := keywordSet(item)

		if overlap(keywords, seen) < float64(len(keywords))*overlapRatio || len(keywords) == 0 {
			unique = append(unique, item)
			for kw := range keywords {
				seen[kw] = struct{}{}
			}
		}

		if len(unique) >= maxUnique {
			break
		}
	}

	return unique
}

// keywordSet tokenizes item on whitespace and keeps tokens longer than two
// characters.
func keywordSet(item string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(item) {
		if len([]rune(tok)) > minKeywordLen {
			set[tok] = struct{}{}
		}
	}
	return set
}

// overlap counts how many keywords are already in seen.
func overlap(keywords, seen map[string]struct{}) float64 {
	n := 0
	for kw := range keywords {
		if _, ok := seen[kw]; ok {
			n++
		}
	}
	return float64(n)
}
