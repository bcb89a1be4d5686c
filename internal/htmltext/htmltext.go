// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmltext strips markup and boilerplate from fetched content,
// producing plain text suitable for prompting.
package htmltext

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mainContentSelectors are tried in order against a fetched page to locate
// the post body before falling back to whole-document text. They cover the
// blog layouts the search backend returns most often.
var mainContentSelectors = []string{
	"div.se-main-container",
	"div#postViewArea",
	"div.post_ct",
	"article",
	"main",
}

// Strip removes markup from a fragment such as a search-result title or
// snippet and returns trimmed plain text. Input that is not valid HTML is
// returned with whitespace collapsed.
func Strip(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Collapse(fragment)
	}
	return Collapse(doc.Text())
}

// ExtractMain parses a full HTML page and returns the plain text of its main
// content area. Script and style elements are dropped, whitespace is
// collapsed, and zero-width spaces are removed.
func ExtractMain(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	for _, sel := range mainContentSelectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := Collapse(node.Text()); text != "" {
				return text, nil
			}
		}
	}

	return Collapse(doc.Text()), nil
}

// Collapse trims the string, removes zero-width spaces, and collapses runs
// of whitespace (including newlines) into single spaces.
func Collapse(s string) string {
	s = strings.ReplaceAll(s, "​", "")
	return strings.Join(strings.Fields(s), " ")
}
