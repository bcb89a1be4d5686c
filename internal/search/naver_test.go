// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/insight-engine/pkg/types"
)

func testSearchConfig() types.SearchConfig {
	return types.SearchConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		Display:      10,
	}
}

func TestNaverSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Naver-Client-Id") != "test-id" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.URL.Query().Get("sort"); got != "sim" {
			t.Errorf("sort = %q, want sim", got)
		}
		if got := r.URL.Query().Get("display"); got != "10" {
			t.Errorf("display = %q, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"title": "<b>WidgetPro</b> review", "link": "https://blog.example.com/1",
				 "description": "battery &amp; <b>screen</b> notes", "postdate": "20250813"},
				{"title": "no link item", "link": "", "description": "dropped"},
				{"title": "second", "link": "https://blog.example.com/2", "description": "", "postdate": ""}
			]
		}`))
	}))
	defer ts.Close()

	old := naverAPIBase
	naverAPIBase = ts.URL
	defer func() { naverAPIBase = old }()

	p := &NaverProvider{Client: ts.Client()}
	results, err := p.Search(context.Background(), "WidgetPro pros review", testSearchConfig())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (linkless item dropped)", len(results))
	}
	if results[0].Title != "WidgetPro review" {
		t.Errorf("title markup not stripped: %q", results[0].Title)
	}
	if results[0].Snippet != "battery & screen notes" {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
	if results[0].PostDate != "20250813" {
		t.Errorf("postdate = %q", results[0].PostDate)
	}
}

func TestNaverSearchMissingCredentials(t *testing.T) {
	p := &NaverProvider{}
	_, err := p.Search(context.Background(), "query", types.SearchConfig{})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestNaverSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := naverAPIBase
	naverAPIBase = ts.URL
	defer func() { naverAPIBase = old }()

	p := &NaverProvider{Client: ts.Client()}
	_, err := p.Search(context.Background(), "query", testSearchConfig())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestNaverSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	old := naverAPIBase
	naverAPIBase = ts.URL
	defer func() { naverAPIBase = old }()

	p := &NaverProvider{Client: ts.Client()}
	_, err := p.Search(context.Background(), "query", testSearchConfig())
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}
