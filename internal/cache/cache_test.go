// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	cfg := types.CacheConfig{
		SQLitePath: filepath.Join(t.TempDir(), "insight.db"),
		Timeout:    5 * time.Second,
	}
	store, err := OpenSQLite(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecords() []Record {
	return []Record{
		{Type: TypePro, Content: "Great battery life"},
		{Type: TypePro, Content: "Bright display"},
		{Type: TypeCon, Content: "Expensive"},
	}
}

// --- SQLite store ---

func TestSQLiteSaveAndLookup(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "WidgetPro", types.DomainProduct, sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Lookup(ctx, "WidgetPro", types.DomainProduct)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !reflect.DeepEqual(got, sampleRecords()) {
		t.Errorf("Lookup = %+v, want %+v", got, sampleRecords())
	}
}

func TestSQLiteLookupMiss(t *testing.T) {
	store := testStore(t)

	got, err := store.Lookup(context.Background(), "never stored", types.DomainProduct)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Lookup miss returned %d records", len(got))
	}
}

func TestSQLiteExactKeyMatch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "WidgetPro", types.DomainProduct, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	// Differing case and whitespace are different keys, and so is the
	// same subject in another domain.
	for _, tt := range []struct {
		subject string
		domain  types.Domain
	}{
		{"widgetpro", types.DomainProduct},
		{"WidgetPro ", types.DomainProduct},
		{"WidgetPro", types.DomainCareer},
	} {
		got, err := store.Lookup(ctx, tt.subject, tt.domain)
		if err != nil {
			t.Fatalf("Lookup(%q, %q): %v", tt.subject, tt.domain, err)
		}
		if len(got) != 0 {
			t.Errorf("Lookup(%q, %q) = %d records, want miss", tt.subject, tt.domain, len(got))
		}
	}
}

func TestSQLiteSaveReplacesPrevious(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "WidgetPro", types.DomainProduct, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	replacement := []Record{{Type: TypeCon, Content: "Fans got louder after a year"}}
	if err := store.Save(ctx, "WidgetPro", types.DomainProduct, replacement); err != nil {
		t.Fatal(err)
	}

	got, err := store.Lookup(ctx, "WidgetPro", types.DomainProduct)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, replacement) {
		t.Errorf("Lookup after replace = %+v, want %+v", got, replacement)
	}
}

func TestOpenPicksSQLiteWithoutDatabaseURL(t *testing.T) {
	cfg := types.CacheConfig{SQLitePath: filepath.Join(t.TempDir(), "x.db")}
	store, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*SQLiteStore); !ok {
		t.Errorf("Open returned %T, want *SQLiteStore", store)
	}
}

// --- record conversion ---

func TestToResult(t *testing.T) {
	got := ToResult("WidgetPro", types.DomainProduct, sampleRecords())

	want := types.FinalResult{
		Subject: "WidgetPro",
		Domain:  types.DomainProduct,
		Pros:    []string{"Great battery life", "Bright display"},
		Cons:    []string{"Expensive"},
		Method:  types.MethodCache,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToResult = %+v, want %+v", got, want)
	}
	if len(got.Sources) != 0 {
		t.Error("cache results must not carry sources")
	}
}

func TestFromResultRoundTrip(t *testing.T) {
	result := types.FinalResult{
		Subject: "WidgetPro",
		Domain:  types.DomainProduct,
		Pros:    []string{"Great battery life", "Bright display"},
		Cons:    []string{"Expensive"},
		Method:  types.MethodFetch,
	}

	records := FromResult(result)
	back := ToResult(result.Subject, result.Domain, records)

	if !reflect.DeepEqual(back.Pros, result.Pros) || !reflect.DeepEqual(back.Cons, result.Cons) {
		t.Errorf("round trip lost findings: %+v", back)
	}
	if back.Method != types.MethodCache {
		t.Errorf("method = %q, want cache", back.Method)
	}
}
