// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedupe

import (
	"fmt"
	"reflect"
	"testing"
)

func TestPointsCollapsesNearDuplicates(t *testing.T) {
	in := []string{
		"Lightweight and portable",
		"Lightweight and compact", // shares {Lightweight, and} with the first: 2 of 3 keywords seen
		"Great battery life",
	}
	want := []string{
		"Lightweight and portable",
		"Great battery life",
	}

	got := Points(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Points(%v) = %v, want %v", in, got, want)
	}
}

func TestPointsKeepsDistinctItems(t *testing.T) {
	in := []string{
		"Bright display panel",
		"Quiet cooling fans",
		"Sturdy aluminum chassis",
	}

	got := Points(in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Points(%v) = %v, want all kept", in, got)
	}
}

func TestPointsIdempotent(t *testing.T) {
	in := []string{
		"Excellent keyboard feel overall",
		"Excellent keyboard layout overall",
		"Speakers sound thin",
		"Speakers sound hollow and thin",
		"Port selection is generous",
	}

	once := Points(in)
	twice := Points(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent: first %v, second %v", once, twice)
	}
}

func TestPointsCap(t *testing.T) {
	var in []string
	for i := 0; i < 30; i++ {
		// Distinct keywords per item so nothing is collapsed.
		in = append(in, fmt.Sprintf("unique%02d feature%02d detail%02d", i, i, i))
	}

	got := Points(in)
	if len(got) != maxUnique {
		t.Errorf("len = %d, want %d", len(got), maxUnique)
	}
}

func TestPointsPreservesOrder(t *testing.T) {
	in := []string{
		"zzz last alphabetically first seen",
		"aaa first alphabetically second seen",
	}

	got := Points(in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("order changed: %v", got)
	}
}

func TestPointsEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "nil input",
			in:   nil,
			want: nil,
		},
		{
			name: "empty slice",
			in:   []string{},
			want: nil,
		},
		{
			name: "short-token items always accepted",
			in:   []string{"ok", "ok", "no"},
			want: []string{"ok", "ok", "no"},
		},
		{
			name: "single item",
			in:   []string{"Battery lasts all day"},
			want: []string{"Battery lasts all day"},
		},
		{
			name: "exact duplicate dropped",
			in:   []string{"Battery lasts all day", "Battery lasts all day"},
			want: []string{"Battery lasts all day"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Points(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Points(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPointsMultibyteKeywords(t *testing.T) {
	// Keyword length is measured in runes, not bytes, so three-character
	// Korean words count as keywords.
	in := []string{
		"배터리 오래갑니다 정말로",
		"배터리 오래갑니다 확실히", // 2 of 3 keywords already seen
	}

	got := Points(in)
	if len(got) != 1 {
		t.Errorf("Points(%v) = %v, want 1 surviving item", in, got)
	}
}
