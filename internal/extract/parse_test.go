// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"

	"github.com/pdiddy/insight-engine/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   types.ExtractionResult
		wantOK bool
	}{
		{
			name:   "round trip",
			raw:    "PROS:\n- Lightweight\n- Fast\nCONS:\n- Expensive\n",
			want:   types.ExtractionResult{Pros: []string{"Lightweight", "Fast"}, Cons: []string{"Expensive"}},
			wantOK: true,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "insufficient information sentinel",
			raw:    "insufficient information",
			wantOK: false,
		},
		{
			name:   "sentinel embedded in a sentence",
			raw:    "There is insufficient information in this post to judge.",
			wantOK: false,
		},
		{
			name:   "lowercase headers with spaced colon",
			raw:    "pros :\n- Sharp display panel\ncons :\n- Heavy power brick",
			want:   types.ExtractionResult{Pros: []string{"Sharp display panel"}, Cons: []string{"Heavy power brick"}},
			wantOK: true,
		},
		{
			name:   "junk bullet filtered",
			raw:    "PROS:\n- ok\n- Comfortable keyboard\nCONS:\n- Expensive",
			want:   types.ExtractionResult{Pros: []string{"Comfortable keyboard"}, Cons: []string{"Expensive"}},
			wantOK: true,
		},
		{
			name:   "bullets before any header ignored",
			raw:    "- stray bullet line\nPROS:\n- Real finding here\nCONS:\n- Another one here",
			want:   types.ExtractionResult{Pros: []string{"Real finding here"}, Cons: []string{"Another one here"}},
			wantOK: true,
		},
		{
			name:   "alternate bullet markers",
			raw:    "PROS:\n* Strong speakers\n• Bright screen\nCONS:\n- Weak hinge design",
			want:   types.ExtractionResult{Pros: []string{"Strong speakers", "Bright screen"}, Cons: []string{"Weak hinge design"}},
			wantOK: true,
		},
		{
			name: "lists capped at five",
			raw: "PROS:\n- First pro finding\n- Second pro finding\n- Third pro finding\n" +
				"- Fourth pro finding\n- Fifth pro finding\n- Sixth pro finding\nCONS:\n- Only con finding",
			want: types.ExtractionResult{
				Pros: []string{
					"First pro finding", "Second pro finding", "Third pro finding",
					"Fourth pro finding", "Fifth pro finding",
				},
				Cons: []string{"Only con finding"},
			},
			wantOK: true,
		},
		{
			name:   "headers but no usable bullets",
			raw:    "PROS:\nCONS:\nno bullets at all",
			wantOK: false,
		},
		{
			name:   "pros only",
			raw:    "PROS:\n- Battery lasts two days",
			want:   types.ExtractionResult{Pros: []string{"Battery lasts two days"}},
			wantOK: true,
		},
		{
			name:   "narrative text around sections tolerated",
			raw:    "Here is my analysis.\n\nPROS:\n- Quiet under load\n\nSome commentary.\n\nCONS:\n- Runs hot gaming\n\nHope this helps.",
			want:   types.ExtractionResult{Pros: []string{"Quiet under load"}, Cons: []string{"Runs hot gaming"}},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
