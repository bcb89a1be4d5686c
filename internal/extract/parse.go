// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/insight-engine/pkg/types"
)

const (
	// insufficientSentinel is the phrase the prompt instructs the model to
	// return when the text carries no usable signal.
	insufficientSentinel = "insufficient information"

	// minBulletChars filters junk bullets: a bullet line (marker included)
	// must be longer than this many characters to be kept.
	minBulletChars = 5

	// maxPerList caps each list in a single document's result.
	maxPerList = 5
)

// parser section states.
type parseSection int

const (
	sectionNone parseSection = iota
	sectionPros
	sectionCons
)

// bulletMarkers are the list markers the model has been observed to use.
var bulletMarkers = []string{"-", "*", "•"}

// Parse reads the model's free-text reply into ordered pro and con lists.
// It tolerates minor formatting drift: header case and spacing vary, and
// bullets appear with several markers. The second return value is false
// when the reply is empty, contains the insufficient-information sentinel,
// or yields no usable bullets at all; those cases are indistinguishable to
// the caller on purpose.
func Parse(raw string) (types.ExtractionResult, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(strings.ToLower(raw), insufficientSentinel) {
		return types.ExtractionResult{}, false
	}

	var result types.ExtractionResult
	section := sectionNone

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case isHeader(line, "pros"):
			section = sectionPros
			continue
		case isHeader(line, "cons"):
			section = sectionCons
			continue
		}

		if len([]rune(line)) <= minBulletChars {
			continue
		}
		text, isBullet := trimBullet(line)
		if !isBullet || text == "" || section == sectionNone {
			continue
		}

		switch section {
		case sectionPros:
			if len(result.Pros) < maxPerList {
				result.Pros = append(result.Pros, text)
			}
		case sectionCons:
			if len(result.Cons) < maxPerList {
				result.Cons = append(result.Cons, text)
			}
		}
	}

	if result.Empty() {
		return types.ExtractionResult{}, false
	}
	return result, true
}

// isHeader reports whether line is a section header for name, tolerating
// case and spacing around the colon ("PROS:", "pros :", "Pros:").
func isHeader(line, name string) bool {
	lower := strings.ToLower(line)
	idx := strings.Index(lower, name)
	if idx < 0 {
		return false
	}
	rest := strings.TrimSpace(lower[idx+len(name):])
	return strings.HasPrefix(rest, ":")
}

// trimBullet strips a leading list marker and returns the remaining text.
func trimBullet(line string) (string, bool) {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}
