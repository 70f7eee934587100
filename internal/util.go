/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName collapses whitespace and title-cases each word of a name,
// so "JOHN  o'brien-SMITH" becomes "John O'Brien-Smith".
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		upNext := true
		for j, r := range runes {
			if upNext && unicode.IsLetter(r) {
				runes[j] = unicode.ToUpper(r)
			}
			upNext = r == '-' || r == '\'' || r == '.'
		}
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// ScoreToString renders a score with a ½ glyph: 2.5 is "2½", 0.5 is "½".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	if math.Abs(frac) < 0.25 {
		return fmt.Sprintf("%d", int(whole))
	}
	if whole == 0 {
		return "½"
	}
	return fmt.Sprintf("%d½", int(whole))
}
