/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

type PreferenceStrength int

const (
	PreferenceNone PreferenceStrength = iota
	PreferenceMild
	PreferenceStrong
	PreferenceAbsolute
)

func (s PreferenceStrength) String() string {
	switch s {
	case PreferenceMild:
		return "mild"
	case PreferenceStrong:
		return "strong"
	case PreferenceAbsolute:
		return "absolute"
	}
	return "none"
}

// ColorPreference is the colour a player should receive next and how hard
// that requirement is. Color is meaningless when Strength is PreferenceNone.
type ColorPreference struct {
	Strength PreferenceStrength
	Color    chess.Color
}

func (cp ColorPreference) Wants(c chess.Color, s PreferenceStrength) bool {
	return cp.Strength == s && cp.Color == c
}

func (cp ColorPreference) String() string {
	if cp.Strength == PreferenceNone {
		return "none"
	}
	return fmt.Sprintf("%v %v", cp.Strength, cp.Color)
}

// ClassifyColorPreference derives the next-round preference from the
// colours played so far, most recent last. Three identical colours in a row
// demand the other colour; two in a row strongly prefer it; otherwise an
// imbalance of more than one game mildly prefers the under-played colour.
func ClassifyColorPreference(history []chess.Color) ColorPreference {
	n := len(history)
	if n == 0 {
		return ColorPreference{}
	}
	last := history[n-1]
	if n >= 3 && history[n-2] == last && history[n-3] == last {
		return ColorPreference{Strength: PreferenceAbsolute, Color: last.Opposite()}
	}
	if n >= 2 && history[n-2] == last {
		return ColorPreference{Strength: PreferenceStrong, Color: last.Opposite()}
	}

	whites := 0
	for _, c := range history {
		if c == chess.White {
			whites++
		}
	}
	blacks := n - whites
	if whites-blacks > 1 {
		return ColorPreference{Strength: PreferenceMild, Color: chess.Black}
	}
	if blacks-whites > 1 {
		return ColorPreference{Strength: PreferenceMild, Color: chess.White}
	}

	return ColorPreference{}
}

const colorBonus = 200.0

// colorCompatibility scores how well two preferences fit on one board.
// Complementary preferences earn a bonus scaled by the weaker side;
// conflicting ones cost a penalty by the weaker side, which must yield.
func colorCompatibility(a, b ColorPreference) float64 {
	if a.Strength == PreferenceNone || b.Strength == PreferenceNone {
		return 0
	}
	weaker := min(a.Strength, b.Strength)

	if a.Color != b.Color {
		switch {
		case weaker == PreferenceAbsolute:
			return colorBonus
		case a.Strength == PreferenceAbsolute || b.Strength == PreferenceAbsolute:
			return 0.9 * colorBonus
		case weaker == PreferenceStrong:
			return 0.6 * colorBonus
		default:
			return 0.3 * colorBonus
		}
	}

	switch weaker {
	case PreferenceAbsolute:
		return -100
	case PreferenceStrong:
		return -50
	default:
		return -10
	}
}

// AssignColors decides who takes white. Absolute preferences are honoured
// first, then strong ones; for each strength a white request is checked
// before a black request. Without a deciding preference the higher rated
// player gets white, and a is favoured on equal ratings.
func AssignColors(a, b *SwissPlayer) (white, black *SwissPlayer) {
	for _, s := range []PreferenceStrength{PreferenceAbsolute, PreferenceStrong} {
		switch {
		case a.ColorPreference.Wants(chess.White, s):
			return a, b
		case b.ColorPreference.Wants(chess.White, s):
			return b, a
		case a.ColorPreference.Wants(chess.Black, s):
			return b, a
		case b.ColorPreference.Wants(chess.Black, s):
			return a, b
		}
	}
	if b.Rating > a.Rating {
		return b, a
	}
	return a, b
}
