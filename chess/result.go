/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chess

import (
	"strings"
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Outcome is the classified form of a game's result string.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWhiteWins
	OutcomeBlackWins
	OutcomeDraw
	OutcomeWhiteForfeitWin
	OutcomeBlackForfeitWin
	OutcomeDoubleForfeit
	OutcomeOngoing
)

// ParseResult classifies a result string such as "1-0", "1/2-1/2" or "*".
func ParseResult(result string) Outcome {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(result), " ", ""))
	switch s {
	case "1-0":
		return OutcomeWhiteWins
	case "0-1":
		return OutcomeBlackWins
	case "1/2-1/2", "½-½", "0.5-0.5", "=-=":
		return OutcomeDraw
	case "1F-0F", "+:-", "+/-":
		return OutcomeWhiteForfeitWin
	case "0F-1F", "-:+", "-/+":
		return OutcomeBlackForfeitWin
	case "0F-0F", "-:-", "-/-":
		return OutcomeDoubleForfeit
	case "*", "":
		return OutcomeOngoing
	}
	return OutcomeUnknown
}

// Points returns the points scored by white and black.
func (o Outcome) Points() (float64, float64) {
	switch o {
	case OutcomeWhiteWins, OutcomeWhiteForfeitWin:
		return 1, 0
	case OutcomeBlackWins, OutcomeBlackForfeitWin:
		return 0, 1
	case OutcomeDraw:
		return 0.5, 0.5
	}
	return 0, 0
}

// IsForfeit reports whether the game was decided without being played.
func (o Outcome) IsForfeit() bool {
	return o == OutcomeWhiteForfeitWin || o == OutcomeBlackForfeitWin ||
		o == OutcomeDoubleForfeit
}

// IsPlayed reports whether the game was completed over the board.
func (o Outcome) IsPlayed() bool {
	return o == OutcomeWhiteWins || o == OutcomeBlackWins || o == OutcomeDraw
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWhiteWins:
		return "1-0"
	case OutcomeBlackWins:
		return "0-1"
	case OutcomeDraw:
		return "1/2-1/2"
	case OutcomeWhiteForfeitWin:
		return "1F-0F"
	case OutcomeBlackForfeitWin:
		return "0F-1F"
	case OutcomeDoubleForfeit:
		return "0F-0F"
	case OutcomeOngoing:
		return "*"
	}
	return "?"
}
