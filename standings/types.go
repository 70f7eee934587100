/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package standings ranks the players of a tournament by points and a
// configurable list of tiebreaks.
package standings

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

type TiebreakType int

const (
	TiebreakBuchholz TiebreakType = iota
	TiebreakBuchholzCut1
	TiebreakBuchholzCut2
	TiebreakSonnebornBerger
	TiebreakProgressive
	TiebreakWins
	TiebreakBlackGames
	TiebreakBlackWins
	TiebreakARO
	TiebreakDirectEncounter
	TiebreakPerformance
)

var tiebreakNames = []string{
	TiebreakBuchholz:        "buchholz",
	TiebreakBuchholzCut1:    "buchholz-cut1",
	TiebreakBuchholzCut2:    "buchholz-cut2",
	TiebreakSonnebornBerger: "sonneborn-berger",
	TiebreakProgressive:     "progressive",
	TiebreakWins:            "wins",
	TiebreakBlackGames:      "black-games",
	TiebreakBlackWins:       "black-wins",
	TiebreakARO:             "aro",
	TiebreakDirectEncounter: "direct-encounter",
	TiebreakPerformance:     "performance",
}

var tiebreakAbbrevs = []string{
	TiebreakBuchholz:        "Bh",
	TiebreakBuchholzCut1:    "BhC1",
	TiebreakBuchholzCut2:    "BhC2",
	TiebreakSonnebornBerger: "SB",
	TiebreakProgressive:     "Prog",
	TiebreakWins:            "Win",
	TiebreakBlackGames:      "BPG",
	TiebreakBlackWins:       "BWG",
	TiebreakARO:             "ARO",
	TiebreakDirectEncounter: "DE",
	TiebreakPerformance:     "Perf",
}

func (t TiebreakType) String() string {
	if t < 0 || int(t) >= len(tiebreakNames) {
		return fmt.Sprintf("tiebreak(%d)", int(t))
	}
	return tiebreakNames[t]
}

// Abbrev is the short column heading used in standings tables.
func (t TiebreakType) Abbrev() string {
	if t < 0 || int(t) >= len(tiebreakAbbrevs) {
		return "?"
	}
	return tiebreakAbbrevs[t]
}

func ParseTiebreakType(s string) (TiebreakType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tiebreakNames {
		if name == s {
			return TiebreakType(i), nil
		}
	}
	return 0, &chess.InputError{Field: "tiebreak",
		Reason: fmt.Sprintf("unknown tiebreak %q", s)}
}

// ParseTiebreakOrder parses a list of tiebreak names; an empty list yields
// the default order.
func ParseTiebreakOrder(names []string) ([]TiebreakType, error) {
	if len(names) == 0 {
		return DefaultTiebreakOrder(), nil
	}
	ret := make([]TiebreakType, 0, len(names))
	for _, n := range names {
		t, err := ParseTiebreakType(n)
		if err != nil {
			return nil, err
		}
		ret = append(ret, t)
	}
	return ret, nil
}

func DefaultTiebreakOrder() []TiebreakType {
	return []TiebreakType{TiebreakBuchholzCut1, TiebreakBuchholz,
		TiebreakSonnebornBerger, TiebreakProgressive}
}

// TiebreakConfig is the order in which tiebreaks break ties.
type TiebreakConfig struct {
	Order []TiebreakType
}

type TiebreakScore struct {
	Type    TiebreakType
	Value   float64
	Display string
}

type PlayerStanding struct {
	Player      chess.Player
	Rank        int
	Points      float64
	GamesPlayed int
	Wins        int
	Draws       int
	Losses      int
	// TiebreakScores follows TiebreakConfig.Order.
	TiebreakScores []TiebreakScore
	// PerformanceRating is nil when no rated opponent was faced.
	PerformanceRating *int
}

type StandingsResult struct {
	Standings   []PlayerStanding
	LastUpdated time.Time
	Config      TiebreakConfig
}
