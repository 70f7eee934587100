/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

const epsilon = 1e-9

func compareScore(a, b float64) int {
	if math.Abs(a-b) < epsilon {
		return 0
	}
	return cmp.Compare(a, b)
}

// compareStanding orders by points, then each tiebreak, all descending.
// Names are not considered.
func compareStanding(a, b *PlayerStanding) int {
	if c := compareScore(b.Points, a.Points); c != 0 {
		return c
	}
	for i := range min(len(a.TiebreakScores), len(b.TiebreakScores)) {
		c := compareScore(b.TiebreakScores[i].Value, a.TiebreakScores[i].Value)
		if c != 0 {
			return c
		}
	}
	return 0
}

// SortStandings orders standings best first: points, then the tiebreak
// vector in configured order, then name alphabetically.
func SortStandings(standings []PlayerStanding) {
	slices.SortStableFunc(standings, func(a, b PlayerStanding) int {
		if c := compareStanding(&a, &b); c != 0 {
			return c
		}
		return strings.Compare(a.Player.Name, b.Player.Name)
	})
}

// AssignRanks gives each run of sorted standings with equal points and
// tiebreaks the 1-based position of the run's first member, so ranks read
// 1, 1, 3 rather than 1, 1, 2.
func AssignRanks(standings []PlayerStanding) {
	for i := range standings {
		if i > 0 && compareStanding(&standings[i-1], &standings[i]) == 0 {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
}
