/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"slices"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

// BuildPlayers enriches every player with the state derived from results,
// completed games and the bye/float history. hist may be nil. Inputs are
// not modified.
func BuildPlayers(players []chess.Player, results []chess.PlayerResult,
	games []chess.Game, hist *History) []*SwissPlayer {

	points := make(map[chess.PlayerID]float64, len(results))
	for _, r := range results {
		points[r.ID] = r.Points
	}

	ordered := make([]chess.Game, 0, len(games))
	for _, g := range games {
		if g.IsCompleted() {
			ordered = append(ordered, g)
		}
	}
	slices.SortStableFunc(ordered, func(a, b chess.Game) int {
		return a.Round - b.Round
	})

	ret := make([]*SwissPlayer, 0, len(players))
	for _, p := range players {
		ret = append(ret, buildPlayer(p, points[p.ID], ordered, hist))
	}

	return ret
}

func buildPlayer(p chess.Player, points float64, games []chess.Game,
	hist *History) *SwissPlayer {

	sp := &SwissPlayer{
		Player:    p,
		Points:    points,
		Rating:    p.Rating,
		Opponents: make(map[chess.PlayerID]struct{}),
	}
	if !p.IsRated() {
		sp.Rating = DefaultRating
	}

	byeGames := 0
	forfeitWin := false
	for _, g := range games {
		if !g.Involves(p.ID) {
			continue
		}
		if g.IsBye() {
			// a forfeit against an absent opponent is not an allocated bye
			if g.Outcome().IsForfeit() {
				forfeitWin = forfeitWin || g.ScoreFor(p.ID) >= 1.0
				continue
			}
			// only a full-point bye is one the pairing allocated
			if g.ScoreFor(p.ID) >= oddByePoints {
				byeGames++
			}
			continue
		}
		outcome := g.Outcome()
		if outcome.IsForfeit() {
			if g.ScoreFor(p.ID) >= 1.0 {
				forfeitWin = true
			}
			continue
		}
		color, _ := g.ColorOf(p.ID)
		sp.ColorHistory = append(sp.ColorHistory, color)
		sp.Opponents[g.Opponent(p.ID)] = struct{}{}
	}

	sp.ByeCount = max(byeGames, hist.ByeCount(p.ID))
	sp.floats = hist.FloatsOf(p.ID)
	for _, f := range sp.floats {
		sp.FloatHistory = append(sp.FloatHistory, f.Direction)
	}
	sp.ColorPreference = ClassifyColorPreference(sp.ColorHistory)
	sp.IsByeEligible = sp.ByeCount == 0 && !forfeitWin

	return sp
}
