/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"math"
	"slices"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

// ComputeTiebreak evaluates one tiebreak for player id. points holds every
// player's final score and ratings every known rating (0 when unrated).
// Opponent based tiebreaks only consider games played over the board.
// Kinds without an implementation, such as direct encounter, are 0.
func ComputeTiebreak(kind TiebreakType, id chess.PlayerID,
	games []chess.Game, points map[chess.PlayerID]float64,
	ratings map[chess.PlayerID]int) float64 {

	mine := playerGames(id, games)

	switch kind {
	case TiebreakBuchholz:
		return sum(opponentPoints(id, mine, points))
	case TiebreakBuchholzCut1:
		ops := opponentPoints(id, mine, points)
		if len(ops) == 0 {
			return 0
		}
		slices.Sort(ops)
		return sum(ops[1:])
	case TiebreakBuchholzCut2:
		ops := opponentPoints(id, mine, points)
		if len(ops) < 3 {
			return sum(ops)
		}
		slices.Sort(ops)
		return sum(ops[1 : len(ops)-1])
	case TiebreakSonnebornBerger:
		sb := 0.0
		for _, g := range mine {
			if isOverTheBoard(g) {
				sb += g.ScoreFor(id) * points[g.Opponent(id)]
			}
		}
		return sb
	case TiebreakProgressive:
		running, total := 0.0, 0.0
		for _, g := range mine {
			running += g.ScoreFor(id)
			total += running
		}
		return total
	case TiebreakWins:
		return float64(countGames(id, mine, func(g chess.Game) bool {
			return !g.IsBye() && g.ScoreFor(id) == 1
		}))
	case TiebreakBlackGames:
		return float64(countGames(id, mine, func(g chess.Game) bool {
			return isOverTheBoard(g) && g.Black == id
		}))
	case TiebreakBlackWins:
		return float64(countGames(id, mine, func(g chess.Game) bool {
			return isOverTheBoard(g) && g.Black == id && g.ScoreFor(id) == 1
		}))
	case TiebreakARO:
		return averageRating(id, mine, ratings)
	case TiebreakPerformance:
		if pr := performanceRating(id, mine, ratings); pr != nil {
			return float64(*pr)
		}
	}

	return 0
}

// PerformanceRating is the average rating of rated opponents adjusted by
// 400 times the score fraction above or below one half. It is nil when id
// faced no rated opponent over the board.
func PerformanceRating(id chess.PlayerID, games []chess.Game,
	ratings map[chess.PlayerID]int) *int {

	return performanceRating(id, playerGames(id, games), ratings)
}

func performanceRating(id chess.PlayerID, mine []chess.Game,
	ratings map[chess.PlayerID]int) *int {

	count, total, score := 0, 0, 0.0
	for _, g := range mine {
		if !isOverTheBoard(g) {
			continue
		}
		r := ratings[g.Opponent(id)]
		if r <= 0 {
			continue
		}
		count++
		total += r
		score += g.ScoreFor(id)
	}
	if count == 0 {
		return nil
	}

	avg := float64(total) / float64(count)
	pr := int(math.Round(avg + 400*(score/float64(count)-0.5)))
	return &pr
}

func averageRating(id chess.PlayerID, mine []chess.Game,
	ratings map[chess.PlayerID]int) float64 {

	count, total := 0, 0
	for _, g := range mine {
		if !isOverTheBoard(g) {
			continue
		}
		if r := ratings[g.Opponent(id)]; r > 0 {
			count++
			total += r
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// playerGames returns id's completed games in round order.
func playerGames(id chess.PlayerID, games []chess.Game) []chess.Game {
	var ret []chess.Game
	for _, g := range games {
		if g.Involves(id) && g.IsCompleted() {
			ret = append(ret, g)
		}
	}
	slices.SortStableFunc(ret, func(a, b chess.Game) int {
		return a.Round - b.Round
	})
	return ret
}

func isOverTheBoard(g chess.Game) bool {
	return !g.IsBye() && g.Outcome().IsPlayed()
}

func opponentPoints(id chess.PlayerID, mine []chess.Game,
	points map[chess.PlayerID]float64) []float64 {

	var ret []float64
	for _, g := range mine {
		if isOverTheBoard(g) {
			ret = append(ret, points[g.Opponent(id)])
		}
	}
	return ret
}

func countGames(id chess.PlayerID, mine []chess.Game,
	match func(chess.Game) bool) int {

	n := 0
	for _, g := range mine {
		if match(g) {
			n++
		}
	}
	return n
}

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}
