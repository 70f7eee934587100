/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

// Inputs is one cross table section expressed as pairing engine inputs.
// Player ids are the section's pair numbers.
type Inputs struct {
	Players []chess.Player
	Results []chess.PlayerResult
	Games   []chess.Game
	// History is rebuilt from the cross table: full byes count towards
	// rotation, and a player paired against a different pre-round score
	// floated towards it.
	History *swiss.History
}

// Inputs converts the section into engine inputs. A game is emitted once,
// from the white side; when neither side records a colour the lower pair
// number takes white.
func (xt *CrossTable) Inputs() *Inputs {
	in := &Inputs{History: swiss.NewHistory()}
	for _, e := range xt.PlayerEntries {
		in.Players = append(in.Players, chess.Player{
			ID:     chess.PlayerID(e.PairNum),
			Name:   e.PlayerName,
			Rating: e.PreRating,
		})
		in.Results = append(in.Results, entryResult(e))
	}

	seen := make(map[[3]int]bool)
	emit := func(round int, white, black int, result string) {
		key := [3]int{round, min(white, black), max(white, black)}
		if black != 0 && seen[key] {
			return
		}
		seen[key] = true
		in.Games = append(in.Games, chess.Game{
			Round:  round,
			White:  chess.PlayerID(white),
			Black:  chess.PlayerID(black),
			Result: result,
		})
	}
	for round := 1; round <= xt.NumRounds; round++ {
		// recorded colours first so they win over the pair number rule
		for _, color := range []string{"white", "black", ""} {
			for _, e := range xt.PlayerEntries {
				if round > len(e.Results) {
					continue
				}
				r := e.Results[round-1]
				if r.Color != color {
					continue
				}
				if white, black, result, ok := gameOf(e.PairNum, r); ok {
					emit(round, white, black, result)
				}
			}
		}
	}

	xt.rebuildHistory(in.History)

	return in
}

// gameOf orients one player's round result as white, black and a result
// string from white's perspective.
func gameOf(me int, r RoundResult) (int, int, string, bool) {
	opp := r.OpponentPairNum
	switch r.Outcome {
	case ResultFullBye:
		return me, 0, "1-0", true
	case ResultHalfBye:
		return me, 0, "1/2-1/2", true
	case ResultWinByForfeit:
		if opp == 0 {
			return me, 0, "1F-0F", true
		}
		return min(me, opp), max(me, opp),
			forfeitResult(me < opp), true
	case ResultLossByForfeit:
		if opp == 0 {
			return 0, 0, "", false
		}
		return min(me, opp), max(me, opp),
			forfeitResult(me > opp), true
	case ResultWin, ResultLoss, ResultDraw:
		if opp == 0 {
			return 0, 0, "", false
		}
	default:
		return 0, 0, "", false
	}

	result := "1/2-1/2"
	if r.Outcome != ResultDraw {
		whiteWon := r.Outcome == ResultWin
		if r.Color == "black" || (r.Color == "" && me > opp) {
			whiteWon = !whiteWon
		}
		result = "0-1"
		if whiteWon {
			result = "1-0"
		}
	}
	if r.Color == "black" || (r.Color == "" && me > opp) {
		return opp, me, result, true
	}
	return me, opp, result, true
}

func forfeitResult(whiteWon bool) string {
	if whiteWon {
		return "1F-0F"
	}
	return "0F-1F"
}

func entryResult(e CrossTableEntry) chess.PlayerResult {
	res := chess.PlayerResult{
		ID:     chess.PlayerID(e.PairNum),
		Points: e.TotalPoints,
	}
	for _, r := range e.Results {
		switch r.Outcome {
		case ResultWin:
			res.Wins++
			res.GamesPlayed++
		case ResultDraw:
			res.Draws++
			res.GamesPlayed++
		case ResultLoss:
			res.Losses++
			res.GamesPlayed++
		}
	}
	return res
}

func (r Result) points() float64 {
	switch r {
	case ResultWin, ResultWinByForfeit, ResultFullBye:
		return 1
	case ResultDraw, ResultHalfBye:
		return 0.5
	}
	return 0
}

func (xt *CrossTable) rebuildHistory(h *swiss.History) {
	scores := make(map[int]float64, len(xt.PlayerEntries))
	for round := 1; round <= xt.NumRounds; round++ {
		for _, e := range xt.PlayerEntries {
			if round > len(e.Results) {
				continue
			}
			r := e.Results[round-1]
			id := chess.PlayerID(e.PairNum)
			if r.Outcome == ResultFullBye {
				h.Byes[id]++
			}
			opp := r.OpponentPairNum
			if opp == 0 || r.Outcome == ResultHalfBye ||
				r.Outcome == ResultUnplayedGame {
				continue
			}
			switch {
			case scores[e.PairNum] > scores[opp]:
				h.Floats[id] = append(h.Floats[id],
					swiss.FloatEntry{Round: round, Direction: swiss.FloatDown})
			case scores[e.PairNum] < scores[opp]:
				h.Floats[id] = append(h.Floats[id],
					swiss.FloatEntry{Round: round, Direction: swiss.FloatUp})
			}
		}
		for _, e := range xt.PlayerEntries {
			if round <= len(e.Results) {
				scores[e.PairNum] += e.Results[round-1].Outcome.points()
			}
		}
	}
	h.LastRound = xt.NumRounds
}

// TournamentStore serves a fetched event's sections, keyed by section name,
// to the standings calculator.
type TournamentStore struct {
	t *Tournament
}

func NewTournamentStore(t *Tournament) *TournamentStore {
	return &TournamentStore{t: t}
}

func (s *TournamentStore) inputs(section string) (*Inputs, error) {
	xt, err := s.t.Section(section)
	if err != nil {
		return nil, err
	}
	return xt.Inputs(), nil
}

func (s *TournamentStore) GetPlayers(_ context.Context,
	section string) ([]chess.Player, error) {

	in, err := s.inputs(section)
	if err != nil {
		return nil, err
	}
	return in.Players, nil
}

func (s *TournamentStore) GetGames(_ context.Context,
	section string) ([]chess.Game, error) {

	in, err := s.inputs(section)
	if err != nil {
		return nil, err
	}
	return in.Games, nil
}

func (s *TournamentStore) GetPlayer(_ context.Context, section string,
	id chess.PlayerID) (chess.Player, error) {

	in, err := s.inputs(section)
	if err != nil {
		return chess.Player{}, err
	}
	for _, p := range in.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return chess.Player{}, &chess.NotFoundError{ID: id}
}
