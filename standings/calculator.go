/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

// Store provides read-only access to a tournament's players and games.
type Store interface {
	GetPlayers(ctx context.Context, tournamentID string) ([]chess.Player,
		error)
	GetGames(ctx context.Context, tournamentID string) ([]chess.Game, error)
	GetPlayer(ctx context.Context, tournamentID string,
		id chess.PlayerID) (chess.Player, error)
}

type Calculator struct {
	store Store
	now   func() time.Time
}

func NewCalculator(store Store) *Calculator {
	return &Calculator{
		store: store,
		now:   time.Now,
	}
}

// CalculateStandings loads a tournament and ranks its players. Players who
// appear in games but not in the player list, such as withdrawn players,
// are resolved individually through the store.
func (c *Calculator) CalculateStandings(ctx context.Context,
	tournamentID string, cfg TiebreakConfig) (*StandingsResult, error) {

	players, err := c.store.GetPlayers(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("standings: failed to load players for %v: %w",
			tournamentID, err)
	}
	games, err := c.store.GetGames(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("standings: failed to load games for %v: %w",
			tournamentID, err)
	}

	known := make(map[chess.PlayerID]bool, len(players))
	for _, p := range players {
		known[p.ID] = true
	}
	for _, g := range games {
		for _, id := range []chess.PlayerID{g.White, g.Black} {
			if id == chess.NoPlayer || known[id] {
				continue
			}
			p, err := c.store.GetPlayer(ctx, tournamentID, id)
			if err != nil {
				return nil, fmt.Errorf("standings: failed to resolve player %v: %w",
					id, err)
			}
			players = append(players, p)
			known[id] = true
		}
	}

	standings, err := Calculate(players, games, cfg)
	if err != nil {
		return nil, err
	}

	return &StandingsResult{
		Standings:   standings,
		LastUpdated: c.now(),
		Config:      cfg,
	}, nil
}

// Calculate ranks players from the games played. Every player referenced by
// a game must be present in players. An empty tiebreak order ranks on
// points alone.
func Calculate(players []chess.Player, games []chess.Game,
	cfg TiebreakConfig) ([]PlayerStanding, error) {

	points := make(map[chess.PlayerID]float64, len(players))
	ratings := make(map[chess.PlayerID]int, len(players))
	for _, p := range players {
		points[p.ID] = 0
		ratings[p.ID] = p.Rating
	}
	for _, g := range games {
		for _, id := range []chess.PlayerID{g.White, g.Black} {
			if id == chess.NoPlayer {
				continue
			}
			if _, ok := points[id]; !ok {
				return nil, &chess.NotFoundError{ID: id}
			}
		}
		if !g.IsCompleted() {
			continue
		}
		points[g.White] += g.ScoreFor(g.White)
		if !g.IsBye() {
			points[g.Black] += g.ScoreFor(g.Black)
		}
	}

	ret := make([]PlayerStanding, 0, len(players))
	for _, p := range players {
		ps := PlayerStanding{
			Player:            p,
			Points:            points[p.ID],
			PerformanceRating: PerformanceRating(p.ID, games, ratings),
		}
		for _, g := range playerGames(p.ID, games) {
			if g.IsBye() {
				continue
			}
			ps.GamesPlayed++
			switch g.ScoreFor(p.ID) {
			case 1:
				ps.Wins++
			case 0.5:
				ps.Draws++
			default:
				ps.Losses++
			}
		}
		for _, kind := range cfg.Order {
			v := ComputeTiebreak(kind, p.ID, games, points, ratings)
			ps.TiebreakScores = append(ps.TiebreakScores, TiebreakScore{
				Type:    kind,
				Value:   v,
				Display: formatTiebreak(kind, v),
			})
		}
		ret = append(ret, ps)
	}

	SortStandings(ret)
	AssignRanks(ret)

	return ret, nil
}

func formatTiebreak(kind TiebreakType, v float64) string {
	switch kind {
	case TiebreakWins, TiebreakBlackGames, TiebreakBlackWins,
		TiebreakARO, TiebreakPerformance:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
