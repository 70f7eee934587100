/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package chess holds the tournament records shared by the pairing engine,
// the standings calculator and the data sources that feed them.
package chess

// PlayerID identifies a player within one tournament. NoPlayer marks the
// empty side of a bye.
type PlayerID int64

const NoPlayer PlayerID = 0

const RatingUnrated = 0

// Player is the registration record for one participant.
type Player struct {
	ID      PlayerID `json:"id" yaml:"id" db:"id"`
	Name    string   `json:"name" yaml:"name" db:"name"`
	Rating  int      `json:"rating" yaml:"rating" db:"rating"`
	Club    string   `json:"club,omitempty" yaml:"club,omitempty" db:"club"`
	Country string   `json:"country,omitempty" yaml:"country,omitempty" db:"country"`
}

func (p Player) IsRated() bool {
	return p.Rating > RatingUnrated
}

// PlayerResult is a player's standing going into the next round.
type PlayerResult struct {
	ID          PlayerID `json:"id"`
	Points      float64  `json:"points"`
	GamesPlayed int      `json:"gamesPlayed"`
	Wins        int      `json:"wins"`
	Draws       int      `json:"draws"`
	Losses      int      `json:"losses"`
}

// Game is one board of one round. A game whose Black side is NoPlayer is a
// bye; its Result carries the points awarded to White.
type Game struct {
	Round  int      `json:"round" db:"round"`
	White  PlayerID `json:"white" db:"white_id"`
	Black  PlayerID `json:"black" db:"black_id"`
	Result string   `json:"result" db:"result"`
}

func (g Game) IsBye() bool {
	return g.Black == NoPlayer
}

func (g Game) Outcome() Outcome {
	return ParseResult(g.Result)
}

// IsCompleted reports whether the game carries a final result.
func (g Game) IsCompleted() bool {
	o := g.Outcome()
	return o != OutcomeOngoing && o != OutcomeUnknown
}

// Involves reports whether id sat on either side of the board.
func (g Game) Involves(id PlayerID) bool {
	return id != NoPlayer && (g.White == id || g.Black == id)
}

// Opponent returns the other side of the board from id's perspective.
func (g Game) Opponent(id PlayerID) PlayerID {
	if g.White == id {
		return g.Black
	}
	return g.White
}

// ColorOf returns the colour id played; ok is false for byes and for games
// id did not play.
func (g Game) ColorOf(id PlayerID) (Color, bool) {
	if g.IsBye() {
		return White, false
	}
	switch id {
	case g.White:
		return White, true
	case g.Black:
		return Black, true
	}
	return White, false
}

// ScoreFor returns the points id earned from this game.
func (g Game) ScoreFor(id PlayerID) float64 {
	if g.IsBye() {
		if g.White != id {
			return 0
		}
		return byePoints(g.Result)
	}
	w, b := g.Outcome().Points()
	if id == g.White {
		return w
	}
	if id == g.Black {
		return b
	}
	return 0
}

func byePoints(result string) float64 {
	switch ParseResult(result) {
	case OutcomeWhiteWins, OutcomeWhiteForfeitWin:
		return 1.0
	case OutcomeDraw:
		return 0.5
	}
	return 0
}

// ResultsFromGames totals the completed games and byes of every player.
// Forfeits count towards wins and losses.
func ResultsFromGames(players []Player, games []Game) []PlayerResult {
	ret := make([]PlayerResult, 0, len(players))
	for _, p := range players {
		res := PlayerResult{ID: p.ID}
		for _, g := range games {
			if !g.Involves(p.ID) || !g.IsCompleted() {
				continue
			}
			score := g.ScoreFor(p.ID)
			res.Points += score
			if g.IsBye() {
				continue
			}
			res.GamesPlayed++
			switch score {
			case 1:
				res.Wins++
			case 0.5:
				res.Draws++
			default:
				res.Losses++
			}
		}
		ret = append(ret, res)
	}
	return ret
}
