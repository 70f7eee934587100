/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package swiss pairs one round of a Swiss system chess tournament. Players
// are grouped by score, odd groups are balanced with floats or a bye, and
// each group is matched greedily on a compatibility score that weighs rating
// proximity, colour balance, rematches and club mates.
//
// All functions are pure: they copy their inputs, perform no I/O and hold no
// shared state, so concurrent calls for different tournaments are safe.
// Callers must serialize calls for the same tournament round.
package swiss

import (
	"fmt"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

// DefaultRating is assumed for unrated players.
const DefaultRating = 1200

// SwissPlayer is a player enriched with everything the pairing engine needs
// for one round. It is rebuilt from authoritative history on every call.
type SwissPlayer struct {
	Player chess.Player
	Points float64
	// VirtualPoints are added by accelerated pairing and only influence
	// score group placement for the current round.
	VirtualPoints   float64
	Rating          int
	ColorHistory    []chess.Color
	Opponents       map[chess.PlayerID]struct{}
	ColorPreference ColorPreference
	IsByeEligible   bool
	ByeCount        int
	FloatHistory    []FloatDirection

	floats []FloatEntry
}

func (p *SwissPlayer) ID() chess.PlayerID {
	return p.Player.ID
}

func (p *SwissPlayer) Name() string {
	return p.Player.Name
}

// PairingPoints is the score used for grouping this round.
func (p *SwissPlayer) PairingPoints() float64 {
	return p.Points + p.VirtualPoints
}

func (p *SwissPlayer) HasPlayed(id chess.PlayerID) bool {
	_, ok := p.Opponents[id]
	return ok
}

// floatedIn reports whether the player floated in dir during round.
func (p *SwissPlayer) floatedIn(round int, dir FloatDirection) bool {
	for _, f := range p.floats {
		if f.Round == round && f.Direction == dir {
			return true
		}
	}
	return false
}

func (p *SwissPlayer) String() string {
	return fmt.Sprintf("%v(%d %v)", p.Player.Name, p.Rating, p.Points)
}

type FloatDirection int

const (
	FloatUp FloatDirection = iota
	FloatDown
)

func (d FloatDirection) String() string {
	if d == FloatUp {
		return "up"
	}
	return "down"
}

func (d FloatDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *FloatDirection) UnmarshalText(b []byte) error {
	switch string(b) {
	case "up":
		*d = FloatUp
	case "down":
		*d = FloatDown
	default:
		return fmt.Errorf("unknown float direction %q", string(b))
	}
	return nil
}

// FloatEntry records one float in a given round.
type FloatEntry struct {
	Round     int            `json:"round"`
	Direction FloatDirection `json:"direction"`
}

type ByeReason int

const (
	ByeReasonOdd ByeReason = iota
	ByeReasonRequested
)

func (r ByeReason) String() string {
	if r == ByeReasonRequested {
		return "requested"
	}
	return "odd"
}

// Bye is a player sitting out the round.
type Bye struct {
	Player *SwissPlayer
	Reason ByeReason
	Points float64
}

const (
	oddByePoints       = 1.0
	requestedByePoints = 0.5
)

// Pairing is one board. Black is nil for a bye; byes are reported
// separately in PairingResult.Byes and never get a board.
type Pairing struct {
	White       *SwissPlayer
	Black       *SwissPlayer
	BoardNumber int
}

func (p Pairing) IsBye() bool {
	return p.Black == nil
}

// PairingResult is the outcome of pairing one round.
type PairingResult struct {
	Round      int
	Pairings   []Pairing
	Byes       []Bye
	FloatCount int
	Floats     map[chess.PlayerID]FloatDirection
	// ValidationErrors lists violated pairing invariants; a result with
	// validation errors should not be published.
	ValidationErrors []string
	// Warnings are non-fatal: forced rematches, float budget overruns.
	Warnings []string
}

// Games converts the result into the round's scheduled games: one ongoing
// game per board plus one bye game per bye.
func (r *PairingResult) Games() []chess.Game {
	games := make([]chess.Game, 0, len(r.Pairings)+len(r.Byes))
	for _, p := range r.Pairings {
		g := chess.Game{Round: r.Round, White: p.White.ID(), Result: "*"}
		if p.Black != nil {
			g.Black = p.Black.ID()
		}
		games = append(games, g)
	}
	for _, b := range r.Byes {
		result := "1-0"
		if b.Points < oddByePoints {
			result = "1/2-1/2"
		}
		games = append(games, chess.Game{Round: r.Round, White: b.Player.ID(),
			Result: result})
	}
	return games
}

// Options adjusts pairing behaviour. The zero value pairs with the default
// rules: acceleration on, rematches forbidden, club mates avoided.
type Options struct {
	// TotalRounds bounds the round number when non-zero.
	TotalRounds         int
	DisableAcceleration bool
	AllowRematches      bool
	IgnoreClubs         bool
	AvoidSameCountry    bool
	// RequestedByes sit out this round with a half point.
	RequestedByes []chess.PlayerID
	// Withdrawn players are not paired.
	Withdrawn []chess.PlayerID
}
