/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"slices"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

// GeneratePairings pairs round for players given their current results,
// every game played so far and the bye/float history (which may be nil).
// Requested byes and withdrawals are taken from opts.
//
// An error is returned only for malformed input. Pairings that break an
// invariant are reported in PairingResult.ValidationErrors and recoverable
// oddities in PairingResult.Warnings.
func GeneratePairings(players []chess.Player, results []chess.PlayerResult,
	games []chess.Game, round int, hist *History,
	opts Options) (*PairingResult, error) {

	err := validateInput(players, round, opts)
	if err != nil {
		return nil, err
	}

	res := &PairingResult{
		Round:  round,
		Floats: make(map[chess.PlayerID]FloatDirection),
	}

	withdrawn := idSet(opts.Withdrawn)
	requested := idSet(opts.RequestedByes)
	var active []*SwissPlayer
	for _, p := range BuildPlayers(players, results, games, hist) {
		if withdrawn[p.ID()] {
			continue
		}
		if requested[p.ID()] {
			res.Byes = append(res.Byes, Bye{Player: p,
				Reason: ByeReasonRequested, Points: requestedByePoints})
			continue
		}
		active = append(active, p)
	}

	if !opts.DisableAcceleration {
		ApplyAcceleration(active, round)
	}

	pr := &pairer{
		res:     res,
		groups:  FormScoreGroups(active),
		round:   round,
		opts:    opts,
		budget:  FloatBudget(len(active), round),
		needBye: len(active)%2 == 1,
		taken:   make(map[chess.PlayerID]bool),
	}
	pr.run()

	for i := range res.Pairings {
		res.Pairings[i].BoardNumber = i + 1
	}
	res.ValidationErrors = append(res.ValidationErrors,
		ValidatePairings(res)...)

	return res, nil
}

type pairer struct {
	res      *PairingResult
	groups   []ScoreGroup
	round    int
	opts     Options
	budget   int
	needBye  bool
	byeGiven bool
	// taken marks players pulled up out of a group not yet processed
	taken map[chess.PlayerID]bool
}

func (pr *pairer) run() {
	var carried []*SwissPlayer
	for gi := range pr.groups {
		bottom := gi == len(pr.groups)-1

		group := carried
		carried = nil
		for _, p := range pr.groups[gi].Players {
			if !pr.taken[p.ID()] {
				group = append(group, p)
			}
		}
		sortByRating(group)

		if len(group)%2 == 1 {
			if floater := pr.pullFloater(gi, group); floater != nil {
				group = append(group, floater)
				sortByRating(group)
			} else if pr.needBye && !pr.byeGiven &&
				(bottom || hasNeverByed(group)) {
				group = pr.giveBye(group)
			} else if !bottom {
				var down *SwissPlayer
				down, group = pr.carryDown(group)
				carried = append(carried, down)
			}
		}

		leftovers := pr.matchGroup(group)
		if bottom {
			pr.resolveBottom(leftovers)
			continue
		}
		for _, p := range leftovers {
			if pr.taken[p.ID()] {
				pr.returnFloater(p)
				continue
			}
			pr.float(p, FloatDown)
			carried = append(carried, p)
		}
	}
	pr.checkBudget()
}

func (pr *pairer) giveBye(group []*SwissPlayer) []*SwissPlayer {
	p := SelectBye(group)
	pr.res.Byes = append(pr.res.Byes, Bye{Player: p, Reason: ByeReasonOdd,
		Points: oddByePoints})
	pr.byeGiven = true

	return slices.DeleteFunc(group, func(q *SwissPlayer) bool {
		return q == p
	})
}

// resolveBottom disposes of players the bottom group could not pair
// without a rematch. Rematches are forced rather than leaving anyone out.
func (pr *pairer) resolveBottom(left []*SwissPlayer) {
	if len(left)%2 == 1 && pr.needBye && !pr.byeGiven {
		left = pr.giveBye(left)
	}
	for len(left) >= 2 {
		a := left[0]
		best := 1
		bestScore := CompatibilityScore(a, left[1], pr.opts)
		for j := 2; j < len(left); j++ {
			if s := CompatibilityScore(a, left[j], pr.opts); s > bestScore {
				best = j
				bestScore = s
			}
		}
		b := left[best]
		if a.HasPlayed(b.ID()) {
			pr.warn(fmt.Sprintf("forced rematch: %v (%d) vs %v (%d)",
				a.Name(), a.ID(), b.Name(), b.ID()))
		}
		pr.addPairing(a, b)
		left = slices.Delete(left, best, best+1)[1:]
	}
	for _, p := range left {
		pr.res.ValidationErrors = append(pr.res.ValidationErrors,
			fmt.Sprintf("player %v (%d) left unpaired", p.Name(), p.ID()))
	}
}

func (pr *pairer) addPairing(a, b *SwissPlayer) {
	white, black := AssignColors(a, b)
	pr.res.Pairings = append(pr.res.Pairings,
		Pairing{White: white, Black: black})
}

func (pr *pairer) warn(msg string) {
	pr.res.Warnings = append(pr.res.Warnings, msg)
}

func hasNeverByed(group []*SwissPlayer) bool {
	for _, p := range group {
		if p.ByeCount == 0 {
			return true
		}
	}
	return false
}

func idSet(ids []chess.PlayerID) map[chess.PlayerID]bool {
	set := make(map[chess.PlayerID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func validateInput(players []chess.Player, round int, opts Options) error {
	if len(players) == 0 {
		return &chess.InputError{Field: "players", Reason: "no players"}
	}
	if round < 1 {
		return &chess.InputError{Field: "round",
			Reason: fmt.Sprintf("round %d is before round 1", round)}
	}
	if opts.TotalRounds > 0 && round > opts.TotalRounds {
		return &chess.InputError{Field: "round",
			Reason: fmt.Sprintf("round %d exceeds %d rounds", round,
				opts.TotalRounds)}
	}

	known := make(map[chess.PlayerID]bool, len(players))
	for _, p := range players {
		if p.ID == chess.NoPlayer {
			return &chess.InputError{Field: "players",
				Reason: fmt.Sprintf("player %q has no id", p.Name)}
		}
		if known[p.ID] {
			return &chess.InputError{Field: "players",
				Reason: fmt.Sprintf("duplicate player id %d", p.ID)}
		}
		if p.Rating < 0 {
			return &chess.InputError{Field: "rating",
				Reason: fmt.Sprintf("player %d has negative rating %d", p.ID,
					p.Rating)}
		}
		known[p.ID] = true
	}

	withdrawn := idSet(opts.Withdrawn)
	for _, id := range opts.RequestedByes {
		if !known[id] {
			return &chess.NotFoundError{ID: id}
		}
		if withdrawn[id] {
			return &chess.InputError{Field: "byes",
				Reason: fmt.Sprintf("player %d withdrew and requested a bye",
					id)}
		}
	}
	for _, id := range opts.Withdrawn {
		if !known[id] {
			return &chess.NotFoundError{ID: id}
		}
	}

	return nil
}

// ValidatePairings checks res for self pairings, players appearing more
// than once and non-contiguous board numbers.
func ValidatePairings(res *PairingResult) []string {
	var errs []string
	seen := make(map[chess.PlayerID]bool)
	note := func(p *SwissPlayer) {
		if seen[p.ID()] {
			errs = append(errs, fmt.Sprintf("player %d appears more than once",
				p.ID()))
		}
		seen[p.ID()] = true
	}

	for i, p := range res.Pairings {
		if p.BoardNumber != i+1 {
			errs = append(errs, fmt.Sprintf("board %d out of sequence at %d",
				p.BoardNumber, i+1))
		}
		if p.White == nil {
			errs = append(errs, fmt.Sprintf("board %d has no white player",
				p.BoardNumber))
			continue
		}
		note(p.White)
		if p.Black == nil {
			continue
		}
		if p.Black.ID() == p.White.ID() {
			errs = append(errs, fmt.Sprintf("player %d paired with itself",
				p.White.ID()))
			continue
		}
		note(p.Black)
	}
	for _, b := range res.Byes {
		note(b.Player)
	}

	return errs
}
