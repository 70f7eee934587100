/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"math"
	"slices"
)

// FloatBudget is the soft limit on floats for a round of n players. A
// quarter of the field may float in the first two rounds; the allowance
// shrinks as the tournament progresses.
func FloatBudget(n int, round int) int {
	base := 0.25 * float64(n)
	switch {
	case round <= 2:
		return int(math.Floor(base))
	case round <= 5:
		return int(math.Floor(0.75 * base))
	}
	return int(math.Floor(0.5 * base))
}

// pullFloater removes and returns a player from the nearest lower group
// with someone in group they may still meet, the highest rated first and
// preferring one who did not float up last round. When no lower player can
// meet anyone in group, the nearest group's candidate is pulled anyway.
// Returns nil when the budget is spent or no lower player remains.
func (pr *pairer) pullFloater(gi int, group []*SwissPlayer) *SwissPlayer {
	if pr.res.FloatCount >= pr.budget {
		return nil
	}
	var fallback *SwissPlayer
	for gj := gi + 1; gj < len(pr.groups); gj++ {
		p, playable := pr.floaterCandidate(gj, group)
		if p == nil {
			continue
		}
		if playable {
			fallback = p
			break
		}
		if fallback == nil {
			fallback = p
		}
	}
	if fallback == nil {
		return nil
	}
	pr.taken[fallback.ID()] = true
	pr.float(fallback, FloatUp)
	return fallback
}

func (pr *pairer) floaterCandidate(gj int,
	group []*SwissPlayer) (*SwissPlayer, bool) {

	var pick *SwissPlayer
	pickRank := -1
	for _, p := range pr.groups[gj].Players {
		if pr.taken[p.ID()] {
			continue
		}
		rank := 0
		if pr.canMeetAny(p, group) {
			rank += 2
		}
		if !p.floatedIn(pr.round-1, FloatUp) {
			rank++
		}
		if rank > pickRank {
			pick, pickRank = p, rank
		}
	}
	return pick, pickRank >= 2
}

func (pr *pairer) canMeetAny(p *SwissPlayer, group []*SwissPlayer) bool {
	return slices.ContainsFunc(group, func(q *SwissPlayer) bool {
		return pr.opts.AllowRematches || !p.HasPlayed(q.ID())
	})
}

// returnFloater undoes the pull of a floater its new group could not pair.
// The player goes back to its own group.
func (pr *pairer) returnFloater(p *SwissPlayer) {
	delete(pr.taken, p.ID())
	delete(pr.res.Floats, p.ID())
	pr.res.FloatCount--
}

// carryDown removes the lowest rated player of group, preferring one who
// did not float down last round, and returns it with the rest.
func (pr *pairer) carryDown(group []*SwissPlayer) (*SwissPlayer,
	[]*SwissPlayer) {

	pick := len(group) - 1
	for i := len(group) - 1; i >= 0; i-- {
		if !group[i].floatedIn(pr.round-1, FloatDown) {
			pick = i
			break
		}
	}
	p := group[pick]
	rest := append(append([]*SwissPlayer(nil), group[:pick]...),
		group[pick+1:]...)
	pr.float(p, FloatDown)
	return p, rest
}

// float records p leaving its group in dir. A player carried down more than
// once counts as a single float.
func (pr *pairer) float(p *SwissPlayer, dir FloatDirection) {
	if prev, ok := pr.res.Floats[p.ID()]; ok && prev == dir {
		return
	}
	pr.res.FloatCount++
	pr.res.Floats[p.ID()] = dir
}

func (pr *pairer) checkBudget() {
	if pr.res.FloatCount > pr.budget {
		pr.warn(fmt.Sprintf("float budget exceeded: %d floats, budget %d",
			pr.res.FloatCount, pr.budget))
	}
}
