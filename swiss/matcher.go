/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"cmp"
	"math"
	"slices"
)

const (
	baseCompatibility  = 1000.0
	rematchPenalty     = 10000.0
	sameClubPenalty    = 5000.0
	sameCountryPenalty = 5000.0
	scoreDiffPenalty   = 50.0
	ratingBandBonus    = 10.0
)

// CompatibilityScore rates how desirable it is to pair a with b; higher is
// better. The score is symmetric.
func CompatibilityScore(a, b *SwissPlayer, opts Options) float64 {
	score := baseCompatibility

	diff := a.Rating - b.Rating
	if diff < 0 {
		diff = -diff
	}
	score -= math.Min(float64(diff)/50, 100)
	score += colorCompatibility(a.ColorPreference, b.ColorPreference)

	if a.HasPlayed(b.ID()) {
		score -= rematchPenalty
	}
	if !opts.IgnoreClubs && sameNonEmpty(a.Player.Club, b.Player.Club) {
		score -= sameClubPenalty
	}
	if opts.AvoidSameCountry &&
		sameNonEmpty(a.Player.Country, b.Player.Country) {
		score -= sameCountryPenalty
	}
	if KeyOf(a.PairingPoints()) != KeyOf(b.PairingPoints()) {
		score -= scoreDiffPenalty *
			math.Abs(a.PairingPoints()-b.PairingPoints())
	}
	if diff >= 100 && diff <= 400 {
		score += ratingBandBonus
	}

	return score
}

func sameNonEmpty(a, b string) bool {
	return a != "" && a == b
}

// maxMatchSteps bounds the search in matchGroup. Once spent, the best
// pairing found so far is used.
const maxMatchSteps = 1 << 16

// matchGroup pairs group, which must be sorted strongest first. Partners are
// tried best score first, the earlier candidate winning ties, so the greedy
// pairing is kept whenever it leaves nobody over; otherwise earlier choices
// are revisited until the fewest players remain. Rematches are never chosen
// unless allowed. Players left without a partner are returned in order.
func (pr *pairer) matchGroup(group []*SwissPlayer) []*SwissPlayer {
	m := newGroupMatcher(group, pr.opts)
	m.search(0)

	matched := make([]bool, len(group))
	for _, pair := range m.best {
		matched[pair[0]] = true
		matched[pair[1]] = true
		pr.addPairing(group[pair[0]], group[pair[1]])
	}

	var leftovers []*SwissPlayer
	for i, p := range group {
		if !matched[i] {
			leftovers = append(leftovers, p)
		}
	}
	return leftovers
}

const (
	undecided = -1
	leftOver  = -2
)

type groupMatcher struct {
	// cands holds each player's legal later partners, best first
	cands    [][]int
	state    []int
	cur      [][2]int
	left     int
	best     [][2]int
	bestLeft int
	steps    int
	done     bool
}

func newGroupMatcher(group []*SwissPlayer, opts Options) *groupMatcher {
	m := &groupMatcher{
		cands:    make([][]int, len(group)),
		state:    make([]int, len(group)),
		bestLeft: len(group) + 1,
	}
	for i := range group {
		m.state[i] = undecided
		scores := make(map[int]float64)
		for j := i + 1; j < len(group); j++ {
			if !opts.AllowRematches && group[i].HasPlayed(group[j].ID()) {
				continue
			}
			m.cands[i] = append(m.cands[i], j)
			scores[j] = CompatibilityScore(group[i], group[j], opts)
		}
		slices.SortStableFunc(m.cands[i], func(a, b int) int {
			return cmp.Compare(scores[b], scores[a])
		})
	}
	return m
}

// search decides every player from index i on. Earlier players are
// already decided.
func (m *groupMatcher) search(i int) {
	m.steps++
	if m.steps > maxMatchSteps {
		m.done = true
	}
	if m.done || m.left >= m.bestLeft {
		return
	}
	for i < len(m.state) && m.state[i] != undecided {
		i++
	}
	if i == len(m.state) {
		m.best = slices.Clone(m.cur)
		m.bestLeft = m.left
		m.done = m.left == len(m.state)%2
		return
	}

	for _, j := range m.cands[i] {
		if m.state[j] != undecided {
			continue
		}
		m.state[i], m.state[j] = j, i
		m.cur = append(m.cur, [2]int{i, j})
		m.search(i + 1)
		m.cur = m.cur[:len(m.cur)-1]
		m.state[i], m.state[j] = undecided, undecided
		if m.done {
			return
		}
	}

	m.state[i] = leftOver
	m.left++
	m.search(i + 1)
	m.left--
	m.state[i] = undecided
}
