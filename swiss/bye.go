/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// SelectBye picks who sits out from candidates. Preference goes to the
// lowest rated bye-eligible player who never had a bye, then the lowest
// rated player who never had a bye, then the lowest rated player with the
// fewest byes. Remaining ties go to the highest player id. Returns nil when
// candidates is empty.
func SelectBye(candidates []*SwissPlayer) *SwissPlayer {
	var best *SwissPlayer
	for _, p := range candidates {
		if best == nil || byeBefore(p, best) {
			best = p
		}
	}
	return best
}

func byeTier(p *SwissPlayer) int {
	switch {
	case p.ByeCount == 0 && p.IsByeEligible:
		return 0
	case p.ByeCount == 0:
		return 1
	}
	return 2
}

func byeBefore(a, b *SwissPlayer) bool {
	ta, tb := byeTier(a), byeTier(b)
	if ta != tb {
		return ta < tb
	}
	if a.ByeCount != b.ByeCount {
		return a.ByeCount < b.ByeCount
	}
	if a.Rating != b.Rating {
		return a.Rating < b.Rating
	}
	return a.ID() > b.ID()
}
