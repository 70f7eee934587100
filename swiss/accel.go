/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

const minAcceleratedField = 16

// ApplyAcceleration adds virtual points to the stronger half of a large
// field in the first two rounds so the top seeds do not meet too early.
// It reports whether any adjustment was made. Only VirtualPoints change.
func ApplyAcceleration(players []*SwissPlayer, round int) bool {
	n := len(players)
	if round < 1 || round > 2 || n < minAcceleratedField {
		return false
	}

	sorted := append([]*SwissPlayer(nil), players...)
	sortByRating(sorted)

	quarter, eighth := n/4, n/8
	for i, p := range sorted[:n/2] {
		switch {
		case round == 1 && i < quarter:
			p.VirtualPoints += 1.0
		case round == 1:
			p.VirtualPoints += 0.5
		case p.Points >= 1.0 && i < eighth:
			p.VirtualPoints += 0.5
		case p.Points >= 1.0:
			p.VirtualPoints += 0.25
		case i < quarter:
			p.VirtualPoints += 0.5
		default:
			p.VirtualPoints += 0.25
		}
	}

	return true
}
