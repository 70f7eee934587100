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

// ScoreKey is a score scaled by 1000 so that equal scores compare equal
// regardless of floating point noise.
type ScoreKey int64

func KeyOf(points float64) ScoreKey {
	return ScoreKey(math.Round(points * 1000))
}

func (k ScoreKey) Points() float64 {
	return float64(k) / 1000
}

// ScoreGroup holds every player on the same pairing score, strongest first.
type ScoreGroup struct {
	Key     ScoreKey
	Players []*SwissPlayer
}

func (g ScoreGroup) Points() float64 {
	return g.Key.Points()
}

// FormScoreGroups partitions players by PairingPoints, highest group first.
func FormScoreGroups(players []*SwissPlayer) []ScoreGroup {
	byKey := make(map[ScoreKey][]*SwissPlayer)
	for _, p := range players {
		k := KeyOf(p.PairingPoints())
		byKey[k] = append(byKey[k], p)
	}

	groups := make([]ScoreGroup, 0, len(byKey))
	for k, members := range byKey {
		sortByRating(members)
		groups = append(groups, ScoreGroup{Key: k, Players: members})
	}
	slices.SortFunc(groups, func(a, b ScoreGroup) int {
		return cmp.Compare(b.Key, a.Key)
	})

	return groups
}

// sortByRating orders players by rating descending, then id ascending.
func sortByRating(players []*SwissPlayer) {
	slices.SortFunc(players, func(a, b *SwissPlayer) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
}
