/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

// History accumulates the byes and floats handed out by the pairing engine
// so that later rounds can rotate them. Game records alone cannot tell a
// float apart from a normal pairing, so the caller must Record each
// finalized round and persist the History between calls.
//
// The zero value is not usable; use NewHistory. A nil *History reads as
// empty.
type History struct {
	// LastRound is the highest round recorded.
	LastRound int                             `json:"lastRound"`
	Byes      map[chess.PlayerID]int          `json:"byes"`
	Floats    map[chess.PlayerID][]FloatEntry `json:"floats"`
}

func NewHistory() *History {
	return &History{
		Byes:   make(map[chess.PlayerID]int),
		Floats: make(map[chess.PlayerID][]FloatEntry),
	}
}

// Record folds a finalized round into the history. Only byes allocated for
// an odd field count towards bye rotation; requested byes do not. Recording
// the same round twice is a no-op.
func (h *History) Record(res *PairingResult) {
	if res == nil || res.Round <= h.LastRound {
		return
	}
	if h.Byes == nil {
		h.Byes = make(map[chess.PlayerID]int)
	}
	if h.Floats == nil {
		h.Floats = make(map[chess.PlayerID][]FloatEntry)
	}

	for _, b := range res.Byes {
		if b.Reason == ByeReasonOdd {
			h.Byes[b.Player.ID()]++
		}
	}
	for id, dir := range res.Floats {
		h.Floats[id] = append(h.Floats[id],
			FloatEntry{Round: res.Round, Direction: dir})
	}
	h.LastRound = res.Round
}

func (h *History) ByeCount(id chess.PlayerID) int {
	if h == nil {
		return 0
	}
	return h.Byes[id]
}

// FloatsOf returns a copy of id's floats in round order.
func (h *History) FloatsOf(id chess.PlayerID) []FloatEntry {
	if h == nil || len(h.Floats[id]) == 0 {
		return nil
	}
	return append([]FloatEntry(nil), h.Floats[id]...)
}
