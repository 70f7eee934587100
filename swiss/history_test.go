/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"encoding/json"
	"testing"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

func TestHistoryRecord(t *testing.T) {
	p1 := &SwissPlayer{Player: chess.Player{ID: 1}}
	p2 := &SwissPlayer{Player: chess.Player{ID: 2}}
	res := &PairingResult{
		Round: 1,
		Byes: []Bye{
			{Player: p1, Reason: ByeReasonOdd, Points: 1},
			{Player: p2, Reason: ByeReasonRequested, Points: 0.5},
		},
		Floats: map[chess.PlayerID]FloatDirection{3: FloatDown},
	}

	var nilHist *History
	if nilHist.ByeCount(1) != 0 || nilHist.FloatsOf(3) != nil {
		t.Errorf("nil history should read as empty")
	}

	h := NewHistory()
	h.Record(res)
	h.Record(res)
	if h.ByeCount(1) != 1 {
		t.Errorf("ByeCount(1) = %d; want 1", h.ByeCount(1))
	}
	if h.ByeCount(2) != 0 {
		t.Errorf("ByeCount(2) = %d; want 0", h.ByeCount(2))
	}
	floats := h.FloatsOf(3)
	if len(floats) != 1 || floats[0].Round != 1 ||
		floats[0].Direction != FloatDown {
		t.Errorf("FloatsOf(3) = %v; want one down float in round 1", floats)
	}

	buf, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var back History
	err = json.Unmarshal(buf, &back)
	if err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", buf, err)
	}
	if back.LastRound != 1 || back.Byes[1] != 1 ||
		back.Floats[3][0].Direction != FloatDown {
		t.Errorf("decoded %+v from %s", back, buf)
	}
}

func TestBuildPlayersUsesHistory(t *testing.T) {
	players := []chess.Player{{ID: 1, Rating: 0}, {ID: 2, Rating: 1700},
		{ID: 3, Rating: 1500}}
	games := []chess.Game{
		{Round: 1, White: 1, Black: 2, Result: "0-1"},
		{Round: 1, White: 3, Result: "1-0"},
		{Round: 2, White: 3, Black: 1, Result: "1F-0F"},
		{Round: 2, White: 2, Result: "1/2-1/2"},
		{Round: 3, White: 2, Black: 1, Result: "*"},
	}
	hist := NewHistory()
	hist.Byes[2] = 1

	sp := BuildPlayers(players, nil, games, hist)
	p1, p2, p3 := sp[0], sp[1], sp[2]

	if p1.Rating != DefaultRating {
		t.Errorf("unrated player rating = %d; want %d", p1.Rating,
			DefaultRating)
	}
	if len(p1.ColorHistory) != 1 || !p1.HasPlayed(2) || p1.HasPlayed(3) {
		t.Errorf("player 1 colours %v opponents %v", p1.ColorHistory,
			p1.Opponents)
	}
	if !p1.IsByeEligible {
		t.Errorf("player 1 should be bye eligible")
	}
	if p2.ByeCount != 1 || p2.IsByeEligible {
		t.Errorf("player 2 byes %d eligible %v; want 1 false", p2.ByeCount,
			p2.IsByeEligible)
	}
	if p3.ByeCount != 1 || p3.IsByeEligible {
		t.Errorf("player 3 byes %d eligible %v; want 1 false", p3.ByeCount,
			p3.IsByeEligible)
	}
	if p1.Points != 0 {
		t.Errorf("points should default to 0")
	}
}
