/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package report

import (
	"strings"
	"testing"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

func TestPairings(t *testing.T) {
	players := []chess.Player{
		{ID: 1, Name: "Alice", Rating: 1800},
		{ID: 2, Name: "Bob", Rating: 1700},
		{ID: 3, Name: "Carol"},
	}
	res, err := swiss.GeneratePairings(players, nil, nil, 1, nil,
		swiss.Options{})
	if err != nil {
		t.Fatalf("GeneratePairings: %v", err)
	}

	want := "Round 1 Pairings:\n\n" +
		"Bd  White           Black\n" +
		"1   Alice (1800 0)  Bob (1700 0)\n" +
		"    Carol (0 0)     BYE(1)\n\n"
	if got := Pairings(res); got != want {
		t.Errorf("Pairings =\n%v\nwant\n%v", got, want)
	}

	res.Warnings = []string{"forced rematch: Alice vs Bob"}
	if got := Pairings(res); !strings.HasSuffix(got,
		"warning: forced rematch: Alice vs Bob\n") {
		t.Errorf("warning missing from\n%v", got)
	}
}

func TestStandings(t *testing.T) {
	perf := func(v int) *int { return &v }
	rows := []standings.PlayerStanding{
		{Player: chess.Player{Name: "Alice"}, Rank: 1, Points: 2, Wins: 2,
			PerformanceRating: perf(2100),
			TiebreakScores:    []standings.TiebreakScore{{Display: "1.5"}}},
		{Player: chess.Player{Name: "Bob"}, Rank: 1, Points: 2, Wins: 1, Draws: 2,
			TiebreakScores: []standings.TiebreakScore{{Display: "1"}}},
		{Player: chess.Player{Name: "Carol"}, Rank: 3, Points: 1, Wins: 1, Losses: 1,
			PerformanceRating: perf(1650),
			TiebreakScores:    []standings.TiebreakScore{{Display: "2"}}},
	}

	want := "Place  Name   Score  W-D-L  BhC1  Perf\n" +
		"1.     Alice  2      2-0-0  1.5   2100\n" +
		"       Bob    2      1-2-0  1     -\n" +
		"3.     Carol  1      1-0-1  2     1650\n\n"
	got := Standings(rows, []standings.TiebreakType{standings.TiebreakBuchholzCut1})
	if got != want {
		t.Errorf("Standings =\n%v\nwant\n%v", got, want)
	}
}
