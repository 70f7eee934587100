/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
)

type fakeStore struct {
	players []chess.Player
	games   []chess.Game
	extra   map[chess.PlayerID]chess.Player
}

func (s *fakeStore) GetPlayers(_ context.Context, _ string) ([]chess.Player,
	error) {
	return append([]chess.Player(nil), s.players...), nil
}

func (s *fakeStore) GetGames(_ context.Context, _ string) ([]chess.Game,
	error) {
	return s.games, nil
}

func (s *fakeStore) GetPlayer(_ context.Context, _ string,
	id chess.PlayerID) (chess.Player, error) {
	p, ok := s.extra[id]
	if !ok {
		return chess.Player{}, &chess.NotFoundError{ID: id}
	}
	return p, nil
}

const (
	pA chess.PlayerID = iota + 1
	pB
	pC
	pD
	pE
)

func fixture() *fakeStore {
	return &fakeStore{
		players: []chess.Player{
			{ID: pA, Name: "Alice", Rating: 1800},
			{ID: pB, Name: "Bob", Rating: 1700},
			{ID: pC, Name: "Carol", Rating: 1600},
			{ID: pD, Name: "Dave", Rating: 0},
		},
		games: []chess.Game{
			{Round: 1, White: pA, Black: pB, Result: "1-0"},
			{Round: 1, White: pC, Black: pD, Result: "1-0"},
			{Round: 2, White: pC, Black: pA, Result: "1/2-1/2"},
			{Round: 2, White: pB, Black: pD, Result: "1-0"},
			{Round: 3, White: pE, Black: pC, Result: "1/2-1/2"},
		},
		extra: map[chess.PlayerID]chess.Player{
			pE: {ID: pE, Name: "Eve", Rating: 1500},
		},
	}
}

func find(t *testing.T, standings []PlayerStanding,
	id chess.PlayerID) PlayerStanding {

	t.Helper()
	for _, s := range standings {
		if s.Player.ID == id {
			return s
		}
	}
	t.Fatalf("player %v missing from standings", id)
	return PlayerStanding{}
}

func TestCalculateStandingsArithmetic(t *testing.T) {
	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calc := NewCalculator(fixture())
	calc.now = func() time.Time { return when }

	cfg := TiebreakConfig{Order: []TiebreakType{TiebreakBuchholz,
		TiebreakSonnebornBerger, TiebreakProgressive, TiebreakDirectEncounter}}
	res, err := calc.CalculateStandings(context.Background(), "t1", cfg)
	if err != nil {
		t.Fatalf("CalculateStandings: %v", err)
	}
	if !res.LastUpdated.Equal(when) || len(res.Config.Order) != 4 {
		t.Errorf("unexpected metadata %v %v", res.LastUpdated, res.Config)
	}
	if len(res.Standings) != 5 {
		t.Fatalf("got %d standings; want 5 including resolved player",
			len(res.Standings))
	}

	a := find(t, res.Standings, pA)
	if a.Points != 1.5 || a.Wins != 1 || a.Draws != 1 || a.GamesPlayed != 2 {
		t.Errorf("Alice %v pts %d/%d/%d; want 1.5 pts 1 win 1 draw", a.Points,
			a.Wins, a.Draws, a.Losses)
	}
	want := []float64{3.0, 2.0, 2.5, 0}
	for i, w := range want {
		if got := a.TiebreakScores[i].Value; math.Abs(got-w) > 1e-9 {
			t.Errorf("Alice %v = %v; want %v", a.TiebreakScores[i].Type, got, w)
		}
	}
	if a.TiebreakScores[0].Display != "3" {
		t.Errorf("display = %q; want 3", a.TiebreakScores[0].Display)
	}

	c := find(t, res.Standings, pC)
	if c.Points != 2.0 || c.Rank != 1 {
		t.Errorf("Carol points %v rank %d; want 2.0 rank 1", c.Points, c.Rank)
	}
	b := find(t, res.Standings, pB)
	if b.Points != 1.0 {
		t.Errorf("Bob points %v; want 1.0", b.Points)
	}
}

func TestCalculateStandingsUnresolvedPlayer(t *testing.T) {
	store := fixture()
	store.extra = nil
	_, err := NewCalculator(store).CalculateStandings(context.Background(),
		"t1", TiebreakConfig{Order: DefaultTiebreakOrder()})
	if !errors.Is(err, chess.ErrNotFound) {
		t.Errorf("err = %v; want not found", err)
	}

	_, err = Calculate(store.players, store.games, TiebreakConfig{})
	if !errors.Is(err, chess.ErrNotFound) {
		t.Errorf("Calculate err = %v; want not found", err)
	}
}

func TestBuchholzCuts(t *testing.T) {
	store := fixture()
	players := append(store.players, store.extra[pE])
	games := store.games
	points := map[chess.PlayerID]float64{pA: 1.5, pB: 1, pC: 2, pD: 0, pE: 0.5}

	for _, p := range players {
		full := ComputeTiebreak(TiebreakBuchholz, p.ID, games, points, nil)
		cut1 := ComputeTiebreak(TiebreakBuchholzCut1, p.ID, games, points, nil)
		cut2 := ComputeTiebreak(TiebreakBuchholzCut2, p.ID, games, points, nil)
		if cut1 > full+1e-9 {
			t.Errorf("player %v cut1 %v > full %v", p.ID, cut1, full)
		}
		if cut2 > cut1+1e-9 && len(playerGames(p.ID, games)) >= 3 {
			t.Errorf("player %v cut2 %v > cut1 %v", p.ID, cut2, cut1)
		}
	}

	// Carol met Dave (0), Alice (1.5) and Eve (0.5)
	if got := ComputeTiebreak(TiebreakBuchholzCut1, pC, games, points,
		nil); got != 2.0 {
		t.Errorf("Carol cut1 = %v; want 2.0", got)
	}
	if got := ComputeTiebreak(TiebreakBuchholzCut2, pC, games, points,
		nil); got != 0.5 {
		t.Errorf("Carol cut2 = %v; want 0.5", got)
	}
	// fewer than three opponents leaves the sum untouched
	if got := ComputeTiebreak(TiebreakBuchholzCut2, pA, games, points,
		nil); got != 3.0 {
		t.Errorf("Alice cut2 = %v; want 3.0", got)
	}
}

func TestRatingTiebreaks(t *testing.T) {
	store := fixture()
	ratings := map[chess.PlayerID]int{pA: 1800, pB: 1700, pC: 1600, pD: 0,
		pE: 1500}
	games := store.games

	// Carol: beat unrated Dave, drew Alice and Eve
	if got := ComputeTiebreak(TiebreakARO, pC, games, nil, ratings); got != 1650 {
		t.Errorf("Carol ARO = %v; want 1650", got)
	}
	pr := PerformanceRating(pC, games, ratings)
	if pr == nil || *pr != 1650 {
		t.Errorf("Carol performance = %v; want 1650", pr)
	}
	// Alice: beat Bob, drew Carol => 1650 + 400*(0.75-0.5)
	pr = PerformanceRating(pA, games, ratings)
	if pr == nil || *pr != 1750 {
		t.Errorf("Alice performance = %v; want 1750", pr)
	}

	solo := []chess.Game{{Round: 1, White: pD, Black: pB, Result: "0-1"}}
	if PerformanceRating(pB, solo, ratings) != nil {
		t.Errorf("performance against unrated only should be nil")
	}
	if ComputeTiebreak(TiebreakARO, pB, solo, nil, ratings) != 0 {
		t.Errorf("ARO against unrated only should be 0")
	}
	if ComputeTiebreak(TiebreakType(99), pA, games, nil, ratings) != 0 {
		t.Errorf("unknown tiebreak should be 0")
	}
}

func TestCountTiebreaks(t *testing.T) {
	games := []chess.Game{
		{Round: 1, White: 2, Black: 1, Result: "0-1"},
		{Round: 2, White: 1, Black: 3, Result: "1-0"},
		{Round: 3, White: 4, Black: 1, Result: "1/2-1/2"},
		{Round: 4, White: 5, Black: 1, Result: "0F-1F"},
		{Round: 5, White: 1, Result: "1-0"},
	}
	cases := []struct {
		kind TiebreakType
		want float64
	}{
		{TiebreakWins, 3},
		{TiebreakBlackGames, 2},
		{TiebreakBlackWins, 1},
		{TiebreakProgressive, 1 + 2 + 2.5 + 3.5 + 4.5},
	}
	for _, c := range cases {
		got := ComputeTiebreak(c.kind, 1, games, nil, nil)
		if got != c.want {
			t.Errorf("%v = %v; want %v", c.kind, got, c.want)
		}
	}
}

func TestAssignRanksSharesTies(t *testing.T) {
	mk := func(name string, pts float64, tb ...float64) PlayerStanding {
		ps := PlayerStanding{Player: chess.Player{Name: name}, Points: pts}
		for _, v := range tb {
			ps.TiebreakScores = append(ps.TiebreakScores,
				TiebreakScore{Type: TiebreakBuchholz, Value: v})
		}
		return ps
	}
	standings := []PlayerStanding{
		mk("Zed", 2, 5),
		mk("Amy", 2, 5+1e-12),
		mk("Bea", 3, 1),
		mk("Cat", 2, 4),
		mk("Dan", 1, 9),
		mk("Eli", 1, 9),
	}
	SortStandings(standings)
	AssignRanks(standings)

	wantNames := []string{"Bea", "Amy", "Zed", "Cat", "Dan", "Eli"}
	wantRanks := []int{1, 2, 2, 4, 5, 5}
	for i := range standings {
		if standings[i].Player.Name != wantNames[i] ||
			standings[i].Rank != wantRanks[i] {
			t.Errorf("position %d = %v rank %d; want %v rank %d", i,
				standings[i].Player.Name, standings[i].Rank, wantNames[i],
				wantRanks[i])
		}
		if i > 0 && standings[i].Rank < standings[i-1].Rank {
			t.Errorf("rank decreased at %d", i)
		}
	}
}

func TestParseTiebreakOrder(t *testing.T) {
	order, err := ParseTiebreakOrder([]string{"Buchholz-Cut1", " aro ",
		"performance"})
	if err != nil {
		t.Fatalf("ParseTiebreakOrder: %v", err)
	}
	want := []TiebreakType{TiebreakBuchholzCut1, TiebreakARO,
		TiebreakPerformance}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %v; want %v", i, order[i], want[i])
		}
	}

	order, err = ParseTiebreakOrder(nil)
	if err != nil || len(order) != 4 || order[0] != TiebreakBuchholzCut1 {
		t.Errorf("default order = %v, %v", order, err)
	}

	_, err = ParseTiebreakOrder([]string{"koya"})
	if !errors.Is(err, chess.ErrInvalidInput) {
		t.Errorf("err = %v; want invalid input", err)
	}
}
