/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"testing"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

const testEventDetailJSON = `{
	"eventId": 100,
	"title": "Tuesday Night Swiss",
	"startDate": "2025-07-01T18:30:00",
	"endDate": "2025-07-29T23:00:00",
	"sections": ["Open", "U1600"],
	"entries": [
		{"firstName": "Alice", "lastName": "Adams", "uscfId": 11, "sectionName": "Open",
		 "primaryRating": "2000", "registrationDate": "2025-06-20"},
		{"firstName": "Erin", "lastName": "Ernst", "uscfId": 15, "sectionName": "U1600",
		 "primaryRating": "1500/12"},
		{"firstName": "Bob", "lastName": "Baker", "uscfId": 12, "sectionName": "Open",
		 "primaryRating": "1900"},
		{"firstName": "Carol", "lastName": "Chen", "uscfId": 13, "sectionName": "Open",
		 "primaryRating": "1800"},
		{"firstName": "Dan", "lastName": "Doyle", "uscfId": 14, "sectionName": "Open",
		 "primaryRating": "1700", "byeRequests": "rnds 1&4"},
		{"firstName": "Finn", "lastName": "Fox", "uscfId": 16, "sectionName": "U1600",
		 "primaryRating": "1400"}
	]
}`

const testTournamentJSON = `{
	"players": [
		{"displayName": "Alice Adams", "uscfId": 11, "pairingNumber": 1},
		{"displayName": "Bob Baker", "uscfId": 12, "pairingNumber": 2},
		{"displayName": "Carol Chen", "uscfId": 13, "pairingNumber": 3},
		{"displayName": "Dan Doyle", "uscfId": 14, "pairingNumber": 4}
	],
	"currentPairings": [
		{"section": "Open", "roundNumber": 1, "boardNumber": 1,
		 "whitePlayer": {"displayName": "Alice Adams", "pairingNumber": 1, "primaryRating": 2000, "currentScoreAfterGame": 1},
		 "blackPlayer": {"displayName": "Carol Chen", "pairingNumber": 3, "primaryRating": 1800, "currentScoreAfterGame": 0},
		 "whitePoints": 1, "blackPoints": 0},
		{"section": "Open", "roundNumber": 1, "boardNumber": 2,
		 "whitePlayer": {"displayName": "Dan Doyle", "pairingNumber": 4, "primaryRating": 1700, "currentScoreAfterGame": 0},
		 "blackPlayer": {"displayName": "Bob Baker", "pairingNumber": 2, "primaryRating": 1900, "currentScoreAfterGame": 1},
		 "whitePoints": 0, "blackPoints": 1}
	]
}`

const testEntriesHTML = `<html><body>
<table id="members">
<thead><tr><th>#</th><th>Name</th><th>Rating</th><th>ID</th></tr></thead>
<tbody>
<tr><td>1</td><td>ALICE ADAMS</td><td>2000</td><td>11</td></tr>
<tr><td>2</td><td>BOB BAKER</td><td>1900</td><td>12</td></tr>
<tr><td>3</td><td>CAROL CHEN</td><td>unr.</td><td>13</td></tr>
<tr><td>4</td><td>DAN DOYLE</td><td>1700</td><td>14</td></tr>
<tr><td>5</td><td>EVE EVANS</td><td>1500</td><td>15</td></tr>
</tbody>
</table>
</body></html>`

const testPairingsHTML = `<html><body>
<div id="pairings">
<h1><a href="#">Pairings – Tuesday Night Swiss</a></h1>
<h2>Open Section</h2>
<table>
<tr><td>Bd</td><td>Res</td><td>White</td><td>Res</td><td>Black</td></tr>
<tr><td>1</td><td>1</td><td>1 ALICE ADAMS (2000 1.0)</td><td>0</td><td>2 BOB BAKER (1900 1.0)</td></tr>
<tr><td>2</td><td>½</td><td>3 CAROL CHEN (unr. 0.0)</td><td>½</td><td>4 DAN DOYLE (1700 0.0)</td></tr>
<tr><td>3</td><td></td><td>BYE</td><td>1</td><td>5 EVE EVANS (1500 0.0)</td></tr>
</table>
</div>
</body></html>`

func newTestClient(t *testing.T) *Client {
	t.Helper()

	routes := map[string]string{
		"/api/event/100":                testEventDetailJSON,
		"/api/event/200/tournament":     testTournamentJSON,
		"/web/tournament/entries/300":   testEntriesHTML,
		"/web/files/event/300/pairings": testPairingsHTML,
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	return &Client{
		httpClient: ts.Client(),
		apiBase:    ts.URL + "/api",
		webBase:    ts.URL + "/web",
	}
}

func TestRequestedByeRounds(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"1", []int{1}},
		{"3", []int{3}},
		{"round 1,5", []int{1, 5}},
		{"Rnds 1&4", []int{1, 4}},
		{"rounds: 2 / 3", []int{2, 3}},
		{"please no bye", nil},
		{"rnd 2 and round 2", []int{2}},
	}
	for _, c := range cases {
		got := RequestedByeRounds(c.in)
		if !slices.Equal(got, c.want) {
			t.Errorf("RequestedByeRounds(%q) = %v; want %v", c.in, got, c.want)
		}
	}
	if !ByeRequested("rnds 1&4", 4) || ByeRequested("rnds 1&4", 2) {
		t.Errorf("ByeRequested mismatch")
	}
}

func TestStrRatingToInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"559/24", 559},
		{"1500", 1500},
		{"", 0},
		{"abc/123", 0},
	}
	for _, c := range cases {
		if got := strRatingToInt(c.in); got != c.want {
			t.Errorf("strRatingToInt(%q) = %d; want %d", c.in, got, c.want)
		}
	}
}

func TestSectionSorter(t *testing.T) {
	names := []string{"Reserve", "U1200", "Open", "U1800", "Championship"}
	sort.Sort(SectionSorter(names))
	want := []string{"Open", "Championship", "U1800", "U1200", "Reserve"}
	if !slices.Equal(names, want) {
		t.Errorf("sorted = %v; want %v", names, want)
	}
}

func TestPredictRound1(t *testing.T) {
	client := newTestClient(t)
	detail, err := client.GetEventDetail(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetEventDetail: %v", err)
	}
	if detail.Title != "Tuesday Night Swiss" || detail.StartDate.IsZero() {
		t.Errorf("unexpected detail %+v", detail)
	}
	if detail.Entries[0].RegistrationDate.IsZero() {
		t.Errorf("registration date not parsed")
	}

	sections := detail.Sections()
	if len(sections) != 2 || sections[0].Name != "Open" ||
		sections[1].Name != "U1600" {
		t.Fatalf("unexpected sections %+v", sections)
	}

	preds, err := Predict(sections, swiss.Options{TotalRounds: 5})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	open := preds[0].Result
	if len(open.Pairings) != 1 {
		t.Fatalf("open pairings = %+v", open.Pairings)
	}
	if w, b := open.Pairings[0].White.Name(), open.Pairings[0].Black.Name(); w != "Alice Adams" || b != "Bob Baker" {
		t.Errorf("board 1 = %v vs %v; want Alice Adams vs Bob Baker", w, b)
	}
	byes := map[string]swiss.ByeReason{}
	for _, b := range open.Byes {
		byes[b.Player.Name()] = b.Reason
	}
	if len(byes) != 2 || byes["Dan Doyle"] != swiss.ByeReasonRequested ||
		byes["Carol Chen"] != swiss.ByeReasonOdd {
		t.Errorf("byes = %v; want Dan requested and Carol odd", byes)
	}

	u1600 := preds[1].Result
	if len(u1600.Pairings) != 1 || u1600.Pairings[0].White.Name() != "Erin Ernst" ||
		u1600.Pairings[0].White.Rating != 1500 {
		t.Errorf("u1600 pairings = %+v", u1600.Pairings)
	}
}

func TestGetEventDetailNotFound(t *testing.T) {
	_, err := newTestClient(t).GetEventDetail(context.Background(), 999)
	var se *statusError
	if !errors.As(err, &se) || se.status != http.StatusNotFound {
		t.Errorf("err = %v; want 404 status error", err)
	}
}

func TestPredictNextRoundFromAPI(t *testing.T) {
	client := newTestClient(t)
	tourney, err := client.GetTournament(context.Background(), 200)
	if err != nil {
		t.Fatalf("GetTournament: %v", err)
	}
	if tourney.Source() != SourceAPI {
		t.Errorf("source = %v; want api", tourney.Source())
	}

	sections := tourney.Sections(nil)
	if len(sections) != 1 || sections[0].Round != 2 || len(sections[0].Games) != 2 {
		t.Fatalf("unexpected sections %+v", sections)
	}
	if g := sections[0].Games[1]; g.White != 4 || g.Black != 2 || g.Result != "0-1" {
		t.Errorf("unexpected game %+v", g)
	}

	preds, err := Predict(sections, swiss.Options{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := pairedIDs(preds[0].Result); !slices.Equal(got, [][2]chess.PlayerID{{1, 2}, {3, 4}}) {
		t.Errorf("pairs = %v; want 1-2 and 3-4", got)
	}

	// Dan asks for round 2 off
	detail := &EventDetail{Entries: []Entry{{UscfID: 14, ByeRequests: "2"}}}
	preds, err = Predict(tourney.Sections(detail), swiss.Options{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	res := preds[0].Result
	if got := pairedIDs(res); !slices.Equal(got, [][2]chess.PlayerID{{1, 2}}) {
		t.Errorf("pairs = %v; want 1-2", got)
	}
	if len(res.Byes) != 2 || res.Byes[0].Player.ID() != 4 ||
		res.Byes[0].Reason != swiss.ByeReasonRequested ||
		res.Byes[1].Player.ID() != 3 {
		t.Errorf("unexpected byes %+v", res.Byes)
	}
}

func TestGetTournamentViaWeb(t *testing.T) {
	tourney, err := newTestClient(t).GetTournament(context.Background(), 300)
	if err != nil {
		t.Fatalf("GetTournament: %v", err)
	}
	if tourney.Source() != SourceWebsite {
		t.Errorf("source = %v; want website", tourney.Source())
	}
	if len(tourney.Players) != 5 || tourney.Players[2].DisplayName != "Carol Chen" ||
		tourney.Players[2].PrimaryRating != 0 || tourney.Players[4].UscfID != 15 {
		t.Errorf("unexpected players %+v", tourney.Players)
	}
	if len(tourney.CurrentPairings) != 3 {
		t.Fatalf("pairings = %+v", tourney.CurrentPairings)
	}

	p := tourney.CurrentPairings[0]
	if p.Section != "Open" || p.RoundNumber != 2 || p.BoardNumber != 1 ||
		p.WhitePlayer.DisplayName != "Alice Adams" ||
		p.WhitePlayer.CurrentScoreAG != 2 || p.BlackPlayer.PairingNumber != 2 {
		t.Errorf("unexpected board 1 %+v", p)
	}
	if p := tourney.CurrentPairings[1]; p.WhitePlayer.PrimaryRating != 0 ||
		p.WhitePlayer.CurrentScoreAG != 0.5 || p.game().Result != "1/2-1/2" {
		t.Errorf("unexpected board 2 %+v", p)
	}
	bye := tourney.CurrentPairings[2]
	if !bye.IsByePairing || bye.WhitePlayer.DisplayName != "Eve Evans" ||
		bye.WhitePoints == nil || *bye.WhitePoints != 1 {
		t.Errorf("unexpected bye %+v", bye)
	}

	preds, err := Predict(tourney.Sections(nil), swiss.Options{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	res := preds[0].Result
	if len(res.ValidationErrors) != 0 {
		t.Errorf("validation errors: %v", res.ValidationErrors)
	}
	if n := 2*len(res.Pairings) + len(res.Byes); n != 5 {
		t.Errorf("%d players placed; want 5", n)
	}
}

func TestGetTournamentUnavailable(t *testing.T) {
	_, err := newTestClient(t).GetTournament(context.Background(), 404)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestEventSections(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	// registered but not started
	sections, err := client.EventSections(ctx, 100)
	if err != nil {
		t.Fatalf("EventSections(100): %v", err)
	}
	if len(sections) != 2 || sections[0].Round != 1 ||
		len(sections[0].Players) != 4 {
		t.Errorf("unexpected round 1 sections %+v", sections)
	}

	// in progress with no event detail
	sections, err = client.EventSections(ctx, 200)
	if err != nil {
		t.Fatalf("EventSections(200): %v", err)
	}
	if len(sections) != 1 || sections[0].Round != 2 ||
		len(sections[0].RequestedByes) != 0 {
		t.Errorf("unexpected round 2 sections %+v", sections)
	}

	if _, err := client.EventSections(ctx, 404); err == nil {
		t.Errorf("expected error for unknown event")
	}
}

func pairedIDs(res *swiss.PairingResult) [][2]chess.PlayerID {
	var ret [][2]chess.PlayerID
	for _, p := range res.Pairings {
		a, b := p.White.ID(), p.Black.ID()
		ret = append(ret, [2]chess.PlayerID{min(a, b), max(a, b)})
	}
	slices.SortFunc(ret, func(x, y [2]chess.PlayerID) int {
		return int(x[0] - y[0])
	})
	return ret
}
