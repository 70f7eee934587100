/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-swiss/internal"
)

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
)

func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceWebsite:
		return "website"
	}
	return "?"
}

// vended by https://beta.boylstonchess.org/api/event/<eventId>/tournament
// Tournament represents the players and current pairings for a specific event.
type Tournament struct {
	Players         []Player  `json:"players"`
	CurrentPairings []Pairing `json:"currentPairings"`

	source Source
}

// Player represents a participant in the tournament.
type Player struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	DisplayName    string  `json:"displayName"`
	UscfID         int     `json:"uscfId"`
	FideCountry    string  `json:"fideCountry"`
	PrimaryRating  int     `json:"primaryRating"`
	PairingNumber  int     `json:"pairingNumber"`
	CurrentScore   float64 `json:"currentScore"`
	CurrentScoreAG float64 `json:"currentScoreAfterGame"`
	GamesCompleted int     `json:"gamesCompleted"`
}

// Pairing represents a single board pairing in the tournament.
type Pairing struct {
	WhitePlayer  Player   `json:"whitePlayer"`
	BlackPlayer  Player   `json:"blackPlayer"`
	Section      string   `json:"section"`
	RoundNumber  int      `json:"roundNumber"`
	BoardNumber  int      `json:"boardNumber"`
	IsByePairing bool     `json:"isByePairing"`
	WhitePoints  *float64 `json:"whitePoints"`
	BlackPoints  *float64 `json:"blackPoints"`
	ResultCode   string   `json:"resultCode"`
}

var ErrEmptyTournament = errors.New("bcc tournament has no players or pairings")

func (t *Tournament) Source() Source {
	return t.source
}

// GetTournament fetches the players and current pairings for eventId from
// the JSON API and the public website concurrently, preferring the API.
func (client *Client) GetTournament(ctx context.Context,
	eventId int64) (*Tournament, error) {

	var tViaApi, tViaWeb *Tournament
	var apiErr, webErr error
	var g errgroup.Group
	g.Go(func() error {
		tViaApi, apiErr = client.getTournamentViaApi(ctx, eventId)
		return nil
	})
	g.Go(func() error {
		tViaWeb, webErr = client.getTournamentViaWeb(ctx, eventId)
		return nil
	})
	_ = g.Wait()

	if apiErr == nil {
		return tViaApi, nil
	}
	if webErr == nil {
		return tViaWeb, nil
	}

	return nil, fmt.Errorf("unable to fetch bcc tournament %v: %w", eventId,
		errors.Join(apiErr, webErr))
}

func (client *Client) getTournamentViaApi(ctx context.Context,
	eventId int64) (*Tournament, error) {

	url := fmt.Sprintf("%v/event/%d/tournament", client.apiBase, eventId)
	tourney := &Tournament{source: SourceAPI}
	if err := client.getJSON(ctx, url, tourney); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if len(tourney.CurrentPairings) == 0 && len(tourney.Players) == 0 {
		return nil, fmt.Errorf("api: %w", ErrEmptyTournament)
	}

	return tourney, nil
}

// getTournamentViaWeb scrapes the public entries and pairings pages.
func (client *Client) getTournamentViaWeb(ctx context.Context,
	eventId int64) (*Tournament, error) {

	var entriesDoc, pairingsDoc *goquery.Document
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		url := fmt.Sprintf("%v/tournament/entries/%d", client.webBase, eventId)
		entriesDoc, err = client.fetchDoc(gctx, url)
		if err != nil {
			return fmt.Errorf("unable to fetch entries page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		url := fmt.Sprintf("%v/files/event/%d/pairings", client.webBase,
			eventId)
		pairingsDoc, err = client.fetchDoc(gctx, url)
		if err != nil {
			return fmt.Errorf("unable to fetch pairings page: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("website: %w", err)
	}

	tourney := &Tournament{source: SourceWebsite}
	tourney.Players = parsePlayers(entriesDoc)
	tourney.CurrentPairings = parsePairings(pairingsDoc)
	if len(tourney.CurrentPairings) == 0 && len(tourney.Players) == 0 {
		return nil, fmt.Errorf("website: %w", ErrEmptyTournament)
	}
	guessRoundNumber(tourney)

	return tourney, nil
}

// parsePlayers extracts players from the entries table.
func parsePlayers(doc *goquery.Document) []Player {
	var players []Player
	doc.Find("table#members tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}
		num, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		rating, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(2).Text()))
		uscfID, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))

		p := Player{
			PairingNumber: num,
			PrimaryRating: rating,
			UscfID:        uscfID,
		}
		p.setName(strings.TrimSpace(cells.Eq(1).Text()))
		players = append(players, p)
	})

	return players
}

func (p *Player) setName(name string) {
	p.DisplayName = internal.NormalizeName(name)
	parts := strings.Fields(p.DisplayName)
	if len(parts) > 0 {
		p.FirstName = parts[0]
	}
	if len(parts) > 1 {
		p.LastName = parts[len(parts)-1]
	}
}

// parsePairings extracts pairings from the pairings tables. The main h1
// header is skipped when h2 sub-sections are present; malformed h3
// "Pairings ...: <section>" headers are accepted too.
func parsePairings(doc *goquery.Document) []Pairing {
	var pairings []Pairing
	hasSubSections := doc.Find("div#pairings h2").Length() > 0

	doc.Find("div#pairings h1, div#pairings h2, h3").Each(func(_ int,
		s *goquery.Selection) {

		section, ok := sectionHeading(s, hasSubSections)
		if !ok {
			return
		}
		tableSel := s.Next()
		for tableSel.Length() > 0 && !tableSel.Is("table") {
			tableSel = tableSel.Next()
		}
		tableSel.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if pair, ok := parsePairingRow(row, section); ok {
				pairings = append(pairings, pair)
			}
		})
	})

	return pairings
}

func sectionHeading(s *goquery.Selection, hasSubSections bool) (string,
	bool) {

	text := strings.TrimSpace(s.Text())
	switch goquery.NodeName(s) {
	case "h1":
		if hasSubSections {
			return "", false
		}
		if title := strings.TrimSpace(s.Find("a").Text()); title != "" {
			text = title
		}
		text = strings.ReplaceAll(text, "Pairings", "")
		return strings.Trim(text, " –:\t"), true
	case "h2":
		return strings.TrimSpace(strings.ReplaceAll(text, "Section", "")), true
	case "h3":
		if !strings.HasPrefix(text, "Pairings") {
			return "", false
		}
		if idx := strings.LastIndex(text, ":"); idx >= 0 && idx < len(text)-1 {
			return strings.TrimSpace(text[idx+1:]), true
		}
		return text, true
	}
	return "", false
}

// parsePairingRow parses a "Bd | Res | White | Res | Black" row.
func parsePairingRow(row *goquery.Selection, section string) (Pairing, bool) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return Pairing{}, false
	}
	boardText := strings.TrimSpace(cells.Eq(0).Text())
	if strings.EqualFold(boardText, "Bd") {
		return Pairing{}, false
	}
	board, _ := strconv.Atoi(boardText)
	whiteRes := strings.TrimSpace(cells.Eq(1).Text())
	blackRes := strings.TrimSpace(cells.Eq(3).Text())

	pair := Pairing{
		Section:     section,
		BoardNumber: board,
		WhitePlayer: parsePlayerRef(strings.TrimSpace(cells.Eq(2).Text())),
		BlackPlayer: parsePlayerRef(strings.TrimSpace(cells.Eq(4).Text())),
	}
	if whiteRes != "" || blackRes != "" {
		pair.ResultCode = fmt.Sprintf("%s-%s", whiteRes, blackRes)
	}
	if v, ok := parsePoints(whiteRes); ok {
		pair.WhitePoints = &v
		pair.WhitePlayer.CurrentScoreAG = pair.WhitePlayer.CurrentScore + v
	}
	if v, ok := parsePoints(blackRes); ok {
		pair.BlackPoints = &v
		pair.BlackPlayer.CurrentScoreAG = pair.BlackPlayer.CurrentScore + v
	}

	if pair.BlackPlayer.DisplayName == "BYE" && pair.WhitePlayer.DisplayName != "BYE" {
		pair.IsByePairing = true
	} else if pair.WhitePlayer.DisplayName == "BYE" && pair.BlackPlayer.DisplayName != "BYE" {
		// normalize so the player receiving the bye sits on white
		pair.IsByePairing = true
		pair.WhitePlayer, pair.BlackPlayer = pair.BlackPlayer, pair.WhitePlayer
		pair.WhitePoints, pair.BlackPoints = pair.BlackPoints, pair.WhitePoints
	}

	return pair, true
}

func parsePoints(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, false
	case "½":
		return 0.5, true
	}
	if strings.HasSuffix(s, "½") {
		whole, err := strconv.ParseFloat(strings.TrimSuffix(s, "½"), 64)
		return whole + 0.5, err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// parsePlayerRef extracts a Player reference from a cell text like "12 John Doe (2250 3.0)".
func parsePlayerRef(text string) Player {
	if strings.EqualFold(strings.TrimSpace(text), "BYE") {
		return Player{DisplayName: "BYE"}
	}

	p := Player{}
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return p
	}
	if num, err := strconv.Atoi(fields[0]); err == nil {
		p.PairingNumber = num
		text = strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
	}
	parenStart := strings.Index(text, "(")
	nameOnly := text
	if parenStart != -1 {
		nameOnly = strings.TrimSpace(text[:parenStart])
	}
	p.setName(nameOnly)

	parenEnd := strings.Index(text, ")")
	if parenStart != -1 && parenEnd > parenStart {
		parts := strings.Fields(text[parenStart+1 : parenEnd])
		if len(parts) >= 1 && parts[0] != "unr." {
			p.PrimaryRating, _ = strconv.Atoi(parts[0])
		}
		if len(parts) >= 2 {
			if score, err := strconv.ParseFloat(parts[1], 64); err == nil {
				p.CurrentScore = score
				p.CurrentScoreAG = score
			}
		}
	}

	return p
}

// guessRoundNumber guesses the round number from the leading pre-round score;
// the website does not print it.
func guessRoundNumber(t *Tournament) {
	maxScore := 0.0
	for _, p := range t.CurrentPairings {
		maxScore = max(maxScore, p.WhitePlayer.CurrentScore,
			p.BlackPlayer.CurrentScore)
	}
	roundNumber := int(math.Ceil(maxScore)) + 1
	for idx := range t.CurrentPairings {
		t.CurrentPairings[idx].RoundNumber = roundNumber
	}
}
