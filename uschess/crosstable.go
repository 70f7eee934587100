/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/internal"
)

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

// RoundResult holds the result of a single round for a player.
type RoundResult struct {
	OpponentPairNum int
	Outcome         Result
	// Color is "white", "black" or empty when the source omits it
	Color string
}

// CrossTableEntry holds the data for one player in the cross table.
type CrossTableEntry struct {
	PairNum     int
	PlayerName  string
	PlayerId    MemID
	PreRating   int
	PostRating  int
	TotalPoints float64
	Results     []RoundResult
}

type RatingType int

const (
	RatingTypeRegular RatingType = iota
	RatingTypeQuick
	RatingTypeBlitz
)

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	SectionName   string
	NumRounds     int
	RType         RatingType
	PlayerEntries []CrossTableEntry
}

type EventID int

type Event struct {
	EndDate time.Time
	Name    string
	ID      EventID
}

// Tournament encapsulates the overall event and its cross tables.
type Tournament struct {
	Event       Event
	CrossTables []*CrossTable
}

// Section returns the cross table whose name matches name, ignoring case.
func (t *Tournament) Section(name string) (*CrossTable, error) {
	for _, xt := range t.CrossTables {
		if strings.EqualFold(xt.SectionName, name) {
			return xt, nil
		}
	}
	return nil, fmt.Errorf("section %q: %w", name, chess.ErrNotFound)
}

type apiRatedEventResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SectionCount int    `json:"sectionCount"`
	Sections     []struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	PairingNumber int               `json:"pairingNumber"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
	Ratings       []apiRatingChange `json:"ratings"`
}

type apiRoundOutcome struct {
	RoundNumber           int    `json:"roundNumber"`
	Outcome               string `json:"outcome"`
	Color                 string `json:"color"`
	OpponentOrdinal       int    `json:"opponentOrdinal"`
	OpponentPairingNumber int    `json:"opponentPairingNumber"`
}

type apiRatingChange struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

const maxConcurrentSections = 4

// FetchCrossTables retrieves a Tournament with all sections' cross tables
// for the given event id. Sections keep the order the event lists them in;
// a section that fails to load is logged and omitted.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*Tournament, error) {

	var eventData apiRatedEventResponse
	// these are rarely (if ever) updated so 1 month cache is fine for our use case
	err := getJSON(ctx, client.httpClient30day,
		fmt.Sprintf("%v/rated-events/%v", apiBase, id), "event", &eventData)
	if err != nil {
		return nil, err
	}

	fetched := make([]*CrossTable, len(eventData.Sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSections)
	for i, section := range eventData.Sections {
		g.Go(func() error {
			var standingsData apiStandingsResponse
			url := fmt.Sprintf("%v/rated-events/%v/sections/%d/standings",
				apiBase, id, section.Number)
			err := getJSON(gctx, client.httpClient30day, url, "standings",
				&standingsData)
			if err != nil {
				log.Printf("uschess.FetchCrossTables: warning: failed to fetch section %d: %v",
					section.Number, err)
				return nil
			}
			fetched[i] = convertStandingsToCrossTable(&standingsData,
				section.Name)
			return nil
		})
	}
	_ = g.Wait()

	crossTables := make([]*CrossTable, 0, len(fetched))
	for _, xt := range fetched {
		if xt != nil {
			crossTables = append(crossTables, xt)
		}
	}

	endDate, err := internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		log.Printf("uschess.FetchCrossTables: warning: unable to parse event end date %v: %v",
			eventData.EndDate, err)
	}

	return &Tournament{
		Event: Event{
			EndDate: endDate,
			Name:    eventData.Name,
			ID:      id,
		},
		CrossTables: crossTables,
	}, nil
}

// sectionRatingType prefers the regular rating in dual-rated sections.
func sectionRatingType(ratings []apiRatingChange) RatingType {
	if len(ratings) == 0 {
		return RatingTypeRegular
	}
	for _, rating := range ratings {
		if rating.RatingSystem == "R" || rating.RatingSystem == "D" {
			return RatingTypeRegular
		}
	}
	switch ratings[0].RatingSystem {
	case "B":
		return RatingTypeBlitz
	case "Q":
		return RatingTypeQuick
	}
	return RatingTypeRegular
}

func (rt RatingType) matches(system string) bool {
	switch rt {
	case RatingTypeBlitz:
		return system == "B"
	case RatingTypeQuick:
		return system == "Q"
	}
	return system == "R" || system == "D"
}

func convertStandingsToCrossTable(standings *apiStandingsResponse,
	sectionName string) *CrossTable {

	xt := &CrossTable{SectionName: sectionName}
	for i, item := range standings.Items {
		if i == 0 {
			xt.RType = sectionRatingType(item.Ratings)
		}

		entry := CrossTableEntry{
			PairNum:     item.Ordinal,
			PlayerName:  internal.NormalizeName(item.FirstName + " " + item.LastName),
			TotalPoints: item.Score,
		}
		for _, outcome := range item.RoundOutcomes {
			entry.Results = append(entry.Results, RoundResult{
				OpponentPairNum: outcome.OpponentOrdinal,
				Outcome:         convertOutcome(outcome.Outcome),
				Color:           convertColor(outcome.Color),
			})
		}
		xt.NumRounds = max(xt.NumRounds, len(entry.Results))

		for _, rating := range item.Ratings {
			if xt.RType.matches(rating.RatingSystem) {
				entry.PreRating = max(rating.PreRating, 0)
				entry.PostRating = max(rating.PostRating, 0)
				break
			}
		}

		memberID, err := strconv.Atoi(item.MemberID)
		if err != nil {
			log.Printf("uschess: warning: failed to convert member ID %v to int: %v",
				item.MemberID, err)
		}
		entry.PlayerId = MemID(memberID)

		xt.PlayerEntries = append(xt.PlayerEntries, entry)
	}

	return xt
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinForfeit", "WinByForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) string {
	switch strings.ToLower(color) {
	case "white":
		return "white"
	case "black":
		return "black"
	default:
		return ""
	}
}
