/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

// Section is one section of a club event expressed as pairing engine
// inputs for the round to be paired next.
type Section struct {
	Name          string
	Round         int
	Players       []chess.Player
	Results       []chess.PlayerResult
	Games         []chess.Game
	RequestedByes []chess.PlayerID
}

// Prediction is the engine's pairing of one section.
type Prediction struct {
	Section *Section
	Result  *swiss.PairingResult
}

// Sections converts the registration list into round 1 inputs. Player ids
// are assigned in registration order within each section.
func (detail *EventDetail) Sections() []*Section {
	bySection := make(map[string]*Section)
	for _, entry := range detail.Entries {
		sec, ok := bySection[entry.SectionName]
		if !ok {
			sec = &Section{Name: entry.SectionName, Round: 1}
			bySection[entry.SectionName] = sec
		}
		id := chess.PlayerID(len(sec.Players) + 1)
		sec.Players = append(sec.Players, entryToPlayer(id, entry))
		sec.Results = append(sec.Results, chess.PlayerResult{ID: id})
		if ByeRequested(entry.ByeRequests, 1) {
			sec.RequestedByes = append(sec.RequestedByes, id)
		}
	}

	return sortedSections(bySection)
}

func entryToPlayer(id chess.PlayerID, entry Entry) chess.Player {
	return chess.Player{
		ID:     id,
		Name:   fmt.Sprintf("%s %s", entry.FirstName, entry.LastName),
		Rating: strRatingToInt(entry.PrimaryRating),
	}
}

func strRatingToInt(rating string) int {
	// handle formats like "559/24"
	if idx := strings.Index(rating, "/"); idx != -1 {
		rating = rating[:idx]
	}
	r, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil {
		return 0
	}
	return r
}

// Sections converts the current pairings into inputs for the following
// round. Player ids are pairing numbers; the current round is the only game
// history the club publishes, so rematch avoidance reaches back one round.
// detail, if non-nil, supplies bye requests matched by USCF id.
func (t *Tournament) Sections(detail *EventDetail) []*Section {
	byeReqs := make(map[int]string)
	if detail != nil {
		for _, e := range detail.Entries {
			if e.UscfID != 0 {
				byeReqs[e.UscfID] = e.ByeRequests
			}
		}
	}
	uscfIDs := make(map[int]int)
	for _, p := range t.Players {
		if p.PairingNumber != 0 && p.UscfID != 0 {
			uscfIDs[p.PairingNumber] = p.UscfID
		}
	}

	bySection := make(map[string]*Section)
	for _, pairing := range t.CurrentPairings {
		sec, ok := bySection[pairing.Section]
		if !ok {
			sec = &Section{Name: pairing.Section, Round: pairing.RoundNumber + 1}
			bySection[pairing.Section] = sec
		}
		sides := []Player{pairing.WhitePlayer}
		if !pairing.IsByePairing {
			sides = append(sides, pairing.BlackPlayer)
		}
		for _, p := range sides {
			id := chess.PlayerID(p.PairingNumber)
			sec.Players = append(sec.Players, chess.Player{
				ID:      id,
				Name:    p.DisplayName,
				Rating:  p.PrimaryRating,
				Country: p.FideCountry,
			})
			sec.Results = append(sec.Results, chess.PlayerResult{
				ID:     id,
				Points: p.CurrentScoreAG,
			})
			uscfID := p.UscfID
			if uscfID == 0 {
				uscfID = uscfIDs[p.PairingNumber]
			}
			if ByeRequested(byeReqs[uscfID], sec.Round) {
				sec.RequestedByes = append(sec.RequestedByes, id)
			}
		}
		sec.Games = append(sec.Games, pairing.game())
	}

	return sortedSections(bySection)
}

func (pairing Pairing) game() chess.Game {
	g := chess.Game{
		Round:  pairing.RoundNumber,
		White:  chess.PlayerID(pairing.WhitePlayer.PairingNumber),
		Result: "*",
	}
	if pairing.IsByePairing {
		if pairing.WhitePoints != nil {
			g.Result = byeResult(*pairing.WhitePoints)
		}
		return g
	}
	g.Black = chess.PlayerID(pairing.BlackPlayer.PairingNumber)
	if pairing.WhitePoints != nil && pairing.BlackPoints != nil {
		switch w, b := *pairing.WhitePoints, *pairing.BlackPoints; {
		case w == 1 && b == 0:
			g.Result = "1-0"
		case w == 0 && b == 1:
			g.Result = "0-1"
		case w == 0.5 && b == 0.5:
			g.Result = "1/2-1/2"
		}
	}
	return g
}

func byeResult(points float64) string {
	switch points {
	case 1:
		return "1-0"
	case 0.5:
		return "1/2-1/2"
	}
	return "0-0"
}

func sortedSections(bySection map[string]*Section) []*Section {
	names := make([]string, 0, len(bySection))
	for name := range bySection {
		names = append(names, name)
	}
	sort.Sort(SectionSorter(names))

	ret := make([]*Section, 0, len(names))
	for _, name := range names {
		ret = append(ret, bySection[name])
	}
	return ret
}

// EventSections returns the inputs for the next round of eventId. Once
// the event has pairings they come from the current round; before that
// they come from the registration list.
func (client *Client) EventSections(ctx context.Context,
	eventId int64) ([]*Section, error) {

	var detail *EventDetail
	var tourney *Tournament
	var detailErr, tourneyErr error
	var g errgroup.Group
	g.Go(func() error {
		detail, detailErr = client.GetEventDetail(ctx, eventId)
		return nil
	})
	g.Go(func() error {
		tourney, tourneyErr = client.GetTournament(ctx, eventId)
		return nil
	})
	_ = g.Wait()

	if tourneyErr == nil && len(tourney.CurrentPairings) > 0 {
		if detailErr != nil {
			log.Printf("bcc.EventSections: warning: no bye requests for event %v: %v",
				eventId, detailErr)
			detail = nil
		}
		return tourney.Sections(detail), nil
	}
	if detailErr == nil {
		return detail.Sections(), nil
	}

	return nil, fmt.Errorf("unable to load bcc event %v: %w", eventId,
		errors.Join(detailErr, tourneyErr))
}

// Predict pairs every section with the Swiss engine. opts applies to each
// section; its RequestedByes are replaced by the section's own.
func Predict(sections []*Section, opts swiss.Options) ([]Prediction,
	error) {

	ret := make([]Prediction, 0, len(sections))
	for _, sec := range sections {
		o := opts
		o.RequestedByes = slices.Clone(sec.RequestedByes)
		res, err := swiss.GeneratePairings(sec.Players, sec.Results,
			sec.Games, sec.Round, nil, o)
		if err != nil {
			return nil, fmt.Errorf("unable to pair section %q: %w", sec.Name,
				err)
		}
		ret = append(ret, Prediction{Section: sec, Result: res})
	}

	return ret, nil
}

// SectionSorter implements sort.Interface for custom section ordering
// Order: "Open" first, then U<Number> sections descending by number, then
// others lexicographically
type SectionSorter []string

func (s SectionSorter) Len() int { return len(s) }

func (s SectionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SectionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	for _, first := range []string{"Open", "Championship"} {
		if (a == first) != (b == first) {
			return a == first
		}
	}
	ua, ub := strings.HasPrefix(a, "U"), strings.HasPrefix(b, "U")
	if ua && ub {
		ai, errA := strconv.Atoi(strings.TrimPrefix(a, "U"))
		bi, errB := strconv.Atoi(strings.TrimPrefix(b, "U"))
		if errA == nil && errB == nil {
			return ai > bi
		}
	}
	// U-sections before non-U (after Championship)
	if ua != ub {
		return ua
	}
	return a < b
}
