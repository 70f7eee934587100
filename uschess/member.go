/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/internal"
)

type MemID int

// Member is a US Chess member's name and current ratings; 0 is unrated.
type Member struct {
	ID          MemID
	Name        string
	RegRating   int
	QuickRating int
	BlitzRating int
}

type apiMemberResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Ratings   []struct {
		Rating       int    `json:"rating"`
		RatingSystem string `json:"ratingSystem"`
	} `json:"ratings"`
}

// FetchMember retrieves a member's profile from the ratings API.
func (client *Client) FetchMember(ctx context.Context,
	memberID MemID) (*Member, error) {

	var memberData apiMemberResponse
	url := fmt.Sprintf("%v/members/%v", apiBase, memberID)
	// ratings move at most once a day
	err := getJSON(ctx, client.httpClient1day, url, "profile", &memberData)
	if err != nil {
		return nil, err
	}

	m := &Member{
		ID:   memberID,
		Name: internal.NormalizeName(memberData.FirstName + " " + memberData.LastName),
	}
	for _, rating := range memberData.Ratings {
		switch rating.RatingSystem {
		case "R":
			m.RegRating = rating.Rating
		case "Q":
			m.QuickRating = rating.Rating
		case "B":
			m.BlitzRating = rating.Rating
		}
	}

	return m, nil
}

func (m *Member) Rating(rt RatingType) int {
	switch rt {
	case RatingTypeQuick:
		return m.QuickRating
	case RatingTypeBlitz:
		return m.BlitzRating
	}
	return m.RegRating
}

// Player registers the member under id using the rating of type rt.
func (m *Member) Player(id chess.PlayerID, rt RatingType) chess.Player {
	return chess.Player{
		ID:     id,
		Name:   m.Name,
		Rating: m.Rating(rt),
	}
}
