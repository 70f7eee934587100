/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mikeb26/boylstonchessclub-swiss/internal"
)

// vended by https://beta.boylstonchess.org/api/event/<eventId>
// EventDetail represents detailed information about a specific event.
type EventDetail struct {
	EventID        int       `json:"eventId"`
	Title          string    `json:"title"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	DateDisplay    string    `json:"dateDisplay"`
	Sections       []string  `json:"sections"`
	EventFormat    string    `json:"eventFormat"`
	TimeControl    string    `json:"timeControl"`
	RoundTimes     string    `json:"roundTimes"`
	LastChangeDate time.Time `json:"lastChangeDate"`
	NumEntries     int       `json:"numEntries"`
	Entries        []Entry   `json:"entries"`
}

// Entry represents a single registration entry for an event.
type Entry struct {
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	UscfID            int       `json:"uscfId"`
	ChessTitle        string    `json:"chessTitle"`
	SectionName       string    `json:"sectionName"`
	RegistrationDate  time.Time `json:"registrationDate"`
	ByeRequests       string    `json:"byeRequests"`
	PrimaryRating     string    `json:"primaryRating"`
	PrimaryRatingType string    `json:"primaryRatingType"`
	SecondaryRating   string    `json:"secondaryRating"`
}

// GetEventDetail fetches detailed event info from the club API.
func (client *Client) GetEventDetail(ctx context.Context,
	eventId int64) (*EventDetail, error) {

	url := fmt.Sprintf("%v/event/%d", client.apiBase, eventId)
	var detail EventDetail
	if err := client.getJSON(ctx, url, &detail); err != nil {
		return nil, fmt.Errorf("unable to fetch bcc event detail: %w", err)
	}

	return &detail, nil
}

// UnmarshalJSON accepts the API's assorted date formats.
func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type Alias EventDetail
	aux := &struct {
		StartDate      string `json:"startDate"`
		EndDate        string `json:"endDate"`
		LastChangeDate string `json:"lastChangeDate"`
		*Alias
	}{
		Alias: (*Alias)(ed),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}

	dates := []struct {
		name string
		in   string
		out  *time.Time
	}{
		{"StartDate", aux.StartDate, &ed.StartDate},
		{"EndDate", aux.EndDate, &ed.EndDate},
		{"LastChangeDate", aux.LastChangeDate, &ed.LastChangeDate},
	}
	for _, d := range dates {
		var err error
		*d.out, err = internal.ParseDateOrZero(d.in)
		if err != nil {
			return fmt.Errorf("parsing EventDetail.%v: %w", d.name, err)
		}
	}

	return nil
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	type Alias Entry
	aux := &struct {
		RegistrationDate string `json:"registrationDate"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Entry unmarshal: %w", err)
	}
	var err error
	e.RegistrationDate, err = internal.ParseDateOrZero(aux.RegistrationDate)
	if err != nil {
		return fmt.Errorf("parsing Entry.RegistrationDate: %w", err)
	}
	return nil
}
