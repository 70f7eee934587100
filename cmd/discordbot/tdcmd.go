/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-swiss/bcc"
	"github.com/mikeb26/boylstonchessclub-swiss/report"
	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
	"github.com/mikeb26/boylstonchessclub-swiss/uschess"
)

type TdSubCommand string

const (
	TdAboutCmd     TdSubCommand = "about"
	TdHelpCmd      TdSubCommand = "help"
	TdStandingsCmd TdSubCommand = "standings"
	TdPredictCmd   TdSubCommand = "predict"
)

// eventSource yields the next round's inputs for a club event.
type eventSource interface {
	EventSections(ctx context.Context, eventId int64) ([]*bcc.Section, error)
}

// crossTableSource yields a rated event's cross tables.
type crossTableSource interface {
	FetchCrossTables(ctx context.Context,
		id uschess.EventID) (*uschess.Tournament, error)
}

type tdBot struct {
	events    eventSource
	ratings   crossTableSource
	opts      swiss.Options
	tiebreaks standings.TiebreakConfig
}

func (td *tdBot) subCmdHdlrs() map[TdSubCommand]CmdHandler {
	return map[TdSubCommand]CmdHandler{
		TdAboutCmd:     tdAboutCmdHandler,
		TdHelpCmd:      tdHelpCmdHandler,
		TdStandingsCmd: td.tdStandingsCmdHandler,
		TdPredictCmd:   td.tdPredictCmdHandler,
	}
}

func (td *tdBot) tdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := tdHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := td.subCmdHdlrs()[TdSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subCmdOptions returns the options of the invoked sub command.
func subCmdOptions(
	inter *discordgo.Interaction) []*discordgo.ApplicationCommandInteractionDataOption {

	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	return data.Options[0].Options
}

//go:embed about.txt
var aboutText string

func tdAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func tdHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)

	return resp
}

// tdStandingsCmdHandler handles the /td standings command to display
// standings with tiebreaks for a rated event
func (td *tdBot) tdStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	broadcast := false // default
	var tid int64
	var section string
	for _, opt := range subCmdOptions(inter) {
		switch opt.Name {
		case "uscftid":
			tid = opt.IntValue()
		case "section":
			section = opt.StringValue()
		case "broadcast":
			broadcast = opt.BoolValue()
		}
	}
	if tid <= 0 {
		resp.Data.Content = "Please provide a US Chess event ID."
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	tourney, err := td.ratings.FetchCrossTables(ctx, uschess.EventID(tid))
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching event %d: %v", tid, err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}
	xTables := tourney.CrossTables
	if section != "" {
		xt, err := tourney.Section(section)
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error: %v", err)
			log.Printf("discordbot.standings: %v", resp.Data.Content)
			return resp
		}
		xTables = []*uschess.CrossTable{xt}
	}

	calc := standings.NewCalculator(uschess.NewTournamentStore(tourney))
	var sb strings.Builder
	for _, xt := range xTables {
		res, err := calc.CalculateStandings(ctx, xt.SectionName, td.tiebreaks)
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error calculating %v standings: %v",
				xt.SectionName, err)
			log.Printf("discordbot.standings: %v", resp.Data.Content)
			return resp
		}
		if len(xTables) > 1 {
			sb.WriteString(fmt.Sprintf("%v Section\n", xt.SectionName))
		}
		sb.WriteString(report.Standings(res.Standings, td.tiebreaks.Order))
		sb.WriteString("\n")
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("**%v**\n```\n%s```", tourney.Event.Name,
		truncateContent(sb.String()))
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// tdPredictCmdHandler handles the /td predict command to display the
// engine's pairings for the next round of a club event
func (td *tdBot) tdPredictCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	broadcast := false // default
	var eventID int64
	for _, opt := range subCmdOptions(inter) {
		switch opt.Name {
		case "eventid":
			eventID = opt.IntValue()
		case "broadcast":
			broadcast = opt.BoolValue()
		}
	}
	if eventID <= 0 {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}

	sections, err := td.events.EventSections(ctx, eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching event %d: %v", eventID,
			err)
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}
	if len(sections) == 0 {
		resp.Data.Content = fmt.Sprintf("No players found for event %d.",
			eventID)
		return resp
	}
	preds, err := bcc.Predict(sections, td.opts)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error predicting event %d: %v",
			eventID, err)
		log.Printf("discordbot.predict: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for _, pred := range preds {
		sb.WriteString(fmt.Sprintf("%v Section ", pred.Section.Name))
		sb.WriteString(report.Pairings(pred.Result))
		sb.WriteString("\n")
	}
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
