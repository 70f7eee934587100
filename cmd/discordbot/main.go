/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-swiss/bcc"
	"github.com/mikeb26/boylstonchessclub-swiss/internal"
	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/uschess"
)

type TopLevelCommand string

const (
	TdCmd TopLevelCommand = "td"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

type bot struct {
	pubKey ed25519.PublicKey
	td     *tdBot
}

func (b *bot) topLevelCmdHdlrs() map[TopLevelCommand]CmdHandler {
	return map[TopLevelCommand]CmdHandler{
		TdCmd: b.td.tdCmdHandler,
	}
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.topLevelCmdHdlrs()[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func tdCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(TdCmd),
		Description: "Tournament director commands; try /td help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHelpCmd),
				Description: "Show usage for td",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdAboutCmd),
				Description: "Show information about the swiss pairing bot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdStandingsCmd),
				Description: "Get standings with tiebreaks for a rated US Chess event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "uscftid",
						Description: "US Chess event id",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "section",
						Description: "Section name (default is every section)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdPredictCmd),
				Description: "Predict the next round's pairings for a club event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament",
						Required:    true,
					},
					broadcastOpt,
				},
			},
		},
	}
}

func registerSlashCommands(session *discordgo.Session, appID string) {
	tdCmd := tdCommand()
	// creating a command whose name already exists overwrites it
	cmd, err := session.ApplicationCommandCreate(appID, "", tdCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to register %v: %v", tdCmd.Name, err)
		return
	}

	log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	cfg, err := internal.LoadConfig(os.Getenv("SWISSTD_CONFIG"))
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	pubKeyBytes, err := hex.DecodeString(cfg.Discord.PublicKey)
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("discordbot.main: Failed to parse public key: %v", err)
	}
	order, err := cfg.TiebreakOrder()
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}

	b := &bot{
		pubKey: ed25519.PublicKey(pubKeyBytes),
		td: &tdBot{
			events:    bcc.NewClient(ctx, cfg.WebCache.Bucket),
			ratings:   uschess.NewClient(ctx, cfg.WebCache.Bucket),
			opts:      cfg.Pairing.Options(),
			tiebreaks: standings.TiebreakConfig{Order: order},
		},
	}

	if cfg.Discord.BotToken != "" && cfg.Discord.AppID != "" {
		session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
		if err != nil {
			log.Fatalf("discordbot.main: Failed to initialize discord client: %v",
				err)
		}
		go registerSlashCommands(session, cfg.Discord.AppID)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
