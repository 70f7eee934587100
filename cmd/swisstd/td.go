/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/history"
	"github.com/mikeb26/boylstonchessclub-swiss/internal"
	"github.com/mikeb26/boylstonchessclub-swiss/report"
	"github.com/mikeb26/boylstonchessclub-swiss/s3store"
	"github.com/mikeb26/boylstonchessclub-swiss/sqlstore"
	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
	"github.com/mikeb26/boylstonchessclub-swiss/uschess"
)

var (
	errRoundUnfinished = errors.New("previous round has unfinished games")
	errInvalidPairings = errors.New("pairings failed validation")
)

func handleCreate(ctx context.Context, args []string) {
	fs := newFlagSet("create")
	name := fs.String("name", "", "Tournament name")
	rounds := fs.Int("rounds", 0, "Number of rounds (0 for open ended)")
	tiebreaks := fs.String("tiebreaks", "",
		"Comma separated tiebreak order (default from config)")
	cfg := fs.parse(args)
	if *name == "" || *rounds < 0 {
		fmt.Fprintln(os.Stderr, "Please provide a --name and a non-negative --rounds.")
		fs.Usage()
		os.Exit(1)
	}

	var tbNames []string
	if *tiebreaks != "" {
		tbNames = strings.Split(*tiebreaks, ",")
	}
	if _, err := standings.ParseTiebreakOrder(tbNames); err != nil {
		log.Fatalf("Error: %v", err)
	}

	store := openStore(ctx, cfg)
	defer store.Close()
	t, err := store.CreateTournament(ctx, *name, *rounds, tbNames)
	if err != nil {
		log.Fatalf("Error creating tournament: %v", err)
	}
	fmt.Printf("Created %v (tid:%v)\n", t.Name, t.ID)
}

func handleList(ctx context.Context, args []string) {
	fs := newFlagSet("list")
	cfg := fs.parse(args)

	store := openStore(ctx, cfg)
	defer store.Close()
	tournaments, err := store.ListTournaments(ctx)
	if err != nil {
		log.Fatalf("Error listing tournaments: %v", err)
	}
	if len(tournaments) == 0 {
		fmt.Println("No tournaments found.")
		return
	}
	for _, t := range tournaments {
		fmt.Printf("%v  %s (%d rounds, tid:%v)\n",
			t.CreatedAt.Format("2006-01-02"), t.Name, t.TotalRounds, t.ID)
	}
}

func handleAddPlayer(ctx context.Context, args []string) {
	fs := newFlagSet("addplayer")
	tid := fs.String("tid", "", "Tournament ID")
	id := fs.Int("id", 0, "Player id (default next free id)")
	name := fs.String("name", "", "Player name")
	rating := fs.Int("rating", 0, "Rating (0 for unrated)")
	club := fs.String("club", "", "Club")
	country := fs.String("country", "", "Country code")
	uscfID := fs.Int("uscf", 0, "US Chess member id to take name and rating from")
	cfg := fs.parse(args)
	fs.requireTID(*tid)

	p := chess.Player{
		ID:      chess.PlayerID(*id),
		Name:    *name,
		Rating:  *rating,
		Club:    *club,
		Country: *country,
	}
	if *uscfID != 0 {
		client := uschess.NewClient(ctx, cfg.WebCache.Bucket)
		member, err := client.FetchMember(ctx, uschess.MemID(*uscfID))
		if err != nil {
			log.Fatalf("Error fetching USCF member %v: %v", *uscfID, err)
		}
		fromMember := member.Player(p.ID, uschess.RatingTypeRegular)
		if p.Name == "" {
			p.Name = fromMember.Name
		}
		if p.Rating == 0 {
			p.Rating = fromMember.Rating
		}
	}
	if p.Name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --name or a --uscf member id.")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(ctx, cfg)
	defer store.Close()
	p, err := store.AddPlayer(ctx, *tid, p)
	if err != nil {
		log.Fatalf("Error adding player: %v", err)
	}
	fmt.Printf("Added %v (%d) as player %v\n", p.Name, p.Rating, p.ID)
}

func handleWithdraw(ctx context.Context, args []string) {
	fs := newFlagSet("withdraw")
	tid := fs.String("tid", "", "Tournament ID")
	player := fs.Int("player", 0, "Player id")
	cfg := fs.parse(args)
	fs.requireTID(*tid)

	store := openStore(ctx, cfg)
	defer store.Close()
	err := store.WithdrawPlayer(ctx, *tid, chess.PlayerID(*player))
	if err != nil {
		log.Fatalf("Error withdrawing player %v: %v", *player, err)
	}
	fmt.Printf("Player %v withdrawn\n", *player)
}

func handleBye(ctx context.Context, args []string) {
	fs := newFlagSet("bye")
	tid := fs.String("tid", "", "Tournament ID")
	player := fs.Int("player", 0, "Player id")
	round := fs.Int("round", 0, "Round to sit out")
	cfg := fs.parse(args)
	fs.requireTID(*tid)
	if *round <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --round.")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(ctx, cfg)
	defer store.Close()
	err := store.RequestBye(ctx, *tid, chess.PlayerID(*player), *round)
	if err != nil {
		log.Fatalf("Error requesting bye: %v", err)
	}
	fmt.Printf("Player %v has a half point bye in round %d\n", *player, *round)
}

func handlePair(ctx context.Context, args []string) {
	fs := newFlagSet("pair")
	tid := fs.String("tid", "", "Tournament ID")
	round := fs.Int("round", 0, "Round to pair (default next round)")
	force := fs.Bool("force", false, "Pair even if the previous round is unfinished")
	cfg := fs.parse(args)
	fs.requireTID(*tid)

	store := openStore(ctx, cfg)
	defer store.Close()
	res, err := pairRound(ctx, store, *tid, *round, *force,
		cfg.Pairing.Options())
	if res != nil {
		fmt.Print(report.Pairings(res))
	}
	if err != nil {
		log.Fatalf("Error pairing: %v", err)
	}
	mirrorHistory(ctx, cfg, store, *tid)
}

// pairRound pairs round of tid and records it. A zero round means the
// round after the last one paired. Pairings that fail validation are
// returned along with errInvalidPairings and are not recorded.
func pairRound(ctx context.Context, store *sqlstore.Store, tid string,
	round int, force bool, opts swiss.Options) (*swiss.PairingResult, error) {

	t, err := store.GetTournament(ctx, tid)
	if err != nil {
		return nil, err
	}
	last, err := store.LastRound(ctx, tid)
	if err != nil {
		return nil, err
	}
	if round == 0 {
		round = last + 1
	}
	if round != last+1 {
		return nil, &chess.InputError{Field: "round",
			Reason: fmt.Sprintf("round %d cannot follow round %d", round, last)}
	}

	players, err := store.GetPlayers(ctx, tid)
	if err != nil {
		return nil, err
	}
	games, err := store.GetGames(ctx, tid)
	if err != nil {
		return nil, err
	}
	if !force {
		for _, g := range games {
			if g.Round == last && !g.IsCompleted() {
				return nil, fmt.Errorf("round %d: %w", last, errRoundUnfinished)
			}
		}
	}
	hist, err := store.LoadHistory(ctx, tid)
	if err != nil {
		return nil, err
	}
	withdrawn, err := store.Withdrawn(ctx, tid)
	if err != nil {
		return nil, err
	}
	requested, err := store.RequestedByes(ctx, tid, round)
	if err != nil {
		return nil, err
	}

	opts.TotalRounds = t.TotalRounds
	opts.Withdrawn = withdrawn
	opts.RequestedByes = slices.DeleteFunc(requested, func(id chess.PlayerID) bool {
		return slices.Contains(withdrawn, id)
	})
	res, err := swiss.GeneratePairings(players,
		chess.ResultsFromGames(players, games), games, round, hist, opts)
	if err != nil {
		return nil, err
	}
	if len(res.ValidationErrors) > 0 {
		return res, errInvalidPairings
	}
	if err := store.RecordPairings(ctx, tid, res); err != nil {
		return res, err
	}

	return res, nil
}

// mirrorHistory copies the tournament's history to the configured S3
// bucket. Failures are logged and otherwise ignored.
func mirrorHistory(ctx context.Context, cfg *internal.Config,
	store *sqlstore.Store, tid string) {

	if cfg.History.Bucket == "" {
		return
	}
	bucket := s3store.NewBucket(cfg.History.Bucket, "history/",
		cfg.History.Gzip)
	if err := bucket.Init(ctx); err != nil {
		log.Printf("swisstd.mirrorHistory: %v", err)
		return
	}
	h, err := store.LoadHistory(ctx, tid)
	if err == nil {
		err = history.NewS3Store(bucket).SaveHistory(ctx, tid, h)
	}
	if err != nil {
		log.Printf("swisstd.mirrorHistory: %v", err)
	}
}

func handleResult(ctx context.Context, args []string) {
	fs := newFlagSet("result")
	tid := fs.String("tid", "", "Tournament ID")
	round := fs.Int("round", 0, "Round")
	board := fs.Int("board", 0, "Board")
	result := fs.String("result", "", "Result, e.g. 1-0, 0-1, 1/2-1/2, 1F-0F")
	cfg := fs.parse(args)
	fs.requireTID(*tid)
	if *round <= 0 || *board <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --round and --board.")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(ctx, cfg)
	defer store.Close()
	err := store.RecordResult(ctx, *tid, *round, *board, *result)
	if err != nil {
		log.Fatalf("Error recording result: %v", err)
	}
	fmt.Printf("Round %d board %d: %v\n", *round, *board,
		chess.ParseResult(*result))
}

func handleStandings(ctx context.Context, args []string) {
	fs := newFlagSet("standings")
	tid := fs.String("tid", "", "Tournament ID")
	cfg := fs.parse(args)
	fs.requireTID(*tid)

	store := openStore(ctx, cfg)
	defer store.Close()
	t, err := store.GetTournament(ctx, *tid)
	if err != nil {
		log.Fatalf("Error fetching tournament %v: %v", *tid, err)
	}
	tbCfg, err := tiebreakConfig(cfg, t)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	res, err := standings.NewCalculator(store).CalculateStandings(ctx, *tid,
		tbCfg)
	if err != nil {
		log.Fatalf("Error calculating standings: %v", err)
	}

	fmt.Printf("%v Standings:\n\n", t.Name)
	fmt.Print(report.Standings(res.Standings, tbCfg.Order))
}

// tiebreakConfig prefers the order stored with the tournament over the
// configured one.
func tiebreakConfig(cfg *internal.Config,
	t *sqlstore.Tournament) (standings.TiebreakConfig, error) {

	var order []standings.TiebreakType
	var err error
	if names := t.TiebreakNames(); len(names) > 0 {
		order, err = standings.ParseTiebreakOrder(names)
	} else {
		order, err = cfg.TiebreakOrder()
	}
	if err != nil {
		return standings.TiebreakConfig{}, err
	}
	return standings.TiebreakConfig{Order: order}, nil
}
