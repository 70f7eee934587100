/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mikeb26/boylstonchessclub-swiss/bcc"
	"github.com/mikeb26/boylstonchessclub-swiss/report"
	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
	"github.com/mikeb26/boylstonchessclub-swiss/uschess"
)

func handleUSCF(ctx context.Context, args []string) {
	fs := newFlagSet("uscf")
	tid := fs.Int("uscftid", 0, "USCF Tournament ID")
	section := fs.String("section", "", "Only show this section")
	predict := fs.Bool("predict", false, "Also pair the round after the last one rated")
	cfg := fs.parse(args)
	if *tid <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --uscftid ID.")
		fs.Usage()
		os.Exit(1)
	}
	order, err := cfg.TiebreakOrder()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	tbCfg := standings.TiebreakConfig{Order: order}

	client := uschess.NewClient(ctx, cfg.WebCache.Bucket)
	tourney, err := client.FetchCrossTables(ctx, uschess.EventID(*tid))
	if err != nil {
		log.Fatalf("Error fetching cross tables %d: %v", *tid, err)
	}
	xTables := tourney.CrossTables
	if *section != "" {
		xt, err := tourney.Section(*section)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		xTables = []*uschess.CrossTable{xt}
	}

	fmt.Printf("%v", tourney.Event.Name)
	if !tourney.Event.EndDate.IsZero() {
		fmt.Printf(" (%v)", tourney.Event.EndDate.Format("2006-01-02"))
	}
	fmt.Printf("\n\n")

	calc := standings.NewCalculator(uschess.NewTournamentStore(tourney))
	for _, xt := range xTables {
		res, err := calc.CalculateStandings(ctx, xt.SectionName, tbCfg)
		if err != nil {
			log.Fatalf("Error calculating standings for %v: %v",
				xt.SectionName, err)
		}
		fmt.Printf("%v Section Standings:\n\n", xt.SectionName)
		fmt.Print(report.Standings(res.Standings, tbCfg.Order))
		fmt.Println()

		if !*predict {
			continue
		}
		in := xt.Inputs()
		opts := cfg.Pairing.Options()
		opts.TotalRounds = 0
		pairings, err := swiss.GeneratePairings(in.Players, in.Results,
			in.Games, xt.NumRounds+1, in.History, opts)
		if err != nil {
			log.Fatalf("Error pairing %v: %v", xt.SectionName, err)
		}
		fmt.Printf("%v Section Predicted ", xt.SectionName)
		fmt.Print(report.Pairings(pairings))
		fmt.Println()
	}
}

func handleBCC(ctx context.Context, args []string) {
	fs := newFlagSet("bcc")
	eventID := fs.Int("eventid", 0, "Event ID to predict pairings for")
	cfg := fs.parse(args)
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --eventid ID.")
		fs.Usage()
		os.Exit(1)
	}

	client := bcc.NewClient(ctx, cfg.WebCache.Bucket)
	sections, err := client.EventSections(ctx, int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching event %d: %v", *eventID, err)
	}
	preds, err := bcc.Predict(sections, cfg.Pairing.Options())
	if err != nil {
		log.Fatalf("Error predicting pairings for event %d: %v", *eventID, err)
	}
	for _, pred := range preds {
		fmt.Printf("%v Section Predicted ", pred.Section.Name)
		fmt.Print(report.Pairings(pred.Result))
		fmt.Println()
	}
}
