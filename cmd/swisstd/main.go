/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mikeb26/boylstonchessclub-swiss/internal"
	"github.com/mikeb26/boylstonchessclub-swiss/sqlstore"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"create":    handleCreate,
	"list":      handleList,
	"addplayer": handleAddPlayer,
	"withdraw":  handleWithdraw,
	"bye":       handleBye,
	"pair":      handlePair,
	"result":    handleResult,
	"standings": handleStandings,
	"uscf":      handleUSCF,
	"bcc":       handleBCC,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// cmdFlags is a command's flag set plus the options every command shares.
type cmdFlags struct {
	*flag.FlagSet
	configPath *string
}

func newFlagSet(name string) *cmdFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &cmdFlags{
		FlagSet:    fs,
		configPath: fs.String("config", "", "Path to the YAML config file"),
	}
}

func (fs *cmdFlags) parse(args []string) *internal.Config {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	cfg, err := internal.LoadConfig(*fs.configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// requireTID exits unless the mandatory --tid flag was given.
func (fs *cmdFlags) requireTID(tid string) {
	if tid == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --tid ID.")
		fs.Usage()
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *internal.Config) *sqlstore.Store {
	store, err := sqlstore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("Error opening %v: %v", cfg.DB, err)
	}
	return store
}
