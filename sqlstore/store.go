/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package sqlstore keeps tournaments, players, games and pairing history in
// a SQLite database.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/mikeb26/boylstonchessclub-swiss/chess"
	"github.com/mikeb26/boylstonchessclub-swiss/history"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrRoundExists = errors.New("round already paired")

type Tournament struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	TotalRounds int       `db:"total_rounds"`
	// Tiebreaks is a comma separated tiebreak order; empty is the default
	Tiebreaks string    `db:"tiebreaks"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *Tournament) TiebreakNames() []string {
	if t.Tiebreaks == "" {
		return nil
	}
	return strings.Split(t.Tiebreaks, ",")
}

type playerRow struct {
	TournamentID string `db:"tournament_id"`
	chess.Player
}

type gameRow struct {
	TournamentID string `db:"tournament_id"`
	Board        int    `db:"board"`
	chess.Game
}

type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn and applies any pending
// migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to connect to %v: %w", dsn, err)
	}
	// one connection serializes writers and keeps :memory: databases whole
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;")
	if err == nil {
		err = migrateUp(db)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: failed to init %v: %w", dsn, err)
	}

	return &Store{db: db}, nil
}

func migrateUp(db *sqlx.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite3.WithInstance(db.DB, &migratesqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateTournament(ctx context.Context, name string,
	totalRounds int, tiebreaks []string) (*Tournament, error) {

	t := &Tournament{
		ID:          uuid.New(),
		Name:        name,
		TotalRounds: totalRounds,
		Tiebreaks:   strings.Join(tiebreaks, ","),
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, total_rounds, tiebreaks, created_at)
		VALUES (:id, :name, :total_rounds, :tiebreaks, :created_at)`, t)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to create tournament: %w", err)
	}

	return t, nil
}

func (s *Store) GetTournament(ctx context.Context, id string) (*Tournament,
	error) {

	return getTournament(ctx, s.db, id)
}

func getTournament(ctx context.Context, q sqlx.QueryerContext,
	id string) (*Tournament, error) {

	var t Tournament
	err := sqlx.GetContext(ctx, q, &t, "SELECT * FROM tournaments WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tournament %v: %w", id, chess.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to get tournament %v: %w", id, err)
	}

	return &t, nil
}

func (s *Store) ListTournaments(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament
	err := s.db.SelectContext(ctx, &tournaments,
		"SELECT * FROM tournaments ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// AddPlayer registers p. A zero p.ID is replaced by the next free id.
func (s *Store) AddPlayer(ctx context.Context, tournamentID string,
	p chess.Player) (chess.Player, error) {

	if p.Rating < 0 {
		return chess.Player{}, &chess.InputError{Field: "rating",
			Reason: fmt.Sprintf("negative rating %d", p.Rating)}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return chess.Player{}, fmt.Errorf("sqlstore: failed to begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := getTournament(ctx, tx, tournamentID); err != nil {
		return chess.Player{}, err
	}
	if p.ID == chess.NoPlayer {
		err = tx.GetContext(ctx, &p.ID,
			"SELECT COALESCE(MAX(id), 0) + 1 FROM players WHERE tournament_id = ?",
			tournamentID)
		if err != nil {
			return chess.Player{}, fmt.Errorf("sqlstore: failed to allocate player id: %w", err)
		}
	}

	_, err = tx.NamedExecContext(ctx, `INSERT INTO players (tournament_id, id, name, rating, club, country)
		VALUES (:tournament_id, :id, :name, :rating, :club, :country)`,
		playerRow{TournamentID: tournamentID, Player: p})
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return chess.Player{}, &chess.InputError{Field: "players",
			Reason: fmt.Sprintf("duplicate player id %d", p.ID)}
	}
	if err != nil {
		return chess.Player{}, fmt.Errorf("sqlstore: failed to add player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return chess.Player{}, fmt.Errorf("sqlstore: failed to commit player: %w", err)
	}

	return p, nil
}

func (s *Store) WithdrawPlayer(ctx context.Context, tournamentID string,
	id chess.PlayerID) error {

	r, err := s.db.ExecContext(ctx,
		"UPDATE players SET withdrawn = 1 WHERE tournament_id = ? AND id = ?",
		tournamentID, id)
	if err != nil {
		return fmt.Errorf("sqlstore: failed to withdraw player %v: %w", id, err)
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return &chess.NotFoundError{ID: id}
	}
	return nil
}

func (s *Store) Withdrawn(ctx context.Context,
	tournamentID string) ([]chess.PlayerID, error) {

	var ids []chess.PlayerID
	err := s.db.SelectContext(ctx, &ids,
		"SELECT id FROM players WHERE tournament_id = ? AND withdrawn = 1 ORDER BY id",
		tournamentID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to list withdrawals: %w", err)
	}
	return ids, nil
}

// RequestBye records that player id sits out round for a half point.
func (s *Store) RequestBye(ctx context.Context, tournamentID string,
	id chess.PlayerID, round int) error {

	if _, err := s.GetPlayer(ctx, tournamentID, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO bye_requests (tournament_id, player_id, round) VALUES (?, ?, ?)",
		tournamentID, id, round)
	if err != nil {
		return fmt.Errorf("sqlstore: failed to request bye: %w", err)
	}
	return nil
}

func (s *Store) RequestedByes(ctx context.Context, tournamentID string,
	round int) ([]chess.PlayerID, error) {

	var ids []chess.PlayerID
	err := s.db.SelectContext(ctx, &ids,
		"SELECT player_id FROM bye_requests WHERE tournament_id = ? AND round = ? ORDER BY player_id",
		tournamentID, round)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to list bye requests: %w", err)
	}
	return ids, nil
}

// GetPlayers returns every registered player, withdrawn or not.
func (s *Store) GetPlayers(ctx context.Context,
	tournamentID string) ([]chess.Player, error) {

	var players []chess.Player
	err := s.db.SelectContext(ctx, &players,
		"SELECT id, name, rating, club, country FROM players WHERE tournament_id = ? ORDER BY id",
		tournamentID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to get players: %w", err)
	}
	return players, nil
}

func (s *Store) GetPlayer(ctx context.Context, tournamentID string,
	id chess.PlayerID) (chess.Player, error) {

	var p chess.Player
	err := s.db.GetContext(ctx, &p,
		"SELECT id, name, rating, club, country FROM players WHERE tournament_id = ? AND id = ?",
		tournamentID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return chess.Player{}, &chess.NotFoundError{ID: id}
	}
	if err != nil {
		return chess.Player{}, fmt.Errorf("sqlstore: failed to get player %v: %w", id, err)
	}
	return p, nil
}

func (s *Store) GetGames(ctx context.Context,
	tournamentID string) ([]chess.Game, error) {

	var games []chess.Game
	err := s.db.SelectContext(ctx, &games,
		"SELECT round, white_id, black_id, result FROM games WHERE tournament_id = ? ORDER BY round, board",
		tournamentID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: failed to get games: %w", err)
	}
	return games, nil
}

// LastRound is the highest round paired so far, or 0.
func (s *Store) LastRound(ctx context.Context, tournamentID string) (int,
	error) {

	var round int
	err := s.db.GetContext(ctx, &round,
		"SELECT COALESCE(MAX(round), 0) FROM games WHERE tournament_id = ?",
		tournamentID)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: failed to get last round: %w", err)
	}
	return round, nil
}

// RecordPairings stores a generated round as scheduled games and folds it
// into the tournament's history. Byes are stored with their points after
// the last board.
func (s *Store) RecordPairings(ctx context.Context, tournamentID string,
	res *swiss.PairingResult) error {

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: failed to begin: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.GetContext(ctx, &existing,
		"SELECT COUNT(*) FROM games WHERE tournament_id = ? AND round = ?",
		tournamentID, res.Round)
	if err != nil {
		return fmt.Errorf("sqlstore: failed to check round %d: %w", res.Round, err)
	}
	if existing > 0 {
		return fmt.Errorf("round %d: %w", res.Round, ErrRoundExists)
	}

	var rows []gameRow
	for i, g := range res.Games() {
		rows = append(rows, gameRow{TournamentID: tournamentID, Board: i + 1,
			Game: g})
	}
	if len(rows) > 0 {
		_, err = tx.NamedExecContext(ctx, `INSERT INTO games (tournament_id, round, board, white_id, black_id, result)
			VALUES (:tournament_id, :round, :board, :white_id, :black_id, :result)`, rows)
		if err != nil {
			return fmt.Errorf("sqlstore: failed to record round %d: %w", res.Round, err)
		}
	}

	h, err := loadHistory(ctx, tx, tournamentID)
	if err != nil {
		return err
	}
	h.Record(res)
	if err := saveHistory(ctx, tx, tournamentID, h); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: failed to commit round %d: %w", res.Round, err)
	}
	return nil
}

// RecordResult sets the result of one board. Byes cannot be changed.
func (s *Store) RecordResult(ctx context.Context, tournamentID string,
	round int, board int, result string) error {

	outcome := chess.ParseResult(result)
	if outcome == chess.OutcomeUnknown {
		return &chess.InputError{Field: "result",
			Reason: fmt.Sprintf("unrecognized result %q", result)}
	}

	r, err := s.db.ExecContext(ctx,
		"UPDATE games SET result = ? WHERE tournament_id = ? AND round = ? AND board = ? AND black_id != 0",
		outcome.String(), tournamentID, round, board)
	if err != nil {
		return fmt.Errorf("sqlstore: failed to record result: %w", err)
	}
	if n, _ := r.RowsAffected(); n == 0 {
		return fmt.Errorf("round %d board %d: %w", round, board, chess.ErrNotFound)
	}
	return nil
}

func (s *Store) LoadHistory(ctx context.Context,
	tournamentID string) (*swiss.History, error) {

	return loadHistory(ctx, s.db, tournamentID)
}

func (s *Store) SaveHistory(ctx context.Context, tournamentID string,
	h *swiss.History) error {

	return saveHistory(ctx, s.db, tournamentID, h)
}

func loadHistory(ctx context.Context, q sqlx.QueryerContext,
	tournamentID string) (*swiss.History, error) {

	var data string
	err := sqlx.GetContext(ctx, q, &data,
		"SELECT data FROM histories WHERE tournament_id = ?", tournamentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlstore: failed to load history: %w", err)
	}
	return history.Decode([]byte(data))
}

func saveHistory(ctx context.Context, e sqlx.ExecerContext,
	tournamentID string, h *swiss.History) error {

	data, err := history.Encode(h)
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, `INSERT INTO histories (tournament_id, data) VALUES (?, ?)
		ON CONFLICT(tournament_id) DO UPDATE SET data = excluded.data`,
		tournamentID, string(data))
	if err != nil {
		return fmt.Errorf("sqlstore: failed to save history: %w", err)
	}
	return nil
}
