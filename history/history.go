/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package history persists the bye and float history of a tournament
// between pairing rounds.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mikeb26/boylstonchessclub-swiss/s3store"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

// Store loads and saves a tournament's pairing history. Loading a
// tournament with no saved history yields an empty one.
type Store interface {
	LoadHistory(ctx context.Context, tournamentID string) (*swiss.History,
		error)
	SaveHistory(ctx context.Context, tournamentID string,
		h *swiss.History) error
}

// Decode parses a JSON encoded history; empty input is an empty history.
func Decode(data []byte) (*swiss.History, error) {
	h := swiss.NewHistory()
	if len(data) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("history: failed to decode: %w", err)
	}
	if h.Byes == nil || h.Floats == nil {
		empty := swiss.NewHistory()
		if h.Byes == nil {
			h.Byes = empty.Byes
		}
		if h.Floats == nil {
			h.Floats = empty.Floats
		}
	}

	return h, nil
}

func Encode(h *swiss.History) ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("history: failed to encode: %w", err)
	}
	return data, nil
}

// MemStore keeps histories in memory. Saved histories are copied so later
// changes by the caller do not leak in.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) LoadHistory(_ context.Context,
	tournamentID string) (*swiss.History, error) {

	m.mu.Lock()
	data := m.data[tournamentID]
	m.mu.Unlock()

	return Decode(data)
}

func (m *MemStore) SaveHistory(_ context.Context, tournamentID string,
	h *swiss.History) error {

	data, err := Encode(h)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[tournamentID] = data
	m.mu.Unlock()

	return nil
}

// S3Store keeps one JSON object per tournament in an S3 bucket.
type S3Store struct {
	bucket *s3store.Bucket
}

// NewS3Store returns a store on an initialized bucket.
func NewS3Store(bucket *s3store.Bucket) *S3Store {
	return &S3Store{bucket: bucket}
}

func (s *S3Store) LoadHistory(ctx context.Context,
	tournamentID string) (*swiss.History, error) {

	data, err := s.bucket.Get(ctx, objectKey(tournamentID))
	if errors.Is(err, s3store.ErrNoSuchKey) {
		return swiss.NewHistory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: failed to load %v: %w", tournamentID,
			err)
	}

	return Decode(data)
}

func (s *S3Store) SaveHistory(ctx context.Context, tournamentID string,
	h *swiss.History) error {

	data, err := Encode(h)
	if err != nil {
		return err
	}
	err = s.bucket.Put(ctx, objectKey(tournamentID), data)
	if err != nil {
		return fmt.Errorf("history: failed to save %v: %w", tournamentID, err)
	}

	return nil
}

func objectKey(tournamentID string) string {
	return tournamentID + ".json"
}
