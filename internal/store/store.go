// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/metrics"
	"github.com/tomtom215/viewstats/internal/models"
)

// Persisted keys.
const (
	KeyActivities  = "MY_DATA"
	KeyMovies      = "MY_MOVIES"
	KeySeries      = "MY_SERIES"
	KeyUsers       = "USERLIST"
	KeyImportStats = "IMPORT_STATS"
)

// dataKeys are the records that together form one dataset.
var dataKeys = []string{KeyActivities, KeyMovies, KeySeries, KeyUsers}

var allKeys = []string{KeyActivities, KeyMovies, KeySeries, KeyUsers, KeyImportStats}

var (
	// ErrStorage wraps every failure of the underlying database.
	ErrStorage = errors.New("storage error")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Dataset is the complete set of derived records of one import.
type Dataset struct {
	Activities []models.Activity
	Movies     []models.EnrichedActivity
	Series     []models.EnrichedActivity
	Users      []string
}

// Store is a BadgerDB-backed record store.
type Store struct {
	db *badger.DB
}

// Open opens the store described by cfg.
func Open(cfg config.StorageConfig) (*Store, error) {
	if cfg.InMemory {
		return OpenInMemory()
	}
	opts := badger.DefaultOptions(cfg.Path).WithLogger(newBadgerLogger())
	return open(opts)
}

// OpenInMemory opens a store that lives only in memory.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger db: %w", ErrStorage, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database. Closing twice is a no-op.
func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: close badger db: %w", ErrStorage, err)
	}
	return nil
}

// SaveAll replaces the dataset and the import summary in one transaction.
// A nil summary leaves the stored summary untouched.
func (s *Store) SaveAll(ctx context.Context, ds Dataset, summary *models.ImportSummary) (err error) {
	defer observe("save_all", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return err
	}

	values := map[string]interface{}{
		KeyActivities: nonNil(ds.Activities),
		KeyMovies:     nonNil(ds.Movies),
		KeySeries:     nonNil(ds.Series),
		KeyUsers:      nonNil(ds.Users),
	}
	if summary != nil {
		values[KeyImportStats] = summary
	}

	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: marshal %s: %w", ErrStorage, key, err)
		}
		encoded[key] = data
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for key, data := range encoded {
			if err := txn.Set([]byte(key), data); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	logging.Ctx(ctx).Debug().
		Int("activities", len(ds.Activities)).
		Int("movies", len(ds.Movies)).
		Int("series", len(ds.Series)).
		Int("users", len(ds.Users)).
		Msg("Dataset saved")
	return nil
}

// DeleteAll removes the dataset and the import summary in one transaction.
// Deleting an empty store is not an error.
func (s *Store) DeleteAll(ctx context.Context) (err error) {
	defer observe("delete_all", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range allKeys {
			if err := txn.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Has reports whether all four dataset records exist.
func (s *Store) Has(ctx context.Context) (ok bool, err error) {
	defer observe("has", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		for _, key := range dataKeys {
			_, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
		}
		ok = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return ok, nil
}

// Ping verifies the database answers reads.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return fmt.Errorf("%w: database closed", ErrStorage)
	}
	return nil
}

// CollectGarbage rewrites value log files until badger finds nothing more
// worth reclaiming. It is a no-op for in-memory stores.
func (s *Store) CollectGarbage(ctx context.Context, discardRatio float64) (err error) {
	defer observe("gc", time.Now(), &err)

	if s.db.Opts().InMemory {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: value log gc: %w", ErrStorage, err)
		}
	}
}

// Activities returns the stored activity log.
func (s *Store) Activities(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	if err := s.get(ctx, KeyActivities, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// Movies returns the stored movie aggregates.
func (s *Store) Movies(ctx context.Context) ([]models.EnrichedActivity, error) {
	var out []models.EnrichedActivity
	if err := s.get(ctx, KeyMovies, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// Series returns the stored series aggregates.
func (s *Store) Series(ctx context.Context) ([]models.EnrichedActivity, error) {
	var out []models.EnrichedActivity
	if err := s.get(ctx, KeySeries, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// Users returns the stored user list in first-seen order.
func (s *Store) Users(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.get(ctx, KeyUsers, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// ImportSummary returns the summary of the last import.
func (s *Store) ImportSummary(ctx context.Context) (*models.ImportSummary, error) {
	var out models.ImportSummary
	if err := s.get(ctx, KeyImportStats, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) get(ctx context.Context, key string, dst interface{}) (err error) {
	defer observe("get", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrStorage, key, err)
	}
	return nil
}

// observe records the operation; a missing record is not counted as a failure.
func observe(op string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStoreOperation(op, time.Since(start), err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
