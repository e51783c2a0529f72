// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package kvstore provides the client's persistent key-value cache.
//
// Values are stored as JSON under fixed string keys in an embedded
// BadgerDB. A value that no longer parses is treated as absent and removed,
// so a corrupt entry never prevents the client from starting.
//
//	store, err := kvstore.Open(kvstore.Options{Path: cfg.Storage.Path})
//	var history []string
//	found, err := store.Get(kvstore.KeySearchHistory, &history)
package kvstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Fixed keys used by the client.
const (
	KeyUser           = "marquee_user"
	KeyRecentlyViewed = "marquee_recently_viewed"
	KeySearchHistory  = "marquee_search_history"
)

// ErrInvalidKey is returned for an empty key.
var ErrInvalidKey = errors.New("kvstore: key must not be empty")

// Store is a JSON key-value cache. Get reports whether a usable value was
// found; Set overwrites; Clear removes and is a no-op for missing keys.
type Store interface {
	Get(key string, dst interface{}) (bool, error)
	Set(key string, value interface{}) error
	Clear(key string) error
}

// Ensure BadgerStore implements Store
var _ Store = (*BadgerStore)(nil)

// Options configures Open.
type Options struct {
	// Path is the directory holding the database files.
	Path string
	// InMemory keeps all data in memory; Path is ignored.
	InMemory bool
}

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db   *badger.DB
	owns bool
}

// Open opens (or creates) the cache database.
func Open(opts Options) (*BadgerStore, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("kvstore: path is required unless in-memory")
		}
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts = bopts.WithLogger(nil)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	return &BadgerStore{db: db, owns: true}, nil
}

// New wraps an already open database. Close does not close db.
func New(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close closes the underlying database if it was opened by Open.
func (s *BadgerStore) Close() error {
	if !s.owns {
		return nil
	}
	return s.db.Close()
}

// Get decodes the value stored under key into dst. It returns false with a
// nil error when the key is missing or its value cannot be decoded; in the
// latter case the entry is deleted.
func (s *BadgerStore) Get(key string, dst interface{}) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		metrics.RecordKVOperation("get", "miss")
		return false, nil
	}
	if err != nil {
		metrics.RecordKVOperation("get", "error")
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.RecordKVOperation("get", "corrupt")
		logging.Warn().Str("key", key).Err(err).Msg("Discarding unreadable cache entry")
		if clearErr := s.Clear(key); clearErr != nil {
			logging.Warn().Str("key", key).Err(clearErr).Msg("Failed to remove unreadable cache entry")
		}
		return false, nil
	}

	metrics.RecordKVOperation("get", "hit")
	return true, nil
}

// Set stores value under key as JSON, replacing any previous value.
func (s *BadgerStore) Set(key string, value interface{}) error {
	if key == "" {
		return ErrInvalidKey
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		metrics.RecordKVOperation("set", "error")
		return fmt.Errorf("set %s: %w", key, err)
	}
	metrics.RecordKVOperation("set", "ok")
	return nil
}

// Clear removes key.
func (s *BadgerStore) Clear(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		metrics.RecordKVOperation("clear", "error")
		return fmt.Errorf("clear %s: %w", key, err)
	}
	metrics.RecordKVOperation("clear", "ok")
	return nil
}

// setRaw writes bytes without encoding. Tests use it to plant corrupt entries.
func (s *BadgerStore) setRaw(key string, raw []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}
