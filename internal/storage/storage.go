package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessrules/internal/board"
)

// Key prefix for named positions.
const keyPositionPrefix = "position/"

// ErrNotFound is returned when no position is stored under a name.
var ErrNotFound = errors.New("position not found")

// ErrInvalidName is returned for names that are empty or contain a slash or
// whitespace.
var ErrInvalidName = errors.New("invalid position name")

// Storage wraps BadgerDB for persistent storage of named positions. A
// position is stored as its text form and nothing else.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the store in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (creating if needed) a store in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open position store: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, "/ \t\n") {
		return nil, fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return []byte(keyPositionPrefix + name), nil
}

// SavePosition stores pos under name, replacing any earlier entry.
func (s *Storage) SavePosition(name string, pos *board.Position) error {
	key, err := positionKey(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte(pos.ToFEN()))
	})
}

// LoadPosition returns the position stored under name.
func (s *Storage) LoadPosition(name string) (*board.Position, error) {
	key, err := positionKey(name)
	if err != nil {
		return nil, err
	}

	var fen string
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			fen = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("stored position %q: %w", name, err)
	}
	return pos, nil
}

// DeletePosition removes the position stored under name.
func (s *Storage) DeletePosition(name string) error {
	key, err := positionKey(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListPositions returns the names of all stored positions, sorted.
func (s *Storage) ListPositions() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPositionPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPositionPrefix))
		}
		return nil
	})
	slices.Sort(names)
	return names, err
}
