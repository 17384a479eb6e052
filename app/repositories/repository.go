package repositories

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
)

// BadgerStore owns a Badger database and hands out repositories over it.
type BadgerStore struct {
	db       *badger.DB
	seq      *CommentSequence
	dbPath   string
	isTestDB bool
}

// NewBadgerStore opens the database at path. An empty path opens a fresh
// database in a temporary directory that is removed on Close.
func NewBadgerStore(path string) (*BadgerStore, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "hootroost_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if isTest {
		opts = opts.WithSyncWrites(false).WithNumVersionsToKeep(1)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	store, err := newBadgerStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	store.dbPath = path
	store.isTestDB = isTest
	return store, nil
}

// NewInMemoryBadgerStore opens a Badger database that lives only in memory.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	store, err := newBadgerStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func newBadgerStore(db *badger.DB) (*BadgerStore, error) {
	return &BadgerStore{db: db, seq: NewCommentSequence(db)}, nil
}

// DB exposes the underlying database.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func (s *BadgerStore) Hoots() HootRepository {
	return NewBadgerHootRepository(s.db, s.seq)
}

func (s *BadgerStore) Users() UserRepository {
	return NewBadgerUserRepository(s.db)
}

// Backup writes a full backup of the database to w.
func (s *BadgerStore) Backup(w io.Writer) error {
	_, err := s.db.Backup(w, 0)
	return err
}

// Load restores a backup produced by Backup into a store that has not
// numbered any comment yet, so restored comments keep their order and new
// ones sort after them.
func (s *BadgerStore) Load(r io.Reader) error {
	if s.seq.started() {
		return ErrSequenceInUse
	}
	return s.db.Load(r, 16)
}

// Clear drops every key in the database.
func (s *BadgerStore) Clear() error {
	return s.db.DropAll()
}

func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		return fmt.Errorf("failed to release comment sequence: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return err
	}

	// Clean up test database
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}
