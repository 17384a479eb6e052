package repositories

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

const sequenceBandwidth = 100

// ErrSequenceInUse is returned by Load once comment numbers have been handed out.
var ErrSequenceInUse = errors.New("comment sequence already in use")

// CommentSequence hands out increasing comment numbers. The underlying badger
// lease is taken on first use.
type CommentSequence struct {
	db  *badger.DB
	mu  sync.Mutex
	seq *badger.Sequence
}

func NewCommentSequence(db *badger.DB) *CommentSequence {
	return &CommentSequence{db: db}
}

// Next returns the next comment number.
func (s *CommentSequence) Next() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == nil {
		seq, err := s.db.GetSequence([]byte(CommentSeqKey), sequenceBandwidth)
		if err != nil {
			return 0, fmt.Errorf("failed to open comment sequence: %w", err)
		}
		s.seq = seq
	}
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate comment sequence: %w", err)
	}
	return n, nil
}

func (s *CommentSequence) started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq != nil
}

// Release returns the unused part of the lease.
func (s *CommentSequence) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == nil {
		return nil
	}
	err := s.seq.Release()
	s.seq = nil
	return err
}
