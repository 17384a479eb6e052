package repositories

import (
	"context"
	"fmt"
	"sort"

	"hootroost/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerHootRepository implements HootRepository using BadgerDB.
//
// The hoot document lives at hoot:<id> without its comments; each comment is
// its own key under comment:<hootID>: so appending never rewrites a key that
// another writer could be appending to at the same time.
type BadgerHootRepository struct {
	db  *badger.DB
	seq *CommentSequence
}

// NewBadgerHootRepository creates a new BadgerHootRepository
func NewBadgerHootRepository(db *badger.DB, seq *CommentSequence) *BadgerHootRepository {
	return &BadgerHootRepository{db: db, seq: seq}
}

// Create stores a new hoot together with any comments it already carries.
func (r *BadgerHootRepository) Create(ctx context.Context, hoot *models.Hoot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hoot.BeforeCreate()
	for _, c := range hoot.Comments {
		c.BeforeCreate()
	}
	seqs, err := r.nextSeqs(len(hoot.Comments))
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := hootKey(hoot.ID)
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("hoot %s already exists", hoot.ID)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := putHoot(txn, hoot); err != nil {
			return err
		}
		for i, c := range hoot.Comments {
			if err := putComment(txn, commentKey(hoot.ID, seqs[i]), c); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a hoot with its comments in insertion order.
func (r *BadgerHootRepository) GetByID(ctx context.Context, id string) (*models.Hoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var hoot *models.Hoot
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		hoot, err = loadHoot(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return hoot, nil
}

// List retrieves every hoot, newest first.
func (r *BadgerHootRepository) List(ctx context.Context) ([]*models.Hoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hoots := []*models.Hoot{}
	err := r.db.View(func(txn *badger.Txn) error {
		var ids []string
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		prefix := []byte(HootKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		it.Close()

		for _, id := range ids {
			hoot, err := loadHoot(txn, id)
			if err != nil {
				return err
			}
			hoots = append(hoots, hoot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(hoots, func(i, j int) bool {
		return hoots[i].CreatedAt.After(hoots[j].CreatedAt)
	})
	return hoots, nil
}

// Update persists the whole aggregate. Stored comments missing from hoot are
// deleted, known ones are rewritten in place and new ones are appended.
func (r *BadgerHootRepository) Update(ctx context.Context, hoot *models.Hoot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(hootKey(hoot.ID)); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		existing, err := commentKeys(txn, hoot.ID)
		if err != nil {
			return err
		}

		kept := make(map[string]bool, len(hoot.Comments))
		for _, c := range hoot.Comments {
			key, ok := existing[c.ID]
			if !ok {
				c.BeforeCreate()
				seq, err := r.seq.Next()
				if err != nil {
					return err
				}
				key = commentKey(hoot.ID, seq)
			}
			if err := putComment(txn, key, c); err != nil {
				return err
			}
			kept[c.ID] = true
		}
		for id, key := range existing {
			if !kept[id] {
				if err := txn.Delete(key); err != nil {
					return err
				}
			}
		}

		return putHoot(txn, hoot)
	})
}

// UpdateFields rewrites only the hoot document. Comment keys are not read,
// so comments appended concurrently survive.
func (r *BadgerHootRepository) UpdateFields(ctx context.Context, hoot *models.Hoot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		stored, err := getHootDoc(txn, hoot.ID)
		if err != nil {
			return err
		}
		stored.Title = hoot.Title
		stored.Text = hoot.Text
		stored.Category = hoot.Category
		stored.UpdatedAt = hoot.UpdatedAt
		return putHoot(txn, stored)
	})
}

// Delete removes a hoot and every comment stored under it.
func (r *BadgerHootRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := hootKey(id)

		// Verify hoot exists
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		existing, err := commentKeys(txn, id)
		if err != nil {
			return err
		}
		for _, ck := range existing {
			if err := txn.Delete(ck); err != nil {
				return err
			}
		}
		return txn.Delete(key)
	})
}

// AppendComment writes comment as a single new key after the hoot's last
// comment. Concurrent appends to the same hoot never conflict.
func (r *BadgerHootRepository) AppendComment(ctx context.Context, hootID string, comment *models.Comment) (*models.Hoot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comment.BeforeCreate()
	seq, err := r.seq.Next()
	if err != nil {
		return nil, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(hootKey(hootID)); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return putComment(txn, commentKey(hootID, seq), comment)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, hootID)
}

func (r *BadgerHootRepository) nextSeqs(n int) ([]uint64, error) {
	seqs := make([]uint64, n)
	for i := range seqs {
		seq, err := r.seq.Next()
		if err != nil {
			return nil, err
		}
		seqs[i] = seq
	}
	return seqs, nil
}

func putHoot(txn *badger.Txn, hoot *models.Hoot) error {
	doc := *hoot
	doc.Comments = nil
	data, err := marshalEntity(&doc)
	if err != nil {
		return err
	}
	return txn.Set(hootKey(hoot.ID), data)
}

func putComment(txn *badger.Txn, key []byte, comment *models.Comment) error {
	data, err := marshalEntity(comment)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// getHootDoc reads the hoot document without its comments.
func getHootDoc(txn *badger.Txn, id string) (*models.Hoot, error) {
	item, err := txn.Get(hootKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var hoot models.Hoot
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &hoot)
	}); err != nil {
		return nil, err
	}
	return &hoot, nil
}

func loadHoot(txn *badger.Txn, id string) (*models.Hoot, error) {
	hoot, err := getHootDoc(txn, id)
	if err != nil {
		return nil, err
	}

	hoot.Comments = []*models.Comment{}
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	prefix := commentPrefix(id)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var comment models.Comment
		if err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		}); err != nil {
			return nil, err
		}
		hoot.Comments = append(hoot.Comments, &comment)
	}
	return hoot, nil
}

// commentKeys maps comment ids to their keys for one hoot.
func commentKeys(txn *badger.Txn, hootID string) (map[string][]byte, error) {
	keys := make(map[string][]byte)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	prefix := commentPrefix(hootID)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var comment models.Comment
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		}); err != nil {
			return nil, err
		}
		keys[comment.ID] = item.KeyCopy(nil)
	}
	return keys, nil
}
