package repositories

import (
	"context"

	"hootroost/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Upsert stores the profile, replacing any previous version.
func (r *BadgerUserRepository) Upsert(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := marshalEntity(user)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.ID), data)
	})
}

// GetByID retrieves a profile by id
func (r *BadgerUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user *models.User
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByIDs retrieves the profiles that exist among ids
func (r *BadgerUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := make(map[string]*models.User, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			user, err := getUser(txn, id)
			if err == ErrNotFound {
				continue
			}
			if err != nil {
				return err
			}
			users[id] = user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func getUser(txn *badger.Txn, id string) (*models.User, error) {
	item, err := txn.Get(userKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &user)
	}); err != nil {
		return nil, err
	}
	return &user, nil
}
