package repositories

import (
	"context"

	"hootroost/app/models"
)

// HootRepository defines data access for the hoot aggregate.
type HootRepository interface {
	Create(ctx context.Context, hoot *models.Hoot) error
	GetByID(ctx context.Context, id string) (*models.Hoot, error)
	// List returns every hoot, newest first.
	List(ctx context.Context) ([]*models.Hoot, error)
	// Update persists the whole aggregate, comments included.
	Update(ctx context.Context, hoot *models.Hoot) error
	// UpdateFields persists title, text, category and updatedAt of hoot and
	// leaves the stored comments untouched.
	UpdateFields(ctx context.Context, hoot *models.Hoot) error
	Delete(ctx context.Context, id string) error
	// AppendComment adds comment to the end of the hoot's comments as one
	// targeted write and returns the hoot as stored afterwards.
	AppendComment(ctx context.Context, hootID string, comment *models.Comment) (*models.Hoot, error)
}

// UserRepository defines data access for author profiles.
type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs returns the profiles that exist, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// Store bundles the repositories of one backing database.
type Store interface {
	Hoots() HootRepository
	Users() UserRepository
	Close() error
}
