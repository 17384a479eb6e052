package services

import (
	"context"
	"fmt"

	"hootroost/app/models"
	"hootroost/app/repositories"
)

// Presenter expands author ids into profiles for responses. It runs after the
// operation that produced the hoot or comment and never writes.
type Presenter struct {
	users repositories.UserRepository
}

// NewPresenter creates a new Presenter
func NewPresenter(users repositories.UserRepository) *Presenter {
	return &Presenter{users: users}
}

func (p *Presenter) Hoot(ctx context.Context, hoot *models.Hoot) (*models.HootView, error) {
	lookup, err := p.lookup(ctx, hoot.AuthorIDs())
	if err != nil {
		return nil, err
	}
	return models.NewHootView(hoot, lookup), nil
}

func (p *Presenter) Hoots(ctx context.Context, hoots []*models.Hoot) ([]*models.HootView, error) {
	var ids []string
	for _, h := range hoots {
		ids = append(ids, h.AuthorIDs()...)
	}
	lookup, err := p.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]*models.HootView, 0, len(hoots))
	for _, h := range hoots {
		views = append(views, models.NewHootView(h, lookup))
	}
	return views, nil
}

func (p *Presenter) Comment(ctx context.Context, comment *models.Comment) (*models.CommentView, error) {
	lookup, err := p.lookup(ctx, []string{comment.Author})
	if err != nil {
		return nil, err
	}
	return models.NewCommentView(comment, lookup), nil
}

// lookup fetches the profiles for ids in one call. Unknown ids resolve to a
// profile carrying only the id.
func (p *Presenter) lookup(ctx context.Context, ids []string) (models.ProfileLookup, error) {
	users, err := p.users.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}
	return func(id string) *models.User {
		if u, ok := users[id]; ok {
			return u
		}
		return &models.User{ID: id}
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
