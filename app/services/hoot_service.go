package services

import (
	"context"
	"errors"
	"fmt"

	"hootroost/app/models"
	"hootroost/app/repositories"
)

// HootService handles business logic for hoots
type HootService struct {
	hoots repositories.HootRepository
}

// NewHootService creates a new HootService
func NewHootService(hoots repositories.HootRepository) *HootService {
	return &HootService{hoots: hoots}
}

// Create validates req and stores a new hoot owned by user.
func (s *HootService) Create(ctx context.Context, user *models.User, req models.HootCreateRequest) (*models.Hoot, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hoot := req.Hoot(user.ID)
	if err := s.hoots.Create(ctx, hoot); err != nil {
		return nil, fmt.Errorf("failed to create hoot: %w", err)
	}
	return hoot, nil
}

// List returns every hoot, newest first.
func (s *HootService) List(ctx context.Context) ([]*models.Hoot, error) {
	hoots, err := s.hoots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hoots: %w", err)
	}
	return hoots, nil
}

// Get returns a single hoot with its comments.
func (s *HootService) Get(ctx context.Context, id string) (*models.Hoot, error) {
	return loadHoot(ctx, s.hoots, id)
}

// Update applies the supplied fields of req. Existence is checked before
// ownership, and ownership before validation.
func (s *HootService) Update(ctx context.Context, user *models.User, id string, req models.HootUpdateRequest) (*models.Hoot, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	hoot, err := loadHoot(ctx, s.hoots, id)
	if err != nil {
		return nil, err
	}
	if hoot.Author != user.ID {
		return nil, fmt.Errorf("%w: only the author can update this hoot", ErrForbidden)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hoot.Apply(req)
	if err := s.hoots.UpdateFields(ctx, hoot); err != nil {
		return nil, mapNotFound(err, "hoot", id, "failed to update hoot")
	}
	return hoot, nil
}

// Delete removes a hoot owned by user and returns it as it was.
func (s *HootService) Delete(ctx context.Context, user *models.User, id string) (*models.Hoot, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	hoot, err := loadHoot(ctx, s.hoots, id)
	if err != nil {
		return nil, err
	}
	if hoot.Author != user.ID {
		return nil, fmt.Errorf("%w: only the author can delete this hoot", ErrForbidden)
	}

	if err := s.hoots.Delete(ctx, id); err != nil {
		return nil, mapNotFound(err, "hoot", id, "failed to delete hoot")
	}
	return hoot, nil
}

func loadHoot(ctx context.Context, hoots repositories.HootRepository, id string) (*models.Hoot, error) {
	hoot, err := hoots.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "hoot", id, "failed to load hoot")
	}
	return hoot, nil
}

// mapNotFound turns a repository miss into a *NotFoundError and wraps anything else.
func mapNotFound(err error, resource, id, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
