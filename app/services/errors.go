package services

import (
	"errors"

	"hootroost/app/models"
	"hootroost/app/repositories"
)

var (
	// ErrValidation matches any *models.ValidationError.
	ErrValidation = models.ErrValidation
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = repositories.ErrNotFound
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated is returned when an operation runs without a caller.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// NotFoundError reports which resource failed to resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func requireUser(user *models.User) error {
	if user == nil || user.ID == "" {
		return ErrUnauthenticated
	}
	return nil
}
