package services

import (
	"context"
	"fmt"

	"hootroost/app/models"
	"hootroost/app/repositories"
)

// CommentService handles the comments embedded in a hoot
type CommentService struct {
	hoots repositories.HootRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(hoots repositories.HootRepository) *CommentService {
	return &CommentService{hoots: hoots}
}

// Add appends a comment by user to the hoot. The append is a single targeted
// write so concurrent comments on the same hoot are all kept.
func (s *CommentService) Add(ctx context.Context, user *models.User, hootID string, req models.CommentRequest) (*models.Comment, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment := req.Comment(user.ID)
	hoot, err := s.hoots.AppendComment(ctx, hootID, comment)
	if err != nil {
		return nil, mapNotFound(err, "hoot", hootID, "failed to add comment")
	}

	added, err := hoot.FindComment(comment.ID)
	if err != nil {
		added = hoot.LastComment()
	}
	if added == nil {
		return nil, fmt.Errorf("comment %s missing after append", comment.ID)
	}
	return added, nil
}

// Edit replaces the text of a comment written by user.
func (s *CommentService) Edit(ctx context.Context, user *models.User, hootID, commentID string, req models.CommentRequest) (*models.Comment, error) {
	hoot, comment, err := s.ownedComment(ctx, user, hootID, commentID)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment.SetText(req.Text)
	if err := s.hoots.Update(ctx, hoot); err != nil {
		return nil, mapNotFound(err, "hoot", hootID, "failed to update comment")
	}
	return comment, nil
}

// Remove deletes a comment written by user, keeping the order of the others.
func (s *CommentService) Remove(ctx context.Context, user *models.User, hootID, commentID string) error {
	hoot, _, err := s.ownedComment(ctx, user, hootID, commentID)
	if err != nil {
		return err
	}

	if err := hoot.RemoveComment(commentID); err != nil {
		return &NotFoundError{Resource: "comment", ID: commentID}
	}
	if err := s.hoots.Update(ctx, hoot); err != nil {
		return mapNotFound(err, "hoot", hootID, "failed to delete comment")
	}
	return nil
}

// ownedComment loads the hoot, resolves the comment and checks that user wrote it.
func (s *CommentService) ownedComment(ctx context.Context, user *models.User, hootID, commentID string) (*models.Hoot, *models.Comment, error) {
	if err := requireUser(user); err != nil {
		return nil, nil, err
	}
	hoot, err := loadHoot(ctx, s.hoots, hootID)
	if err != nil {
		return nil, nil, err
	}
	comment, err := hoot.FindComment(commentID)
	if err != nil {
		return nil, nil, &NotFoundError{Resource: "comment", ID: commentID}
	}
	if comment.Author != user.ID {
		return nil, nil, fmt.Errorf("%w: only the author can modify this comment", ErrForbidden)
	}
	return hoot, comment, nil
}
