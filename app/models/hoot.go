package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrCommentNotFound is returned when a comment id does not resolve inside a hoot.
var ErrCommentNotFound = errors.New("comment not found")

// BeforeCreate assigns the identifier and timestamps of a new hoot.
func (h *Hoot) BeforeCreate() {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	h.UpdatedAt = h.CreatedAt
	if h.Comments == nil {
		h.Comments = []*Comment{}
	}
}

// AddComment appends a comment to the end of the hoot's comments.
func (h *Hoot) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}
	h.Comments = append(h.Comments, comment)
	return nil
}

// LastComment returns the most recently added comment, or nil.
func (h *Hoot) LastComment() *Comment {
	if len(h.Comments) == 0 {
		return nil
	}
	return h.Comments[len(h.Comments)-1]
}

// FindComment looks up a comment by id.
func (h *Hoot) FindComment(commentID string) (*Comment, error) {
	for _, c := range h.Comments {
		if c.ID == commentID {
			return c, nil
		}
	}
	return nil, ErrCommentNotFound
}

// RemoveComment drops the comment with the given id, keeping the order of the rest.
func (h *Hoot) RemoveComment(commentID string) error {
	for i, c := range h.Comments {
		if c.ID == commentID {
			h.Comments = append(h.Comments[:i:i], h.Comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

// Apply copies the supplied fields of an update onto the hoot.
// Author, id and comments are never touched.
func (h *Hoot) Apply(req HootUpdateRequest) {
	if req.Title != nil {
		h.Title = trimmed(*req.Title)
	}
	if req.Text != nil {
		h.Text = trimmed(*req.Text)
	}
	if req.Category != nil {
		h.Category = Category(*req.Category)
	}
	h.UpdatedAt = time.Now().UTC()
}

// AuthorIDs returns the distinct author ids referenced by the hoot and its comments.
func (h *Hoot) AuthorIDs() []string {
	seen := make(map[string]struct{}, len(h.Comments)+1)
	ids := make([]string, 0, len(h.Comments)+1)
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	add(h.Author)
	for _, c := range h.Comments {
		add(c.Author)
	}
	return ids
}
