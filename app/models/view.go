package models

import "time"

// HootView is a hoot as returned to clients, with authors expanded to profiles.
type HootView struct {
	ID        string         `json:"_id"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	Category  Category       `json:"category"`
	Author    *User          `json:"author"`
	Comments  []*CommentView `json:"comments"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CommentView is a comment as returned to clients.
type CommentView struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Author    *User     `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileLookup resolves an author id to a profile.
type ProfileLookup func(id string) *User

// NewHootView expands h using lookup for every author id.
func NewHootView(h *Hoot, lookup ProfileLookup) *HootView {
	v := &HootView{
		ID:        h.ID,
		Title:     h.Title,
		Text:      h.Text,
		Category:  h.Category,
		Author:    lookup(h.Author),
		Comments:  make([]*CommentView, 0, len(h.Comments)),
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
	for _, c := range h.Comments {
		v.Comments = append(v.Comments, NewCommentView(c, lookup))
	}
	return v
}

// NewCommentView expands c using lookup for its author.
func NewCommentView(c *Comment, lookup ProfileLookup) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Text:      c.Text,
		Author:    lookup(c.Author),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
