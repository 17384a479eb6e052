package models

import (
	"time"

	"github.com/google/uuid"
)

// BeforeCreate assigns the identifier and timestamps of a new comment.
func (c *Comment) BeforeCreate() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
}

// SetText replaces the comment body.
func (c *Comment) SetText(text string) {
	c.Text = trimmed(text)
	c.UpdatedAt = time.Now().UTC()
}
