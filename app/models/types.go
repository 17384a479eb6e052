package models

import "time"

// Hoot is the aggregate root: a post together with its embedded comments.
type Hoot struct {
	ID        string     `json:"_id" bson:"_id"`
	Title     string     `json:"title" bson:"title"`
	Text      string     `json:"text" bson:"text"`
	Category  Category   `json:"category" bson:"category"`
	Author    string     `json:"author" bson:"author"`
	Comments  []*Comment `json:"comments" bson:"comments"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Comment is owned by exactly one Hoot and has no identity outside it.
type Comment struct {
	ID        string    `json:"_id" bson:"_id"`
	Text      string    `json:"text" bson:"text"`
	Author    string    `json:"author" bson:"author"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// User is the public profile of an authenticated caller.
type User struct {
	ID       string `json:"_id" bson:"_id"`
	Username string `json:"username,omitempty" bson:"username"`
}
