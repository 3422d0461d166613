package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Comment is attached to exactly one project, blog or research item.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID     int64     `bun:"user_id,notnull" json:"user_id"`
	ProjectID  *int64    `bun:"project_id" json:"project_id,omitempty"`
	BlogID     *int64    `bun:"blog_id" json:"blog_id,omitempty"`
	ResearchID *int64    `bun:"research_id" json:"research_id,omitempty"`
	Content    string    `bun:"content,notnull" json:"content"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Target returns the kind and id of the commented entity.
// ok is false unless exactly one target column is set.
func (c *Comment) Target() (kind Kind, id int64, ok bool) {
	n := 0
	if c.ProjectID != nil {
		kind, id = KindProject, *c.ProjectID
		n++
	}
	if c.BlogID != nil {
		kind, id = KindBlog, *c.BlogID
		n++
	}
	if c.ResearchID != nil {
		kind, id = KindResearch, *c.ResearchID
		n++
	}
	return kind, id, n == 1
}

// TargetColumn maps a commentable kind to its foreign key column.
func TargetColumn(kind Kind) (string, bool) {
	switch kind {
	case KindProject:
		return "project_id", true
	case KindBlog:
		return "blog_id", true
	case KindResearch:
		return "research_id", true
	}
	return "", false
}

// EventRegistration records a member signing up for an event.
// (user_id, event_id) is unique.
type EventRegistration struct {
	bun.BaseModel `bun:"table:event_registrations,alias:er"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	EventID   int64     `bun:"event_id,notnull" json:"event_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Message is an internal note visible to the core team and admins.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}
