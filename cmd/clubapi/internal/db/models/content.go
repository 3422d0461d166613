package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Kind names a collection of owned content.
type Kind string

const (
	KindProject  Kind = "project"
	KindBlog     Kind = "blog"
	KindResearch Kind = "research"
	KindEvent    Kind = "event"
)

// ContentKinds lists every content collection in routing order.
var ContentKinds = []Kind{KindProject, KindBlog, KindResearch, KindEvent}

// Owned is the bookkeeping shared by every content entity.
// CreatorID is stamped at creation and never changes afterwards.
type Owned struct {
	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	CreatorID int64     `bun:"creator_id,notnull" json:"creator_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Meta returns the ownership block of the entity.
func (o *Owned) Meta() *Owned { return o }

// Content is implemented by pointers to content entities.
type Content interface {
	Meta() *Owned
	Kind() Kind
}

type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`
	Owned

	Title        string     `bun:"title,notnull" json:"title"`
	Category     string     `bun:"category,notnull" json:"category"`
	Description  string     `bun:"description,notnull" json:"description"`
	Image        string     `bun:"image" json:"image,omitempty"`
	Technologies StringList `bun:"technologies,type:text" json:"technologies"`
	Team         StringList `bun:"team,type:text" json:"team"`
}

func (*Project) Kind() Kind { return KindProject }

type Blog struct {
	bun.BaseModel `bun:"table:blogs,alias:b"`
	Owned

	Title    string `bun:"title,notnull" json:"title"`
	Excerpt  string `bun:"excerpt,notnull" json:"excerpt"`
	Content  string `bun:"content,notnull" json:"content"`
	Category string `bun:"category,notnull" json:"category"`
	Date     string `bun:"date" json:"date,omitempty"`
	Image    string `bun:"image" json:"image,omitempty"`
	Author   string `bun:"author,notnull" json:"author"`
}

func (*Blog) Kind() Kind { return KindBlog }

// Research is a published research item.
type Research struct {
	bun.BaseModel `bun:"table:research,alias:rs"`
	Owned

	Title       string     `bun:"title,notnull" json:"title"`
	Category    string     `bun:"category,notnull" json:"category"`
	Description string     `bun:"description,notnull" json:"description"`
	Image       string     `bun:"image" json:"image,omitempty"`
	Date        string     `bun:"date" json:"date,omitempty"`
	Authors     StringList `bun:"authors,type:text" json:"authors"`
	Citations   int        `bun:"citations,notnull,default:0" json:"citations"`
}

func (*Research) Kind() Kind { return KindResearch }

type Event struct {
	bun.BaseModel `bun:"table:events,alias:ev"`
	Owned

	Title       string `bun:"title,notnull" json:"title"`
	Type        string `bun:"type,notnull" json:"type"`
	Date        string `bun:"date,notnull" json:"date"`
	Time        string `bun:"time" json:"time,omitempty"`
	Location    string `bun:"location,notnull" json:"location"`
	Description string `bun:"description,notnull" json:"description"`
	Image       string `bun:"image" json:"image,omitempty"`
}

func (*Event) Kind() Kind { return KindEvent }
