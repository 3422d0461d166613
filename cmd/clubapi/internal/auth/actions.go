package auth

import (
	"fmt"
	"strings"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

// Action names an operation checked by the Role Policy, in the form
// "<object>:<verb>".
type Action string

// Content verbs, combined with a models.Kind by ContentAction.
const (
	VerbRead   = "read"
	VerbCreate = "create"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

// Content actions
const (
	ProjectRead   Action = "project:read"
	ProjectCreate Action = "project:create"
	ProjectUpdate Action = "project:update"
	ProjectDelete Action = "project:delete"

	BlogRead   Action = "blog:read"
	BlogCreate Action = "blog:create"
	BlogUpdate Action = "blog:update"
	BlogDelete Action = "blog:delete"

	ResearchRead   Action = "research:read"
	ResearchCreate Action = "research:create"
	ResearchUpdate Action = "research:update"
	ResearchDelete Action = "research:delete"

	EventRead   Action = "event:read"
	EventCreate Action = "event:create"
	EventUpdate Action = "event:update"
	EventDelete Action = "event:delete"
)

// Community actions
const (
	CommentRead   Action = "comment:read"
	CommentCreate Action = "comment:create"
	CommentUpdate Action = "comment:update"
	CommentDelete Action = "comment:delete"

	// RegistrationCreate registers the acting user for an event
	RegistrationCreate Action = "registration:create"
	// RegistrationDelete cancels a registration
	RegistrationDelete Action = "registration:delete"
	// RegistrationReadSelf lists the acting user's own registrations
	RegistrationReadSelf Action = "registration:read-self"
	// RegistrationList lists every attendee of an event
	RegistrationList Action = "registration:list"

	MessageRead   Action = "message:read"
	MessageCreate Action = "message:create"
	MessageDelete Action = "message:delete"
)

// User administration actions
const (
	UserReadSelf   Action = "user:read-self"
	UserUpdateSelf Action = "user:update-self"
	UserRead       Action = "user:read"
	UserList       Action = "user:list"
	UserSetRole    Action = "user:set-role"
)

// AllWildcard grants all actions (admin)
const AllWildcard Action = "*"

var validActions = map[Action]bool{
	ProjectRead: true, ProjectCreate: true, ProjectUpdate: true, ProjectDelete: true,
	BlogRead: true, BlogCreate: true, BlogUpdate: true, BlogDelete: true,
	ResearchRead: true, ResearchCreate: true, ResearchUpdate: true, ResearchDelete: true,
	EventRead: true, EventCreate: true, EventUpdate: true, EventDelete: true,
	CommentRead: true, CommentCreate: true, CommentUpdate: true, CommentDelete: true,
	RegistrationCreate: true, RegistrationDelete: true, RegistrationReadSelf: true, RegistrationList: true,
	MessageRead: true, MessageCreate: true, MessageDelete: true,
	UserReadSelf: true, UserUpdateSelf: true, UserRead: true, UserList: true, UserSetRole: true,
}

// ValidateAction checks if an action string is a known concrete action.
// This prevents typos in policy files.
func ValidateAction(action Action) bool {
	return validActions[action]
}

// ContentAction builds the action for a verb on a content kind.
// Example: ContentAction(models.KindBlog, VerbUpdate) → "blog:update"
func ContentAction(kind models.Kind, verb string) Action {
	return Action(fmt.Sprintf("%s:%s", kind, verb))
}

// Object returns the object part of the action ("blog" for "blog:update").
func (a Action) Object() string {
	obj, _, _ := strings.Cut(string(a), ":")
	return obj
}
