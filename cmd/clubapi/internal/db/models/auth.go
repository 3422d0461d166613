package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User represents a club member.
// PasswordHash stores the bcrypt hash used for local login and is never serialized.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Username     string     `bun:"username,notnull,unique" json:"username"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Role         string     `bun:"role,notnull,default:'aspirant'" json:"role"`
	DisplayName  string     `bun:"display_name" json:"display_name,omitempty"`
	ProfileImage string     `bun:"profile_image" json:"profile_image,omitempty"`
	Department   string     `bun:"department" json:"department,omitempty"`
	Year         string     `bun:"year" json:"year,omitempty"`
	RoleTitle    string     `bun:"role_title" json:"role_title,omitempty"`
	Tags         StringList `bun:"tags,type:text" json:"tags,omitempty"`
	LinkedIn     string     `bun:"linkedin" json:"linkedin,omitempty"`
	GitHub       string     `bun:"github" json:"github,omitempty"`
	Bio          string     `bun:"bio" json:"bio,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull" json:"updated_at"`
	LastLoginAt  *time.Time `bun:"last_login_at" json:"last_login_at,omitempty"`
}

// ProfilePatch carries the self-editable profile fields of a user.
// Nil fields are left untouched.
type ProfilePatch struct {
	DisplayName  *string  `json:"display_name" mapstructure:"display_name"`
	ProfileImage *string  `json:"profile_image" mapstructure:"profile_image"`
	Department   *string  `json:"department" mapstructure:"department"`
	Year         *string  `json:"year" mapstructure:"year"`
	RoleTitle    *string  `json:"role_title" mapstructure:"role_title"`
	Tags         []string `json:"tags" mapstructure:"tags"`
	LinkedIn     *string  `json:"linkedin" mapstructure:"linkedin"`
	GitHub       *string  `json:"github" mapstructure:"github"`
	Bio          *string  `json:"bio" mapstructure:"bio"`
}

// Apply copies the non-nil patch fields onto u and returns the changed column names.
func (p ProfilePatch) Apply(u *User) []string {
	var cols []string
	set := func(dst *string, src *string, col string) {
		if src != nil {
			*dst = *src
			cols = append(cols, col)
		}
	}
	set(&u.DisplayName, p.DisplayName, "display_name")
	set(&u.ProfileImage, p.ProfileImage, "profile_image")
	set(&u.Department, p.Department, "department")
	set(&u.Year, p.Year, "year")
	set(&u.RoleTitle, p.RoleTitle, "role_title")
	set(&u.LinkedIn, p.LinkedIn, "linkedin")
	set(&u.GitHub, p.GitHub, "github")
	set(&u.Bio, p.Bio, "bio")
	if p.Tags != nil {
		u.Tags = StringList(p.Tags)
		cols = append(cols, "tags")
	}
	return cols
}

// Session tracks an authenticated browser or API session.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:sess"`

	ID         string    `bun:"id,pk" json:"id"`
	UserID     int64     `bun:"user_id,notnull" json:"user_id"`
	TokenHash  string    `bun:"token_hash,notnull,unique" json:"-"` // SHA256 hash of bearer token
	ExpiresAt  time.Time `bun:"expires_at,notnull" json:"expires_at"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
	LastUsedAt time.Time `bun:"last_used_at,notnull" json:"last_used_at"`
	UserAgent  *string   `bun:"user_agent" json:"user_agent,omitempty"`
	IPAddress  *string   `bun:"ip_address" json:"ip_address,omitempty"`
}

// Expired reports whether the session is past its absolute expiry at instant now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
