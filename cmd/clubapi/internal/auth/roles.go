package auth

import "fmt"

// Role is the membership tier of a user. The string values are part of the
// wire format and are stored verbatim in users.role.
type Role string

const (
	RoleAspirant Role = "aspirant"
	RoleCoreTeam Role = "core_team"
	RoleAdmin    Role = "admin"

	// RoleAnonymous is the subject used for callers without a session and
	// for any role string the policy does not recognize.
	RoleAnonymous Role = "anonymous"
)

// DefaultRole is assigned to every newly created user.
const DefaultRole = RoleAspirant

// Roles lists the assignable roles from least to most privileged.
var Roles = []Role{RoleAspirant, RoleCoreTeam, RoleAdmin}

// Valid reports whether r is an assignable role.
func (r Role) Valid() bool {
	switch r {
	case RoleAspirant, RoleCoreTeam, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts a client supplied string into an assignable Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// RoleID creates a Casbin role identifier with the standard prefix.
// Unrecognized roles collapse to the anonymous subject.
// Example: RoleID("core_team") → "role:core_team"
func RoleID(r Role) string {
	if !r.Valid() {
		r = RoleAnonymous
	}
	return PrefixRole + string(r)
}

// PrefixRole prefixes role subjects in Casbin policies.
const PrefixRole = "role:"
