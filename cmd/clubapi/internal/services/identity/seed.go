package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

// DevAccount is a well-known account created by SeedDevUsers.
type DevAccount struct {
	Username string
	Password string
	Email    string
	Role     auth.Role
	Profile  models.ProfilePatch
}

func str(s string) *string { return &s }

// DevAccounts are the demo logins of a fresh development database, one per role.
var DevAccounts = []DevAccount{
	{
		Username: "admin", Password: "admin123", Email: "admin@aprameya.com", Role: auth.RoleAdmin,
		Profile: models.ProfilePatch{
			DisplayName: str("Administrator"), Department: str("Management"), Year: str("2023"),
			RoleTitle: str("System Administrator"), Tags: []string{"admin", "management"}, Bio: str("System Administrator"),
		},
	},
	{
		Username: "coreteam", Password: "core123", Email: "core@aprameya.com", Role: auth.RoleCoreTeam,
		Profile: models.ProfilePatch{
			DisplayName: str("Core Team Member"), Department: str("Robotics"), Year: str("2023"),
			RoleTitle: str("Core Developer"), Tags: []string{"robotics", "autonomous"}, Bio: str("Core team member for autonomous vehicles"),
		},
	},
	{
		Username: "aspirant", Password: "aspirant123", Email: "aspirant@aprameya.com", Role: auth.RoleAspirant,
		Profile: models.ProfilePatch{
			DisplayName: str("Aspirant User"), Department: str("Robotics"), Year: str("2023"),
			RoleTitle: str("Member"), Tags: []string{"aspiring", "learning"}, Bio: str("Interested in autonomous vehicles"),
		},
	},
}

// SeedDevUsers creates the DevAccounts that do not exist yet and returns
// how many were created. Existing accounts are left untouched.
func (s *Service) SeedDevUsers(ctx context.Context) (int, error) {
	created := 0
	for _, acct := range DevAccounts {
		_, err := s.GetUserByUsername(ctx, acct.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, auth.ErrNotFound) {
			return created, err
		}

		user, err := s.CreateUserWithRole(ctx, acct.Username, acct.Password, acct.Email, acct.Role)
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", acct.Username, err)
		}
		if _, err := s.UpdateProfile(ctx, user.ID, acct.Profile); err != nil {
			return created, fmt.Errorf("seed %s profile: %w", acct.Username, err)
		}
		created++
		s.log.Infof("[Identity] Seeded %s account %q", acct.Role, acct.Username)
	}
	return created, nil
}
