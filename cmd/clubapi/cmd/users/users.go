package users

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/config"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/bunx"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/identity"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/telemetry"
)

// UsersCmd is the parent command for member management operations
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage club members",
	Long:  `Commands for managing member accounts and roles directly against the database.`,
}

// withIdentity opens the database and runs fn against the identity service.
func withIdentity(ctx context.Context, fn func(svc *identity.Service) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := bunx.NewDB(ctx, cfg.DatabaseURL, cfg.MaxDBConnections)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer bunx.Close(db)

	return fn(newIdentity(db, cfg.Debug))
}

func newIdentity(db bun.IDB, debug bool) *identity.Service {
	return identity.NewService(repository.NewBunUserRepository(db), telemetry.NewLogger(debug))
}

func init() {
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address of the member")
	createCmd.Flags().StringVar(&usernameFlag, "username", "", "Login name of the member")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (omit to be prompted; avoids shell history)")
	createCmd.Flags().StringVar(&roleFlag, "role", "aspirant", "Role to assign: aspirant, core_team or admin")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read the password from stdin instead of prompting")

	listCmd.Flags().StringVar(&listRoleFlag, "role", "", "Only list members holding this role")

	UsersCmd.AddCommand(createCmd)
	UsersCmd.AddCommand(listCmd)
	UsersCmd.AddCommand(setRoleCmd)
}
