package users

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/identity"
)

var listRoleFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdentity(cmd.Context(), func(svc *identity.Service) error {
			var (
				users []models.User
				err   error
			)
			if listRoleFlag == "" {
				users, err = svc.ListUsers(cmd.Context())
			} else {
				role, perr := auth.ParseRole(listRoleFlag)
				if perr != nil {
					return perr
				}
				users, err = svc.ListUsersByRole(cmd.Context(), role)
			}
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
			}
			return w.Flush()
		})
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role <username> <role>",
	Short: "Change the role of a member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := auth.ParseRole(args[1])
		if err != nil {
			return fmt.Errorf("%w (valid roles: %s)", err, validRoles())
		}

		return withIdentity(cmd.Context(), func(svc *identity.Service) error {
			user, err := svc.GetUserByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := svc.SetUserRole(cmd.Context(), user.ID, role); err != nil {
				return fmt.Errorf("failed to set role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Username, role)
			return nil
		})
	},
}
