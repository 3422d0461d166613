package users

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/identity"
)

var (
	emailFlag    string
	usernameFlag string
	passwordFlag string
	roleFlag     string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a member with a given role",
	RunE: func(cmd *cobra.Command, args []string) error {
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}
		if usernameFlag == "" {
			return fmt.Errorf("--username flag is required")
		}

		role, err := auth.ParseRole(roleFlag)
		if err != nil {
			return fmt.Errorf("%w (valid roles: %s)", err, validRoles())
		}

		password := passwordFlag
		if password == "" {
			if password, err = readPassword(stdinFlag); err != nil {
				return err
			}
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		return withIdentity(cmd.Context(), func(svc *identity.Service) error {
			user, err := svc.CreateUserWithRole(cmd.Context(), usernameFlag, password, emailFlag, role)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "User created successfully!")
			fmt.Fprintln(out, "----------------------------------------")
			fmt.Fprintf(out, "User ID: %d\n", user.ID)
			fmt.Fprintf(out, "Username: %s\n", user.Username)
			fmt.Fprintf(out, "Email: %s\n", user.Email)
			fmt.Fprintf(out, "Role: %s\n", user.Role)
			fmt.Fprintln(out, "----------------------------------------")
			return nil
		})
	},
}

// readPassword prompts on the terminal without echo, or reads one line from
// stdin when fromStdin is set or stdin is not a terminal.
func readPassword(fromStdin bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !fromStdin && term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Enter password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return "", nil
}

func validRoles() string {
	names := make([]string, len(auth.Roles))
	for i, r := range auth.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
