package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/cmd/users"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/config"
)

var (
	cfg        *config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "clubapi",
	Short: "Aprameya club website API server",
	Long: `clubapi serves the club website API: member accounts and login sessions,
role-based access to projects, blogs, research and events, and the community
features (comments, event registrations and the message board).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		if configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file (yaml, toml or json)")
	flags.String("db-url", "", "Database connection URL (env: CLUB_DATABASE_URL)")
	flags.String("server-addr", "", "Server bind address (env: CLUB_SERVER_ADDR)")
	flags.String("server-url", "", "Public base URL of the API (env: CLUB_SERVER_URL)")
	flags.Bool("debug", false, "Enable debug logging (env: CLUB_DEBUG)")

	bindFlag("database_url", "db-url")
	bindFlag("server_addr", "server-addr")
	bindFlag("server_url", "server-url")
	bindFlag("debug", "debug")

	// Add subcommands
	rootCmd.AddCommand(users.UsersCmd)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
