package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/bunx"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/migrations"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/identity"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/telemetry"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
	Long:  `Commands for managing database migrations, schema and demo data.`,
}

// withDB opens the configured database for the duration of fn.
func withDB(ctx context.Context, fn func(db *bun.DB, log *logrus.Logger) error) error {
	db, err := bunx.NewDB(ctx, cfg.DatabaseURL, cfg.MaxDBConnections)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer bunx.Close(db)

	return fn(db, telemetry.NewLogger(cfg.Debug))
}

// withLockedMigrator runs fn holding the migration lock.
func withLockedMigrator(ctx context.Context, fn func(m *migrate.Migrator, log *logrus.Logger) error) error {
	return withDB(ctx, func(db *bun.DB, log *logrus.Logger) error {
		migrator := migrate.NewMigrator(db, migrations.Migrations)
		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}
		defer func() {
			if err := migrator.Unlock(ctx); err != nil {
				log.Warnf("Failed to release migration lock: %v", err)
			}
		}()
		return fn(migrator, log)
	})
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migration tables",
	Long:  `Creates the migration tracking tables in the database. Run this once during initial setup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withDB(ctx, func(db *bun.DB, log *logrus.Logger) error {
			if err := migrate.NewMigrator(db, migrations.Migrations).Init(ctx); err != nil {
				return fmt.Errorf("failed to initialize migrator: %w", err)
			}
			log.Info("Migration tables initialized")
			return nil
		})
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Applies all pending migrations, holding the migration lock while doing so.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withDB(ctx, func(db *bun.DB, log *logrus.Logger) error {
			group, err := migrations.Apply(ctx, db)
			if err != nil {
				return err
			}
			if group.ID == 0 {
				log.Info("No new migrations to apply")
			} else {
				log.Infof("Applied migration group %d", group.ID)
			}
			return nil
		})
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withDB(ctx, func(db *bun.DB, log *logrus.Logger) error {
			ms, err := migrate.NewMigrator(db, migrations.Migrations).MigrationsWithStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			for _, m := range ms {
				status := "pending"
				if m.GroupID > 0 {
					status = fmt.Sprintf("applied (group %d)", m.GroupID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", m.Name, status)
			}
			return nil
		})
	},
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Rollback last migration group",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withLockedMigrator(ctx, func(migrator *migrate.Migrator, log *logrus.Logger) error {
			group, err := migrator.Rollback(ctx)
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			if group.ID == 0 {
				log.Info("No migrations to rollback")
			} else {
				log.Infof("Rolled back migration group %d", group.ID)
			}
			return nil
		})
	},
}

var dbUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Force release migration lock",
	Long:  `Force releases the migration lock. Use this if a migration crashed while holding the lock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withDB(ctx, func(db *bun.DB, log *logrus.Logger) error {
			if err := migrate.NewMigrator(db, migrations.Migrations).Unlock(ctx); err != nil {
				return fmt.Errorf("failed to release migration lock: %w", err)
			}
			log.Info("Migration lock released")
			return nil
		})
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo accounts",
	Long:  `Creates one demo account per role (admin, core team, aspirant). Existing accounts are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withDB(ctx, func(db *bun.DB, log *logrus.Logger) error {
			svc := identity.NewService(repository.NewBunUserRepository(db), log)
			n, err := svc.SeedDevUsers(ctx)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			log.Infof("Created %d of %d demo accounts", n, len(identity.DevAccounts))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbRollbackCmd)
	dbCmd.AddCommand(dbUnlockCmd)
	dbCmd.AddCommand(dbSeedCmd)
}
