package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/config"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/bunx"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/migrations"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/server"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/access"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/dashboard"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/identity"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/session"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/sessionstore"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the club API server",
	Long:  `Starts the HTTP server with the /api endpoints, /health and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := telemetry.NewLogger(cfg.Debug)
		ctx, stop := context.WithCancel(cmd.Context())
		defer stop()

		// Connect to database
		db, err := bunx.NewDB(ctx, cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Infof("Connected to %s database", bunx.DetectDatabaseType(cfg.DatabaseURL))

		if cfg.AutoMigrate {
			group, err := migrations.Apply(ctx, db)
			if err != nil {
				return err
			}
			if group.ID != 0 {
				log.Infof("Applied migration group %d", group.ID)
			}
		}

		// Initialize repositories
		userRepo := repository.NewBunUserRepository(db)
		identitySvc := identity.NewService(userRepo, log)

		if cfg.SeedDevUsers {
			n, err := identitySvc.SeedDevUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to seed dev users: %w", err)
			}
			log.Infof("Seeded %d dev users", n)
		}

		store, closeStore, err := openSessionStore(db, log)
		if err != nil {
			return err
		}
		defer closeStore()

		metrics := telemetry.NewMetrics()
		policy := auth.MustPolicy().WithObserver(func(role auth.Role, action auth.Action, allowed bool) {
			metrics.RecordDecision(string(role), string(action), allowed)
		})
		validator := validation.MustSchemaValidator()

		sessions := session.NewManager(identitySvc, store, log, session.Options{
			TTL:     cfg.Session.TTL,
			Metrics: metrics,
		})
		go sessions.RunPruner(ctx, cfg.Session.PruneInterval)

		gateway := access.New(access.Deps{
			Sessions:      sessions,
			Users:         identitySvc,
			Policy:        policy,
			Validator:     validator,
			Logger:        log,
			Projects:      repository.NewBunContentRepository[models.Project](db),
			Blogs:         repository.NewBunContentRepository[models.Blog](db),
			Research:      repository.NewBunContentRepository[models.Research](db),
			Events:        repository.NewBunContentRepository[models.Event](db),
			Comments:      repository.NewBunCommentRepository(db),
			Registrations: repository.NewBunRegistrationRepository(db),
			Messages:      repository.NewBunMessageRepository(db),
		})

		corsOpts := server.CORSOptionsFor(cfg.CORSOrigins)
		r := server.NewRouter(server.RouterOptions{
			Gateway:      gateway,
			Sessions:     sessions,
			Dashboard:    dashboard.NewResolver(sessions, identitySvc),
			Validator:    validator,
			Metrics:      metrics,
			Logger:       log,
			CookieSecure: cfg.Session.CookieSecure,
			CORSOptions:  &corsOpts,
			HealthHandler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				fmt.Fprintf(w, `{"status":"ok","session_store":%q}`, cfg.Session.Store)
			},
		})

		// Create HTTP server
		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Infof("Starting server on %s", cfg.ServerAddr)
			log.Infof("Server URL: %s", cfg.ServerURL)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Infof("Received signal %v, shutting down gracefully", sig)
			stop()

			// Graceful shutdown with timeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Info("Server stopped")
			return nil
		}
	},
}

// openSessionStore returns the configured session backend and its closer.
func openSessionStore(db bun.IDB, log logrus.FieldLogger) (repository.SessionRepository, func(), error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return repository.NewBunSessionRepository(db), func() {}, nil
	}

	store, err := sessionstore.NewRedisStoreFromURL(cfg.Session.RedisURL, log)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warnf("Failed to close Redis session store: %v", err)
		}
	}, nil
}

func init() {
	serveCmd.Flags().Bool("auto-migrate", false, "Apply pending migrations before serving (env: CLUB_AUTO_MIGRATE)")
	serveCmd.Flags().Bool("seed-dev-users", false, "Create the demo admin, core team and aspirant accounts if missing (env: CLUB_SEED_DEV_USERS)")
	if err := viper.BindPFlag("auto_migrate", serveCmd.Flags().Lookup("auto-migrate")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("seed_dev_users", serveCmd.Flags().Lookup("seed-dev-users")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(serveCmd)
}
