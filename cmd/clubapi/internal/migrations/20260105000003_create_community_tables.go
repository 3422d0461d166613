package migrations

import (
	"context"
	"fmt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20260105000003, down_20260105000003)
}

// up_20260105000003 creates comments, event_registrations and messages
func up_20260105000003(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating comments table...")
	_, err := db.NewCreateTable().
		Model((*models.Comment)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id")`).
		ForeignKey(`("project_id") REFERENCES "projects" ("id") ON DELETE CASCADE`).
		ForeignKey(`("blog_id") REFERENCES "blogs" ("id") ON DELETE CASCADE`).
		ForeignKey(`("research_id") REFERENCES "research" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create comments table: %w", err)
	}

	for _, col := range []string{"user_id", "project_id", "blog_id", "research_id"} {
		stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_comments_%s ON comments(%s)`, col, col)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create comments %s index: %w", col, err)
		}
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating event_registrations table...")
	_, err = db.NewCreateTable().
		Model((*models.EventRegistration)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id")`).
		ForeignKey(`("event_id") REFERENCES "events" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create event_registrations table: %w", err)
	}

	// One registration per (user, event)
	_, err = db.ExecContext(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_event_registrations_user_event
		ON event_registrations (user_id, event_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create event_registrations unique index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating messages table...")
	_, err = db.NewCreateTable().
		Model((*models.Message)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id")`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

// down_20260105000003 drops the community tables
func down_20260105000003(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] dropping messages, event_registrations and comments tables...")

	tables := []any{
		(*models.Message)(nil),
		(*models.EventRegistration)(nil),
		(*models.Comment)(nil),
	}
	for _, model := range tables {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	fmt.Println(" OK")
	return nil
}
