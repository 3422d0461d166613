package migrations

import (
	"context"
	"fmt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20260105000002, down_20260105000002)
}

var contentTables = []struct {
	table string
	model any
}{
	{"projects", (*models.Project)(nil)},
	{"blogs", (*models.Blog)(nil)},
	{"research", (*models.Research)(nil)},
	{"events", (*models.Event)(nil)},
}

// up_20260105000002 creates the projects, blogs, research and events tables
func up_20260105000002(ctx context.Context, db *bun.DB) error {
	for _, ct := range contentTables {
		fmt.Printf(" [up] creating %s table...", ct.table)
		_, err := db.NewCreateTable().
			Model(ct.model).
			IfNotExists().
			ForeignKey(`("creator_id") REFERENCES "users" ("id")`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create %s table: %w", ct.table, err)
		}

		stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_creator_id ON %s(creator_id)`, ct.table, ct.table)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create %s creator_id index: %w", ct.table, err)
		}
		fmt.Println(" OK")
	}
	return nil
}

// down_20260105000002 drops the content tables
func down_20260105000002(ctx context.Context, db *bun.DB) error {
	for i := len(contentTables) - 1; i >= 0; i-- {
		ct := contentTables[i]
		fmt.Printf(" [down] dropping %s table...", ct.table)
		if _, err := db.NewDropTable().Model(ct.model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", ct.table, err)
		}
		fmt.Println(" OK")
	}
	return nil
}
