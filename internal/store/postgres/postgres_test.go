package postgres

import (
	"context"
	_ "embed"
	"os"
	"testing"

	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/internal/store/storetest"
)

//go:embed schema.sql
var schemaSQL string

// Compliance run against a real Postgres. Skipped unless a DSN is provided:
//
//	FOCUSFLOW_TEST_POSTGRES_DSN=postgres://... go test ./internal/store/postgres
func TestPostgresStore_Compliance(t *testing.T) {
	dsn := os.Getenv("FOCUSFLOW_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FOCUSFLOW_TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) (store.Store, storetest.Seeder) {
		db, err := Open(dsn)
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
		s := NewWithDB(db)
		return s, &seeder{s: s}
	})
}

// seeder writes directory/catalog rows directly; production deployments load
// these through their own provisioning path.
type seeder struct{ s *PostgresStore }

func (sd *seeder) SeedTeam(ctx context.Context, tm *model.Team) error {
	_, err := sd.s.db.ExecContext(ctx,
		`INSERT INTO team (team_id, name) VALUES ($1, $2)
         ON CONFLICT (team_id) DO UPDATE SET name = EXCLUDED.name`,
		tm.TeamID, tm.Name)
	return err
}

func (sd *seeder) SeedUser(ctx context.Context, u *model.User) error {
	_, err := sd.s.db.ExecContext(ctx,
		`INSERT INTO user_account (user_id, team_id, email, name, time_zone, status)
         VALUES ($1, $2, $3, $4, $5, $6)
         ON CONFLICT (user_id) DO UPDATE SET
            team_id = EXCLUDED.team_id, email = EXCLUDED.email, name = EXCLUDED.name,
            time_zone = EXCLUDED.time_zone, status = EXCLUDED.status`,
		u.UserID, u.TeamID, u.Email, u.Name, u.TimeZone, u.Status)
	return err
}

func (sd *seeder) SeedTool(ctx context.Context, tl *model.Tool) error {
	_, err := sd.s.db.ExecContext(ctx,
		`INSERT INTO tool (tool_id, name) VALUES ($1, $2)
         ON CONFLICT (tool_id) DO UPDATE SET name = EXCLUDED.name`,
		tl.ToolID, tl.Name)
	return err
}

func (sd *seeder) SeedTemplate(ctx context.Context, tp *model.ActionTemplate) error {
	_, err := sd.s.db.ExecContext(ctx,
		`INSERT INTO action_template (template_id, display_name) VALUES ($1, $2)
         ON CONFLICT (template_id) DO UPDATE SET display_name = EXCLUDED.display_name`,
		tp.TemplateID, tp.DisplayName)
	return err
}
