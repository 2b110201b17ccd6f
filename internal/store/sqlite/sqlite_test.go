package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/internal/store/storetest"
)

func newTestStore(t *testing.T) (store.Store, storetest.Seeder) {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "focusflow.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := NewWithDB(db)
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s, s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestSqliteStore_HealthPing(t *testing.T) {
	s, _ := newTestStore(t)
	pinger, ok := s.(*SqliteStore)
	if !ok {
		t.Fatalf("expected *SqliteStore")
	}
	if err := pinger.HealthPing(context.Background()); err != nil {
		t.Fatalf("HealthPing: %v", err)
	}
}
