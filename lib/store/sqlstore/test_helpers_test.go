package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/roads/rpc/serializer"
)

// createTestStore creates a new sqlite store with the schema applied.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(DriverSQLite, path, serializer.NewJSONSerializer())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.InitSchema(context.Background()); err != nil {
		t.Fatalf("InitSchema() failed: %v", err)
	}
	return s
}
