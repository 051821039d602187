package db

import "testing"

func TestMigrationNamesAreSorted(t *testing.T) {
	names, err := migrationNames()
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("expected embedded migrations")
	}
	if names[0] != "0001_kv_store.sql" {
		t.Fatalf("expected kv_store migration first, got %s", names[0])
	}
}
