package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "liftlog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestSlotMissingKey verifies that reading an unset key reports ErrNotFound
// so the store can fall back to an empty aggregate.
func TestSlotMissingKey(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

// TestSlotSetOverwrites verifies last-write-wins semantics of Set.
func TestSlotSetOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Set(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := db.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get = %q, want %q", got, "second")
	}
}

// TestSlotRemove verifies Remove deletes the key and tolerates missing keys.
func TestSlotRemove(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := db.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Remove error = %v, want ErrNotFound", err)
	}
	if err := db.Remove(ctx, "k"); err != nil {
		t.Errorf("Remove(missing) = %v, want nil", err)
	}
}

// TestOpenReappliesMigrations verifies that reopening an existing file keeps
// its data and does not fail on already-applied migrations.
func TestOpenReappliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liftlog.db")
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Set(ctx, "k", []byte("kept")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, err := db.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "kept" {
		t.Errorf("Get = %q, want %q", got, "kept")
	}
}

// TestImportLedger verifies imports are tracked per target and cleared per
// target.
func TestImportLedger(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.MarkImported(ctx, "local", "abc", "sessions", "a.csv"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	if err := db.MarkImported(ctx, "http://remote", "abc", "sessions", "a.csv"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	// Marking twice is not an error.
	if err := db.MarkImported(ctx, "local", "abc", "sessions", "renamed.csv"); err != nil {
		t.Fatalf("MarkImported again: %v", err)
	}

	tests := []struct {
		target, hash string
		want         bool
	}{
		{"local", "abc", true},
		{"http://remote", "abc", true},
		{"local", "def", false},
		{"http://other", "abc", false},
	}
	for _, tt := range tests {
		got, err := db.IsImported(ctx, tt.target, tt.hash)
		if err != nil {
			t.Fatalf("IsImported(%s, %s): %v", tt.target, tt.hash, err)
		}
		if got != tt.want {
			t.Errorf("IsImported(%s, %s) = %v, want %v", tt.target, tt.hash, got, tt.want)
		}
	}

	if err := db.ForgetImports(ctx, "local"); err != nil {
		t.Fatalf("ForgetImports: %v", err)
	}
	if got, _ := db.IsImported(ctx, "local", "abc"); got {
		t.Error("local import still recorded after ForgetImports")
	}
	if got, _ := db.IsImported(ctx, "http://remote", "abc"); !got {
		t.Error("ForgetImports(local) cleared the remote ledger")
	}
}
