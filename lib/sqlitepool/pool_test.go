// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitepool_test

import (
	"context"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/taskdeck/taskdeck/lib/sqlitepool"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	body TEXT NOT NULL
);
`

func openTestPool(t *testing.T, path string) *sqlitepool.Pool {
	t.Helper()
	pool, err := sqlitepool.Open(context.Background(), sqlitepool.Config{
		Path:     path,
		PoolSize: 2,
		Schema:   testSchema,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestOpenAppliesPragmasAndSchema(t *testing.T) {
	pool := openTestPool(t, filepath.Join(t.TempDir(), "tasks.db"))

	err := pool.WithConn(context.Background(), func(conn *sqlite.Conn) error {
		var journalMode string
		err := sqlitex.Execute(conn, "PRAGMA journal_mode", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				journalMode = stmt.ColumnText(0)
				return nil
			},
		})
		if err != nil {
			return err
		}
		if journalMode != "wal" {
			t.Errorf("journal_mode = %q, want wal", journalMode)
		}
		return sqlitex.Execute(conn, "INSERT INTO notes (body) VALUES (?)", &sqlitex.ExecOptions{
			Args: []any{"hello"},
		})
	})
	if err != nil {
		t.Fatalf("WithConn: %v", err)
	}
}

func TestSchemaIsAppliedOncePerOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	first, err := sqlitepool.Open(context.Background(), sqlitepool.Config{Path: path, Schema: testSchema})
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	err = first.WithConn(context.Background(), func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "INSERT INTO notes (body) VALUES ('kept')", nil)
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openTestPool(t, path)
	var count int
	err = second.WithConn(context.Background(), func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT count(*) FROM notes", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt(0)
				return nil
			},
		})
	})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d after reopening, want 1", count)
	}
}

func TestOpenRejectsBadSchema(t *testing.T) {
	_, err := sqlitepool.Open(context.Background(), sqlitepool.Config{
		Path:   filepath.Join(t.TempDir(), "bad.db"),
		Schema: "CREATE TABLE broken (",
	})
	if err == nil {
		t.Fatal("Open accepted an invalid schema")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := sqlitepool.Open(context.Background(), sqlitepool.Config{}); err == nil {
		t.Fatal("Open accepted an empty path")
	}
}

func TestTakeHonoursContext(t *testing.T) {
	pool, err := sqlitepool.Open(context.Background(), sqlitepool.Config{
		Path:     filepath.Join(t.TempDir(), "one.db"),
		PoolSize: 1,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer pool.Close()

	held, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer pool.Put(held)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pool.Take(ctx); err == nil {
		t.Error("Take succeeded with the only connection borrowed and a cancelled context")
	}
}
