// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens a fixed-size pool of SQLite connections
// (zombiezen.com/go/sqlite) with the pragmas taskdeck relies on:
// write-ahead logging so the TUI can read while the service writes,
// NORMAL synchronous, and a busy timeout instead of immediate
// SQLITE_BUSY errors.
//
// Connections are not safe for concurrent use. Borrow one with Take
// and return it with Put, or let WithConn do both:
//
//	err := pool.WithConn(ctx, func(conn *sqlite.Conn) error {
//		return sqlitex.Execute(conn, "SELECT 1", nil)
//	})
package sqlitepool
