// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskstore persists tasks in SQLite and implements the
// tasksync.Gateway contract against it.
//
// The store owns identity and timestamps: IDs come from an
// AUTOINCREMENT column, created_at and updated_at from the injected
// clock. Payloads are shape-checked and defaulted (priority medium,
// status todo) before they are written. Priority and status are also
// constrained by CHECK clauses so a row can never hold a value outside
// the closed sets.
//
// List returns tasks newest first.
package taskstore
