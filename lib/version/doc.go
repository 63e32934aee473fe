// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for taskdeck binaries.
//
// [GitCommit], [GitDirty], and [BuildTime] are injected with -ldflags:
//
//	go build -ldflags "-X github.com/taskdeck/taskdeck/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without injection they read "unknown".
package version
