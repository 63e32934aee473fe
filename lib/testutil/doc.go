// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds test helpers shared across taskdeck packages.
//
// [SocketDir] returns a short directory under /tmp for Unix sockets,
// whose paths are limited to 108 bytes. [RequireReceive] and
// [RequireClosed] wait on a channel with a wall-clock safety timeout so
// that a broken test fails instead of hanging.
package testutil
