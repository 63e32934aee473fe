// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package service implements the taskdeck socket protocol: CBOR
// request and response values over a Unix socket, one request per
// connection.
//
// A request is a CBOR map with an "action" key plus action-specific
// fields. The reply is a Response envelope: {ok: true, data: ...} on
// success, {ok: false, error: "..."} on failure. Server dispatches by
// action to registered ActionFuncs; Client.Call builds the request,
// waits for the reply, and decodes data into a caller-supplied value.
//
// Access control is the socket file's permissions. There is no
// per-request authentication.
package service
