// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package task

// Socket actions served by the task service.
const (
	ActionStatus = "status"
	ActionList   = "list"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionParse  = "parse"
)

// MutationRequest is the body of create, update, and delete. ID is
// ignored by create; Task is ignored by delete.
type MutationRequest struct {
	ID   int64   `cbor:"id,omitempty"`
	Task Payload `cbor:"task"`
}

// ParseRequest is the body of parse. The reply is a PartialTask.
type ParseRequest struct {
	Transcript string `cbor:"transcript"`
}

// ServiceStatus is the reply to status.
type ServiceStatus struct {
	Version       string `cbor:"version"`
	Tasks         int    `cbor:"tasks"`
	UptimeSeconds int64  `cbor:"uptime_seconds"`
	Parser        bool   `cbor:"parser"`
}
