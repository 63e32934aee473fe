// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the single CBOR configuration shared by the task
// service socket protocol and the task store digest.
//
// Every package encodes through these modes so that one logical value
// always produces the same bytes:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Sockets use the stream forms:
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// Wire types carry `cbor` struct tags. Types implementing
// encoding.TextMarshaler (task.Date) are written as CBOR text strings,
// and time.Time values as RFC 3339 text.
package codec
