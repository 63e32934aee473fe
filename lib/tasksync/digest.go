// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/taskdeck/taskdeck/lib/codec"
	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// Digest is a BLAKE3 hash of a task collection's deterministic CBOR
// encoding.
type Digest [32]byte

// snapshotDomainKey separates snapshot digests from any other keyed
// BLAKE3 use. ASCII, zero padded to 32 bytes.
var snapshotDomainKey = [32]byte{
	't', 'a', 's', 'k', 'd', 'e', 'c', 'k', '.', 's', 'n', 'a', 'p', 's', 'h', 'o',
	't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// Short returns the first eight hex digits, for log lines.
func (digest Digest) Short() string {
	return digest.String()[:8]
}

func digestTasks(tasks []task.Task) Digest {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := codec.Marshal(tasks)
	if err != nil {
		panic("tasksync: encoding task snapshot: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(snapshotDomainKey[:])
	if err != nil {
		panic("tasksync: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	hasher.Sum(digest[:0])
	return digest
}
