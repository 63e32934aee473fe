// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package transcribe obtains a transcript from an external
// speech-to-text program. taskdeck does no audio handling itself: the
// configured command records and transcribes, and prints the text on
// stdout.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Transcriber produces one transcript per call.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// ErrNoSpeech is returned when the command succeeds but prints
// nothing.
var ErrNoSpeech = errors.New("transcriber produced no text")

// Command runs an external program and returns its trimmed stdout.
type Command struct {
	// Argv is the program and its arguments. Not run through a shell.
	Argv []string
}

// NewCommand returns a Command for argv, or nil when argv is empty.
func NewCommand(argv []string) *Command {
	if len(argv) == 0 {
		return nil
	}
	return &Command{Argv: argv}
}

// Transcribe runs the command until it exits or ctx ends.
func (command *Command) Transcribe(ctx context.Context) (string, error) {
	if len(command.Argv) == 0 {
		return "", errors.New("transcribe: no command configured")
	}

	process := exec.CommandContext(ctx, command.Argv[0], command.Argv[1:]...)
	var stdout, stderr bytes.Buffer
	process.Stdout = &stdout
	process.Stderr = &stderr

	if err := process.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("transcribe: %s: %w: %s", command.Argv[0], err, detail)
		}
		return "", fmt.Errorf("transcribe: %s: %w", command.Argv[0], err)
	}

	transcript := strings.TrimSpace(stdout.String())
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}
