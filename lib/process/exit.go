// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"

	"github.com/taskdeck/taskdeck/lib/cli"
)

// Exit statuses by error category.
const (
	ExitInternal   = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitTransient  = 4
)

// ExitCode maps err to the process exit status. Nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch cli.Categorize(err) {
	case cli.CategoryValidation:
		return ExitValidation
	case cli.CategoryNotFound:
		return ExitNotFound
	case cli.CategoryTransient:
		return ExitTransient
	}
	return ExitInternal
}

// Fatal writes "error: err" to stderr and exits with ExitCode(err).
// Use it in main() for errors from run(), where the structured logger
// may not exist yet.
func Fatal(err error) {
	report(os.Stderr, err)
	os.Exit(ExitCode(err))
}

func report(writer io.Writer, err error) {
	fmt.Fprintf(writer, "error: %v\n", err)
}
