// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg carries one log record to the status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears a log line once it has been visible for
// logRecordFadeDelay. Seq ties it to the line it was scheduled for.
type logRecordFadeMsg struct {
	Seq uint64
}

const logRecordFadeDelay = 5 * time.Second

// sender is the part of *tea.Program the handler needs.
type sender interface {
	Send(tea.Msg)
}

// TUILogHandler is a slog.Handler that shows records on the model's
// status line while the program owns the terminal. Writing to stderr
// at that point would corrupt the screen.
//
// Records are dropped until SetProgram is called. Handlers derived
// with WithAttrs or WithGroup share the program reference.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[sender]
	attrs   []slog.Attr
	group   string
}

// NewTUILogHandler creates a handler delivering records at or above
// level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{level: level, program: &atomic.Pointer[sender]{}}
}

// SetProgram connects the handler to a running program.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.setSender(program)
}

func (handler *TUILogHandler) setSender(target sender) {
	handler.program.Store(&target)
}

func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	target := handler.program.Load()
	if target == nil {
		return nil
	}

	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, handler.qualify(attr).Key+"="+attr.Value.String())
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	// Send blocks until the event loop receives the message, and
	// records logged from inside Update run on that loop.
	go (*target).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// qualify prefixes the key with the open group, if any.
func (handler *TUILogHandler) qualify(attr slog.Attr) slog.Attr {
	if handler.group != "" {
		attr.Key = handler.group + "." + attr.Key
	}
	return attr
}

func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := slices.Clone(handler.attrs)
	for _, attr := range attrs {
		combined = append(combined, handler.qualify(attr))
	}
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   combined,
		group:   handler.group,
	}
}

func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	group := name
	if handler.group != "" {
		group = handler.group + "." + name
	}
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   slices.Clone(handler.attrs),
		group:   group,
	}
}
