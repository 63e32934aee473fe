// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/lib/codec"
)

// Request is one decoded request as handed to an ActionFunc.
type Request struct {
	Action string
	raw    codec.RawMessage
}

// Decode decodes the whole request map into target. Unknown keys,
// including "action", are ignored unless target declares them.
func (request Request) Decode(target any) error {
	if err := codec.Unmarshal(request.raw, target); err != nil {
		return fmt.Errorf("decoding %s request: %w", request.Action, err)
	}
	return nil
}

// ActionFunc handles one action. A nil result produces {ok: true}
// without data.
type ActionFunc func(ctx context.Context, request Request) (any, error)

// Response is the envelope written for every request.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}

const (
	// readTimeout bounds how long a connected client may take to send
	// its request.
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second

	// maxRequestSize caps a request. Task payloads are a few hundred
	// bytes; descriptions are the only unbounded field.
	maxRequestSize = 1 << 20
)

// Server serves the socket protocol on a Unix socket path.
type Server struct {
	socketPath string
	handlers   map[string]ActionFunc
	logger     *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
	active    sync.WaitGroup
}

// NewServer creates a server for socketPath. Register handlers before
// calling Serve.
func NewServer(socketPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath: socketPath,
		handlers:   make(map[string]ActionFunc),
		logger:     logger,
		ready:      make(chan struct{}),
	}
}

// Handle registers handler for action. Registering an action twice
// panics.
func (server *Server) Handle(action string, handler ActionFunc) {
	if _, exists := server.handlers[action]; exists {
		panic(fmt.Sprintf("service: duplicate handler for action %q", action))
	}
	server.handlers[action] = handler
}

// Ready is closed once the socket is accepting connections.
func (server *Server) Ready() <-chan struct{} {
	return server.ready
}

// Serve listens until ctx is cancelled, then waits for in-flight
// requests and removes the socket file. A stale socket file at the
// path is replaced.
func (server *Server) Serve(ctx context.Context) error {
	if err := os.Remove(server.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", server.socketPath, err)
	}

	listener, err := net.Listen("unix", server.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", server.socketPath, err)
	}
	defer os.Remove(server.socketPath)

	if err := os.Chmod(server.socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("restricting socket permissions: %w", err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	server.logger.Info("task service listening", "socket", server.socketPath)
	server.readyOnce.Do(func() { close(server.ready) })

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			server.logger.Error("accept failed", "error", err)
			continue
		}
		server.active.Add(1)
		go func() {
			defer server.active.Done()
			server.serveConnection(ctx, conn)
		}()
	}

	server.active.Wait()
	server.logger.Info("task service stopped", "socket", server.socketPath)
	return nil
}

func (server *Server) serveConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		server.reply(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		server.reply(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if header.Action == "" {
		server.reply(conn, Response{Error: "missing required field: action"})
		return
	}
	handler, exists := server.handlers[header.Action]
	if !exists {
		server.reply(conn, Response{Error: fmt.Sprintf("unknown action %q", header.Action)})
		return
	}

	result, err := handler(ctx, Request{Action: header.Action, raw: raw})
	if err != nil {
		server.logger.Debug("action failed", "action", header.Action, "error", err)
		server.reply(conn, Response{Error: err.Error()})
		return
	}

	response := Response{OK: true}
	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			server.reply(conn, Response{Error: fmt.Sprintf("internal: encoding response: %v", err)})
			return
		}
		response.Data = data
	}
	server.reply(conn, response)
}

// reply writes response. A failed write is only logged; the client
// sees a broken connection either way.
func (server *Server) reply(conn net.Conn, response Response) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		server.logger.Debug("writing response failed", "error", err)
	}
}
