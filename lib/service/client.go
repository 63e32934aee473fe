// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net"
	"time"

	"github.com/taskdeck/taskdeck/lib/codec"
)

const (
	dialTimeout = 5 * time.Second

	// maxResponseSize caps a reply. A full task list is the largest
	// response.
	maxResponseSize = 16 << 20
)

// ServiceError is a failure reported by the server (ok=false), as
// opposed to a transport failure.
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("task service %s: %s", e.Action, e.Message)
}

// Client calls a Server. Each Call uses a fresh connection.
type Client struct {
	socketPath string
}

// NewClient returns a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Call sends action with fields and decodes the reply's data into
// result when both are present. fields must not contain "action". The
// reply deadline comes from ctx.
func (client *Client) Call(ctx context.Context, action string, fields map[string]any, result any) error {
	request := make(map[string]any, len(fields)+1)
	maps.Copy(request, fields)
	request["action"] = action

	response, err := client.roundTrip(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %s on %s: %w", action, client.socketPath, err)
	}
	if !response.OK {
		return &ServiceError{Action: action, Message: response.Error}
	}
	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding %s response: %w", action, err)
		}
	}
	return nil
}

func (client *Client) roundTrip(ctx context.Context, request map[string]any) (Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", client.socketPath)
	if err != nil {
		return Response{}, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return Response{}, fmt.Errorf("writing request: %w", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&response); err != nil {
		if ctx.Err() != nil {
			return Response{}, fmt.Errorf("reading response: %w", ctx.Err())
		}
		return Response{}, fmt.Errorf("reading response: %w", err)
	}
	return response, nil
}
