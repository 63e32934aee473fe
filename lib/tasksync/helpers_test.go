// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tasksync

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// memoryGateway is an in-memory persistence collaborator. Set failNext
// to make the next call of any kind return that error.
type memoryGateway struct {
	mu       sync.Mutex
	tasks    []task.Task
	nextID   int64
	failNext error
	creates  []task.Payload
}

func newMemoryGateway(tasks ...task.Task) *memoryGateway {
	gateway := &memoryGateway{tasks: slices.Clone(tasks), nextID: 1}
	for _, existing := range tasks {
		if existing.ID >= gateway.nextID {
			gateway.nextID = existing.ID + 1
		}
	}
	return gateway
}

func (gateway *memoryGateway) takeFailure() error {
	err := gateway.failNext
	gateway.failNext = nil
	return err
}

func (gateway *memoryGateway) List(ctx context.Context) ([]task.Task, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	if err := gateway.takeFailure(); err != nil {
		return nil, err
	}
	return slices.Clone(gateway.tasks), nil
}

func (gateway *memoryGateway) Create(ctx context.Context, payload task.Payload) (task.Task, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	if err := gateway.takeFailure(); err != nil {
		return task.Task{}, err
	}
	gateway.creates = append(gateway.creates, payload)
	payload = payload.WithDefaults()
	created := task.Task{
		ID:          gateway.nextID,
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    payload.Priority,
		Status:      payload.Status,
		DueDate:     payload.DueDate,
	}
	gateway.nextID++
	gateway.tasks = append(gateway.tasks, created)
	return created, nil
}

func (gateway *memoryGateway) Update(ctx context.Context, id int64, payload task.Payload) (task.Task, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	if err := gateway.takeFailure(); err != nil {
		return task.Task{}, err
	}
	for index, existing := range gateway.tasks {
		if existing.ID == id {
			payload = payload.WithDefaults()
			existing.Title = payload.Title
			existing.Description = payload.Description
			existing.Priority = payload.Priority
			existing.Status = payload.Status
			existing.DueDate = payload.DueDate
			gateway.tasks[index] = existing
			return existing, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (gateway *memoryGateway) Delete(ctx context.Context, id int64) error {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	if err := gateway.takeFailure(); err != nil {
		return err
	}
	index := slices.IndexFunc(gateway.tasks, func(existing task.Task) bool { return existing.ID == id })
	if index < 0 {
		return task.ErrNotFound
	}
	gateway.tasks = slices.Delete(gateway.tasks, index, index+1)
	return nil
}

// stubParser returns a fixed candidate or error.
type stubParser struct {
	candidate task.Candidate
	err       error
	seen      []string
}

func (parser *stubParser) Parse(ctx context.Context, transcript string) (task.Candidate, error) {
	parser.seen = append(parser.seen, transcript)
	if parser.err != nil {
		return task.Candidate{}, parser.err
	}
	return parser.candidate, nil
}

var errBackend = errors.New("backend unavailable")

// settle feeds event into state and runs every resulting effect
// synchronously, in order, until no effects remain.
func settle(t *testing.T, runner *Runner, state State, event Event) State {
	t.Helper()
	queue := []Event{event}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("effects did not settle")
		}
		var effects []Effect
		state, effects = Reduce(state, queue[0])
		queue = queue[1:]
		for _, effect := range effects {
			queue = append(queue, runner.Run(context.Background(), effect))
		}
	}
	return state
}

// reduceAll applies events in order and returns the final state and
// the effects emitted by the last event.
func reduceAll(state State, events ...Event) (State, []Effect) {
	var effects []Effect
	for _, event := range events {
		state, effects = Reduce(state, event)
	}
	return state, effects
}

func loadedState(tasks ...task.Task) State {
	state, _ := reduceAll(New(ModeBoard), RefreshRequested{}, RefreshCompleted{Tasks: tasks})
	return state
}

func onlyEffect[T Effect](t *testing.T, effects []Effect) T {
	t.Helper()
	if len(effects) != 1 {
		t.Fatalf("got %d effects %v, want exactly one", len(effects), effects)
	}
	effect, ok := effects[0].(T)
	if !ok {
		t.Fatalf("effect is %T, want %T", effects[0], *new(T))
	}
	return effect
}

var testSession = uuid.MustParse("6f1c2a7e-3b4d-4e5f-9a8b-7c6d5e4f3a2b")
