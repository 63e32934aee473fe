// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/schema/task"
	"github.com/taskdeck/taskdeck/lib/tasksync"
)

var testEpoch = time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) (*Store, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(testEpoch)
	store, err := Open(context.Background(), Config{
		Path:  filepath.Join(t.TempDir(), "tasks.db"),
		Clock: fake,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, fake
}

func TestCreateAppliesDefaults(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, task.Payload{Title: "  Call mom  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID <= 0 {
		t.Errorf("ID = %d, want positive", created.ID)
	}
	if created.Title != "Call mom" {
		t.Errorf("Title = %q", created.Title)
	}
	if created.Priority != task.PriorityMedium || created.Status != task.StatusTodo {
		t.Errorf("defaults = %s/%s, want medium/todo", created.Priority, created.Status)
	}
	if created.HasDescription() || created.DueDate != nil {
		t.Errorf("optional fields set: %+v", created)
	}
	if !created.CreatedAt.Equal(testEpoch) || !created.UpdatedAt.Equal(testEpoch) {
		t.Errorf("timestamps = %v / %v, want %v", created.CreatedAt, created.UpdatedAt, testEpoch)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	store, _ := openTestStore(t)
	_, err := store.Create(context.Background(), task.Payload{Title: " "})
	if !errors.Is(err, task.ErrEmptyTitle) {
		t.Errorf("Create error = %v, want ErrEmptyTitle", err)
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	store, fake := openTestStore(t)
	ctx := context.Background()

	due := task.Date{Year: 2026, Month: time.October, Day: 20}
	created, err := store.Create(ctx, task.Payload{Title: "Draft", Description: "first pass", Priority: task.PriorityHigh, DueDate: &due})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fake.Advance(time.Hour)
	updated, err := store.Update(ctx, created.ID, task.Payload{Title: "Final", Status: task.StatusDone})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Final" || updated.Status != task.StatusDone {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Priority != task.PriorityMedium {
		t.Errorf("Priority = %s, want reset to medium", updated.Priority)
	}
	if updated.HasDescription() || updated.DueDate != nil {
		t.Errorf("cleared fields survived: %+v", updated)
	}
	if !updated.CreatedAt.Equal(testEpoch) {
		t.Errorf("CreatedAt changed to %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(testEpoch.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, testEpoch.Add(time.Hour))
	}
}

func TestUpdateAndDeleteMissingTask(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Update(ctx, 42, task.Payload{Title: "x"}); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, 42); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(ctx, 42); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirstAndDelete(t *testing.T) {
	store, fake := openTestStore(t)
	ctx := context.Background()

	var created []task.Task
	for _, title := range []string{"one", "two", "three"} {
		entry, err := store.Create(ctx, task.Payload{Title: title})
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		created = append(created, entry)
		fake.Advance(time.Minute)
	}

	tasks, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var titles []string
	for _, entry := range tasks {
		titles = append(titles, entry.Title)
	}
	if len(titles) != 3 || titles[0] != "three" || titles[2] != "one" {
		t.Errorf("List order = %v, want [three two one]", titles)
	}

	if err := store.Delete(ctx, created[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	tasks, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("List after delete has %d tasks, want 2", len(tasks))
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	store, _ := openTestStore(t)
	tasks, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", tasks)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	inserted, err := store.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if inserted != 6 {
		t.Fatalf("inserted %d, want 6", inserted)
	}

	again, err := store.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("second SeedIfEmpty: %v", err)
	}
	if again != 0 {
		t.Errorf("second seed inserted %d, want 0", again)
	}

	tasks, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	today := task.DateOf(testEpoch)
	byTitle := map[string]task.Task{}
	for _, entry := range tasks {
		byTitle[entry.Title] = entry
	}
	login, ok := byTitle["Fix bug in login flow"]
	if !ok {
		t.Fatal("seed missing login bug task")
	}
	if login.Priority != task.PriorityUrgent || login.Status != task.StatusInProgress {
		t.Errorf("login task = %s/%s", login.Priority, login.Status)
	}
	if login.DueDate == nil || *login.DueDate != today {
		t.Errorf("login due = %v, want %s", login.DueDate, today)
	}
	meeting := byTitle["Team meeting preparation"]
	if meeting.DueDate == nil || *meeting.DueDate != today.AddDays(-1) {
		t.Errorf("meeting due = %v, want yesterday", meeting.DueDate)
	}
}

var _ tasksync.Gateway = (*Store)(nil)
