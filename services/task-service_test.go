package services

import (
	"context"
	"testing"

	"projectboard/backend/models"
	"projectboard/backend/outcome"
	"projectboard/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateTaskGuards(t *testing.T) {
	store := repositories.NewInMemoryStore()
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	bob := newUser(t, store, "bob@x.com")

	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))

	if _, err := tasks.CreateTask(context.Background(), primitive.NewObjectID(), models.TaskRequest{Name: "T"}, alice); outcome.CodeOf(err) != outcome.NotFound {
		t.Errorf("unknown project: code = %v, want NotFound", outcome.CodeOf(err))
	}

	// Bob is neither owner nor member.
	if _, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "T"}, bob); outcome.CodeOf(err) != outcome.Forbidden {
		t.Errorf("stranger: code = %v, want Forbidden", outcome.CodeOf(err))
	}
}

func TestMemberCanWorkWithTasks(t *testing.T) {
	store := repositories.NewInMemoryStore()
	projects := NewProjectService(store, nil)
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	bob := newUser(t, store, "bob@x.com")

	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))
	if _, err := projects.AddMember(context.Background(), project.ID, bob.Email, alice); err != nil {
		t.Fatal(err)
	}

	task, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "Write docs"}, bob)
	if err != nil {
		t.Fatalf("member task creation failed: %v", err)
	}
	if task.ProjectID != project.ID {
		t.Errorf("task project = %s, want %s", task.ProjectID.Hex(), project.ID.Hex())
	}

	listed, err := tasks.GetAllTasks(context.Background(), project.ID, bob)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != task.ID {
		t.Errorf("member does not see the created task: %+v", listed)
	}
}

func TestCreateTaskDefaultsStatus(t *testing.T) {
	store := repositories.NewInMemoryStore()
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))

	task, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "T"}, alice)
	if err != nil {
		t.Fatal(err)
	}
	if task.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", task.Status, models.StatusPending)
	}
}

func TestGetAllTasksPreservesInsertionOrder(t *testing.T) {
	store := repositories.NewInMemoryStore()
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: name}, alice); err != nil {
			t.Fatal(err)
		}
	}

	listed, err := tasks.GetAllTasks(context.Background(), project.ID, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != len(names) {
		t.Fatalf("got %d tasks, want %d", len(listed), len(names))
	}
	for i, name := range names {
		if listed[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, listed[i].Name, name)
		}
	}
}

func TestGetTask(t *testing.T) {
	store := repositories.NewInMemoryStore()
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))
	other := seedProject(t, store, alice, "Beta", "second", date(2027, 1, 1))

	task, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "T"}, alice)
	if err != nil {
		t.Fatal(err)
	}

	got, err := tasks.GetTask(context.Background(), project.ID, task.ID, alice)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("got task %s, want %s", got.ID.Hex(), task.ID.Hex())
	}

	// A task id fetched through the wrong project is not found.
	if _, err := tasks.GetTask(context.Background(), other.ID, task.ID, alice); outcome.CodeOf(err) != outcome.NotFound {
		t.Errorf("cross-project fetch: code = %v, want NotFound", outcome.CodeOf(err))
	}
}

func TestUpdateTaskOverwrites(t *testing.T) {
	store := repositories.NewInMemoryStore()
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))

	task, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "T"}, alice)
	if err != nil {
		t.Fatal(err)
	}

	updated, err := tasks.UpdateTask(context.Background(), project.ID, task.ID, models.TaskRequest{
		Name:        "T2",
		Description: "reworked",
		Status:      models.StatusInProgress,
	}, alice)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Name != "T2" || updated.Description != "reworked" || updated.Status != models.StatusInProgress {
		t.Errorf("fields not overwritten: %+v", updated)
	}

	stored, _ := store.FindTaskByID(context.Background(), task.ID)
	if stored.Name != "T2" {
		t.Errorf("update was not persisted: %+v", stored)
	}
}

func TestDeleteTaskDetachesAndDeletes(t *testing.T) {
	store := repositories.NewInMemoryStore()
	tasks := NewTaskService(store)
	alice := newUser(t, store, "alice@x.com")
	project := seedProject(t, store, alice, "Alpha", "first", date(2027, 1, 1))

	t1, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "T1"}, alice)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := tasks.CreateTask(context.Background(), project.ID, models.TaskRequest{Name: "T2"}, alice)
	if err != nil {
		t.Fatal(err)
	}

	if err := tasks.DeleteTask(context.Background(), project.ID, t1.ID, alice); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	listed, err := tasks.GetAllTasks(context.Background(), project.ID, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != t2.ID {
		t.Errorf("task list after delete = %+v, want only %s", listed, t2.ID.Hex())
	}

	// The record is gone, not orphaned.
	gone, err := store.FindTaskByID(context.Background(), t1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gone != nil {
		t.Error("deleted task still exists in the store")
	}

	stored, _ := store.FindProjectByID(context.Background(), project.ID)
	for _, id := range stored.TaskIDs {
		if id == t1.ID {
			t.Error("deleted task id still referenced by the project")
		}
	}

	if err := tasks.DeleteTask(context.Background(), project.ID, t1.ID, alice); outcome.CodeOf(err) != outcome.NotFound {
		t.Errorf("second delete: code = %v, want NotFound", outcome.CodeOf(err))
	}
}

func TestTaskStoreFailuresBecomeInternal(t *testing.T) {
	tasks := NewTaskService(brokenStore{})
	alice := models.CurrentUser{ID: primitive.NewObjectID(), Email: "alice@x.com"}

	err := tasks.DeleteTask(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), alice)
	if outcome.CodeOf(err) != outcome.Internal {
		t.Fatalf("code = %v, want Internal", outcome.CodeOf(err))
	}
}
