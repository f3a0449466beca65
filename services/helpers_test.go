package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"projectboard/backend/models"
	"projectboard/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUser(t *testing.T, store *repositories.InMemoryStore, email string) models.CurrentUser {
	t.Helper()
	user := models.User{ID: primitive.NewObjectID(), Email: email}
	store.AddUser(user)
	return models.CurrentUser{ID: user.ID, Email: user.Email}
}

func seedProject(t *testing.T, store *repositories.InMemoryStore, owner models.CurrentUser, name, description string, due time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		DueDate:     due,
		OwnerID:     owner.ID,
		Members:     []models.Member{},
		TaskIDs:     []primitive.ObjectID{},
		CreatedAt:   time.Now(),
	}
	if err := store.SaveProject(context.Background(), project); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	return project
}

// brokenStore fails every operation, for exercising the Internal conversion.
type brokenStore struct{}

var errStoreDown = errors.New("store unavailable")

func (brokenStore) FindProjectByID(context.Context, primitive.ObjectID) (*models.Project, error) {
	return nil, errStoreDown
}
func (brokenStore) FindProjectsByOwner(context.Context, primitive.ObjectID) ([]models.Project, error) {
	return nil, errStoreDown
}
func (brokenStore) FindProjectsByMember(context.Context, primitive.ObjectID) ([]models.Project, error) {
	return nil, errStoreDown
}
func (brokenStore) FindTaskByID(context.Context, primitive.ObjectID) (*models.Task, error) {
	return nil, errStoreDown
}
func (brokenStore) FindTasksByProject(context.Context, primitive.ObjectID) ([]models.Task, error) {
	return nil, errStoreDown
}
func (brokenStore) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenStore) ListAllUserEmails(context.Context) ([]string, error) {
	return nil, errStoreDown
}
func (brokenStore) SaveProject(context.Context, *models.Project) error { return errStoreDown }
func (brokenStore) SaveTask(context.Context, *models.Task) error       { return errStoreDown }
func (brokenStore) DeleteProject(context.Context, primitive.ObjectID) error {
	return errStoreDown
}
func (brokenStore) DeleteTask(context.Context, primitive.ObjectID) error { return errStoreDown }
func (brokenStore) DeleteTasksByProject(context.Context, primitive.ObjectID) error {
	return errStoreDown
}
