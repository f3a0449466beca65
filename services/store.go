package services

import (
	"context"

	"projectboard/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the narrow persistence gateway the core consumes. Find methods
// return (nil, nil) when the record does not exist; the services decide what
// an absent record means. Implementations must provide per-record atomicity
// for saves and deletes.
type Store interface {
	FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindProjectsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Project, error)
	FindProjectsByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error)
	FindTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListAllUserEmails(ctx context.Context) ([]string, error)
	SaveProject(ctx context.Context, project *models.Project) error
	SaveTask(ctx context.Context, task *models.Task) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	DeleteTask(ctx context.Context, id primitive.ObjectID) error
	DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) error
}
