package repositories

import (
	"context"
	"fmt"

	"projectboard/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps projects, tasks and users in separate collections of one
// database.
type MongoStore struct {
	projects *mongo.Collection
	tasks    *mongo.Collection
	users    *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		projects: db.Collection("projects"),
		tasks:    db.Collection("tasks"),
		users:    db.Collection("users"),
	}
}

// EnsureIndexes creates the lookup indexes the query core depends on. The
// project name is deliberately not unique.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.projects.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"ownerId": 1}},
		{Keys: bson.M{"members._id": 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create project indexes: %v", err)
	}

	_, err = s.tasks.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.M{"projectId": 1}})
	if err != nil {
		return fmt.Errorf("failed to create task index: %v", err)
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user email index: %v", err)
	}
	return nil
}

func (s *MongoStore) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching project: %v", err)
	}
	return &project, nil
}

func (s *MongoStore) FindProjectsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Project, error) {
	return s.findProjects(ctx, bson.M{"ownerId": ownerID})
}

func (s *MongoStore) FindProjectsByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return s.findProjects(ctx, bson.M{"members._id": userID})
}

func (s *MongoStore) findProjects(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cursor, err := s.projects.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error decoding projects: %v", err)
	}
	return projects, nil
}

func (s *MongoStore) FindTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching task: %v", err)
	}
	return &task, nil
}

func (s *MongoStore) FindTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cursor, err := s.tasks.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("error fetching tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("error decoding tasks: %v", err)
	}
	return tasks, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %v", err)
	}
	return &user, nil
}

func (s *MongoStore) ListAllUserEmails(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"email": 1})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %v", err)
	}
	defer cursor.Close(ctx)

	var emails []string
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("error decoding user: %v", err)
		}
		emails = append(emails, user.Email)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return emails, nil
}

func (s *MongoStore) SaveProject(ctx context.Context, project *models.Project) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.projects.ReplaceOne(ctx, bson.M{"_id": project.ID}, project, opts); err != nil {
		return fmt.Errorf("failed to save project: %v", err)
	}
	return nil
}

func (s *MongoStore) SaveTask(ctx context.Context, task *models.Task) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.tasks.ReplaceOne(ctx, bson.M{"_id": task.ID}, task, opts); err != nil {
		return fmt.Errorf("failed to save task: %v", err)
	}
	return nil
}

func (s *MongoStore) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.projects.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	return nil
}

func (s *MongoStore) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.tasks.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	return nil
}

func (s *MongoStore) DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) error {
	if _, err := s.tasks.DeleteMany(ctx, bson.M{"projectId": projectID}); err != nil {
		return fmt.Errorf("failed to delete project tasks: %v", err)
	}
	return nil
}
