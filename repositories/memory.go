package repositories

import (
	"context"
	"sync"

	"projectboard/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryStore is a map-backed store for tests and for running the service
// without a database. A single mutex stands in for the per-record atomicity
// the Mongo store gets from the server.
type InMemoryStore struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]models.Project
	tasks    map[primitive.ObjectID]models.Task
	users    map[string]models.User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		projects: make(map[primitive.ObjectID]models.Project),
		tasks:    make(map[primitive.ObjectID]models.Task),
		users:    make(map[string]models.User),
	}
}

// AddUser registers a user so FindUserByEmail and ListAllUserEmails can
// resolve it.
func (s *InMemoryStore) AddUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
}

func (s *InMemoryStore) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if project, ok := s.projects[id]; ok {
		p := cloneProject(project)
		return &p, nil
	}
	return nil, nil
}

func (s *InMemoryStore) FindProjectsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var projects []models.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			projects = append(projects, cloneProject(p))
		}
	}
	return projects, nil
}

func (s *InMemoryStore) FindProjectsByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var projects []models.Project
	for _, p := range s.projects {
		for _, m := range p.Members {
			if m.ID == userID {
				projects = append(projects, cloneProject(p))
				break
			}
		}
	}
	return projects, nil
}

func (s *InMemoryStore) FindTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[id]; ok {
		t := task
		return &t, nil
	}
	return nil, nil
}

func (s *InMemoryStore) FindTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tasks []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *InMemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[email]; ok {
		u := user
		return &u, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListAllUserEmails(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var emails []string
	for email := range s.users {
		emails = append(emails, email)
	}
	return emails, nil
}

func (s *InMemoryStore) SaveProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = cloneProject(*project)
	return nil
}

func (s *InMemoryStore) SaveTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

func (s *InMemoryStore) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *InMemoryStore) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *InMemoryStore) DeleteTasksByProject(ctx context.Context, projectID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
		}
	}
	return nil
}

// cloneProject copies the slices so callers cannot mutate stored state behind
// the mutex.
func cloneProject(p models.Project) models.Project {
	p.Members = append([]models.Member(nil), p.Members...)
	p.TaskIDs = append([]primitive.ObjectID(nil), p.TaskIDs...)
	return p
}
