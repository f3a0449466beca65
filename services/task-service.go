package services

import (
	"context"
	"time"

	"projectboard/backend/logging"
	"projectboard/backend/models"
	"projectboard/backend/outcome"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskService struct {
	store Store
}

func NewTaskService(store Store) *TaskService {
	return &TaskService{store: store}
}

// loadAccessibleProject fetches the parent project and applies the task-level
// guard, which is owner OR member for every task operation.
func (s *TaskService) loadAccessibleProject(ctx context.Context, projectID primitive.ObjectID, user models.CurrentUser) (*models.Project, error) {
	project, err := s.store.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, s.internal("PROJECT_FETCH_FAILED", err)
	}
	if project == nil {
		return nil, outcome.NotFoundf("no project found with id: %s", projectID.Hex())
	}
	if !CanAccess(project, user) {
		return nil, outcome.Forbiddenf("no permission to access tasks of this project")
	}
	return project, nil
}

// CreateTask stores the task and appends its id to the project's ordered task
// list.
func (s *TaskService) CreateTask(ctx context.Context, projectID primitive.ObjectID, req models.TaskRequest, user models.CurrentUser) (*models.Task, error) {
	project, err := s.loadAccessibleProject(ctx, projectID, user)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	task := &models.Task{
		ID:          primitive.NewObjectID(),
		ProjectID:   project.ID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		CreatedAt:   time.Now(),
	}

	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, s.internal("TASK_CREATE_FAILED", err)
	}

	project.TaskIDs = append(project.TaskIDs, task.ID)
	if err := s.store.SaveProject(ctx, project); err != nil {
		return nil, s.internal("PROJECT_TASKLIST_UPDATE_FAILED", err)
	}
	return task, nil
}

// GetAllTasks returns the project's tasks in insertion order. An empty list is
// a valid result here, unlike the project listing.
func (s *TaskService) GetAllTasks(ctx context.Context, projectID primitive.ObjectID, user models.CurrentUser) ([]models.Task, error) {
	project, err := s.loadAccessibleProject(ctx, projectID, user)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.FindTasksByProject(ctx, projectID)
	if err != nil {
		return nil, s.internal("TASK_LIST_FAILED", err)
	}

	byID := make(map[primitive.ObjectID]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	ordered := make([]models.Task, 0, len(tasks))
	for _, id := range project.TaskIDs {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
			delete(byID, id)
		}
	}
	// Tasks missing from the project's list still belong to someone's data;
	// surface them at the end rather than hiding them.
	for _, t := range tasks {
		if _, ok := byID[t.ID]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

func (s *TaskService) GetTask(ctx context.Context, projectID, taskID primitive.ObjectID, user models.CurrentUser) (*models.Task, error) {
	if _, err := s.loadAccessibleProject(ctx, projectID, user); err != nil {
		return nil, err
	}

	task, err := s.store.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, s.internal("TASK_FETCH_FAILED", err)
	}
	if task == nil || task.ProjectID != projectID {
		return nil, outcome.NotFoundf("no task found with id: %s", taskID.Hex())
	}
	return task, nil
}

// UpdateTask overwrites name, description and status.
func (s *TaskService) UpdateTask(ctx context.Context, projectID, taskID primitive.ObjectID, req models.TaskRequest, user models.CurrentUser) (*models.Task, error) {
	task, err := s.GetTask(ctx, projectID, taskID, user)
	if err != nil {
		return nil, err
	}

	task.Name = req.Name
	task.Description = req.Description
	if req.Status != "" {
		task.Status = req.Status
	}
	task.UpdatedAt = time.Now()

	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, s.internal("TASK_UPDATE_FAILED", err)
	}
	return task, nil
}

// DeleteTask detaches the task from the project's list and hard-deletes the
// record, so it can never linger as an orphan.
func (s *TaskService) DeleteTask(ctx context.Context, projectID, taskID primitive.ObjectID, user models.CurrentUser) error {
	project, err := s.loadAccessibleProject(ctx, projectID, user)
	if err != nil {
		return err
	}

	task, err := s.store.FindTaskByID(ctx, taskID)
	if err != nil {
		return s.internal("TASK_FETCH_FAILED", err)
	}
	if task == nil || task.ProjectID != projectID {
		return outcome.NotFoundf("no task found with id: %s", taskID.Hex())
	}

	kept := make([]primitive.ObjectID, 0, len(project.TaskIDs))
	for _, id := range project.TaskIDs {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	project.TaskIDs = kept
	project.UpdatedAt = time.Now()

	if err := s.store.SaveProject(ctx, project); err != nil {
		return s.internal("PROJECT_TASKLIST_UPDATE_FAILED", err)
	}
	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return s.internal("TASK_DELETE_FAILED", err)
	}
	return nil
}

func (s *TaskService) internal(eventID string, err error) error {
	logging.Logger.Errorf("Event ID: %s, Description: %v", eventID, err)
	return outcome.Internalf("something went wrong")
}
