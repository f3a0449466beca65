package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"projectboard/backend/logging"
	"projectboard/backend/models"
	"projectboard/backend/outcome"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// minEmailQueryLen is the shortest search string FetchEmails accepts.
const minEmailQueryLen = 3

// ProjectFilter narrows GetProjects. When both fields are set a project must
// match the text AND be due strictly before the date.
type ProjectFilter struct {
	Search    string
	DueBefore *time.Time
}

type ProjectService struct {
	store         Store
	notifications *NotificationClient
}

// NewProjectService wires the project core to its persistence gateway. The
// notification client may be nil; membership changes are then silent.
func NewProjectService(store Store, notifications *NotificationClient) *ProjectService {
	return &ProjectService{store: store, notifications: notifications}
}

// CreateProject always succeeds for an authenticated owner. Project names are
// not unique.
func (s *ProjectService) CreateProject(ctx context.Context, req models.ProjectRequest, user models.CurrentUser) (*models.Project, error) {
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		StoryPoints: req.StoryPoints,
		DueDate:     req.DueDate,
		Cost:        req.Cost,
		OwnerID:     user.ID,
		Members:     []models.Member{},
		TaskIDs:     []primitive.ObjectID{},
		CreatedAt:   time.Now(),
	}

	if err := s.store.SaveProject(ctx, project); err != nil {
		return nil, s.internal("PROJECT_CREATE_FAILED", err)
	}
	return project, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id primitive.ObjectID, user models.CurrentUser) (*models.Project, error) {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return nil, s.internal("PROJECT_FETCH_FAILED", err)
	}
	if project == nil {
		return nil, outcome.NotFoundf("no project found with id: %s", id.Hex())
	}
	if !CanAccess(project, user) {
		return nil, outcome.Forbiddenf("no permission to access this project")
	}
	return project, nil
}

// GetProjects returns every project the user owns or belongs to, de-duplicated
// by id and narrowed by the filter. An empty result is a NotFound outcome, not
// an empty list.
func (s *ProjectService) GetProjects(ctx context.Context, user models.CurrentUser, filter ProjectFilter) ([]models.Project, error) {
	owned, err := s.store.FindProjectsByOwner(ctx, user.ID)
	if err != nil {
		return nil, s.internal("PROJECT_LIST_FAILED", err)
	}
	member, err := s.store.FindProjectsByMember(ctx, user.ID)
	if err != nil {
		return nil, s.internal("PROJECT_LIST_FAILED", err)
	}

	seen := make(map[primitive.ObjectID]bool)
	var projects []models.Project
	for _, p := range append(owned, member...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if matchesFilter(p, filter) {
			projects = append(projects, p)
		}
	}

	if len(projects) == 0 {
		return nil, outcome.NotFoundf("no projects found")
	}
	return projects, nil
}

func matchesFilter(p models.Project, filter ProjectFilter) bool {
	if filter.Search != "" {
		query := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			return false
		}
	}
	if filter.DueBefore != nil && !p.DueDate.Before(*filter.DueBefore) {
		return false
	}
	return true
}

// UpdateProject overwrites all mutable fields at once. Owner only.
func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, req models.ProjectRequest, user models.CurrentUser) (*models.Project, error) {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return nil, s.internal("PROJECT_FETCH_FAILED", err)
	}
	if project == nil {
		return nil, outcome.NotFoundf("no project found with id: %s", id.Hex())
	}
	if !CanMutate(project, user) {
		return nil, outcome.Forbiddenf("only the project owner may update the project")
	}

	project.Name = req.Name
	project.Description = req.Description
	project.StoryPoints = req.StoryPoints
	project.DueDate = req.DueDate
	project.Cost = req.Cost
	project.UpdatedAt = time.Now()

	if err := s.store.SaveProject(ctx, project); err != nil {
		return nil, s.internal("PROJECT_UPDATE_FAILED", err)
	}
	return project, nil
}

// DeleteProject removes the project and every one of its tasks. The cascade
// is enumerated here on purpose; no storage layer is trusted to infer it.
func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID, user models.CurrentUser) error {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return s.internal("PROJECT_FETCH_FAILED", err)
	}
	if project == nil {
		return outcome.NotFoundf("no project found with id: %s", id.Hex())
	}
	if !CanMutate(project, user) {
		return outcome.Forbiddenf("only the project owner may delete the project")
	}

	if err := s.store.DeleteTasksByProject(ctx, id); err != nil {
		return s.internal("PROJECT_TASKS_DELETE_FAILED", err)
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return s.internal("PROJECT_DELETE_FAILED", err)
	}
	return nil
}

// AddMember resolves the email to a user and adds them to the member set.
// Idempotent: re-adding an existing member or the owner changes nothing.
func (s *ProjectService) AddMember(ctx context.Context, id primitive.ObjectID, email string, user models.CurrentUser) (*models.Project, error) {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return nil, s.internal("PROJECT_FETCH_FAILED", err)
	}
	if project == nil {
		return nil, outcome.NotFoundf("no project found with id: %s", id.Hex())
	}
	if !CanMutate(project, user) {
		return nil, outcome.Forbiddenf("only the project owner may add members")
	}

	member, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, s.internal("USER_FETCH_FAILED", err)
	}
	if member == nil {
		return nil, outcome.NotFoundf("no user found with email: %s", email)
	}

	// The owner is never part of the member set.
	if member.ID == project.OwnerID {
		return project, nil
	}
	for _, m := range project.Members {
		if m.ID == member.ID {
			return project, nil
		}
	}

	project.Members = append(project.Members, models.Member{ID: member.ID, Email: member.Email})
	project.UpdatedAt = time.Now()

	if err := s.store.SaveProject(ctx, project); err != nil {
		return nil, s.internal("PROJECT_MEMBER_ADD_FAILED", err)
	}

	s.notify(member.ID, fmt.Sprintf("You have been added to project %s", project.Name))
	return project, nil
}

// RemoveMember removes the user with the given email from the member set.
// Removing someone who is not a member is a no-op success.
func (s *ProjectService) RemoveMember(ctx context.Context, id primitive.ObjectID, email string, user models.CurrentUser) (*models.Project, error) {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return nil, s.internal("PROJECT_FETCH_FAILED", err)
	}
	if project == nil {
		return nil, outcome.NotFoundf("no project found with id: %s", id.Hex())
	}
	if !CanMutate(project, user) {
		return nil, outcome.Forbiddenf("only the project owner may remove members")
	}

	member, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, s.internal("USER_FETCH_FAILED", err)
	}
	if member == nil {
		return nil, outcome.NotFoundf("no user found with email: %s", email)
	}

	kept := project.Members[:0]
	removed := false
	for _, m := range project.Members {
		if m.ID == member.ID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return project, nil
	}

	project.Members = kept
	project.UpdatedAt = time.Now()

	if err := s.store.SaveProject(ctx, project); err != nil {
		return nil, s.internal("PROJECT_MEMBER_REMOVE_FAILED", err)
	}

	s.notify(member.ID, fmt.Sprintf("You have been removed from project %s", project.Name))
	return project, nil
}

// FetchEmails returns every known email containing the query,
// case-insensitively. Queries shorter than three characters are rejected and
// an empty match set is a NotFound outcome.
func (s *ProjectService) FetchEmails(ctx context.Context, query string) ([]string, error) {
	if len(query) < minEmailQueryLen {
		return nil, outcome.BadInputf("search query must be at least %d characters long", minEmailQueryLen)
	}

	emails, err := s.store.ListAllUserEmails(ctx)
	if err != nil {
		return nil, s.internal("USER_EMAILS_FETCH_FAILED", err)
	}

	lowered := strings.ToLower(query)
	var matching []string
	for _, email := range emails {
		if strings.Contains(strings.ToLower(email), lowered) {
			matching = append(matching, email)
		}
	}

	if len(matching) == 0 {
		return nil, outcome.NotFoundf("no emails match %q", query)
	}
	return matching, nil
}

// internal logs the raw store failure and returns the generic message the
// caller is allowed to see.
func (s *ProjectService) internal(eventID string, err error) error {
	logging.Logger.Errorf("Event ID: %s, Description: %v", eventID, err)
	return outcome.Internalf("something went wrong")
}

func (s *ProjectService) notify(userID primitive.ObjectID, message string) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(userID, message); err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_SEND_FAILED, Description: %v", err)
	}
}
