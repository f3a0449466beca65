package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"projectboard/backend/middleware"
	"projectboard/backend/models"
	"projectboard/backend/outcome"
	"projectboard/backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// currentUser pulls the authenticated principal out of the request context.
// Requests that bypassed the JWT middleware have no business reaching the
// core.
func currentUser(w http.ResponseWriter, r *http.Request) (models.CurrentUser, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	}
	return user, ok
}

func projectIDFromPath(r *http.Request, key string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[key])
	if err != nil {
		return primitive.NilObjectID, outcome.BadInputf("invalid project id")
	}
	return id, nil
}

func decodeProjectRequest(r *http.Request) (models.ProjectRequest, error) {
	var req models.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, outcome.BadInputf("invalid request payload")
	}
	if req.Name == "" {
		return req, outcome.BadInputf("project name is required")
	}
	if req.Description == "" {
		return req, outcome.BadInputf("project description is required")
	}
	return req, nil
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	req, err := decodeProjectRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.CreateProject(r.Context(), req, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Project created successfully", project)
}

// GetProjects lists the caller's projects, optionally narrowed by ?search=
// and ?dueDate= (YYYY-MM-DD, strictly-before).
func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter := services.ProjectFilter{Search: r.URL.Query().Get("search")}
	if raw := r.URL.Query().Get("dueDate"); raw != "" {
		dueBefore, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, outcome.BadInputf("invalid dueDate, expected YYYY-MM-DD"))
			return
		}
		filter.DueBefore = &dueBefore
	}

	projects, err := h.service.GetProjects(r.Context(), user, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Projects found", projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := projectIDFromPath(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), id, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Project found", project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := projectIDFromPath(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := decodeProjectRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), id, req, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Project updated successfully", project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := projectIDFromPath(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), id, user); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Project deleted successfully", nil)
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := projectIDFromPath(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeError(w, outcome.BadInputf("member email is required"))
		return
	}

	project, err := h.service.AddMember(r.Context(), id, body.Email, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Member added successfully", project)
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := projectIDFromPath(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	email := mux.Vars(r)["email"]
	project, err := h.service.RemoveMember(r.Context(), id, email, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Member removed successfully", project)
}

// FetchEmails answers ?search= with the matching user emails, for the member
// picker.
func (h *ProjectHandler) FetchEmails(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	emails, err := h.service.FetchEmails(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Emails found", emails)
}
