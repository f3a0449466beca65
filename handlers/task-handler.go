package handlers

import (
	"encoding/json"
	"net/http"

	"projectboard/backend/models"
	"projectboard/backend/outcome"
	"projectboard/backend/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func taskIDFromPath(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		return primitive.NilObjectID, outcome.BadInputf("invalid task id")
	}
	return id, nil
}

func decodeTaskRequest(r *http.Request) (models.TaskRequest, error) {
	var req models.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, outcome.BadInputf("invalid request payload")
	}
	if req.Name == "" {
		return req, outcome.BadInputf("task name is required")
	}
	return req, nil
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	projectID, err := projectIDFromPath(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := decodeTaskRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.CreateTask(r.Context(), projectID, req, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	projectID, err := projectIDFromPath(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.service.GetAllTasks(r.Context(), projectID, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Tasks found", tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	projectID, err := projectIDFromPath(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := taskIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.GetTask(r.Context(), projectID, taskID, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task found", task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	projectID, err := projectIDFromPath(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := taskIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := decodeTaskRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), projectID, taskID, req, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	projectID, err := projectIDFromPath(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := taskIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteTask(r.Context(), projectID, taskID, user); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}
