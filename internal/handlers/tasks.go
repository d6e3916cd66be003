package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"skillmatch/db"
)

func (h *Handler) GetProjectTasksHandler(w http.ResponseWriter, r *http.Request) {
	projectIDStr := chi.URLParam(r, "projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid projectId")
		return
	}

	tasks, err := h.Store.GetTasksForProject(r.Context(), projectID)
	if err != nil {
		h.Log.Error("fetch tasks", zap.Int("projectId", projectID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	projectIDStr := chi.URLParam(r, "projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid projectId")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Cannot read body")
		return
	}
	defer r.Body.Close()

	var task db.Task
	if err := json.Unmarshal(body, &task); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if task.Name == "" {
		jsonError(w, http.StatusBadRequest, "Task name is required")
		return
	}

	task.ProjectID = projectID
	if task.Status == "" {
		task.Status = "pending"
	}

	if err := h.Store.CreateTask(r.Context(), &task); err != nil {
		h.Log.Error("insert task", zap.Int("projectId", projectID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error creating task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) UpdateTaskStatusHandler(w http.ResponseWriter, r *http.Request) {
	taskIDStr := chi.URLParam(r, "taskId")
	taskID, err := strconv.Atoi(taskIDStr)
	if err != nil || taskID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid taskId")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Cannot read body")
		return
	}
	defer r.Body.Close()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if input.Status == "" {
		jsonError(w, http.StatusBadRequest, "Status is required")
		return
	}

	found, err := h.Store.UpdateTaskStatus(r.Context(), taskID, input.Status)
	if err != nil {
		h.Log.Error("update task status", zap.Int("taskId", taskID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error updating task status")
		return
	}
	if !found {
		jsonError(w, http.StatusNotFound, "Task not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task status updated successfully"})
}

func (h *Handler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskIDStr := chi.URLParam(r, "taskId")
	taskID, err := strconv.Atoi(taskIDStr)
	if err != nil || taskID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid taskId")
		return
	}

	found, err := h.Store.DeleteTask(r.Context(), taskID)
	if err != nil {
		h.Log.Error("delete task", zap.Int("taskId", taskID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error deleting task")
		return
	}
	if !found {
		jsonError(w, http.StatusNotFound, "Task not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
