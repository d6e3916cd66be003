package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"skillmatch/db"
)

// GetProjectsHandler returns all projects, or the projects of one company
// when ?companyName= is given.
func (h *Handler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	companyName := r.URL.Query().Get("companyName")

	projects, err := h.Store.GetProjects(r.Context(), companyName)
	if err != nil {
		h.Log.Error("fetch projects", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching data from the database")
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// GetFreelancerProjectsHandler is the unfiltered listing served to freelancers.
func (h *Handler) GetFreelancerProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.GetProjects(r.Context(), "")
	if err != nil {
		h.Log.Error("fetch projects", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching data from the database")
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	projectIDStr := chi.URLParam(r, "projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid projectId")
		return
	}

	project, err := h.Store.GetProject(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			jsonError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.Log.Error("fetch project", zap.Int("projectId", projectID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching data from the database")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var project db.Project
	if err := json.Unmarshal(body, &project); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := validateProjectRequest(&project); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.CreateProject(r.Context(), &project); err != nil {
		h.Log.Error("insert project", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error inserting data into the database")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Project created successfully!",
		"projectId": project.ID,
	})
}

// validateProjectRequest checks presence of the required creation fields.
func validateProjectRequest(p *db.Project) error {
	if p.Name == "" || p.Description == "" || p.Deadline == "" || p.Skills == "" || p.CompanyName == "" {
		return errors.New("All fields are required.")
	}
	if p.Budget <= 0 {
		return errors.New("budget must be positive")
	}
	return nil
}

func (h *Handler) UpdateProjectProgressHandler(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		Progress *int `json:"progress"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if input.Progress == nil {
		jsonError(w, http.StatusBadRequest, "Progress is required")
		return
	}
	if *input.Progress < 0 || *input.Progress > 100 {
		jsonError(w, http.StatusBadRequest, "Progress must be between 0 and 100")
		return
	}

	found, err := h.Store.UpdateProjectProgress(r.Context(), projectID, *input.Progress)
	if err != nil {
		h.Log.Error("update progress", zap.Int("projectId", projectID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error updating project progress")
		return
	}
	if !found {
		jsonError(w, http.StatusNotFound, "Project not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Progress updated successfully"})
}
