package handlers

import (
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"skillmatch/db"
	"skillmatch/internal/blob"
)

const maxCVSize = 10 << 20 // 10 MiB multipart memory limit

// ApplyHandler runs the application submission pipeline: receive the
// multipart form, spool the CV to a local temp file, upload it to the blob
// store, insert the application row. The temp file is removed on every exit
// path. A failed insert does not remove the already uploaded blob.
func (h *Handler) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCVSize); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	projectIDStr := r.FormValue("projectId")
	freelancerName := r.FormValue("freelancerName")

	cvFile, cvHeader, err := r.FormFile("cv")
	if projectIDStr == "" || freelancerName == "" || err != nil {
		jsonError(w, http.StatusBadRequest, "Project ID, Freelancer Name, and CV file are required")
		return
	}
	defer cvFile.Close()

	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid projectId")
		return
	}

	tmp, err := os.CreateTemp(h.UploadDir, "cv-*")
	if err != nil {
		h.Log.Error("create temp file", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error uploading CV")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, cvFile); err != nil {
		tmp.Close()
		h.Log.Error("spool cv", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error uploading CV")
		return
	}
	if err := tmp.Close(); err != nil {
		h.Log.Error("spool cv", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error uploading CV")
		return
	}

	spooled, err := os.Open(tmpPath)
	if err != nil {
		h.Log.Error("open spooled cv", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error uploading CV")
		return
	}
	defer spooled.Close()

	key := blob.CVKey(cvHeader.Filename, time.Now())
	cvURL, err := h.Blobs.Upload(r.Context(), key, cvHeader.Header.Get("Content-Type"), spooled)
	if err != nil {
		h.Log.Error("upload cv", zap.String("key", key), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error uploading CV")
		return
	}

	application := &db.Application{
		ProjectID:        projectID,
		FreelancerName:   freelancerName,
		FreelancerEmail:  r.FormValue("freelancerEmail"),
		FreelancerPhone:  r.FormValue("freelancerPhone"),
		CVURL:            cvURL,
		Skills:           r.FormValue("skills"),
		MessageToCompany: r.FormValue("messageToCompany"),
	}

	// The blob stays in the bucket if this insert fails; nothing reconciles
	// the orphan.
	if err := h.Store.CreateApplication(r.Context(), application); err != nil {
		h.Log.Error("insert application", zap.Int("projectId", projectID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error applying for project")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully applied for the project"})
}

// GetFreelancerApplicationsHandler returns the projects a freelancer applied
// to, joined with each application's status.
func (h *Handler) GetFreelancerApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	freelancerName := r.URL.Query().Get("freelancerName")
	if freelancerName == "" {
		jsonError(w, http.StatusBadRequest, "Missing freelancerName parameter")
		return
	}

	applied, err := h.Store.GetApplicationsForFreelancer(r.Context(), freelancerName)
	if err != nil {
		h.Log.Error("fetch applied projects", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching applied projects")
		return
	}

	writeJSON(w, http.StatusOK, applied)
}

func (h *Handler) GetProjectApplicantsHandler(w http.ResponseWriter, r *http.Request) {
	projectIDStr := chi.URLParam(r, "projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid projectId")
		return
	}

	applicants, err := h.Store.GetApplicantsForProject(r.Context(), projectID)
	if err != nil {
		h.Log.Error("fetch applicants", zap.Int("projectId", projectID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching applicants")
		return
	}

	writeJSON(w, http.StatusOK, applicants)
}

// ConfirmApplicantHandler moves an application to confirmed. Re-confirming is
// a no-op, so the call is idempotent.
func (h *Handler) ConfirmApplicantHandler(w http.ResponseWriter, r *http.Request) {
	applicationIDStr := chi.URLParam(r, "applicationId")
	applicationID, err := strconv.Atoi(applicationIDStr)
	if err != nil || applicationID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid applicationId")
		return
	}

	if err := h.Store.ConfirmApplication(r.Context(), applicationID); err != nil {
		h.Log.Error("confirm applicant", zap.Int("applicationId", applicationID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error confirming applicant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Applicant confirmed successfully!"})
}
