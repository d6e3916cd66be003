package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"skillmatch/internal/blob"
)

// Handler wires the storage and blob-store dependencies for all routes.
type Handler struct {
	Store     StorageInterface
	Blobs     blob.Uploader
	Log       *zap.Logger
	UploadDir string
	Auth      AuthConfig
}

// AuthConfig is handed to the SPA so it can talk to the external identity
// provider; the backend itself does not enforce authentication.
type AuthConfig struct {
	Region     string `json:"region"`
	UserPoolID string `json:"userPoolId"`
	ClientID   string `json:"clientId"`
}

func NewHandler(store StorageInterface, blobs blob.Uploader, log *zap.Logger, uploadDir string, auth AuthConfig) *Handler {
	return &Handler{
		Store:     store,
		Blobs:     blobs,
		Log:       log,
		UploadDir: uploadDir,
		Auth:      auth,
	}
}

// PingHandler answers "ok" as a liveness check.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) ConfigHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Auth)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// jsonError writes {"message": ...}; clients only ever see free-text messages.
func jsonError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
