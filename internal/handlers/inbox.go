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

func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var message db.InboxMessage
	if err := json.Unmarshal(body, &message); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if message.CompanyName == "" || message.Message == "" {
		jsonError(w, http.StatusBadRequest, "Company name and message are required")
		return
	}

	if err := h.Store.CreateInboxMessage(r.Context(), &message); err != nil {
		h.Log.Error("insert inbox message", zap.String("companyName", message.CompanyName), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error sending message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message sent to company inbox",
	})
}

// GetCompanyMessagesHandler returns a company's inbox, newest first.
func (h *Handler) GetCompanyMessagesHandler(w http.ResponseWriter, r *http.Request) {
	companyName := r.URL.Query().Get("companyName")
	if companyName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Company name is required",
		})
		return
	}

	messages, err := h.Store.GetInboxMessages(r.Context(), companyName)
	if err != nil {
		h.Log.Error("fetch inbox messages", zap.String("companyName", companyName), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error fetching messages")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

func (h *Handler) MarkMessageReadHandler(w http.ResponseWriter, r *http.Request) {
	messageIDStr := chi.URLParam(r, "messageId")
	messageID, err := strconv.Atoi(messageIDStr)
	if err != nil || messageID <= 0 {
		jsonError(w, http.StatusBadRequest, "Invalid messageId")
		return
	}

	found, err := h.Store.MarkInboxMessageRead(r.Context(), messageID)
	if err != nil {
		h.Log.Error("mark message read", zap.Int("messageId", messageID), zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "Error updating message")
		return
	}
	if !found {
		jsonError(w, http.StatusNotFound, "Message not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message marked as read",
	})
}
