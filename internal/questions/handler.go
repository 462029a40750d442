package questions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clinprep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Generate handles POST /questions/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic is required"})
		return
	}

	q, err := h.service.Generate(r.Context(), req)
	if err != nil {
		log.Printf("ERROR: [questions] generate: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "generation failed"})
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// GenerateForSession handles POST /exams/{sessionID}/questions.
func (h *Handler) GenerateForSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic is required"})
		return
	}

	q, err := h.service.GenerateForSession(r.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
		case errors.Is(err, models.ErrSessionNotActive):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "session is not in progress"})
		default:
			log.Printf("ERROR: [questions] generate for session %s: %v", sessionID, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "generation failed"})
		}
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: [questions] encoding response: %v", err)
	}
}
