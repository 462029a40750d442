package exam

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clinprep/backend/internal/models"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// CreateSession handles POST /exams.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.LearnerID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "learner_id is required"})
		return
	}

	sess, err := h.manager.CreateSession(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /exams/{sessionID}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	sess, err := h.manager.GetSession(sessionID)
	if err != nil {
		writeError(w, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// GetLearnerSessions handles GET /learners/{learnerID}/sessions.
func (h *Handler) GetLearnerSessions(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]

	sessions := h.manager.GetLearnerSessions(learnerID)
	if sessions == nil {
		sessions = []*models.ExamSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// SubmitAnswer handles POST /exams/{sessionID}/submit.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.manager.SubmitAnswer(sessionID, req)
	if err != nil {
		writeError(w, "submit answer", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CompleteSession handles POST /exams/{sessionID}/complete.
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	result, err := h.manager.CompleteSession(sessionID)
	if err != nil {
		writeError(w, "complete session", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AbandonSession handles POST /exams/{sessionID}/abandon.
func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	if err := h.manager.AbandonSession(sessionID); err != nil {
		writeError(w, "abandon session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// GetSummary handles GET /exams/{sessionID}/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	summary, err := h.manager.GetSessionSummary(sessionID)
	if err != nil {
		writeError(w, "session summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetNextDifficulty handles GET /exams/{sessionID}/next-difficulty.
func (h *Handler) GetNextDifficulty(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]
	difficulty := h.manager.GetAdaptiveNextDifficulty(sessionID)
	writeJSON(w, http.StatusOK, map[string]string{"next_difficulty": string(difficulty)})
}

// writeError maps manager errors onto HTTP status codes.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
	case errors.Is(err, models.ErrOutOfRange):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question index out of range"})
	case errors.Is(err, models.ErrSessionNotActive):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "session is not in progress"})
	case errors.Is(err, models.ErrAlreadyAnswered):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "question already answered"})
	default:
		log.Printf("ERROR: [exam] %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: [exam] encoding response: %v", err)
	}
}
