package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/clinprep/backend/internal/models"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// CreateProfile handles POST /learners.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.LearnerID == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "learner_id and name are required"})
		return
	}

	p, err := h.manager.CreateProfile(req.LearnerID, req.Name, req.Role)
	if err != nil {
		log.Printf("ERROR: [profile] create profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create profile"})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetProfile handles GET /learners/{learnerID}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]

	p, err := h.manager.GetProfile(learnerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
			return
		}
		log.Printf("ERROR: [profile] get profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load profile"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RecordAttempt handles POST /learners/{learnerID}/attempts.
func (h *Handler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]

	var req models.RecordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id is required"})
		return
	}

	attempt := models.QuestionAttempt{
		QuestionID:       req.QuestionID,
		SkillIDs:         req.SkillIDs,
		Topic:            req.Topic,
		Difficulty:       req.Difficulty,
		QuestionType:     req.QuestionType,
		Correct:          req.Correct,
		TimeSpentSeconds: req.TimeSpentSeconds,
		ExamSessionID:    req.ExamSessionID,
	}

	if err := h.manager.RecordAttempt(learnerID, attempt); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
			return
		}
		log.Printf("ERROR: [profile] record attempt: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record attempt"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// GetSkillGaps handles GET /learners/{learnerID}/skill-gaps.
func (h *Handler) GetSkillGaps(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.manager.GetSkillGaps(learnerID))
}

// GetStrengths handles GET /learners/{learnerID}/strengths.
func (h *Handler) GetStrengths(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.manager.GetStrengths(learnerID))
}

// GetTopicStrengths handles GET /learners/{learnerID}/topic-strengths.
func (h *Handler) GetTopicStrengths(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.manager.GetTopicStrengths(learnerID))
}

// GetTopicWeaknesses handles GET /learners/{learnerID}/topic-weaknesses.
func (h *Handler) GetTopicWeaknesses(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.manager.GetTopicWeaknesses(learnerID))
}

// GetExamHistory handles GET /learners/{learnerID}/exams.
func (h *Handler) GetExamHistory(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	limit := intQueryParam(r, "limit", 10)
	writeJSON(w, http.StatusOK, h.manager.GetExamHistory(learnerID, limit))
}

// GetRadarChart handles GET /learners/{learnerID}/radar?skill_ids=a,b.
func (h *Handler) GetRadarChart(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]

	var skillIDs []string
	if raw := r.URL.Query().Get("skill_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				skillIDs = append(skillIDs, id)
			}
		}
	}
	if len(skillIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "skill_ids is required"})
		return
	}

	writeJSON(w, http.StatusOK, h.manager.GetRadarChartData(learnerID, skillIDs))
}

// GetPerformance handles GET /learners/{learnerID}/performance.
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]

	summary, err := h.manager.GetAllPerformanceData(learnerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
			return
		}
		log.Printf("ERROR: [profile] get performance: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load performance data"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: [profile] encoding response: %v", err)
	}
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
