package recommend

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// GetWeakSkills handles GET /learners/{learnerID}/weak-skills.
func (h *Handler) GetWeakSkills(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.engine.GetWeakSkills(learnerID))
}

// GetWeakTopics handles GET /learners/{learnerID}/weak-topics.
func (h *Handler) GetWeakTopics(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.engine.GetWeakTopics(learnerID))
}

// GetStrongTopics handles GET /learners/{learnerID}/strong-topics.
func (h *Handler) GetStrongTopics(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.engine.GetStrongTopics(learnerID))
}

// GetRecommendedTopics handles GET /learners/{learnerID}/recommendations.
func (h *Handler) GetRecommendedTopics(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.engine.GetRecommendedTopics(learnerID))
}

// GetFocusedExam handles POST /learners/{learnerID}/focused-exam.
func (h *Handler) GetFocusedExam(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]

	numQuestions := 10
	if raw := r.URL.Query().Get("num_questions"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			numQuestions = v
		}
	}

	writeJSON(w, http.StatusOK, h.engine.GenerateFocusedExam(learnerID, numQuestions))
}

// GetMilestone handles GET /learners/{learnerID}/milestone.
func (h *Handler) GetMilestone(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.engine.GetNextMilestone(learnerID))
}

// GetComprehensive handles GET /learners/{learnerID}/recommendations/full.
func (h *Handler) GetComprehensive(w http.ResponseWriter, r *http.Request) {
	learnerID := mux.Vars(r)["learnerID"]
	writeJSON(w, http.StatusOK, h.engine.GetComprehensiveRecommendations(learnerID))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: [recommend] encoding response: %v", err)
	}
}
