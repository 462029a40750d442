package ontology

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clinprep/backend/internal/models"
)

type Handler struct {
	ontology *Ontology
}

func NewHandler(o *Ontology) *Handler {
	return &Handler{ontology: o}
}

// GetSkills handles GET /skills with optional category and role filters.
func (h *Handler) GetSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var skills []Skill
	switch {
	case query.Get("category") != "":
		skills = h.ontology.SkillsByCategory(SkillCategory(query.Get("category")))
	case query.Get("role") != "":
		skills = h.ontology.SkillsByRole(ClinicalRole(query.Get("role")))
	default:
		skills = h.ontology.AllSkills()
	}
	if skills == nil {
		skills = []Skill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

// GetSkill handles GET /skills/{skillID}.
func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	skillID := mux.Vars(r)["skillID"]

	skill, ok := h.ontology.GetSkill(skillID)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "skill not found"})
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

// GetSkillTree handles GET /skills/tree.
func (h *Handler) GetSkillTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ontology.SkillTree())
}

// GetCompetencies handles GET /competencies.
func (h *Handler) GetCompetencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ontology.AllCompetencies())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: [ontology] encoding response: %v", err)
	}
}
