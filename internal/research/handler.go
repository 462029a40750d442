package research

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/clinprep/backend/internal/models"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// GetCitations handles GET /research/citations?topic=sepsis&max=3.
func (h *Handler) GetCitations(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic is required"})
		return
	}

	maxCitations := 3
	if raw := r.URL.Query().Get("max"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxCitations = n
		}
	}

	citations, err := h.client.GetRelevantCitations(r.Context(), topic, maxCitations)
	if err != nil {
		log.Printf("ERROR: [research] citations for %q: %v", topic, err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "literature search failed"})
		return
	}
	if citations == nil {
		citations = []Article{}
	}
	writeJSON(w, http.StatusOK, citations)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: [research] encoding response: %v", err)
	}
}
