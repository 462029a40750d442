package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clinprep/backend/internal/models"
)

// ValidationError carries every problem found in a generated question so
// callers can log the full list instead of fixing one issue per retry.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseQuestionResponse decodes a model response into question content.
// The model occasionally wraps output in markdown fences or generates a
// different format than requested; both are rejected here rather than
// passed downstream.
func ParseQuestionResponse(content string, questionType models.QuestionType) (*models.QuestionContent, error) {
	cleaned := stripCodeFences(content)

	var question models.QuestionContent
	if err := json.Unmarshal([]byte(cleaned), &question); err != nil {
		return nil, fmt.Errorf("parsing question JSON: %w", err)
	}

	var problems []string
	if question.Type != questionType {
		problems = append(problems, fmt.Sprintf("requested %s but model produced %s", questionType, question.Type))
	}
	if err := question.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}

	return &question, nil
}

// stripCodeFences removes a leading ```json (or bare ```) fence and the
// trailing fence if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
