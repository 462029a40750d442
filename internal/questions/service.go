// Package questions orchestrates question generation: it asks the LLM
// for a question, auto-tags it with ontology skills, and appends it to
// an exam session.
package questions

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/clinprep/backend/internal/exam"
	"github.com/clinprep/backend/internal/generator"
	"github.com/clinprep/backend/internal/models"
	"github.com/clinprep/backend/internal/ontology"
)

// GenerateRequest asks for one question. Difficulty and question type
// accept the aliases callers commonly send ("easy", "select all", ...)
// and are normalized before use.
type GenerateRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
}

// GeneratedQuestion is a generated, tagged question ready to serve.
type GeneratedQuestion struct {
	QuestionID   string                        `json:"question_id"`
	Topic        string                        `json:"topic"`
	Difficulty   models.Difficulty             `json:"difficulty"`
	QuestionType models.QuestionType           `json:"question_type"`
	Content      *models.QuestionContent       `json:"content"`
	SkillTags    []ontology.SkillTag           `json:"skill_tags"`
	Competencies []ontology.CompetencyCoverage `json:"competencies,omitempty"`
	GeneratedAt  time.Time                     `json:"generated_at"`
}

type Service struct {
	generator *generator.Generator
	tagger    *ontology.Tagger
	exams     *exam.Manager
}

func NewService(gen *generator.Generator, tagger *ontology.Tagger, exams *exam.Manager) *Service {
	return &Service{generator: gen, tagger: tagger, exams: exams}
}

// Generate produces one tagged question outside any session.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GeneratedQuestion, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	difficulty := models.NormalizeDifficulty(req.Difficulty)
	questionType := models.NormalizeQuestionType(req.QuestionType)

	content, usage, err := s.generator.GenerateQuestion(ctx, req.Topic, difficulty, questionType)
	if err != nil {
		return nil, err
	}
	if usage != nil {
		log.Printf("Generated %s question on %q (%d prompt / %d output tokens)",
			questionType, req.Topic, usage.PromptTokens, usage.OutputTokens)
	}

	tags := s.tagger.TagQuestion(ontology.TaggableQuestion{
		Topic:    req.Topic,
		Scenario: content.Scenario(),
		Question: content.Question(),
	})

	return &GeneratedQuestion{
		QuestionID:   "q_" + uuid.NewString(),
		Topic:        req.Topic,
		Difficulty:   difficulty,
		QuestionType: questionType,
		Content:      content,
		SkillTags:    tags,
		Competencies: s.tagger.CompetenciesFromSkills(tagSkillIDs(tags)),
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// GenerateForSession produces one tagged question and appends it to the
// session. Adaptive sessions that do not pin a difficulty get the next
// difficulty derived from recent answers.
func (s *Service) GenerateForSession(ctx context.Context, sessionID string, req GenerateRequest) (*GeneratedQuestion, error) {
	sess, err := s.exams.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if req.Difficulty == "" && sess.Mode == models.ModeAdaptive {
		req.Difficulty = string(s.exams.GetAdaptiveNextDifficulty(sessionID))
	}

	q, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	addReq := models.AddQuestionRequest{
		QuestionID:    q.QuestionID,
		Topic:         q.Topic,
		Difficulty:    q.Difficulty,
		QuestionType:  q.QuestionType,
		SkillIDs:      tagSkillIDs(q.SkillTags),
		Content:       q.Content,
		CorrectAnswer: q.Content.CorrectAnswer(),
		Rationale:     q.Content.Rationale(),
	}
	if err := s.exams.AddQuestion(sessionID, addReq); err != nil {
		return nil, err
	}
	return q, nil
}

func tagSkillIDs(tags []ontology.SkillTag) []string {
	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.SkillID)
	}
	return ids
}
