package questions

import (
	"context"
	"strings"
	"testing"

	"github.com/clinprep/backend/internal/exam"
	"github.com/clinprep/backend/internal/generator"
	"github.com/clinprep/backend/internal/models"
	"github.com/clinprep/backend/internal/ontology"
)

type memSessionStore struct{}

func (s *memSessionStore) LoadAll() (map[string]*models.ExamSession, error) {
	return map[string]*models.ExamSession{}, nil
}

func (s *memSessionStore) Save(*models.ExamSession) error { return nil }

type noopProfiles struct{}

func (p *noopProfiles) RecordAttempt(string, models.QuestionAttempt) error   { return nil }
func (p *noopProfiles) RecordExamCompletion(string, models.ExamRecord) error { return nil }

func newTestService(t *testing.T) (*Service, *exam.Manager) {
	t.Helper()

	exams, err := exam.NewManager(&memSessionStore{}, &noopProfiles{})
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	gen := generator.NewGeneratorWithClient(generator.NewMockClient(), "mock")
	tagger := ontology.NewTagger(ontology.New())
	return NewService(gen, tagger, exams), exams
}

func TestGenerate(t *testing.T) {
	svc, _ := newTestService(t)

	q, err := svc.Generate(context.Background(), GenerateRequest{
		Topic:        "sepsis",
		Difficulty:   "easy",
		QuestionType: "select all",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if q.Difficulty != models.DifficultyBeginner {
		t.Errorf("difficulty = %q, want %q (normalized from easy)", q.Difficulty, models.DifficultyBeginner)
	}
	if q.QuestionType != models.QuestionSATA {
		t.Errorf("question type = %q, want %q (normalized from select all)", q.QuestionType, models.QuestionSATA)
	}
	if !strings.HasPrefix(q.QuestionID, "q_") {
		t.Errorf("question id %q missing q_ prefix", q.QuestionID)
	}
	if q.Content == nil || q.Content.Type != models.QuestionSATA {
		t.Error("content missing or wrong type")
	}
	if len(q.SkillTags) == 0 {
		t.Error("sepsis question should carry at least one skill tag")
	}
}

func TestGenerate_RequiresTopic(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Generate(context.Background(), GenerateRequest{}); err == nil {
		t.Fatal("expected an error for missing topic")
	}
}

func TestGenerateForSession_AppendsQuestion(t *testing.T) {
	svc, exams := newTestService(t)

	sess, err := exams.CreateSession(models.CreateSessionRequest{
		LearnerID:      "learner-1",
		Mode:           models.ModePractice,
		TotalQuestions: 5,
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	q, err := svc.GenerateForSession(context.Background(), sess.SessionID, GenerateRequest{Topic: "sepsis"})
	if err != nil {
		t.Fatalf("GenerateForSession returned error: %v", err)
	}

	got, err := exams.GetSession(sess.SessionID)
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("session has %d questions, want 1", len(got.Questions))
	}
	if got.Questions[0].QuestionID != q.QuestionID {
		t.Errorf("appended question id = %q, want %q", got.Questions[0].QuestionID, q.QuestionID)
	}
	if got.Questions[0].CorrectAnswer == "" {
		t.Error("appended question missing correct answer projection")
	}
}

func TestGenerateForSession_AdaptiveDefaultsToIntermediate(t *testing.T) {
	svc, exams := newTestService(t)

	sess, err := exams.CreateSession(models.CreateSessionRequest{
		LearnerID:      "learner-1",
		Mode:           models.ModeAdaptive,
		TotalQuestions: 5,
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	q, err := svc.GenerateForSession(context.Background(), sess.SessionID, GenerateRequest{Topic: "pneumonia"})
	if err != nil {
		t.Fatalf("GenerateForSession returned error: %v", err)
	}
	if q.Difficulty != models.DifficultyIntermediate {
		t.Errorf("fresh adaptive session difficulty = %q, want intermediate", q.Difficulty)
	}
}

func TestGenerateForSession_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GenerateForSession(context.Background(), "exam_missing", GenerateRequest{Topic: "sepsis"})
	if err == nil {
		t.Fatal("expected an error for an unknown session")
	}
}
