package generator

import (
	"context"
	"testing"

	"github.com/clinprep/backend/internal/models"
)

func TestGenerateQuestion_MockRoundTrip(t *testing.T) {
	gen := NewGeneratorWithClient(NewMockClient(), "mock")

	for qt := range models.ValidQuestionTypes {
		t.Run(string(qt), func(t *testing.T) {
			content, resp, err := gen.GenerateQuestion(context.Background(), "sepsis", models.DifficultyIntermediate, qt)
			if err != nil {
				t.Fatalf("GenerateQuestion(%s) returned error: %v", qt, err)
			}
			if content.Type != qt {
				t.Errorf("content type = %q, want %q", content.Type, qt)
			}
			if err := content.Validate(); err != nil {
				t.Errorf("mock %s content failed validation: %v", qt, err)
			}
			if resp.PromptTokens == 0 || resp.OutputTokens == 0 {
				t.Error("mock response should report token usage")
			}
		})
	}
}

func TestGenerateQuestion_MockMatchesRequestedType(t *testing.T) {
	gen := NewGeneratorWithClient(NewMockClient(), "mock")

	content, _, err := gen.GenerateQuestion(context.Background(), "ARDS", models.DifficultyAdvanced, models.QuestionBowtie)
	if err != nil {
		t.Fatalf("GenerateQuestion returned error: %v", err)
	}
	if content.Bowtie == nil {
		t.Fatal("bowtie payload is nil")
	}
	if len(content.Bowtie.CorrectCauses) == 0 || len(content.Bowtie.CorrectInterventions) == 0 {
		t.Error("bowtie content missing correct causes or interventions")
	}
}

func TestModelName(t *testing.T) {
	gen := NewGeneratorWithClient(NewMockClient(), "mock")
	if gen.ModelName() != "mock" {
		t.Errorf("ModelName() = %q, want %q", gen.ModelName(), "mock")
	}
}
