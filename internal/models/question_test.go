package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func sataContent() QuestionContent {
	return QuestionContent{
		Type: QuestionSATA,
		SATA: &SATAContent{
			Scenario: "A client with suspected sepsis arrives in the emergency department.",
			Question: "Which interventions are appropriate? SELECT ALL THAT APPLY.",
			Options: map[string]string{
				"A": "Obtain blood cultures", "B": "Give a fluid bolus", "C": "Restrict fluids",
				"D": "Start antibiotics", "E": "Delay lactate",
			},
			CorrectAnswers: []string{"D", "A", "B"},
			Rationale:      "Bundle elements.",
		},
	}
}

func TestQuestionContentRoundTrip(t *testing.T) {
	data, err := json.Marshal(sataContent())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"question_type":"sata"`) {
		t.Errorf("marshaled content missing discriminator: %s", data)
	}

	var decoded QuestionContent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded.Type != QuestionSATA || decoded.SATA == nil {
		t.Fatalf("decoded type = %q, SATA nil = %v", decoded.Type, decoded.SATA == nil)
	}
	if len(decoded.SATA.Options) != 5 {
		t.Errorf("decoded options = %d, want 5", len(decoded.SATA.Options))
	}
}

func TestQuestionContentUnmarshal_UnknownType(t *testing.T) {
	var c QuestionContent
	if err := json.Unmarshal([]byte(`{"question_type":"essay"}`), &c); err == nil {
		t.Fatal("expected an error for an unknown question_type")
	}
}

func TestValidate(t *testing.T) {
	valid := sataContent()
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid content = %v", err)
	}

	tooFewAnswers := sataContent()
	tooFewAnswers.SATA.CorrectAnswers = []string{"A"}
	if err := tooFewAnswers.Validate(); err == nil || !strings.Contains(err.Error(), "correct_answers") {
		t.Errorf("Validate() with one correct answer = %v, want correct_answers error", err)
	}

	badKey := QuestionContent{
		Type: QuestionMCQ,
		MCQ: &MCQContent{
			Question:      "Which finding is expected?",
			Options:       map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"},
			CorrectAnswer: "E",
			Rationale:     "Because.",
		},
	}
	if err := badKey.Validate(); err == nil || !strings.Contains(err.Error(), "option key") {
		t.Errorf("Validate() with non-option answer = %v, want option key error", err)
	}

	mismatchedMatrix := QuestionContent{
		Type: QuestionMatrix,
		Matrix: &MatrixContent{
			Question:      "Classify each finding.",
			RowItems:      []string{"HR 120", "BP 88/50", "Temp 101F"},
			ColumnOptions: []string{"Expected", "Unexpected"},
			CorrectMatrix: map[string]string{"HR 120": "Expected"},
			Rationale:     "Because.",
		},
	}
	if err := mismatchedMatrix.Validate(); err == nil || !strings.Contains(err.Error(), "correct_matrix") {
		t.Errorf("Validate() with partial matrix = %v, want correct_matrix error", err)
	}

	missingPayload := QuestionContent{Type: QuestionBowtie}
	if err := missingPayload.Validate(); err == nil {
		t.Error("Validate() with nil payload should fail")
	}
}

func TestCorrectAnswerProjection(t *testing.T) {
	tests := []struct {
		name    string
		content QuestionContent
		want    string
	}{
		{"mcq passthrough", QuestionContent{Type: QuestionMCQ, MCQ: &MCQContent{CorrectAnswer: "B"}}, "B"},
		{"sata sorted", sataContent(), "A,B,D"},
		{
			"matrix sorted pairs",
			QuestionContent{Type: QuestionMatrix, Matrix: &MatrixContent{
				CorrectMatrix: map[string]string{"HR 120": "Unexpected", "BP 120/80": "Expected"},
			}},
			"BP 120/80=Expected;HR 120=Unexpected",
		},
		{
			"cloze sorted pairs",
			QuestionContent{Type: QuestionCloze, Cloze: &ClozeContent{
				CorrectAnswers: map[string]string{"BLANK2": "pneumonia", "BLANK1": "crackles"},
			}},
			"BLANK1=crackles;BLANK2=pneumonia",
		},
		{
			"highlight sorted",
			QuestionContent{Type: QuestionHighlight, Highlight: &HighlightContent{
				CorrectHighlights: []string{"new confusion", "BP 86/48"},
			}},
			"BP 86/48|new confusion",
		},
		{
			"bowtie causes then interventions",
			QuestionContent{Type: QuestionBowtie, Bowtie: &BowtieContent{
				CorrectCauses:        []string{"Sepsis", "Aspiration"},
				CorrectInterventions: []string{"Prone positioning", "Low tidal volume"},
			}},
			"Aspiration,Sepsis;Low tidal volume,Prone positioning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.content.CorrectAnswer(); got != tt.want {
				t.Errorf("CorrectAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectionsNilCase(t *testing.T) {
	// Type set but no payload attached must not panic.
	for _, qt := range []QuestionType{QuestionMCQ, QuestionSATA, QuestionMatrix, QuestionCloze, QuestionHighlight, QuestionBowtie} {
		c := QuestionContent{Type: qt}
		if got := c.CorrectAnswer(); got != "" {
			t.Errorf("%s CorrectAnswer() = %q, want empty", qt, got)
		}
		if got := c.Rationale(); got != "" {
			t.Errorf("%s Rationale() = %q, want empty", qt, got)
		}
		if got := c.Scenario(); got != "" {
			t.Errorf("%s Scenario() = %q, want empty", qt, got)
		}
		if got := c.Question(); got != "" {
			t.Errorf("%s Question() = %q, want empty", qt, got)
		}
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"beginner", DifficultyBeginner},
		{"EASY", DifficultyBeginner},
		{"level 1", DifficultyBeginner},
		{"medium", DifficultyIntermediate},
		{"", DifficultyIntermediate},
		{"something else", DifficultyIntermediate},
		{"hard", DifficultyAdvanced},
		{" expert ", DifficultyAdvanced},
	}

	for _, tt := range tests {
		if got := NormalizeDifficulty(tt.in); got != tt.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
	}{
		{"mcq", QuestionMCQ},
		{"", QuestionMCQ},
		{"select all that apply", QuestionSATA},
		{"grid", QuestionMatrix},
		{"drop-down", QuestionCloze},
		{"hot spot", QuestionHighlight},
		{"Clinical Judgment", QuestionBowtie},
	}

	for _, tt := range tests {
		if got := NormalizeQuestionType(tt.in); got != tt.want {
			t.Errorf("NormalizeQuestionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
