package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinprep/backend/internal/models"
)

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	mockJSON := buildMockJSON(requestedType(userPrompt))
	return &LLMResponse{
		Content:      mockJSON,
		PromptTokens: 1500,
		OutputTokens: 1200,
	}, nil
}

// requestedType reads the QUESTION TYPE line out of the prompt so the
// mock answers in the format the caller asked for.
func requestedType(userPrompt string) models.QuestionType {
	for qt := range models.ValidQuestionTypes {
		if strings.Contains(userPrompt, fmt.Sprintf("QUESTION TYPE: %s", qt)) {
			return qt
		}
	}
	return models.QuestionMCQ
}

func buildMockJSON(questionType models.QuestionType) string {
	switch questionType {
	case models.QuestionSATA:
		return `{
	"question_type": "sata",
	"scenario": "[Mock] A 64-year-old male in the emergency department has a temperature of 101.8F, heart rate 118, and hypotension at 88/54. A urinary tract infection is suspected and sepsis is a concern.",
	"question": "Which interventions are appropriate for this client? SELECT ALL THAT APPLY.",
	"options": {"A": "Obtain blood cultures before antibiotics", "B": "Administer a 30 mL/kg crystalloid bolus", "C": "Restrict oral fluids", "D": "Start broad-spectrum antibiotics within one hour", "E": "Delay lactate measurement until afternoon labs"},
	"correct_answers": ["A", "B", "D"],
	"rationale": "[Mock] Sepsis bundle elements include cultures, fluids, and timely antibiotics.",
	"option_rationales": {"A": "Correct, cultures precede antibiotics.", "B": "Correct, hypotension warrants fluid resuscitation.", "C": "Incorrect, fluids are not restricted.", "D": "Correct, antibiotics are time-critical.", "E": "Incorrect, lactate is measured immediately."}
}`

	case models.QuestionMatrix:
		return `{
	"question_type": "matrix",
	"scenario": "[Mock] The nurse assesses a 58-year-old female admitted with pneumonia to the medical-surgical unit.",
	"question": "For each finding, indicate whether it is Expected, Unexpected, or Requires Immediate Attention.",
	"row_items": ["Heart rate 92 bpm", "Blood pressure 84/50 mmHg", "Temperature 100.9F", "Oxygen saturation 86% on room air"],
	"column_options": ["Expected", "Unexpected", "Requires Immediate Attention"],
	"correct_matrix": {"Heart rate 92 bpm": "Expected", "Blood pressure 84/50 mmHg": "Requires Immediate Attention", "Temperature 100.9F": "Expected", "Oxygen saturation 86% on room air": "Requires Immediate Attention"},
	"rationale": "[Mock] Hypotension and hypoxemia need immediate escalation; mild tachycardia and fever are expected with infection."
}`

	case models.QuestionCloze:
		return `{
	"question_type": "cloze",
	"scenario": "[Mock] A 35-year-old male presents to urgent care with a fever and productive cough.",
	"question_template": "The nurse observes [BLANK1]. This indicates [BLANK2]. The expected vital sign finding would be [BLANK3].",
	"blanks": {"BLANK1": ["crackles in the right lower lobe", "clear breath sounds", "wheezing in all fields"], "BLANK2": ["pneumonia", "asthma exacerbation", "pulmonary embolism"], "BLANK3": ["elevated temperature", "bradycardia", "hypertension"]},
	"correct_answers": {"BLANK1": "crackles in the right lower lobe", "BLANK2": "pneumonia", "BLANK3": "elevated temperature"},
	"rationale": "[Mock] Focal crackles with fever and cough point to pneumonia."
}`

	case models.QuestionHighlight:
		return `{
	"question_type": "highlight",
	"scenario": "[Mock] The nurse reviews the morning note for a 76-year-old female on the step-down unit.",
	"question": "Highlight the findings that require immediate nursing intervention.",
	"text_passage": "Nurse's Note: 0800 - Client alert and oriented x2, skin warm and flushed. BP 86/48, HR 122, RR 26, temp 102.4F, SpO2 91% on 2L. Urine output 15 mL over the past hour. Client reports new confusion per family.",
	"correct_highlights": ["BP 86/48", "Urine output 15 mL over the past hour", "new confusion"],
	"rationale": "[Mock] Hypotension, oliguria, and acute confusion signal progressing septic shock."
}`

	case models.QuestionBowtie:
		return `{
	"question_type": "bowtie",
	"scenario": "[Mock] An 81-year-old male in the ICU develops worsening hypoxemia on mechanical ventilation. Chest x-ray shows bilateral infiltrates; PaO2/FiO2 ratio is 140.",
	"condition": "Acute respiratory distress syndrome (ARDS)",
	"causes": ["Sepsis", "Aspiration", "Chronic stable angina", "Seasonal allergies", "Recent blood transfusion"],
	"correct_causes": ["Sepsis", "Aspiration"],
	"interventions": ["Low tidal volume ventilation (6 mL/kg PBW)", "Prone positioning", "Increase tidal volume to 12 mL/kg", "Discontinue PEEP", "Maintain plateau pressure below 30 cm H2O"],
	"correct_interventions": ["Low tidal volume ventilation (6 mL/kg PBW)", "Prone positioning"],
	"rationale": "[Mock] Lung-protective ventilation and prone positioning are the core ARDS interventions."
}`

	default:
		return `{
	"question_type": "mcq",
	"scenario": "[Mock] A 28-year-old female presents to the clinic with fever, chills, and a productive cough for three days.",
	"question": "Which assessment finding would the nurse expect?",
	"options": {"A": "Crackles over the affected lobe", "B": "Absent bowel sounds", "C": "Pitting edema of the lower extremities", "D": "Unilateral pupil dilation"},
	"correct_answer": "A",
	"rationale": "[Mock] Consolidation from pneumonia produces focal crackles.",
	"incorrect_rationales": {"B": "Gastrointestinal finding unrelated to pneumonia.", "C": "Suggests heart failure, not infection.", "D": "Neurologic finding unrelated to the presentation."}
}`
	}
}
