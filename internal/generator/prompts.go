package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/clinprep/backend/internal/models"
)

// SystemPrompt frames the model as an NGN item writer.
func SystemPrompt() string {
	return `You are an expert NCLEX-NGN question writer for nursing education. You write clinically accurate exam questions with realistic patient scenarios. You always respond with a single JSON object and nothing else: no markdown, no commentary, no code fences.`
}

// patientVariables are the randomized scenario inputs injected into each
// prompt so repeated generations do not converge on the same patient.
type patientVariables struct {
	Age             int
	Gender          string
	Location        string
	InfectionSource string
	Comorbidities   []string
	Medications     []string
}

var (
	beginnerLocations = []string{
		"emergency department", "urgent care clinic", "medical-surgical unit", "outpatient clinic",
	}
	intermediateLocations = []string{
		"emergency department", "medical-surgical unit", "step-down unit", "telemetry unit", "long-term care facility",
	}
	advancedLocations = []string{
		"intensive care unit (ICU)", "emergency department", "step-down unit", "post-anesthesia care unit (PACU)", "cardiac care unit (CCU)",
	}

	intermediateInfectionSources = []string{"community-acquired", "healthcare-associated"}
	advancedInfectionSources     = []string{"community-acquired", "healthcare-associated", "hospital-acquired", "ventilator-associated"}

	intermediateComorbidities = []string{
		"Type 2 Diabetes Mellitus", "COPD", "Chronic Kidney Disease (Stage 3)",
		"Asthma", "Hypothyroidism", "Obesity (BMI 34)", "Osteoarthritis",
	}
	advancedComorbidities = []string{
		"Chronic Heart Failure (EF 35%)", "Chronic Kidney Disease (Stage 4)",
		"Type 2 Diabetes Mellitus", "Atrial Fibrillation", "Cirrhosis (Child-Pugh B)",
		"COPD (on home oxygen)", "End-Stage Renal Disease (on dialysis)",
		"Systemic Lupus Erythematosus", "Rheumatoid Arthritis (on immunosuppressants)",
		"Recent hip replacement (POD 3)", "History of DVT/PE (on anticoagulation)",
	}

	intermediateMedications = []string{
		"metformin 1000mg BID", "lisinopril 10mg daily", "amlodipine 5mg daily",
		"atorvastatin 40mg daily", "levothyroxine 75mcg daily", "omeprazole 20mg daily",
	}
	advancedMedications = []string{
		"warfarin 5mg daily (INR 2.8)", "metformin 1000mg BID", "lisinopril 20mg daily",
		"digoxin 0.125mg daily", "furosemide 40mg BID", "metoprolol 50mg BID",
		"apixaban 5mg BID", "prednisone 10mg daily", "tacrolimus 2mg BID",
		"insulin glargine 30 units at bedtime", "carvedilol 25mg BID",
	}
)

// randomPatientVariables draws scenario inputs scaled to the difficulty:
// beginners get young uncomplicated patients, advanced gets elderly
// patients with stacked comorbidities and active medication lists.
func randomPatientVariables(difficulty models.Difficulty) patientVariables {
	v := patientVariables{
		Gender: []string{"male", "female"}[rand.Intn(2)],
	}

	switch difficulty {
	case models.DifficultyBeginner:
		v.Age = 22 + rand.Intn(19)
		v.Location = pick(beginnerLocations)
		v.InfectionSource = "community-acquired"
	case models.DifficultyAdvanced:
		v.Age = 72 + rand.Intn(21)
		v.Location = pick(advancedLocations)
		v.InfectionSource = pick(advancedInfectionSources)
		v.Comorbidities = sample(advancedComorbidities, 2+rand.Intn(2))
		v.Medications = sample(advancedMedications, 2+rand.Intn(3))
	default:
		v.Age = 50 + rand.Intn(21)
		v.Location = pick(intermediateLocations)
		v.InfectionSource = pick(intermediateInfectionSources)
		v.Comorbidities = sample(intermediateComorbidities, 1)
		v.Medications = sample(intermediateMedications, 1+rand.Intn(2))
	}
	return v
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

func sample(pool []string, n int) []string {
	idx := rand.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// BuildQuestionPrompt assembles the full user prompt: randomized patient
// variables, difficulty constraints, and the format contract for the
// requested question type.
func BuildQuestionPrompt(topic string, difficulty models.Difficulty, questionType models.QuestionType) string {
	v := randomPatientVariables(difficulty)
	constraints := difficultyConstraints(topic, difficulty, v)
	format := formatInstructions(questionType)

	upperType := strings.ToUpper(string(questionType))
	return fmt.Sprintf(`Generate ONE nursing examination question.

TOPIC: %s
DIFFICULTY: %s
QUESTION TYPE: %s

CRITICAL INSTRUCTION: You MUST generate a %s format question, NOT any other format.

%s

%s

CRITICAL RULES:
1. MUST use the exact patient variables provided (age, gender, location, comorbidities, medications).
2. MUST follow the %s format EXACTLY as specified above.
3. MUST match the %s level requirements.
4. All clinical content MUST be accurate.
5. DO NOT generate MCQ format if %s was requested.

Generate the JSON now:`,
		topic, difficulty, questionType, upperType, constraints, format, upperType, difficulty, upperType)
}

func difficultyConstraints(topic string, difficulty models.Difficulty, v patientVariables) string {
	switch difficulty {
	case models.DifficultyBeginner:
		return fmt.Sprintf(`=== BEGINNER LEVEL CONSTRAINTS ===

PATIENT VARIABLES:
- Patient Age: %d years old (USE THIS EXACT AGE)
- Patient Gender: %s (USE THIS EXACT GENDER)
- Clinical Setting: %s
- Infection Type: %s

SCENARIO CONSTRAINTS:
- MUST use the exact age (%d) and gender (%s) provided above.
- MUST set the scenario in: %s
- MUST NOT include ANY comorbidities. Patient has ONLY %s.
- MUST be textbook/classic presentation with obvious symptoms.
- MUST have only ONE clearly abnormal vital sign.
- MUST be 2-3 sentences only.
- MUST NOT include any lab values.

QUESTION CONSTRAINTS:
- Ask about EXPECTED FINDINGS or INITIAL ASSESSMENT.
- Correct answers MUST be obviously correct to a nursing student.
- Distractors MUST be clearly wrong (related to different conditions).`,
			v.Age, v.Gender, v.Location, v.InfectionSource, v.Age, v.Gender, v.Location, topic)

	case models.DifficultyAdvanced:
		comorbidities := listOrNone(v.Comorbidities)
		medications := listOrNone(v.Medications)
		return fmt.Sprintf(`=== ADVANCED LEVEL CONSTRAINTS ===

PATIENT VARIABLES:
- Patient Age: %d years old (USE THIS EXACT AGE)
- Patient Gender: %s (USE THIS EXACT GENDER)
- Clinical Setting: %s
- Infection Type: %s
- Comorbidities: %s
- Home Medications: %s

SCENARIO CONSTRAINTS:
- MUST use the exact age (%d) and gender (%s) provided above.
- MUST set the scenario in: %s
- MUST integrate ALL these comorbidities: %s
- MUST integrate ALL these medications and make them relevant: %s
- MUST include 3-4 specific lab values with numbers.
- MUST show evolving or deteriorating condition.
- MUST be 6-8 sentences with comprehensive clinical picture.
- MUST create a clinical dilemma where medication/comorbidity complicates treatment.

QUESTION CONSTRAINTS:
- Ask about NEXT action based on guidelines, OR lab/medication interaction, OR MOST CONCERNING finding.
- MUST NOT ask simple "first intervention" questions.
- All options MUST be clinically valid interventions.
- Correct answer MUST require synthesis of labs + meds + comorbidities.`,
			v.Age, v.Gender, v.Location, v.InfectionSource, comorbidities, medications,
			v.Age, v.Gender, v.Location, comorbidities, medications)

	default:
		comorbidities := listOrNone(v.Comorbidities)
		medications := listOrNone(v.Medications)
		return fmt.Sprintf(`=== INTERMEDIATE LEVEL CONSTRAINTS ===

PATIENT VARIABLES:
- Patient Age: %d years old (USE THIS EXACT AGE)
- Patient Gender: %s (USE THIS EXACT GENDER)
- Clinical Setting: %s
- Infection Type: %s
- Comorbidities: %s
- Home Medications: %s

SCENARIO CONSTRAINTS:
- MUST use the exact age (%d) and gender (%s) provided above.
- MUST set the scenario in: %s
- MUST integrate these comorbidities into the patient history: %s
- MUST integrate these home medications into the patient's chart: %s
- MUST have 2-3 abnormal vital signs that compete for attention.
- MUST be 4-5 sentences with vitals and brief history.
- MUST NOT include detailed lab values.

QUESTION CONSTRAINTS:
- Ask about PRIORITY intervention or BEST action.
- All options MUST be legitimate nursing interventions.
- Correct answer MUST require clinical reasoning.
- Consider how the comorbidity affects the decision.`,
			v.Age, v.Gender, v.Location, v.InfectionSource, comorbidities, medications,
			v.Age, v.Gender, v.Location, comorbidities, medications)
	}
}

func formatInstructions(questionType models.QuestionType) string {
	switch questionType {
	case models.QuestionSATA:
		return `=== SELECT ALL THAT APPLY (SATA) FORMAT ===
Multiple correct answers possible. Student must select ALL correct options.
MUST have 5-6 options with 2-4 correct answers.

OUTPUT JSON:
{
    "scenario": "Clinical scenario",
    "question": "Which of the following interventions are appropriate? SELECT ALL THAT APPLY.",
    "options": {"A": "...", "B": "...", "C": "...", "D": "...", "E": "...", "F": "... (optional)"},
    "correct_answers": ["A", "C", "E"],
    "rationale": "Overall rationale explaining the correct combination",
    "option_rationales": {"A": "Why A is correct/incorrect", "B": "...", "C": "...", "D": "...", "E": "..."},
    "question_type": "sata"
}`

	case models.QuestionMatrix:
		return `=== MATRIX / GRID FORMAT ===
Table format where student matches row items to column categories.
Creates a grid with 4-5 row items and 2-3 column options.

OUTPUT JSON:
{
    "scenario": "Clinical scenario",
    "question": "For each assessment finding, indicate whether it is Expected, Unexpected, or Requires Immediate Attention.",
    "row_items": ["Heart rate 88 bpm", "Blood pressure 88/52 mmHg", "Temperature 101.5F", "Oxygen saturation 98%", "Respiratory rate 28"],
    "column_options": ["Expected", "Unexpected", "Requires Immediate Attention"],
    "correct_matrix": {"Heart rate 88 bpm": "Expected", "Blood pressure 88/52 mmHg": "Requires Immediate Attention", "Temperature 101.5F": "Unexpected", "Oxygen saturation 98%": "Expected", "Respiratory rate 28": "Unexpected"},
    "rationale": "Explanation of each classification",
    "question_type": "matrix"
}`

	case models.QuestionCloze:
		return `=== CLOZE / DROP-DOWN FORMAT ===
Fill-in-the-blank format with dropdown selections.
MUST contain 3-5 blanks within a clinical statement.
Each blank MUST have 3-4 DIFFERENT choices that are clinically plausible.

USE DIFFERENT TEMPLATES FOR EACH DIFFICULTY LEVEL:
- BEGINNER, symptom recognition: "The nurse observes [BLANK1]. This indicates [BLANK2]. The expected vital sign finding would be [BLANK3]."
- INTERMEDIATE, priority/action: "Given the patient's [BLANK1], the nurse prioritizes [BLANK2]. The medication [BLANK3] should be [BLANK4] because of [BLANK5]."
- ADVANCED, lab/medication synthesis: "The [BLANK1] combined with the patient's [BLANK2] suggests a risk for [BLANK3]. The nurse should [BLANK4] and monitor for [BLANK5]."

OUTPUT JSON:
{
    "scenario": "Clinical scenario appropriate for difficulty level",
    "question_template": "Template string with [BLANK1], [BLANK2], etc.",
    "blanks": {"BLANK1": ["option 1", "option 2", "option 3"], "BLANK2": ["option 1", "option 2", "option 3"], "BLANK3": ["option 1", "option 2", "option 3"]},
    "correct_answers": {"BLANK1": "correct option", "BLANK2": "correct option", "BLANK3": "correct option"},
    "rationale": "Explanation of correct selections",
    "question_type": "cloze"
}`

	case models.QuestionHighlight:
		return `=== HIGHLIGHT / HOT SPOT FORMAT ===
Student must identify specific information within a text passage.
Provide a clinical note/passage with key findings to highlight.

OUTPUT JSON:
{
    "scenario": "Context for why the nurse is reviewing this information",
    "question": "Highlight the assessment findings that require immediate nursing intervention.",
    "text_passage": "Nurse's Note: 0800 - full clinical note with vital signs and findings embedded",
    "correct_highlights": ["finding 1", "finding 2", "finding 3"],
    "rationale": "Why these findings require immediate intervention",
    "question_type": "highlight"
}`

	case models.QuestionBowtie:
		return `=== BOWTIE / CLINICAL JUDGMENT FORMAT ===
Tests clinical reasoning: causes, condition, interventions.
Student identifies what LED to the condition and what to DO about it.

OUTPUT JSON:
{
    "scenario": "Detailed clinical scenario with assessment findings, labs, and history",
    "condition": "The primary condition/problem (center of bowtie)",
    "causes": ["cause 1", "cause 2", "cause 3", "cause 4 (distractor)", "cause 5 (distractor)"],
    "correct_causes": ["cause 1", "cause 3"],
    "interventions": ["intervention 1", "intervention 2", "intervention 3", "intervention 4 (distractor)", "intervention 5 (distractor)"],
    "correct_interventions": ["intervention 1", "intervention 2"],
    "rationale": "Explanation connecting causes to condition to interventions",
    "question_type": "bowtie"
}`

	default:
		return `=== MCQ FORMAT ===
Standard multiple-choice with ONE correct answer.

OUTPUT JSON:
{
    "scenario": "Clinical scenario",
    "question": "Question stem",
    "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
    "correct_answer": "A, B, C, or D",
    "rationale": "Why correct",
    "incorrect_rationales": {"A": "...", "B": "...", "C": "...", "D": "..."},
    "question_type": "mcq"
}`
	}
}
