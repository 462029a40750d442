package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyBeginner:     true,
	DifficultyIntermediate: true,
	DifficultyAdvanced:     true,
}

type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionSATA      QuestionType = "sata"
	QuestionMatrix    QuestionType = "matrix"
	QuestionCloze     QuestionType = "cloze"
	QuestionHighlight QuestionType = "highlight"
	QuestionBowtie    QuestionType = "bowtie"
)

var ValidQuestionTypes = map[QuestionType]bool{
	QuestionMCQ:       true,
	QuestionSATA:      true,
	QuestionMatrix:    true,
	QuestionCloze:     true,
	QuestionHighlight: true,
	QuestionBowtie:    true,
}

// ── Question Content (tagged variant) ───────────────────
//
// Generated question payloads come in six shapes. Each shape is its own
// case with its own required fields; QuestionContent carries exactly one
// active case, tagged by Type. The wire format is flat JSON with a
// "question_type" discriminator.

type QuestionContent struct {
	Type      QuestionType
	MCQ       *MCQContent
	SATA      *SATAContent
	Matrix    *MatrixContent
	Cloze     *ClozeContent
	Highlight *HighlightContent
	Bowtie    *BowtieContent
}

// MCQContent is a standard single-answer multiple choice question.
type MCQContent struct {
	Scenario            string            `json:"scenario"`
	Question            string            `json:"question"`
	Options             map[string]string `json:"options"`
	CorrectAnswer       string            `json:"correct_answer"`
	Rationale           string            `json:"rationale"`
	IncorrectRationales map[string]string `json:"incorrect_rationales,omitempty"`
}

// SATAContent is a "select all that apply" multi-select question.
type SATAContent struct {
	Scenario         string            `json:"scenario"`
	Question         string            `json:"question"`
	Options          map[string]string `json:"options"`
	CorrectAnswers   []string          `json:"correct_answers"`
	Rationale        string            `json:"rationale"`
	OptionRationales map[string]string `json:"option_rationales,omitempty"`
}

// MatrixContent matches row items against column options.
type MatrixContent struct {
	Scenario      string            `json:"scenario"`
	Question      string            `json:"question"`
	RowItems      []string          `json:"row_items"`
	ColumnOptions []string          `json:"column_options"`
	CorrectMatrix map[string]string `json:"correct_matrix"`
	Rationale     string            `json:"rationale"`
}

// ClozeContent is a fill-in-the-blank template with dropdown options per blank.
type ClozeContent struct {
	Scenario         string              `json:"scenario"`
	QuestionTemplate string              `json:"question_template"`
	Blanks           map[string][]string `json:"blanks"`
	CorrectAnswers   map[string]string   `json:"correct_answers"`
	Rationale        string              `json:"rationale"`
}

// HighlightContent asks the learner to mark phrases in a passage.
type HighlightContent struct {
	Scenario          string   `json:"scenario"`
	Question          string   `json:"question"`
	TextPassage       string   `json:"text_passage"`
	CorrectHighlights []string `json:"correct_highlights"`
	Rationale         string   `json:"rationale"`
}

// BowtieContent pairs causes and interventions around a condition.
type BowtieContent struct {
	Scenario             string   `json:"scenario"`
	Condition            string   `json:"condition"`
	Causes               []string `json:"causes"`
	CorrectCauses        []string `json:"correct_causes"`
	Interventions        []string `json:"interventions"`
	CorrectInterventions []string `json:"correct_interventions"`
	Rationale            string   `json:"rationale"`
}

type contentProbe struct {
	Type QuestionType `json:"question_type"`
}

func (c *QuestionContent) UnmarshalJSON(data []byte) error {
	var probe contentProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("read question_type tag: %w", err)
	}

	c.Type = probe.Type
	switch probe.Type {
	case QuestionMCQ:
		c.MCQ = &MCQContent{}
		return json.Unmarshal(data, c.MCQ)
	case QuestionSATA:
		c.SATA = &SATAContent{}
		return json.Unmarshal(data, c.SATA)
	case QuestionMatrix:
		c.Matrix = &MatrixContent{}
		return json.Unmarshal(data, c.Matrix)
	case QuestionCloze:
		c.Cloze = &ClozeContent{}
		return json.Unmarshal(data, c.Cloze)
	case QuestionHighlight:
		c.Highlight = &HighlightContent{}
		return json.Unmarshal(data, c.Highlight)
	case QuestionBowtie:
		c.Bowtie = &BowtieContent{}
		return json.Unmarshal(data, c.Bowtie)
	default:
		return fmt.Errorf("unknown question_type %q", probe.Type)
	}
}

func (c QuestionContent) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch c.Type {
	case QuestionMCQ:
		payload = c.MCQ
	case QuestionSATA:
		payload = c.SATA
	case QuestionMatrix:
		payload = c.Matrix
	case QuestionCloze:
		payload = c.Cloze
	case QuestionHighlight:
		payload = c.Highlight
	case QuestionBowtie:
		payload = c.Bowtie
	default:
		return nil, fmt.Errorf("unknown question_type %q", c.Type)
	}
	if payload == nil || isNilPointer(payload) {
		return nil, fmt.Errorf("question content has type %q but no payload", c.Type)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	// Inject the discriminator into the flat payload.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	tag, _ := json.Marshal(c.Type)
	fields["question_type"] = tag
	return json.Marshal(fields)
}

func isNilPointer(v interface{}) bool {
	switch p := v.(type) {
	case *MCQContent:
		return p == nil
	case *SATAContent:
		return p == nil
	case *MatrixContent:
		return p == nil
	case *ClozeContent:
		return p == nil
	case *HighlightContent:
		return p == nil
	case *BowtieContent:
		return p == nil
	}
	return false
}

// Validate checks the active case's required fields in one exhaustive match.
func (c QuestionContent) Validate() error {
	var missing []string
	switch c.Type {
	case QuestionMCQ:
		if c.MCQ == nil {
			return fmt.Errorf("mcq content missing")
		}
		missing = missingFields(map[string]bool{
			"question":       c.MCQ.Question != "",
			"options":        len(c.MCQ.Options) >= 4,
			"correct_answer": c.MCQ.CorrectAnswer != "",
			"rationale":      c.MCQ.Rationale != "",
		})
		if c.MCQ.CorrectAnswer != "" {
			if _, ok := c.MCQ.Options[c.MCQ.CorrectAnswer]; !ok {
				missing = append(missing, "correct_answer must be an option key")
			}
		}
	case QuestionSATA:
		if c.SATA == nil {
			return fmt.Errorf("sata content missing")
		}
		missing = missingFields(map[string]bool{
			"question":        c.SATA.Question != "",
			"options":         len(c.SATA.Options) >= 5,
			"correct_answers": len(c.SATA.CorrectAnswers) >= 2,
			"rationale":       c.SATA.Rationale != "",
		})
	case QuestionMatrix:
		if c.Matrix == nil {
			return fmt.Errorf("matrix content missing")
		}
		missing = missingFields(map[string]bool{
			"question":       c.Matrix.Question != "",
			"row_items":      len(c.Matrix.RowItems) > 0,
			"column_options": len(c.Matrix.ColumnOptions) > 0,
			"correct_matrix": len(c.Matrix.RowItems) > 0 && len(c.Matrix.CorrectMatrix) == len(c.Matrix.RowItems),
			"rationale":      c.Matrix.Rationale != "",
		})
	case QuestionCloze:
		if c.Cloze == nil {
			return fmt.Errorf("cloze content missing")
		}
		missing = missingFields(map[string]bool{
			"question_template": c.Cloze.QuestionTemplate != "",
			"blanks":            len(c.Cloze.Blanks) > 0,
			"correct_answers":   len(c.Cloze.Blanks) > 0 && len(c.Cloze.CorrectAnswers) == len(c.Cloze.Blanks),
			"rationale":         c.Cloze.Rationale != "",
		})
	case QuestionHighlight:
		if c.Highlight == nil {
			return fmt.Errorf("highlight content missing")
		}
		missing = missingFields(map[string]bool{
			"question":           c.Highlight.Question != "",
			"text_passage":       c.Highlight.TextPassage != "",
			"correct_highlights": len(c.Highlight.CorrectHighlights) > 0,
			"rationale":          c.Highlight.Rationale != "",
		})
	case QuestionBowtie:
		if c.Bowtie == nil {
			return fmt.Errorf("bowtie content missing")
		}
		missing = missingFields(map[string]bool{
			"condition":             c.Bowtie.Condition != "",
			"causes":                len(c.Bowtie.Causes) > 0,
			"correct_causes":        len(c.Bowtie.CorrectCauses) > 0,
			"interventions":         len(c.Bowtie.Interventions) > 0,
			"correct_interventions": len(c.Bowtie.CorrectInterventions) > 0,
			"rationale":             c.Bowtie.Rationale != "",
		})
	default:
		return fmt.Errorf("unknown question_type %q", c.Type)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("invalid %s content: missing %s", c.Type, strings.Join(missing, ", "))
	}
	return nil
}

func missingFields(checks map[string]bool) []string {
	var missing []string
	for field, ok := range checks {
		if !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// caseMissing reports whether the active case's payload is unset. The
// projections below return empty strings for such content rather than
// dereferencing a nil case.
func (c QuestionContent) caseMissing() bool {
	switch c.Type {
	case QuestionMCQ:
		return c.MCQ == nil
	case QuestionSATA:
		return c.SATA == nil
	case QuestionMatrix:
		return c.Matrix == nil
	case QuestionCloze:
		return c.Cloze == nil
	case QuestionHighlight:
		return c.Highlight == nil
	case QuestionBowtie:
		return c.Bowtie == nil
	}
	return true
}

// CorrectAnswer projects the case's answer key to the single string the
// session manager scores against. Multi-part answers are joined in a
// deterministic order so exact-match scoring is stable.
func (c QuestionContent) CorrectAnswer() string {
	if c.caseMissing() {
		return ""
	}
	switch c.Type {
	case QuestionMCQ:
		return c.MCQ.CorrectAnswer
	case QuestionSATA:
		answers := append([]string(nil), c.SATA.CorrectAnswers...)
		sort.Strings(answers)
		return strings.Join(answers, ",")
	case QuestionMatrix:
		return joinSortedPairs(c.Matrix.CorrectMatrix)
	case QuestionCloze:
		return joinSortedPairs(c.Cloze.CorrectAnswers)
	case QuestionHighlight:
		highlights := append([]string(nil), c.Highlight.CorrectHighlights...)
		sort.Strings(highlights)
		return strings.Join(highlights, "|")
	case QuestionBowtie:
		causes := append([]string(nil), c.Bowtie.CorrectCauses...)
		sort.Strings(causes)
		interventions := append([]string(nil), c.Bowtie.CorrectInterventions...)
		sort.Strings(interventions)
		return strings.Join(causes, ",") + ";" + strings.Join(interventions, ",")
	}
	return ""
}

// Rationale returns the case's explanation text, empty if absent.
func (c QuestionContent) Rationale() string {
	if c.caseMissing() {
		return ""
	}
	switch c.Type {
	case QuestionMCQ:
		return c.MCQ.Rationale
	case QuestionSATA:
		return c.SATA.Rationale
	case QuestionMatrix:
		return c.Matrix.Rationale
	case QuestionCloze:
		return c.Cloze.Rationale
	case QuestionHighlight:
		return c.Highlight.Rationale
	case QuestionBowtie:
		return c.Bowtie.Rationale
	}
	return ""
}

// Scenario returns the clinical vignette shared by all cases.
func (c QuestionContent) Scenario() string {
	if c.caseMissing() {
		return ""
	}
	switch c.Type {
	case QuestionMCQ:
		return c.MCQ.Scenario
	case QuestionSATA:
		return c.SATA.Scenario
	case QuestionMatrix:
		return c.Matrix.Scenario
	case QuestionCloze:
		return c.Cloze.Scenario
	case QuestionHighlight:
		return c.Highlight.Scenario
	case QuestionBowtie:
		return c.Bowtie.Scenario
	}
	return ""
}

// Question returns the stem of the active case. Cloze questions use
// their template and bowtie questions their condition, since neither
// carries a conventional stem.
func (c QuestionContent) Question() string {
	if c.caseMissing() {
		return ""
	}
	switch c.Type {
	case QuestionMCQ:
		return c.MCQ.Question
	case QuestionSATA:
		return c.SATA.Question
	case QuestionMatrix:
		return c.Matrix.Question
	case QuestionCloze:
		return c.Cloze.QuestionTemplate
	case QuestionHighlight:
		return c.Highlight.Question
	case QuestionBowtie:
		return c.Bowtie.Condition
	}
	return ""
}

// NormalizeDifficulty folds the many aliases callers send into one of
// the three canonical tiers. Unrecognized input maps to intermediate.
func NormalizeDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "beginner", "easy", "simple", "basic", "novice", "entry", "level1", "level 1", "l1", "1":
		return DifficultyBeginner
	case "advanced", "hard", "difficult", "tough", "expert", "complex", "challenging", "level3", "level 3", "l3", "3":
		return DifficultyAdvanced
	default:
		return DifficultyIntermediate
	}
}

// NormalizeQuestionType folds question type aliases into a canonical
// type. Unrecognized input maps to mcq.
func NormalizeQuestionType(raw string) QuestionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sata", "select all", "select-all", "select all that apply", "multiple select":
		return QuestionSATA
	case "matrix", "grid", "table", "matrix multiple choice":
		return QuestionMatrix
	case "cloze", "dropdown", "drop-down", "fill in", "fill-in", "drop down cloze":
		return QuestionCloze
	case "highlight", "hotspot", "hot spot", "highlight text":
		return QuestionHighlight
	case "bowtie", "bow tie", "bow-tie", "clinical judgment":
		return QuestionBowtie
	default:
		return QuestionMCQ
	}
}

func joinSortedPairs(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, ";")
}
