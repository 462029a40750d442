package models

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

type ExamMode string

const (
	ModePractice ExamMode = "practice"
	ModeTimed    ExamMode = "timed"
	ModeAdaptive ExamMode = "adaptive"
)

var ValidExamModes = map[ExamMode]bool{
	ModePractice: true,
	ModeTimed:    true,
	ModeAdaptive: true,
}

// ExamQuestion is one slot in a session's question list. Content carries
// the full generated payload; CorrectAnswer is the projected answer key
// the session manager scores against with an exact string match.
type ExamQuestion struct {
	QuestionID       string           `json:"question_id"`
	Topic            string           `json:"topic"`
	Difficulty       Difficulty       `json:"difficulty"`
	QuestionType     QuestionType     `json:"question_type"`
	SkillIDs         []string         `json:"skill_ids"`
	Content          *QuestionContent `json:"content,omitempty"`
	Rationale        string           `json:"rationale,omitempty"`
	UserAnswer       *string          `json:"user_answer,omitempty"`
	CorrectAnswer    string           `json:"correct_answer"`
	IsCorrect        *bool            `json:"is_correct,omitempty"`
	TimeSpentSeconds *int             `json:"time_spent_seconds,omitempty"`
	Timestamp        *time.Time       `json:"timestamp,omitempty"`
}

// Answered reports whether an answer has been recorded for this slot.
func (q *ExamQuestion) Answered() bool {
	return q.IsCorrect != nil
}

// ExamSession is the full persisted document for one exam, stored as a
// single JSON document and rewritten whole on every mutation.
type ExamSession struct {
	SessionID            string         `json:"session_id"`
	LearnerID            string         `json:"learner_id"`
	Mode                 ExamMode       `json:"mode"`
	TotalQuestions       int            `json:"total_questions"`
	TimeLimitMinutes     *int           `json:"time_limit_minutes,omitempty"`
	Questions            []ExamQuestion `json:"questions"`
	CurrentQuestionIndex int            `json:"current_question_index"`
	StartTime            time.Time      `json:"start_time"`
	EndTime              *time.Time     `json:"end_time,omitempty"`
	Score                *float64       `json:"score,omitempty"`
	Status               SessionStatus  `json:"status"`
}

type CreateSessionRequest struct {
	LearnerID        string   `json:"learner_id"`
	Mode             ExamMode `json:"mode"`
	TotalQuestions   int      `json:"total_questions"`
	TimeLimitMinutes *int     `json:"time_limit_minutes,omitempty"`
	FocusSkills      []string `json:"focus_skills,omitempty"`
	Topic            string   `json:"topic,omitempty"`
}

type AddQuestionRequest struct {
	QuestionID    string           `json:"question_id"`
	Topic         string           `json:"topic"`
	Difficulty    Difficulty       `json:"difficulty"`
	QuestionType  QuestionType     `json:"question_type"`
	SkillIDs      []string         `json:"skill_ids"`
	Content       *QuestionContent `json:"content,omitempty"`
	CorrectAnswer string           `json:"correct_answer"`
	Rationale     string           `json:"rationale,omitempty"`
}

type SubmitAnswerRequest struct {
	QuestionIndex    int    `json:"question_index"`
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// SubmitAnswerResult is the immediate feedback for one submitted answer.
type SubmitAnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Rationale     string `json:"rationale"`
}

type CompleteSessionResult struct {
	Score           float64 `json:"score"`
	Correct         int     `json:"correct"`
	Total           int     `json:"total"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// TallyBucket is a correct/total pair for one summary dimension.
type TallyBucket struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// SessionSummary breaks a session's results down by difficulty, skill,
// and topic. The difficulty map always carries all three tiers.
type SessionSummary struct {
	SessionID             string                 `json:"session_id"`
	Mode                  ExamMode               `json:"mode"`
	Score                 *float64               `json:"score,omitempty"`
	DifficultyPerformance map[string]TallyBucket `json:"difficulty_performance"`
	SkillPerformance      map[string]TallyBucket `json:"skill_performance"`
	TopicPerformance      map[string]TallyBucket `json:"topic_performance"`
}
