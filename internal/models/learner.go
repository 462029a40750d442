package models

import "time"

type ProficiencyLevel string

const (
	ProficiencyNovice       ProficiencyLevel = "novice"
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// QuestionAttempt is one answered question in a learner's history.
type QuestionAttempt struct {
	QuestionID       string    `json:"question_id"`
	SkillIDs         []string  `json:"skill_ids"`
	Topic            string    `json:"topic"`
	Difficulty       string    `json:"difficulty"`
	QuestionType     string    `json:"question_type"`
	Correct          bool      `json:"correct"`
	Timestamp        time.Time `json:"timestamp"`
	TimeSpentSeconds *int      `json:"time_spent_seconds,omitempty"`
	ExamSessionID    string    `json:"exam_session_id,omitempty"`
}

// SkillPerformance is the running aggregate for one skill.
type SkillPerformance struct {
	SkillID          string           `json:"skill_id"`
	TotalAttempts    int              `json:"total_attempts"`
	CorrectAttempts  int              `json:"correct_attempts"`
	Accuracy         float64          `json:"accuracy"`
	LastAttempted    time.Time        `json:"last_attempted"`
	ProficiencyLevel ProficiencyLevel `json:"proficiency_level"`
}

// TopicPerformance is the running aggregate for one normalized topic.
type TopicPerformance struct {
	Topic           string    `json:"topic"`
	TotalAttempts   int       `json:"total_attempts"`
	CorrectAttempts int       `json:"correct_attempts"`
	Accuracy        float64   `json:"accuracy"`
	LastAttempted   time.Time `json:"last_attempted"`
}

// ExamRecord summarizes one completed exam in the learner's history.
type ExamRecord struct {
	ExamID          string    `json:"exam_id"`
	Mode            string    `json:"mode"`
	TotalQuestions  int       `json:"total_questions"`
	CorrectAnswers  int       `json:"correct_answers"`
	Score           float64   `json:"score"`
	DurationMinutes float64   `json:"duration_minutes"`
	CompletedAt     time.Time `json:"completed_at"`
	TopicsTested    []string  `json:"topics_tested"`
	SkillsTested    []string  `json:"skills_tested"`
}

// LearnerProfile is the full persisted document for one learner. It is
// stored as a single JSON document and rewritten whole on every mutation.
type LearnerProfile struct {
	LearnerID        string                       `json:"learner_id"`
	Name             string                       `json:"name"`
	Role             string                       `json:"role"`
	Attempts         []QuestionAttempt            `json:"attempts"`
	SkillPerformance map[string]*SkillPerformance `json:"skill_performance"`
	TopicPerformance map[string]*TopicPerformance `json:"topic_performance"`
	ExamHistory      []ExamRecord                 `json:"exam_history"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// SkillGap is a skill somebody practiced but has not mastered.
type SkillGap struct {
	SkillID     string           `json:"skill_id"`
	Accuracy    float64          `json:"accuracy"`
	Attempts    int              `json:"attempts"`
	Proficiency ProficiencyLevel `json:"proficiency"`
}

// SkillStrength is a skill with accuracy at or above the strength threshold.
type SkillStrength struct {
	SkillID     string           `json:"skill_id"`
	Accuracy    float64          `json:"accuracy"`
	Attempts    int              `json:"attempts"`
	Proficiency ProficiencyLevel `json:"proficiency"`
}

// TopicStanding ranks one topic by accuracy, for both the strength and
// weakness lists. Topic carries the title-cased display form.
type TopicStanding struct {
	Topic    string  `json:"topic"`
	Accuracy float64 `json:"accuracy"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
}

// RadarChartData holds parallel label/value slices for a proficiency radar.
type RadarChartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// PerformanceSummary is the dashboard view of a whole profile.
type PerformanceSummary struct {
	TotalQuestions   int                          `json:"total_questions"`
	CorrectQuestions int                          `json:"correct_questions"`
	OverallAccuracy  float64                      `json:"overall_accuracy"`
	SkillsPracticed  int                          `json:"skills_practiced"`
	TopicsPracticed  int                          `json:"topics_practiced"`
	ExamsCompleted   int                          `json:"exams_completed"`
	SkillPerformance map[string]*SkillPerformance `json:"skill_performance"`
	TopicPerformance map[string]*TopicPerformance `json:"topic_performance"`
	TopicStrengths   []TopicStanding              `json:"topic_strengths"`
	TopicWeaknesses  []TopicStanding              `json:"topic_weaknesses"`
	SkillStrengths   []SkillStrength              `json:"skill_strengths"`
	SkillGaps        []SkillGap                   `json:"skill_gaps"`
	RecentExams      []ExamRecord                 `json:"recent_exams"`
}

type CreateProfileRequest struct {
	LearnerID string `json:"learner_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type RecordAttemptRequest struct {
	QuestionID       string   `json:"question_id"`
	SkillIDs         []string `json:"skill_ids"`
	Topic            string   `json:"topic"`
	Difficulty       string   `json:"difficulty"`
	QuestionType     string   `json:"question_type"`
	Correct          bool     `json:"correct"`
	TimeSpentSeconds *int     `json:"time_spent_seconds,omitempty"`
	ExamSessionID    string   `json:"exam_session_id,omitempty"`
}
